package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorClassifier_ClassifyHTTPError(t *testing.T) {
	classifier := &ErrorClassifier{Provider: "openai"}

	tests := []struct {
		name       string
		statusCode int
		wantType   ErrorType
	}{
		{name: "unauthorized", statusCode: 401, wantType: ErrorTypeAuthentication},
		{name: "forbidden", statusCode: 403, wantType: ErrorTypeAuthentication},
		{name: "rate limited", statusCode: 429, wantType: ErrorTypeRateLimit},
		{name: "bad request", statusCode: 400, wantType: ErrorTypeBadRequest},
		{name: "unknown model", statusCode: 404, wantType: ErrorTypeNotFound},
		{name: "server error", statusCode: 500, wantType: ErrorTypeServerError},
		{name: "bad gateway", statusCode: 502, wantType: ErrorTypeServerError},
		{name: "other 4xx", statusCode: 422, wantType: ErrorTypeBadRequest},
		{name: "other 5xx", statusCode: 599, wantType: ErrorTypeServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifier.ClassifyHTTPError(tt.statusCode, "boom", errors.New("boom"))
			assert.Equal(t, tt.wantType, got.Type)
			assert.Equal(t, "openai", got.Provider)
			assert.Equal(t, tt.statusCode, got.StatusCode)
		})
	}
}

func TestErrorClassifier_ClassifyContextError(t *testing.T) {
	classifier := &ErrorClassifier{Provider: "google"}

	deadline := classifier.ClassifyContextError(context.DeadlineExceeded)
	assert.Equal(t, ErrorTypeNetwork, deadline.Type)

	canceled := classifier.ClassifyContextError(context.Canceled)
	assert.Equal(t, ErrorTypeNetwork, canceled.Type)

	other := classifier.ClassifyContextError(errors.New("dns failure"))
	assert.Equal(t, ErrorTypeUnknown, other.Type)
}

func TestProviderError_Unwrap(t *testing.T) {
	inner := errors.New("socket closed")
	err := NewProviderError("anthropic", ErrorTypeNetwork, 0, "request failed", inner)

	assert.ErrorIs(t, err, inner, "errors.Is must see through ProviderError.")

	var pe *ProviderError
	require.ErrorAs(t, error(err), &pe)
	assert.Equal(t, ErrorTypeNetwork, pe.Type)
}

func TestProviderError_Error(t *testing.T) {
	err := NewProviderError("openai", ErrorTypeRateLimit, 429, "rate limit exceeded", nil)

	msg := err.Error()
	assert.Contains(t, msg, "openai error")
	assert.Contains(t, msg, "HTTP 429")
	assert.Contains(t, msg, "rate limit exceeded")
}
