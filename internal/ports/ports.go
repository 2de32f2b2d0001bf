// Package ports defines the interfaces between the judging core and the
// infrastructure layer. Depending on these interfaces keeps the judges and
// the pipeline testable without live services.
package ports

import (
	"context"
	"time"
)

// LLMClient is the boundary to a text-generation service. Implementations
// handle provider-specific authentication, request formatting, and
// response parsing.
type LLMClient interface {
	// Complete sends a completion request and returns the generated text.
	// The options map carries provider-specific parameters; the ones the
	// judging core uses are:
	//   - "temperature": float64
	//   - "max_tokens": int
	//   - "system": string
	//   - "response_format": "json_object" (chat-completion providers)
	//   - "response_mime_type": "application/json" (generative-content providers)
	Complete(ctx context.Context, prompt string, options map[string]any) (string, error)

	// EstimateTokens approximates the token count of the given text,
	// used to bound request sizes before sending.
	EstimateTokens(text string) (int, error)

	// GetModel returns the model identifier this client is bound to.
	GetModel() string
}

// MetricsCollector records operational metrics for the run. The Prometheus
// implementation lives in infrastructure/metrics; a nil-safe no-op is
// acceptable anywhere a collector is optional.
type MetricsCollector interface {
	// RecordCounter increments a counter metric by value.
	RecordCounter(metric string, value float64, labels map[string]string)

	// RecordLatency records the duration of an operation.
	RecordLatency(operation string, duration time.Duration, labels map[string]string)

	// RecordHistogram records a value in a histogram distribution.
	RecordHistogram(metric string, value float64, labels map[string]string)
}
