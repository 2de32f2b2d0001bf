package llm

import (
	"encoding/json"
	"math"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBuildChatRequest_TemperatureOnWire verifies temperature handling
// against the request's omitempty serialization: an explicit zero must
// still appear in the marshalled body, and an absent temperature must
// stay absent.
func TestBuildChatRequest_TemperatureOnWire(t *testing.T) {
	zero := 0.0
	moderate := 0.7

	tests := []struct {
		name        string
		temperature *float64
		wantField   bool
		wantValue   float32
	}{
		{
			name:        "explicit_zero_survives_omitempty",
			temperature: &zero,
			wantField:   true,
			wantValue:   math.SmallestNonzeroFloat32,
		},
		{
			name:        "nonzero_passed_through",
			temperature: &moderate,
			wantField:   true,
			wantValue:   0.7,
		},
		{
			name:        "unset_stays_off_the_wire",
			temperature: nil,
			wantField:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := buildChatRequest("score this essay", RequestOptions{
				Model:       "gpt-4o-mini",
				Temperature: tt.temperature,
			})

			body, err := json.Marshal(req)
			require.NoError(t, err)

			var wire map[string]any
			require.NoError(t, json.Unmarshal(body, &wire))

			if tt.wantField {
				assert.Contains(t, wire, "temperature",
					"Temperature must be present in the request body.")
				assert.Equal(t, tt.wantValue, req.Temperature)
			} else {
				assert.NotContains(t, wire, "temperature",
					"An unset temperature must be omitted, not sent as zero.")
			}
		})
	}
}

func TestBuildChatRequest_MessagesAndFormat(t *testing.T) {
	req := buildChatRequest("score this essay", RequestOptions{
		Model:          "gpt-4o-mini",
		System:         "You are a judge.",
		MaxTokens:      500,
		ResponseFormat: "json_object",
	})

	require.Len(t, req.Messages, 2, "System instruction adds a leading message.")
	assert.Equal(t, openai.ChatMessageRoleSystem, req.Messages[0].Role)
	assert.Equal(t, "You are a judge.", req.Messages[0].Content)
	assert.Equal(t, openai.ChatMessageRoleUser, req.Messages[1].Role)
	assert.Equal(t, "score this essay", req.Messages[1].Content)
	assert.Equal(t, 500, req.MaxTokens)

	require.NotNil(t, req.ResponseFormat)
	assert.Equal(t, openai.ChatCompletionResponseFormatTypeJSONObject, req.ResponseFormat.Type)

	plain := buildChatRequest("score this essay", RequestOptions{Model: "gpt-4o-mini"})
	require.Len(t, plain.Messages, 1, "No system instruction means a single user message.")
	assert.Nil(t, plain.ResponseFormat)
}
