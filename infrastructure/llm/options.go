package llm

import (
	"fmt"
	"net/url"
	"time"
)

// Parameter bounds shared across providers.
const (
	// MinTemperature and MaxTemperature bound the sampling temperature.
	// The upper bound is 2.0 to accommodate Gemini.
	MinTemperature = 0.0
	MaxTemperature = 2.0

	// DefaultMaxTokens caps response length when callers do not set one.
	DefaultMaxTokens = 1024

	// MinTimeout and MaxTimeout bound per-request timeouts.
	MinTimeout = 1 * time.Second
	MaxTimeout = 10 * time.Minute
)

// RequestOptions is the normalized set of request parameters extracted
// from a caller's options map.
type RequestOptions struct {
	// Model identifies the model for this request.
	Model string
	// MaxTokens limits the response length.
	MaxTokens int
	// Temperature controls sampling randomness; nil means provider default.
	Temperature *float64
	// System carries an optional system instruction.
	System string
	// ResponseFormat requests a structured response from chat-completion
	// providers. The only supported value is "json_object".
	ResponseFormat string
	// ResponseMIMEType requests a response MIME type from
	// generative-content providers (e.g. "application/json").
	ResponseMIMEType string
	// Extra holds provider-specific options outside the standard set.
	Extra map[string]any
}

// ParseRequestOptions normalizes a caller's options map, applying the
// default model for missing entries and collecting unrecognized keys
// into Extra.
func ParseRequestOptions(opts map[string]any, defaultModel string) RequestOptions {
	options := RequestOptions{
		Model:            extractString(opts, "model", defaultModel),
		MaxTokens:        extractInt(opts, "max_tokens", DefaultMaxTokens),
		System:           extractString(opts, "system", ""),
		ResponseFormat:   extractString(opts, "response_format", ""),
		ResponseMIMEType: extractString(opts, "response_mime_type", ""),
		Extra:            make(map[string]any),
	}

	if raw, ok := opts["temperature"]; ok {
		if temp, valid := toFloat64(raw); valid && temp >= MinTemperature && temp <= MaxTemperature {
			options.Temperature = &temp
		}
	}

	for k, v := range opts {
		switch k {
		case "model", "max_tokens", "system", "temperature", "response_format", "response_mime_type":
			// Standard options, already handled.
		default:
			options.Extra[k] = v
		}
	}

	return options
}

func extractString(opts map[string]any, key, defaultVal string) string {
	if raw, ok := opts[key]; ok {
		if s, ok := raw.(string); ok && s != "" {
			return s
		}
	}
	return defaultVal
}

func extractInt(opts map[string]any, key string, defaultVal int) int {
	if raw, ok := opts[key]; ok {
		switch v := raw.(type) {
		case int:
			if v > 0 {
				return v
			}
		case float64:
			if v > 0 {
				return int(v)
			}
		}
	}
	return defaultVal
}

func toFloat64(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}

// ClampFloat64 restricts a float64 value to the given range.
func ClampFloat64(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ValidateBaseURL checks that an endpoint override is a well-formed http
// or https URL. An empty string is valid and means the provider default.
func ValidateBaseURL(baseURL string) (string, error) {
	if baseURL == "" {
		return "", nil
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL format: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("URL scheme must be http or https, got: %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("URL must include a host")
	}
	return parsed.String(), nil
}

// ValidateTimeout clamps a request timeout into [MinTimeout, MaxTimeout].
// Zero or negative means the transport default and is returned as zero.
func ValidateTimeout(timeout time.Duration) time.Duration {
	if timeout <= 0 {
		return 0
	}
	if timeout < MinTimeout {
		return MinTimeout
	}
	if timeout > MaxTimeout {
		return MaxTimeout
	}
	return timeout
}
