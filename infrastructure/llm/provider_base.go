package llm

import "sync"

// BaseProvider holds the model name shared by all provider
// implementations. It is safe for concurrent use.
type BaseProvider struct {
	mu    sync.RWMutex
	model string
}

// GetModel returns the currently configured model name.
func (b *BaseProvider) GetModel() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.model
}

// SetModel updates the model name for subsequent requests.
func (b *BaseProvider) SetModel(model string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.model = model
}

// tokenCount prefers the provider-reported count and falls back to the
// character-based estimate when the API omits usage data.
func tokenCount(actual int, text string) int {
	if actual > 0 {
		return actual
	}
	return EstimateTokens(text)
}
