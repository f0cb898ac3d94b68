package enrich

import (
	"context"
	"encoding/json"
	"sync"
)

// sampleEnrichment is what the mock backend emits once its script is
// exhausted, so `words enrich` works end to end without an API key.
var sampleEnrichment = json.RawMessage(`{
	"example_sentence": "Мен нан сатып алдым.",
	"sentence_translation": "I bought bread.",
	"mnemonic": "Нан sounds like naan, the flatbread.",
	"usage_note": "Everyday word; also the generic word for food on the table."
}`)

// MockResponse is one scripted reply for the MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider is a deterministic Provider for tests and for the
// "mock" provider setting. Scripted responses are served in FIFO
// order; after the script runs out it falls back to a canned sample
// enrichment. All requests are recorded.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []Request
}

// NewMockProvider creates a MockProvider with the given script.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if len(m.responses) == 0 {
		return &Response{
			Content:    sampleEnrichment,
			Model:      "mock",
			StopReason: "end",
		}, nil
	}

	next := m.responses[0]
	m.responses = m.responses[1:]
	if next.Err != nil {
		return nil, next.Err
	}
	return &Response{
		Content:    next.Content,
		Usage:      next.Usage,
		Model:      "mock",
		StopReason: "end",
	}, nil
}

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse appends a scripted response.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
