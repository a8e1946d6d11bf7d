package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockProvider is a scripted Provider for tests. Responses are consumed
// first-in first-out; when the queue runs dry the last response repeats.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	calls     []Request
	model     string
}

// MockResponse is one scripted turn.
type MockResponse struct {
	Content string
	Err     error
}

// NewMockProvider builds a mock that replays the given responses in order.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses, model: "mock"}
}

func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.calls = append(m.calls, req)
	var next MockResponse
	switch {
	case len(m.responses) == 0:
		next = MockResponse{Content: "{}"}
	case len(m.responses) == 1:
		next = m.responses[0]
	default:
		next = m.responses[0]
		m.responses = m.responses[1:]
	}
	m.mu.Unlock()

	if next.Err != nil {
		return nil, next.Err
	}

	if req.Schema != nil {
		if err := validateResponse(req.Schema, []byte(next.Content)); err != nil {
			return nil, err
		}
	}

	return &Response{
		Content:    json.RawMessage(next.Content),
		Model:      m.model,
		StopReason: "end",
		Usage:      Usage{InputTokens: 10, OutputTokens: 20, TotalTokens: 30},
	}, nil
}

func (m *MockProvider) ModelID() string { return m.model }

// Calls returns a copy of every request seen so far.
func (m *MockProvider) Calls() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Request, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns how many times Generate was invoked.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
