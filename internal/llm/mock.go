package llm

import (
	"context"
	"sync"
)

// Reply is a canned response for the MockProvider.
type Reply struct {
	Text string
	Err  error
}

// MockProvider is a deterministic Provider for testing. It returns canned
// replies in FIFO order and records every request it receives.
type MockProvider struct {
	mu      sync.Mutex
	replies []Reply
	Calls   []Request
}

// NewMockProvider creates a MockProvider with the given canned replies.
func NewMockProvider(replies ...Reply) *MockProvider {
	return &MockProvider{replies: replies}
}

// Generate returns the next canned reply, or ErrUnavailable when the queue
// is empty.
func (m *MockProvider) Generate(_ context.Context, req Request) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if len(m.replies) == 0 {
		return "", &ErrUnavailable{}
	}
	reply := m.replies[0]
	m.replies = m.replies[1:]
	if reply.Err != nil {
		return "", reply.Err
	}
	return reply.Text, nil
}

func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddReply appends a canned reply to the queue.
func (m *MockProvider) AddReply(reply Reply) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies = append(m.replies, reply)
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
