package submission

import (
	"context"
	"sync"
)

// MockClient is a deterministic Client for testing. It returns canned
// errors in FIFO order (nil means success) and records every record sent.
type MockClient struct {
	mu    sync.Mutex
	errs  []error
	Calls []Record
}

// NewMockClient creates a MockClient with the given canned outcomes.
// Once the queue is empty every call succeeds.
func NewMockClient(errs ...error) *MockClient {
	return &MockClient{errs: errs}
}

func (m *MockClient) Submit(_ context.Context, rec Record) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, rec)

	if len(m.errs) > 0 {
		err := m.errs[0]
		m.errs = m.errs[1:]
		if err != nil {
			return 0, err
		}
	}
	return rec.FieldCount(), nil
}
