package summarize

import (
	"context"
	"fmt"
	"sync"
)

// Mock is a test summarizer. SummarizeFunc, when set, overrides the
// default canned behavior.
type Mock struct {
	SummarizeFunc func(ctx context.Context, req Request) (string, error)

	mu    sync.Mutex
	calls []Request
}

// NewMock creates a mock summarizer with canned responses.
func NewMock() *Mock {
	return &Mock{}
}

// Name returns the provider identifier.
func (m *Mock) Name() string {
	return "mock"
}

// Summarize records the call and returns either the configured function's
// result or a deterministic canned summary.
func (m *Mock) Summarize(ctx context.Context, req Request) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, req)
	m.mu.Unlock()

	if m.SummarizeFunc != nil {
		return m.SummarizeFunc(ctx, req)
	}
	return fmt.Sprintf("Résumé de la marche « %s » (%d textes).",
		req.MarcheNom, len(req.Textes)), nil
}

// Calls returns a copy of every request received so far.
func (m *Mock) Calls() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Request, len(m.calls))
	copy(out, m.calls)
	return out
}
