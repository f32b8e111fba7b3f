package memory

import (
	"context"
	"sync"

	"studybuddy-service/internal/domain"
)

// ResultStore is an in-memory implementation of app.ResultStore (useful for
// tests and runs without Postgres).
type ResultStore struct {
	mu      sync.RWMutex
	results map[string][]domain.GradedResult
}

func NewResultStore() *ResultStore {
	return &ResultStore{
		results: make(map[string][]domain.GradedResult),
	}
}

func (s *ResultStore) Save(_ context.Context, userID string, result domain.GradedResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[userID] = append(s.results[userID], result)
	return nil
}

// Recent returns up to limit results, newest first.
func (s *ResultStore) Recent(_ context.Context, userID string, limit int) ([]domain.GradedResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.results[userID]
	out := make([]domain.GradedResult, 0, limit)
	for i := len(all) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, all[i])
	}
	return out, nil
}
