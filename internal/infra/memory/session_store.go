package memory

import (
	"context"
	"sync"

	"studybuddy-service/internal/domain"
)

// SessionStore is an in-memory implementation of app.SessionRepository,
// keyed by user ID.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.Quiz
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]domain.Quiz),
	}
}

func (s *SessionStore) Get(_ context.Context, userID string) (domain.Quiz, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	quiz, ok := s.sessions[userID]
	return quiz, ok, nil
}

func (s *SessionStore) Save(_ context.Context, userID string, quiz domain.Quiz) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = quiz
	return nil
}

func (s *SessionStore) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
	return nil
}
