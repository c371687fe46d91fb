package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tastebook/backend/internal/session"
)

// SessionStore is an in-memory session.Store for tests.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]uuid.UUID
}

var _ session.Store = (*SessionStore)(nil)

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]uuid.UUID)}
}

func (s *SessionStore) Create(ctx context.Context, sessionID string, userID uuid.UUID, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = userID
	return nil
}

func (s *SessionStore) Lookup(ctx context.Context, sessionID string) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	userID, ok := s.sessions[sessionID]
	if !ok {
		return uuid.Nil, session.ErrNotFound
	}
	return userID, nil
}

func (s *SessionStore) Revoke(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
