package memory

import (
	"context"
	"sync"

	"afh-prelander-service/internal/domain"
)

// SessionStore is an in-memory implementation of app.AdminSessionStore.
// Expiry is enforced by the auth service; this store only holds the records.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.AdminSession
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]domain.AdminSession)}
}

func (s *SessionStore) Put(_ context.Context, session domain.AdminSession) error {
	s.mu.Lock()
	s.sessions[session.Token] = session
	s.mu.Unlock()
	return nil
}

func (s *SessionStore) Get(_ context.Context, token string) (domain.AdminSession, bool, error) {
	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()
	return session, ok, nil
}

func (s *SessionStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
	return nil
}
