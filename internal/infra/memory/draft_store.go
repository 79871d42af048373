package memory

import (
	"context"
	"sync"
	"time"

	"afh-prelander-service/internal/app"
	"afh-prelander-service/internal/domain"
	"github.com/google/uuid"
)

// DraftStore is an in-memory implementation of app.DraftStore. Drafts expire
// after the TTL; expired entries are dropped lazily on access.
type DraftStore struct {
	ttl   time.Duration
	clock func() time.Time

	mu     sync.RWMutex
	drafts map[string]draftEntry
}

type draftEntry struct {
	state     app.FunnelState
	expiresAt time.Time
}

func NewDraftStore(ttl time.Duration) *DraftStore {
	return &DraftStore{
		ttl:    ttl,
		clock:  time.Now,
		drafts: make(map[string]draftEntry),
	}
}

func (s *DraftStore) Create(_ context.Context, state app.FunnelState) (string, error) {
	id := uuid.NewString()
	s.mu.Lock()
	s.drafts[id] = draftEntry{state: state, expiresAt: s.expiry()}
	s.mu.Unlock()
	return id, nil
}

func (s *DraftStore) Get(_ context.Context, id string) (app.FunnelState, error) {
	s.mu.RLock()
	entry, ok := s.drafts[id]
	s.mu.RUnlock()
	if !ok {
		return app.FunnelState{}, domain.ErrSessionNotFound
	}
	if !entry.expiresAt.IsZero() && !s.clock().Before(entry.expiresAt) {
		s.mu.Lock()
		delete(s.drafts, id)
		s.mu.Unlock()
		return app.FunnelState{}, domain.ErrSessionNotFound
	}
	return entry.state, nil
}

func (s *DraftStore) Save(_ context.Context, id string, state app.FunnelState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.drafts[id]; !ok {
		return domain.ErrSessionNotFound
	}
	// Saving refreshes the TTL; an active visitor keeps their draft alive.
	s.drafts[id] = draftEntry{state: state, expiresAt: s.expiry()}
	return nil
}

func (s *DraftStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.drafts, id)
	s.mu.Unlock()
	return nil
}

func (s *DraftStore) expiry() time.Time {
	if s.ttl <= 0 {
		return time.Time{}
	}
	return s.clock().Add(s.ttl)
}
