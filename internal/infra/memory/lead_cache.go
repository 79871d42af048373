package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"afh-prelander-service/internal/app"
	"afh-prelander-service/internal/domain"
	"golang.org/x/sync/singleflight"
)

// CachedLeadReader wraps an app.LeadReader with a short TTL cache so bursts
// of dashboard traffic collapse into one database read.
type CachedLeadReader struct {
	reader app.LeadReader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu        sync.RWMutex
	leads     []domain.Lead
	expiresAt time.Time
}

func NewCachedLeadReader(reader app.LeadReader, ttl time.Duration) *CachedLeadReader {
	return &CachedLeadReader{
		reader: reader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *CachedLeadReader) ListBySubmitted(ctx context.Context) ([]domain.Lead, error) {
	now := r.clock()

	r.mu.RLock()
	if r.leads != nil && r.expiresAt.After(now) {
		leads := r.leads
		r.mu.RUnlock()
		return leads, nil
	}
	r.mu.RUnlock()

	result, err, _ := r.sf.Do("leads", func() (interface{}, error) {
		now := r.clock()
		r.mu.RLock()
		if r.leads != nil && r.expiresAt.After(now) {
			leads := r.leads
			r.mu.RUnlock()
			return leads, nil
		}
		r.mu.RUnlock()

		leads, err := r.reader.ListBySubmitted(ctx)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.leads = leads
		r.expiresAt = now.Add(r.ttlWithJitter())
		r.mu.Unlock()
		return leads, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Lead), nil
}

// Invalidate drops the cached set so the next read hits the store. Called
// after a new submission lands.
func (r *CachedLeadReader) Invalidate() {
	r.mu.Lock()
	r.leads = nil
	r.expiresAt = time.Time{}
	r.mu.Unlock()
}

func (r *CachedLeadReader) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
