package memory

import (
	"context"
	"testing"
	"time"

	"afh-prelander-service/internal/domain"
)

type countingReader struct {
	calls int
	leads []domain.Lead
}

func (r *countingReader) ListBySubmitted(_ context.Context) ([]domain.Lead, error) {
	r.calls++
	return r.leads, nil
}

func TestCachedLeadReaderServesFromCache(t *testing.T) {
	reader := &countingReader{leads: []domain.Lead{{ID: "lead-1"}}}
	cache := NewCachedLeadReader(reader, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		leads, err := cache.ListBySubmitted(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(leads) != 1 || leads[0].ID != "lead-1" {
			t.Fatalf("unexpected leads %+v", leads)
		}
	}
	if reader.calls != 1 {
		t.Fatalf("expected one backing read, got %d", reader.calls)
	}
}

func TestCachedLeadReaderExpires(t *testing.T) {
	reader := &countingReader{leads: []domain.Lead{{ID: "lead-1"}}}
	cache := NewCachedLeadReader(reader, time.Minute)
	ctx := context.Background()

	if _, err := cache.ListBySubmitted(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}
	cache.clock = func() time.Time { return time.Now().Add(2 * time.Minute) }
	if _, err := cache.ListBySubmitted(ctx); err != nil {
		t.Fatalf("list after expiry: %v", err)
	}
	if reader.calls != 2 {
		t.Fatalf("expected refresh after expiry, got %d reads", reader.calls)
	}
}

func TestCachedLeadReaderInvalidate(t *testing.T) {
	reader := &countingReader{leads: []domain.Lead{{ID: "lead-1"}}}
	cache := NewCachedLeadReader(reader, time.Minute)
	ctx := context.Background()

	if _, err := cache.ListBySubmitted(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}
	cache.Invalidate()
	if _, err := cache.ListBySubmitted(ctx); err != nil {
		t.Fatalf("list after invalidate: %v", err)
	}
	if reader.calls != 2 {
		t.Fatalf("expected refresh after invalidate, got %d reads", reader.calls)
	}
}
