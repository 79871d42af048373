package app

import (
	"sync"

	"afh-prelander-service/internal/domain"
)

// Feed fans submitted leads out to dashboard subscribers. Publishing never
// blocks: a slow subscriber loses its oldest pending lead instead of stalling
// the submission path.
type Feed struct {
	mu          sync.Mutex
	subscribers map[chan domain.Lead]struct{}
}

func NewFeed() *Feed {
	return &Feed{subscribers: make(map[chan domain.Lead]struct{})}
}

// Subscribe returns a channel of newly submitted leads. The caller must
// invoke the returned cancel function to avoid leaks.
func (f *Feed) Subscribe() (<-chan domain.Lead, func()) {
	ch := make(chan domain.Lead, 8)

	f.mu.Lock()
	f.subscribers[ch] = struct{}{}
	f.mu.Unlock()

	cancel := func() {
		f.mu.Lock()
		if _, ok := f.subscribers[ch]; ok {
			delete(f.subscribers, ch)
			close(ch)
		}
		f.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers the lead to every subscriber, dropping the oldest pending
// update for any subscriber whose buffer is full.
func (f *Feed) Publish(lead domain.Lead) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for ch := range f.subscribers {
		select {
		case ch <- lead:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- lead
		}
	}
}
