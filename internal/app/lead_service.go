package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"afh-prelander-service/internal/domain"
)

// LeadStore abstracts where submitted leads live (Postgres, or a disabled
// stand-in when no database is configured).
type LeadStore interface {
	Insert(ctx context.Context, lead domain.Lead) (domain.Lead, error)
	// ListBySubmitted returns all leads ordered by submission time, newest first.
	ListBySubmitted(ctx context.Context) ([]domain.Lead, error)
}

// Notifier sends the operator a single plain-text message per lead.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// SubmitResult reports what actually happened to a submission. Stored is
// false when the insert was skipped or failed; the funnel still succeeds.
type SubmitResult struct {
	ID     string
	Stored bool
}

// LeadService runs the submission pipeline: one insert attempt, one
// notification attempt, one feed publish. Neither the insert nor the
// notification outcome ever fails the submission.
type LeadService struct {
	store    LeadStore
	notifier Notifier
	feed     *Feed
	now      func() time.Time
}

func NewLeadService(store LeadStore, notifier Notifier, feed *Feed) *LeadService {
	return &LeadService{
		store:    store,
		notifier: notifier,
		feed:     feed,
		now:      time.Now,
	}
}

// Submit persists the lead best-effort and notifies the operator
// unconditionally afterwards. The returned error is always nil today; the
// signature keeps room for a stricter policy.
func (s *LeadService) Submit(ctx context.Context, lead domain.Lead) (SubmitResult, error) {
	if lead.Source == "" {
		lead.Source = domain.DefaultSource
	}
	if lead.SubmittedAt.IsZero() {
		lead.SubmittedAt = s.now().UTC()
	}

	result := SubmitResult{}
	stored, err := s.store.Insert(ctx, lead)
	switch {
	case err == nil:
		result.ID = stored.ID
		result.Stored = true
		lead = stored
	case errors.Is(err, domain.ErrLeadStoreDisabled):
		log.Printf("lead store disabled, skipping insert for %s", lead.Email)
	default:
		log.Printf("lead insert failed for %s: %v", lead.Email, err)
	}

	// Notification is attempted regardless of the insert outcome and its
	// failure never reaches the submitter.
	if err := s.notifier.Notify(ctx, NotificationMessage(lead)); err != nil {
		log.Printf("lead notification failed for %s: %v", lead.Email, err)
	}

	if s.feed != nil {
		s.feed.Publish(lead)
	}
	return result, nil
}

// NotificationMessage renders the operator SMS for a lead.
func NotificationMessage(lead domain.Lead) string {
	return fmt.Sprintf("New prelander lead: %s (%s). Budget: %s, Timeline: %s",
		lead.Name, lead.Email, lead.PriceRange, lead.Timeline)
}
