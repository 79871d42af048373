package memory

import (
	"context"
	"log"

	"afh-prelander-service/internal/domain"
)

// DisabledLeadStore stands in for app.LeadStore when Postgres is not
// configured. Inserts report the store as disabled; reads see an empty set so
// the dashboard still renders.
type DisabledLeadStore struct{}

func NewDisabledLeadStore() DisabledLeadStore {
	return DisabledLeadStore{}
}

func (DisabledLeadStore) Insert(_ context.Context, _ domain.Lead) (domain.Lead, error) {
	return domain.Lead{}, domain.ErrLeadStoreDisabled
}

func (DisabledLeadStore) ListBySubmitted(_ context.Context) ([]domain.Lead, error) {
	return []domain.Lead{}, nil
}

// DisabledNotifier stands in for app.Notifier when Twilio credentials are
// missing. It logs once per attempt so a misconfigured deployment is visible.
type DisabledNotifier struct{}

func NewDisabledNotifier() DisabledNotifier {
	return DisabledNotifier{}
}

func (DisabledNotifier) Notify(_ context.Context, _ string) error {
	log.Printf("sms notifier not configured, skipping notification")
	return nil
}

// DisabledUserStore stands in for app.AdminUserStore when no auth backend is
// configured. Lookups fail with domain.ErrAuthDisabled so login can tell
// "unconfigured" apart from "bad credentials".
type DisabledUserStore struct{}

func NewDisabledUserStore() DisabledUserStore {
	return DisabledUserStore{}
}

func (DisabledUserStore) FindByEmail(_ context.Context, _ string) (*domain.AdminUser, error) {
	return nil, domain.ErrAuthDisabled
}
