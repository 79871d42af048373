package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"afh-prelander-service/internal/app"
	"afh-prelander-service/internal/config"
	"afh-prelander-service/internal/domain"
	"afh-prelander-service/internal/infra/memory"
)

type recordingLeadStore struct {
	inserted []domain.Lead
}

func (s *recordingLeadStore) Insert(_ context.Context, lead domain.Lead) (domain.Lead, error) {
	lead.ID = "lead-1"
	lead.CreatedAt = time.Now().UTC()
	s.inserted = append(s.inserted, lead)
	return lead, nil
}

func (s *recordingLeadStore) ListBySubmitted(_ context.Context) ([]domain.Lead, error) {
	return s.inserted, nil
}

type staticUserStore struct {
	user *domain.AdminUser
}

func (s *staticUserStore) FindByEmail(_ context.Context, email string) (*domain.AdminUser, error) {
	if s.user != nil && s.user.Email == email {
		return s.user, nil
	}
	return nil, nil
}

type testEnv struct {
	server *httptest.Server
	store  *recordingLeadStore
	feed   *app.Feed
}

// newTestEnv stands up the full router with in-memory collaborators. With
// authConfigured an admin@example.com / hunter2 account exists.
func newTestEnv(t *testing.T, authConfigured, allowUnauthenticated bool) *testEnv {
	t.Helper()

	store := &recordingLeadStore{}
	feed := app.NewFeed()
	leadService := app.NewLeadService(store, memory.NewDisabledNotifier(), feed)
	funnelService := app.NewFunnelService(memory.NewDraftStore(time.Minute), leadService, "https://afhbestcare.com")
	dashboardService := app.NewDashboardService(store)

	var users app.AdminUserStore = memory.NewDisabledUserStore()
	caps := config.Capabilities{}
	if authConfigured {
		hash, err := app.HashPassword("hunter2")
		if err != nil {
			t.Fatalf("hash password: %v", err)
		}
		users = &staticUserStore{user: &domain.AdminUser{ID: "u1", Email: "admin@example.com", PasswordHash: hash}}
		caps.Auth = true
	}
	authService := app.NewAuthService(users, memory.NewSessionStore(), time.Hour, time.Second)

	router := NewRouter(
		NewFunnelHandler(funnelService),
		NewLeadHandler(leadService),
		NewAdminHandler(authService, dashboardService),
		NewFeedHandler(feed),
		NewAdminGate(authService, caps, allowUnauthenticated),
	)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return &testEnv{server: server, store: store, feed: feed}
}

// noRedirectClient observes redirects instead of following them.
func noRedirectClient() *http.Client {
	return &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}
