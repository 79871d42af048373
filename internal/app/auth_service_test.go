package app

import (
	"context"
	"testing"
	"time"

	"afh-prelander-service/internal/domain"
)

type fakeUserStore struct {
	users map[string]*domain.AdminUser
	err   error
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (*domain.AdminUser, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.users[email], nil
}

type fakeSessionStore struct {
	sessions map[string]domain.AdminSession
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]domain.AdminSession)}
}

func (s *fakeSessionStore) Put(_ context.Context, session domain.AdminSession) error {
	s.sessions[session.Token] = session
	return nil
}

func (s *fakeSessionStore) Get(_ context.Context, token string) (domain.AdminSession, bool, error) {
	session, ok := s.sessions[token]
	return session, ok, nil
}

func (s *fakeSessionStore) Delete(_ context.Context, token string) error {
	delete(s.sessions, token)
	return nil
}

func newTestAuth(t *testing.T, password string) (*AuthService, *fakeSessionStore) {
	t.Helper()
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	users := &fakeUserStore{users: map[string]*domain.AdminUser{
		"admin@example.com": {ID: "u1", Email: "admin@example.com", PasswordHash: hash},
	}}
	sessions := newFakeSessionStore()
	return NewAuthService(users, sessions, time.Hour, time.Second), sessions
}

func TestLoginCreatesSession(t *testing.T) {
	auth, sessions := newTestAuth(t, "hunter2")

	session, err := auth.Login(context.Background(), "admin@example.com", "hunter2")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if session.Token == "" || session.Email != "admin@example.com" {
		t.Fatalf("unexpected session %+v", session)
	}
	if _, ok := sessions.sessions[session.Token]; !ok {
		t.Fatalf("expected session persisted")
	}

	if _, ok := auth.Current(context.Background(), session.Token); !ok {
		t.Fatalf("expected current session to resolve")
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	auth, _ := newTestAuth(t, "hunter2")

	if _, err := auth.Login(context.Background(), "admin@example.com", "wrong"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected invalid credentials for wrong password, got %v", err)
	}
	if _, err := auth.Login(context.Background(), "ghost@example.com", "hunter2"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected invalid credentials for unknown email, got %v", err)
	}
	if _, err := auth.Login(context.Background(), "", ""); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected invalid credentials for empty input, got %v", err)
	}
}

func TestLoginDistinguishesDisabledBackend(t *testing.T) {
	auth := NewAuthService(&fakeUserStore{err: domain.ErrAuthDisabled}, newFakeSessionStore(), time.Hour, time.Second)

	if _, err := auth.Login(context.Background(), "admin@example.com", "hunter2"); err != domain.ErrAuthDisabled {
		t.Fatalf("expected auth disabled, got %v", err)
	}
}

func TestLoginMapsTimeout(t *testing.T) {
	auth := NewAuthService(&fakeUserStore{err: context.DeadlineExceeded}, newFakeSessionStore(), time.Hour, time.Second)

	if _, err := auth.Login(context.Background(), "admin@example.com", "hunter2"); err != domain.ErrAuthTimeout {
		t.Fatalf("expected timeout error, got %v", err)
	}
}

func TestCurrentDropsExpiredSessions(t *testing.T) {
	auth, sessions := newTestAuth(t, "hunter2")

	session, err := auth.Login(context.Background(), "admin@example.com", "hunter2")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	auth.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, ok := auth.Current(context.Background(), session.Token); ok {
		t.Fatalf("expected expired session to be rejected")
	}
	if _, ok := sessions.sessions[session.Token]; ok {
		t.Fatalf("expected expired session to be deleted")
	}
}

func TestLogout(t *testing.T) {
	auth, sessions := newTestAuth(t, "hunter2")

	session, err := auth.Login(context.Background(), "admin@example.com", "hunter2")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	auth.Logout(context.Background(), session.Token)
	if len(sessions.sessions) != 0 {
		t.Fatalf("expected session removed on logout")
	}
}
