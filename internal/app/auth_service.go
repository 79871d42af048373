package app

import (
	"context"
	"errors"
	"time"

	"afh-prelander-service/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AdminUserStore looks up operator accounts. Returns (nil, nil) for unknown
// emails and domain.ErrAuthDisabled when no backend is configured.
type AdminUserStore interface {
	FindByEmail(ctx context.Context, email string) (*domain.AdminUser, error)
}

// AdminSessionStore keeps server-side login sessions keyed by opaque token.
type AdminSessionStore interface {
	Put(ctx context.Context, session domain.AdminSession) error
	Get(ctx context.Context, token string) (domain.AdminSession, bool, error)
	Delete(ctx context.Context, token string) error
}

// AuthService implements email/password login with opaque session tokens.
// Tokens carry no claims; every request resolves the session against the
// store.
type AuthService struct {
	users        AdminUserStore
	sessions     AdminSessionStore
	sessionTTL   time.Duration
	loginTimeout time.Duration
	now          func() time.Time
	newToken     func() string
}

func NewAuthService(users AdminUserStore, sessions AdminSessionStore, sessionTTL, loginTimeout time.Duration) *AuthService {
	return &AuthService{
		users:        users,
		sessions:     sessions,
		sessionTTL:   sessionTTL,
		loginTimeout: loginTimeout,
		now:          time.Now,
		newToken:     func() string { return uuid.NewString() },
	}
}

// Login checks the credentials and creates a session. The credential check
// runs under a fixed timeout so a stalled backend surfaces as
// domain.ErrAuthTimeout instead of an indefinite hang.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.AdminSession, error) {
	if email == "" || password == "" {
		return domain.AdminSession{}, domain.ErrInvalidCredentials
	}

	checkCtx := ctx
	if s.loginTimeout > 0 {
		var cancel context.CancelFunc
		checkCtx, cancel = context.WithTimeout(ctx, s.loginTimeout)
		defer cancel()
	}

	user, err := s.users.FindByEmail(checkCtx, email)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return domain.AdminSession{}, domain.ErrAuthTimeout
		}
		if errors.Is(err, domain.ErrAuthDisabled) {
			return domain.AdminSession{}, domain.ErrAuthDisabled
		}
		return domain.AdminSession{}, err
	}
	if user == nil {
		return domain.AdminSession{}, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return domain.AdminSession{}, domain.ErrInvalidCredentials
	}

	now := s.now().UTC()
	session := domain.AdminSession{
		Token:     s.newToken(),
		UserID:    user.ID,
		Email:     user.Email,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := s.sessions.Put(ctx, session); err != nil {
		return domain.AdminSession{}, err
	}
	return session, nil
}

// Current resolves the session for a token, treating expired sessions as
// absent.
func (s *AuthService) Current(ctx context.Context, token string) (domain.AdminSession, bool) {
	if token == "" {
		return domain.AdminSession{}, false
	}
	session, ok, err := s.sessions.Get(ctx, token)
	if err != nil || !ok {
		return domain.AdminSession{}, false
	}
	if session.Expired(s.now()) {
		_ = s.sessions.Delete(ctx, token)
		return domain.AdminSession{}, false
	}
	return session, true
}

// Logout discards the session for a token.
func (s *AuthService) Logout(ctx context.Context, token string) {
	if token == "" {
		return
	}
	_ = s.sessions.Delete(ctx, token)
}

// HashPassword is used by the create-admin command to seed operator accounts.
func HashPassword(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
}
