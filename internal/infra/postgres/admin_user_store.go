package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"afh-prelander-service/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// AdminUserStore looks up and seeds dashboard operator accounts.
type AdminUserStore struct {
	pool *pgxpool.Pool
}

func NewAdminUserStore(pool *pgxpool.Pool) *AdminUserStore {
	return &AdminUserStore{pool: pool}
}

func (s *AdminUserStore) FindByEmail(ctx context.Context, email string) (*domain.AdminUser, error) {
	var user domain.AdminUser
	err := s.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, created_at
		FROM admin_users
		WHERE lower(email) = lower($1)`,
		email,
	).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find admin user: %w", err)
	}
	return &user, nil
}

// Upsert creates or replaces the account for an email. Used by the
// create-admin command.
func (s *AdminUserStore) Upsert(ctx context.Context, email string, passwordHash []byte, now time.Time) (string, error) {
	var id string
	err := s.pool.QueryRow(ctx, `
		INSERT INTO admin_users (email, password_hash, created_at)
		VALUES (lower($1), $2, $3)
		ON CONFLICT (email) DO UPDATE SET password_hash = EXCLUDED.password_hash
		RETURNING id`,
		email, passwordHash, now,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("upsert admin user: %w", err)
	}
	return id, nil
}
