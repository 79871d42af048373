package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"afh-prelander-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

// SessionStore keeps admin login sessions in Redis. The key TTL mirrors the
// session expiry so abandoned sessions clean themselves up.
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func (s *SessionStore) Put(ctx context.Context, session domain.AdminSession) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		ttl = time.Minute
	}
	if err := s.client.Set(ctx, s.key(session.Token), raw, ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, token string) (domain.AdminSession, bool, error) {
	raw, err := s.client.Get(ctx, s.key(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.AdminSession{}, false, nil
	}
	if err != nil {
		return domain.AdminSession{}, false, fmt.Errorf("load session: %w", err)
	}
	var session domain.AdminSession
	if err := json.Unmarshal(raw, &session); err != nil {
		return domain.AdminSession{}, false, fmt.Errorf("unmarshal session: %w", err)
	}
	session.Token = token
	return session, true, nil
}

func (s *SessionStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, s.key(token)).Err()
}

func (s *SessionStore) key(token string) string {
	return "admin:session:" + token
}
