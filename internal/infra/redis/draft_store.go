package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"afh-prelander-service/internal/app"
	"afh-prelander-service/internal/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DraftStore keeps funnel drafts in Redis so visitors survive a process
// restart. Each draft is one JSON value under funnel:draft:{id} with a TTL
// that refreshes on every save.
type DraftStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewDraftStore(client *redis.Client, ttl time.Duration) *DraftStore {
	return &DraftStore{client: client, ttl: ttl}
}

func (s *DraftStore) Create(ctx context.Context, state app.FunnelState) (string, error) {
	id := uuid.NewString()
	if err := s.write(ctx, id, state); err != nil {
		return "", err
	}
	return id, nil
}

func (s *DraftStore) Get(ctx context.Context, id string) (app.FunnelState, error) {
	raw, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return app.FunnelState{}, domain.ErrSessionNotFound
	}
	if err != nil {
		return app.FunnelState{}, fmt.Errorf("load draft: %w", err)
	}
	var state app.FunnelState
	if err := json.Unmarshal(raw, &state); err != nil {
		return app.FunnelState{}, fmt.Errorf("unmarshal draft: %w", err)
	}
	return state, nil
}

func (s *DraftStore) Save(ctx context.Context, id string, state app.FunnelState) error {
	exists, err := s.client.Exists(ctx, s.key(id)).Result()
	if err != nil {
		return fmt.Errorf("check draft: %w", err)
	}
	if exists == 0 {
		return domain.ErrSessionNotFound
	}
	return s.write(ctx, id, state)
}

func (s *DraftStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, s.key(id)).Err()
}

func (s *DraftStore) write(ctx context.Context, id string, state app.FunnelState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal draft: %w", err)
	}
	if err := s.client.Set(ctx, s.key(id), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("store draft: %w", err)
	}
	return nil
}

func (s *DraftStore) key(id string) string {
	return "funnel:draft:" + id
}
