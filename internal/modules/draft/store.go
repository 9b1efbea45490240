// Package draft holds the one in-progress report a session may have between
// the upload/capture step and the review/commit step. State lives in a
// TTL-backed keyed store, not in the web session object, so it can be tested
// and swapped independently of the HTTP layer.
package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"civicconnect/internal/domain"
)

const keyPrefix = "draft:"

// Store is the raw keyed storage; Service layers the supersede rule on top.
type Store interface {
	Put(ctx context.Context, sessionID string, d domain.Draft) error
	Get(ctx context.Context, sessionID string) (domain.Draft, error)
	Clear(ctx context.Context, sessionID string) error
}

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Put(ctx context.Context, sessionID string, d domain.Draft) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, keyPrefix+sessionID, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("store draft: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (domain.Draft, error) {
	payload, err := s.client.Get(ctx, keyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Draft{}, ErrNoDraft
	}
	if err != nil {
		return domain.Draft{}, fmt.Errorf("load draft: %w", err)
	}

	var d domain.Draft
	if err := json.Unmarshal(payload, &d); err != nil {
		return domain.Draft{}, fmt.Errorf("decode draft: %w", err)
	}
	return d, nil
}

func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, keyPrefix+sessionID).Err()
}
