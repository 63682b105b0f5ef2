package tokenstore

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store keeps revoked token ids until the token would have expired anyway.
type Store interface {
	Revoke(ctx context.Context, jti string, until time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type redisStore struct {
	rdb *redis.Client
}

// New returns a Redis backed Store, or a no-op Store when rdb is nil.
func New(rdb *redis.Client) Store {
	if rdb == nil {
		return noopStore{}
	}
	return &redisStore{rdb: rdb}
}

func revokedKey(jti string) string {
	return fmt.Sprintf("auth:revoked:%s", jti)
}

func (s *redisStore) Revoke(ctx context.Context, jti string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	return s.rdb.Set(ctx, revokedKey(jti), "1", ttl).Err()
}

func (s *redisStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := s.rdb.Exists(ctx, revokedKey(jti)).Result()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

type noopStore struct{}

func (noopStore) Revoke(context.Context, string, time.Time) error { return nil }

func (noopStore) IsRevoked(context.Context, string) (bool, error) { return false, nil }
