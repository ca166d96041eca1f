// Package idempotency guards checkout attempts against replays. Each attempt
// may carry a client-chosen key; the first attempt claims the key in redis,
// later attempts with the same key are rejected.
package idempotency

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

// Key scopes a client-supplied idempotency key to the acting customer so two
// customers reusing the same key string cannot collide.
func (s *Store) Key(customerID int64, clientKey string) string {
	return fmt.Sprintf("checkout:%d:%s", customerID, clientKey)
}

// Seen claims the key with SETNX. It reports true when the key was already
// claimed by an earlier attempt within the TTL window.
func (s *Store) Seen(ctx context.Context, key string) (bool, error) {
	ok, err := s.rdb.SetNX(ctx, key, "1", s.ttl).Result()
	if err != nil {
		return false, err
	}
	return !ok, nil
}
