package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// Redis persists profile keys as plain Redis strings named
// <prefix>:<profile>:<key>.  Keys never expire; booking state has no
// lifecycle expiry.
type Redis struct {
	rdb    *redis.Client
	prefix string
}

// NewRedis returns a Redis driver.  An empty prefix defaults to "booking".
func NewRedis(rdb *redis.Client, prefix string) *Redis {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "booking"
	}
	return &Redis{rdb: rdb, prefix: prefix}
}

// Scoped returns the store of a single profile.
func (r *Redis) Scoped(profileID string) Store {
	return &redisScope{rdb: r.rdb, ns: r.prefix + ":" + profileID + ":"}
}

// Factory adapts Scoped to the Factory signature.
func (r *Redis) Factory() Factory { return r.Scoped }

type redisScope struct {
	rdb *redis.Client
	ns  string
}

func (s *redisScope) Get(ctx context.Context, key string) (string, error) {
	v, err := s.rdb.Get(ctx, s.ns+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, nil
}

// Apply runs the batch inside MULTI/EXEC so readers never observe half of a
// booking.
func (s *redisScope) Apply(ctx context.Context, b Batch) error {
	if b.Empty() {
		return nil
	}
	_, err := s.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		if len(b.Remove) > 0 {
			keys := make([]string, len(b.Remove))
			for i, k := range b.Remove {
				keys[i] = s.ns + k
			}
			p.Del(ctx, keys...)
		}
		for k, v := range b.Set {
			p.Set(ctx, s.ns+k, v, 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis apply: %w", err)
	}
	return nil
}
