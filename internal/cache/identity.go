package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/umalmyha/crm/internal/model"
	"github.com/vmihailenco/msgpack/v5"
)

// DefaultIdentityTimeToLive is used when non-positive ttl is provided
const DefaultIdentityTimeToLive = 5 * time.Minute

// RedisIdentityCache stores caller identities resolved by identity provider in redis
type RedisIdentityCache struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

// NewRedisIdentityCache builds RedisIdentityCache, entries live for ttl or until credential expiry whichever comes first
func NewRedisIdentityCache(client *redis.Client, ttl time.Duration) *RedisIdentityCache {
	if ttl <= 0 {
		ttl = DefaultIdentityTimeToLive
	}
	return &RedisIdentityCache{client: client, ttl: ttl, now: time.Now}
}

func (r *RedisIdentityCache) Find(ctx context.Context, key string) (*model.Identity, error) {
	res, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var identity model.Identity
	if err := msgpack.Unmarshal(res, &identity); err != nil {
		return nil, err
	}

	return &identity, nil
}

func (r *RedisIdentityCache) Cache(ctx context.Context, key string, identity *model.Identity) error {
	ttl := r.timeToLive(identity)
	if ttl <= 0 {
		return nil
	}

	encoded, err := msgpack.Marshal(identity)
	if err != nil {
		return err
	}

	if err := r.client.Set(ctx, r.key(key), encoded, ttl).Err(); err != nil {
		return err
	}
	return nil
}

func (r *RedisIdentityCache) timeToLive(identity *model.Identity) time.Duration {
	if identity.ExpiresAt.IsZero() {
		return r.ttl
	}

	left := identity.ExpiresAt.Sub(r.now())
	if left < r.ttl {
		return left
	}
	return r.ttl
}

func (r *RedisIdentityCache) key(key string) string {
	return fmt.Sprintf("identity:%s", key)
}
