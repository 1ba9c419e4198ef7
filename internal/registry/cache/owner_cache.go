package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	id "inu/pkg/domain"
)

const keyPrefix = "inu:owner:"

// OwnerCache is a read-through cache of domain name to current owner.
// Entries are dropped by the registry after a transfer commits.
type OwnerCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewOwnerCache(client redis.Cmdable, ttl time.Duration) *OwnerCache {
	return &OwnerCache{client: client, ttl: ttl}
}

// Get returns the cached owner and whether the entry was present.
func (c *OwnerCache) Get(ctx context.Context, name string) (id.AccountID, bool, error) {
	val, err := c.client.Get(ctx, keyPrefix+name).Result()
	if errors.Is(err, redis.Nil) {
		return id.ZeroAccount, false, nil
	}
	if err != nil {
		return id.ZeroAccount, false, fmt.Errorf("get cached owner: %w", err)
	}
	return id.AccountID(val), true, nil
}

func (c *OwnerCache) Set(ctx context.Context, name string, owner id.AccountID) error {
	if err := c.client.Set(ctx, keyPrefix+name, owner.String(), c.ttl).Err(); err != nil {
		return fmt.Errorf("set cached owner: %w", err)
	}
	return nil
}

func (c *OwnerCache) Invalidate(ctx context.Context, name string) error {
	if err := c.client.Del(ctx, keyPrefix+name).Err(); err != nil {
		return fmt.Errorf("invalidate cached owner: %w", err)
	}
	return nil
}
