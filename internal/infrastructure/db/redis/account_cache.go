package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jaidev3/notebook-llm/internal/core/domain"
	"github.com/jaidev3/notebook-llm/internal/core/ports"
)

const accountTTL = 5 * time.Minute

// AccountCache is a read-through cache over the user repository for the
// account lookup the auth middleware performs on every protected request.
// Key format: account:<username>
//
// Cache failures degrade to a direct store lookup; a failed invalidation only
// delays a role or status change until the TTL runs out.
type AccountCache struct {
	client *redis.Client
	repo   ports.UserRepository
}

// NewAccountCache wraps the given repository with a Redis cache.
func NewAccountCache(client *redis.Client, repo ports.UserRepository) *AccountCache {
	return &AccountCache{client: client, repo: repo}
}

// FindByUsername returns the cached account when present, falling back to the
// repository and populating the cache on a miss.
func (c *AccountCache) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	// Both a miss and a cache failure fall through to the store; the cache
	// being down must not take authentication down with it.
	if data, err := c.client.Get(ctx, c.key(username)).Bytes(); err == nil {
		var cached domain.Account
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	account, err := c.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(account); err == nil {
		_ = c.client.Set(ctx, c.key(username), payload, accountTTL).Err()
	}
	return account, nil
}

// Invalidate drops the cached entry for username.
func (c *AccountCache) Invalidate(ctx context.Context, username string) error {
	return c.client.Del(ctx, c.key(username)).Err()
}

func (c *AccountCache) key(username string) string {
	return fmt.Sprintf("account:%s", username)
}
