package database

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

const seenEmailsKey = "mailmind:emails:seen"

// redisDedupCache keeps the seen-message set in Redis so deduplication
// survives process restarts.
type redisDedupCache struct {
	client *redis.Client
}

func NewRedisDedupCache(client *redis.Client) DedupCache {
	return &redisDedupCache{client: client}
}

func (c *redisDedupCache) Seen(ctx context.Context, id string) (bool, error) {
	seen, err := c.client.SIsMember(ctx, seenEmailsKey, id).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check seen set: %w", err)
	}
	return seen, nil
}

func (c *redisDedupCache) MarkSeen(ctx context.Context, id string) error {
	if err := c.client.SAdd(ctx, seenEmailsKey, id).Err(); err != nil {
		return fmt.Errorf("failed to add to seen set: %w", err)
	}
	return nil
}
