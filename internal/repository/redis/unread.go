package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

const (
	unreadCachePrefix = "unread:"
	unreadCacheTTL    = 30 * time.Second
)

// UnreadCache caches per-user unread notification counts. Best effort: a
// miss or a Redis failure falls back to counting in Postgres.
type UnreadCache struct {
	client *Client
}

// NewUnreadCache creates a new unread-count cache
func NewUnreadCache(client *Client) *UnreadCache {
	return &UnreadCache{client: client}
}

func unreadKey(userID, workspaceID uuid.UUID) string {
	return fmt.Sprintf("%s%s:%s", unreadCachePrefix, userID, workspaceID)
}

// Get retrieves a cached count. The second return value reports a hit.
func (c *UnreadCache) Get(ctx context.Context, userID, workspaceID uuid.UUID) (int64, bool) {
	val, err := c.client.rdb.Get(ctx, unreadKey(userID, workspaceID)).Result()
	if err != nil {
		return 0, false
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false
	}

	return count, true
}

// Set caches a count
func (c *UnreadCache) Set(ctx context.Context, userID, workspaceID uuid.UUID, count int64) error {
	return c.client.rdb.Set(ctx, unreadKey(userID, workspaceID), count, unreadCacheTTL).Err()
}

// Invalidate drops the cached count so the next read recounts. Called after
// any write that changes unread state: fan-out, mark-read, mark-all-read.
func (c *UnreadCache) Invalidate(ctx context.Context, userID, workspaceID uuid.UUID) error {
	return c.client.rdb.Del(ctx, unreadKey(userID, workspaceID)).Err()
}

// InvalidateUser drops all cached counts for a user across workspaces
func (c *UnreadCache) InvalidateUser(ctx context.Context, userID uuid.UUID) error {
	pattern := unreadCachePrefix + userID.String() + ":*"
	var cursor uint64

	for {
		keys, nextCursor, err := c.client.rdb.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return fmt.Errorf("failed to scan unread keys: %w", err)
		}

		if len(keys) > 0 {
			if err := c.client.rdb.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("failed to delete unread keys: %w", err)
			}
		}

		cursor = nextCursor
		if cursor == 0 {
			return nil
		}
	}
}
