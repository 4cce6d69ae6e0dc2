package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/inkwell-app/inkwell/internal/domain"
	"github.com/redis/go-redis/v9"
)

const notifyChannelPrefix = "notify:"

// NotificationPublisher pushes freshly created notifications to a per-user
// Redis channel so connected WebSocket clients see them live. Delivery is
// best effort; the Postgres row is the durable copy.
type NotificationPublisher struct {
	client *Client
}

// NewNotificationPublisher creates a new notification publisher
func NewNotificationPublisher(client *Client) *NotificationPublisher {
	return &NotificationPublisher{client: client}
}

func notifyChannel(userID uuid.UUID) string {
	return notifyChannelPrefix + userID.String()
}

// Publish sends each notification to its recipient's channel
func (p *NotificationPublisher) Publish(ctx context.Context, notifications []domain.Notification) error {
	pipe := p.client.rdb.Pipeline()

	for i := range notifications {
		n := &notifications[i]
		data, err := json.Marshal(n)
		if err != nil {
			return fmt.Errorf("failed to marshal notification: %w", err)
		}
		pipe.Publish(ctx, notifyChannel(n.UserID), data)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to publish notifications: %w", err)
	}

	return nil
}

// Subscribe opens a subscription to one user's notification channel. The
// caller owns the returned PubSub and must Close it.
func (p *NotificationPublisher) Subscribe(ctx context.Context, userID uuid.UUID) *redis.PubSub {
	return p.client.rdb.Subscribe(ctx, notifyChannel(userID))
}
