package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// PushMessage is the payload published to a recipient's live channel.
type PushMessage struct {
	Title    string `json:"title"`
	Message  string `json:"message"`
	Category string `json:"category"`
}

// NotificationPusher delivers push messages over Redis pub/sub. A publish to a
// channel nobody subscribes to is simply dropped; the persisted notification
// row remains the durable record.
type NotificationPusher struct {
	redis *Redis
}

// NewNotificationPusher wraps the Redis client for push delivery.
func NewNotificationPusher(r *Redis) *NotificationPusher {
	return &NotificationPusher{redis: r}
}

// Push publishes a message on the recipient's channel.
func (p *NotificationPusher) Push(ctx context.Context, recipientID, title, message, category string) error {
	if p == nil || p.redis == nil || p.redis.Client == nil {
		return errors.New("push channel not configured")
	}
	payload, err := json.Marshal(PushMessage{Title: title, Message: message, Category: category})
	if err != nil {
		return err
	}
	channel := fmt.Sprintf("notify:user:%s", recipientID)
	return p.redis.Client.Publish(ctx, channel, payload).Err()
}
