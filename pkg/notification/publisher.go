package notification

import (
	"blood-portal/entities"
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

const StreamName = "notifications"

// Publisher pushes committed notifications to live dashboard consumers.
type Publisher interface {
	Publish(ctx context.Context, notification *entities.Notification) error
}

type redisPublisher struct {
	client *redis.Client
	stream string
	maxLen int64
}

func NewRedisPublisher(client *redis.Client) Publisher {
	return &redisPublisher{client: client, stream: StreamName, maxLen: 10000}
}

func (p *redisPublisher) Publish(ctx context.Context, notification *entities.Notification) error {
	payload, err := json.Marshal(ToDomain(notification))
	if err != nil {
		return err
	}

	return p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		MaxLen: p.maxLen,
		Values: map[string]interface{}{
			"recipient": notification.RecipientEmail,
			"data":      string(payload),
			"timestamp": time.Now().Unix(),
		},
	}).Err()
}

type nopPublisher struct{}

func NewNopPublisher() Publisher {
	return nopPublisher{}
}

func (nopPublisher) Publish(context.Context, *entities.Notification) error {
	return nil
}
