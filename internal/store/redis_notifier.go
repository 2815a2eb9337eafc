package store

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const redisChannelPrefix = "turnero:"

// RedisNotifier - Pub/Sub notifier shared by every server instance pointing
// at the same Redis, so a write from one admin panel refreshes all displays.
type RedisNotifier struct {
	client *redis.Client
	origin string
}

func NewRedisNotifier(client *redis.Client) *RedisNotifier {
	return &RedisNotifier{
		client: client,
		origin: uuid.NewString(),
	}
}

func (n *RedisNotifier) Publish(ctx context.Context, topic string) error {
	payload, err := json.Marshal(ChangeEvent{
		Topic:     topic,
		Origin:    n.origin,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	return n.client.Publish(ctx, redisChannelPrefix+topic, payload).Err()
}

func (n *RedisNotifier) Subscribe(ctx context.Context, topic string) (<-chan struct{}, error) {
	pubsub := n.client.Subscribe(ctx, redisChannelPrefix+topic)

	// Wait for the subscription confirmation so errors surface here.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, err
	}

	out := make(chan struct{}, 1)
	go func() {
		defer close(out)
		defer pubsub.Close()

		msgs := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var ev ChangeEvent
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					log.Printf("[notify] ignoring malformed payload on %s: %v", msg.Channel, err)
					continue
				}
				signal(out)
			}
		}
	}()

	return out, nil
}
