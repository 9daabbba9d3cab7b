package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"

	"profitflow/internal/logger"
)

// Connect initializes a Redis client from a redis:// URL or a host:port address.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	var client *redis.Client
	if strings.HasPrefix(redisURL, "redis://") || strings.HasPrefix(redisURL, "rediss://") {
		opt, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{Addr: redisURL})
	}

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// RedisBroker fans events out through Redis pub/sub so that every API
// instance can serve any user's live connection.
type RedisBroker struct {
	client *redis.Client
}

// NewRedisBroker wraps an established client. The broker owns the client.
func NewRedisBroker(client *redis.Client) *RedisBroker {
	return &RedisBroker{client: client}
}

// Publish sends event on its user's channel.
func (b *RedisBroker) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal live event: %w", err)
	}
	if err := b.client.Publish(ctx, channelFor(event.UserID), payload).Err(); err != nil {
		return fmt.Errorf("publish live event: %w", err)
	}
	return nil
}

// Subscribe listens on the user's channel until ctx is done or Close is called.
func (b *RedisBroker) Subscribe(ctx context.Context, userID string) (Subscription, error) {
	pubsub := b.client.Subscribe(ctx, channelFor(userID))
	// Wait for the subscription confirmation so no event published after
	// Subscribe returns is missed.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("subscribe live events: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	sub := &redisSubscription{
		pubsub: pubsub,
		cancel: cancel,
		ch:     make(chan Event, subscriberBuffer),
	}
	go sub.loop(ctx)
	return sub, nil
}

// Close closes the underlying client.
func (b *RedisBroker) Close() error {
	return b.client.Close()
}

type redisSubscription struct {
	pubsub    *redis.PubSub
	cancel    context.CancelFunc
	ch        chan Event
	closeOnce sync.Once
}

func (s *redisSubscription) loop(ctx context.Context) {
	defer close(s.ch)
	defer s.pubsub.Close()

	msgs := s.pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			var event Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				logger.Get().Warnw("discarding malformed live event", "channel", msg.Channel, "error", err)
				continue
			}
			select {
			case s.ch <- event:
			default:
				logger.Get().Warnw("dropping live event for slow subscriber", "user_id", event.UserID, "type", event.Type)
			}
		}
	}
}

func (s *redisSubscription) Events() <-chan Event {
	return s.ch
}

func (s *redisSubscription) Close() error {
	s.closeOnce.Do(s.cancel)
	return nil
}
