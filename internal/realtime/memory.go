package realtime

import (
	"context"
	"sync"
	"time"

	"profitflow/internal/logger"
)

// MemoryBroker is an in-process broker for single-instance deployments and tests.
type MemoryBroker struct {
	mu          sync.RWMutex
	subscribers map[string]map[*memorySubscription]struct{}
}

// NewMemoryBroker creates an empty in-process broker.
func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{
		subscribers: make(map[string]map[*memorySubscription]struct{}),
	}
}

// Publish delivers event to every current subscriber of its user without blocking.
func (b *MemoryBroker) Publish(_ context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for sub := range b.subscribers[event.UserID] {
		select {
		case sub.ch <- event:
		default:
			logger.Get().Warnw("dropping live event for slow subscriber",
				"user_id", event.UserID,
				"type", event.Type,
			)
		}
	}
	return nil
}

// Subscribe registers a new subscription for userID. It ends when ctx is done
// or Close is called.
func (b *MemoryBroker) Subscribe(ctx context.Context, userID string) (Subscription, error) {
	sub := &memorySubscription{
		broker: b,
		userID: userID,
		ch:     make(chan Event, subscriberBuffer),
	}

	b.mu.Lock()
	if b.subscribers[userID] == nil {
		b.subscribers[userID] = make(map[*memorySubscription]struct{})
	}
	b.subscribers[userID][sub] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		_ = sub.Close()
	}()
	return sub, nil
}

// SubscriberCount returns the number of open subscriptions for userID.
func (b *MemoryBroker) SubscriberCount(userID string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers[userID])
}

// Close ends every open subscription.
func (b *MemoryBroker) Close() error {
	b.mu.Lock()
	subs := b.subscribers
	b.subscribers = make(map[string]map[*memorySubscription]struct{})
	b.mu.Unlock()

	for _, set := range subs {
		for sub := range set {
			sub.closeOnce.Do(func() { close(sub.ch) })
		}
	}
	return nil
}

type memorySubscription struct {
	broker    *MemoryBroker
	userID    string
	ch        chan Event
	closeOnce sync.Once
}

func (s *memorySubscription) Events() <-chan Event {
	return s.ch
}

func (s *memorySubscription) Close() error {
	s.closeOnce.Do(func() {
		s.broker.mu.Lock()
		if set := s.broker.subscribers[s.userID]; set != nil {
			delete(set, s)
			if len(set) == 0 {
				delete(s.broker.subscribers, s.userID)
			}
		}
		s.broker.mu.Unlock()
		close(s.ch)
	})
	return nil
}
