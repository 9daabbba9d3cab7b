// Package realtime carries live per-user events from the API to connected
// clients over SSE and WebSocket.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// EventType names a live event.
type EventType string

const (
	EventNotification    EventType = "NOTIFICATION"
	EventProfitCredited  EventType = "PROFIT_CREDITED"
	EventBalanceUpdate   EventType = "BALANCE_UPDATE"
	EventInvestmentState EventType = "INVESTMENT_STATUS"
)

// Event is a message addressed to a single user.
type Event struct {
	Type      EventType       `json:"type"`
	UserID    string          `json:"user_id"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// NewEvent marshals data into an event for userID.
func NewEvent(eventType EventType, userID string, data interface{}) (Event, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Event{}, fmt.Errorf("marshal %s event: %w", eventType, err)
	}
	return Event{
		Type:      eventType,
		UserID:    userID,
		Timestamp: time.Now().UTC(),
		Data:      raw,
	}, nil
}

// Subscription delivers a user's events until closed.
type Subscription interface {
	Events() <-chan Event
	Close() error
}

// Broker fans events out to the subscriptions of their user.
type Broker interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(ctx context.Context, userID string) (Subscription, error)
	Close() error
}

// subscriberBuffer is the per-subscription channel capacity. Events for a
// subscriber whose buffer is full are dropped.
const subscriberBuffer = 32

// channelFor is the pub/sub channel name of a user's live events.
func channelFor(userID string) string {
	return "user:" + userID + ":events"
}
