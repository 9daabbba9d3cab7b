// Package outbox stores domain events alongside the database changes they
// describe and relays them to the message broker once committed.
package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"profitflow/internal/logger"
	"profitflow/internal/models"
)

// Event types written by the services.
const (
	EventProfitDistributed   = "profit.distributed"
	EventDepositConfirmed    = "deposit.confirmed"
	EventInvestmentActivated = "investment.activated"
	EventInvestmentMatured   = "investment.matured"
)

// Enqueue records an event in the caller's transaction.
func Enqueue(tx *gorm.DB, eventType, aggregateID string, payload interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", eventType, err)
	}
	event := &models.OutboxEvent{
		EventType:   eventType,
		AggregateID: aggregateID,
		Payload:     datatypes.JSON(raw),
	}
	if err := tx.Create(event).Error; err != nil {
		return fmt.Errorf("enqueue %s: %w", eventType, err)
	}
	return nil
}

// Publisher delivers one event to the broker.
type Publisher interface {
	Publish(ctx context.Context, eventType string, payload []byte, partitionKey string) error
	Close() error
}

// Relay polls unpublished events in creation order and hands them to a Publisher.
type Relay struct {
	db          *gorm.DB
	publisher   Publisher
	batchSize   int
	maxAttempts int
}

// NewRelay creates a relay. Events that fail maxAttempts times stay in the
// table with their last error and are no longer retried.
func NewRelay(db *gorm.DB, publisher Publisher) *Relay {
	return &Relay{db: db, publisher: publisher, batchSize: 100, maxAttempts: 10}
}

// Flush publishes one batch and returns how many events were delivered.
// Delivery stops at the first failure so that per-aggregate order holds.
func (r *Relay) Flush(ctx context.Context) (int, error) {
	var pending []models.OutboxEvent
	err := r.db.WithContext(ctx).
		Where("published_at IS NULL AND attempts < ?", r.maxAttempts).
		Order("created_at, id").
		Limit(r.batchSize).
		Find(&pending).Error
	if err != nil {
		return 0, fmt.Errorf("load outbox: %w", err)
	}

	delivered := 0
	for i := range pending {
		ev := &pending[i]
		if err := r.publisher.Publish(ctx, ev.EventType, ev.Payload, ev.AggregateID); err != nil {
			if uerr := r.db.WithContext(ctx).Model(ev).Updates(map[string]interface{}{
				"attempts":   gorm.Expr("attempts + 1"),
				"last_error": err.Error(),
			}).Error; uerr != nil {
				logger.Get().Warnw("failed to record outbox publish failure",
					"event_id", ev.ID,
					"event_type", ev.EventType,
					"attempts", ev.Attempts,
					"error", uerr,
				)
			}
			return delivered, fmt.Errorf("publish %s %s: %w", ev.EventType, ev.ID, err)
		}

		now := time.Now().UTC()
		if err := r.db.WithContext(ctx).Model(ev).Updates(map[string]interface{}{
			"published_at": now,
			"attempts":     gorm.Expr("attempts + 1"),
		}).Error; err != nil {
			return delivered, fmt.Errorf("mark %s published: %w", ev.ID, err)
		}
		delivered++
	}
	return delivered, nil
}

// Run flushes on every tick until ctx is cancelled.
func (r *Relay) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log := logger.Get()
	log.Infow("outbox relay started", "interval", interval.String())
	for {
		select {
		case <-ctx.Done():
			log.Infow("outbox relay stopped")
			return
		case <-ticker.C:
			n, err := r.Flush(ctx)
			if err != nil {
				log.Warnw("outbox flush failed", "delivered", n, "error", err)
				continue
			}
			if n > 0 {
				log.Debugw("outbox flushed", "delivered", n)
			}
		}
	}
}
