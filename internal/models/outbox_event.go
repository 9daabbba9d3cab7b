package models

import (
	"time"

	"gorm.io/datatypes"
)

// OutboxEvent is a domain event written in the same database transaction as
// the change it describes and relayed to the message broker afterwards.
type OutboxEvent struct {
	Base
	EventType   string         `gorm:"not null;index" json:"event_type"`
	AggregateID string         `gorm:"not null" json:"aggregate_id"`
	Payload     datatypes.JSON `gorm:"not null" json:"payload"`
	PublishedAt *time.Time     `gorm:"index" json:"published_at,omitempty"`
	Attempts    int            `gorm:"not null;default:0" json:"attempts"`
	LastError   string         `json:"last_error,omitempty"`
}
