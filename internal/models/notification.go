package models

import (
	"time"

	"gorm.io/datatypes"
)

// NotificationType classifies in-app notifications.
type NotificationType string

const (
	NotificationProfit     NotificationType = "profit"
	NotificationDeposit    NotificationType = "deposit"
	NotificationInvestment NotificationType = "investment"
	NotificationSystem     NotificationType = "system"
)

// Notification is an in-app message shown to a user.
type Notification struct {
	Base
	UserID  string           `gorm:"type:uuid;not null;index" json:"user_id"`
	Type    NotificationType `gorm:"not null" json:"type"`
	Title   string           `gorm:"not null" json:"title"`
	Message string           `json:"message"`
	Data    datatypes.JSON   `json:"data,omitempty"`
	ReadAt  *time.Time       `json:"read_at,omitempty"`
}
