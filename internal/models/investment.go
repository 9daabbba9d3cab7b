package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvestmentStatus tracks where an investment is in its lifecycle.
type InvestmentStatus string

const (
	InvestmentPending InvestmentStatus = "PENDING"
	InvestmentActive  InvestmentStatus = "ACTIVE"
	InvestmentMatured InvestmentStatus = "MATURED"
)

// Investment is a user's principal committed to a plan. Only ACTIVE
// investments take part in profit distribution.
type Investment struct {
	Base
	UserID    string           `gorm:"type:uuid;not null;index" json:"user_id"`
	PlanID    string           `gorm:"size:64;not null;index" json:"plan_id"`
	Principal decimal.Decimal  `gorm:"type:decimal(20,8);not null" json:"principal"`
	Currency  string           `gorm:"not null;default:'USD'" json:"currency"`
	Status    InvestmentStatus `gorm:"not null;default:'PENDING';index" json:"status"`
	StartDate *time.Time       `json:"start_date,omitempty"`
	MaturedAt *time.Time       `json:"matured_at,omitempty"`
}
