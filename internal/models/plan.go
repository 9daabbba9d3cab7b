package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayoutFrequency describes how often a plan pays out accrued profit.
type PayoutFrequency string

const (
	PayoutWeekly    PayoutFrequency = "weekly"
	PayoutMonthly   PayoutFrequency = "monthly"
	PayoutEndOfTerm PayoutFrequency = "end_of_term"
)

// InvestmentPlan is admin-editable reference data. The ID is a stable slug
// ("starter", "pro", ...) that also keys the allocation table.
type InvestmentPlan struct {
	ID               string          `gorm:"primaryKey;size:64" json:"id"`
	Name             string          `gorm:"not null" json:"name"`
	ReturnPercentage decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"return_percentage"`
	MinAmount        decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"min_amount"`
	MaxAmount        decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"max_amount"`
	DurationDays     int             `gorm:"not null" json:"duration_days"`
	PayoutFrequency  PayoutFrequency `gorm:"not null;default:'weekly'" json:"payout_frequency"`
	Currency         string          `gorm:"not null;default:'USD'" json:"currency"`
	Active           bool            `gorm:"default:true" json:"active"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// Accepts reports whether amount lies within the plan's principal bounds.
// A zero MaxAmount means the plan has no upper bound.
func (p *InvestmentPlan) Accepts(amount decimal.Decimal) bool {
	if amount.LessThan(p.MinAmount) {
		return false
	}
	if p.MaxAmount.IsPositive() && amount.GreaterThan(p.MaxAmount) {
		return false
	}
	return true
}
