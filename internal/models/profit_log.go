package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProfitLog is the sentinel row written once per settled week. Its existence
// means the distribution for Week has already been applied.
type ProfitLog struct {
	Base
	Week            string          `gorm:"size:10;uniqueIndex;not null" json:"week"`
	WeekEnding      time.Time       `gorm:"not null" json:"week_ending"`
	Mode            string          `gorm:"not null" json:"mode"`
	InvestmentCount int             `gorm:"not null" json:"investment_count"`
	TotalNet        decimal.Decimal `gorm:"type:decimal(28,8);not null" json:"total_net"`
	RunBy           *string         `gorm:"type:uuid" json:"run_by,omitempty"`
}
