package models

import "github.com/shopspring/decimal"

// Wallet holds a running balance per (user, currency). Its balance only moves
// together with a Transaction row.
type Wallet struct {
	Base
	UserID   string          `gorm:"type:uuid;not null;uniqueIndex:idx_wallet_user_currency" json:"user_id"`
	Currency string          `gorm:"size:10;not null;uniqueIndex:idx_wallet_user_currency" json:"currency"`
	Balance  decimal.Decimal `gorm:"type:decimal(28,8);not null;default:0" json:"balance"`
}
