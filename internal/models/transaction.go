package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// TransactionType represents the kind of wallet movement
type TransactionType string

const (
	TransactionDeposit     TransactionType = "DEPOSIT"
	TransactionWithdrawal  TransactionType = "WITHDRAWAL"
	TransactionProfit      TransactionType = "PROFIT"
	TransactionAdminCredit TransactionType = "ADMIN_CREDIT"
	// TransactionInvestment moves an investment's principal out of the wallet
	// when it activates; TransactionPrincipalReturn pays it back at maturity.
	TransactionInvestment      TransactionType = "INVESTMENT"
	TransactionPrincipalReturn TransactionType = "PRINCIPAL_RETURN"
)

// TransactionStatus represents the settlement state of a transaction
type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "PENDING"
	TransactionCompleted TransactionStatus = "COMPLETED"
	TransactionFailed    TransactionStatus = "FAILED"
)

// Transaction is the append-only audit row paired with every wallet balance
// change. Amount is always positive; the type decides the direction.
type Transaction struct {
	Base
	UserID       string            `gorm:"type:uuid;not null;index" json:"user_id"`
	WalletID     *string           `gorm:"type:uuid;index" json:"wallet_id,omitempty"`
	InvestmentID *string           `gorm:"type:uuid;index" json:"investment_id,omitempty"`
	Type         TransactionType   `gorm:"not null;index" json:"type"`
	Amount       decimal.Decimal   `gorm:"type:decimal(28,8);not null" json:"amount"`
	Currency     string            `gorm:"size:10;not null" json:"currency"`
	Status       TransactionStatus `gorm:"not null;default:'PENDING'" json:"status"`
	BalanceAfter *decimal.Decimal  `gorm:"type:decimal(28,8)" json:"balance_after,omitempty"`
	Reference    datatypes.JSON    `json:"reference,omitempty"`
	// PeriodKey is set on profit payouts to "<week>:<investment id>" so that an
	// investment can be paid at most once per settlement week.
	PeriodKey *string `gorm:"uniqueIndex" json:"period_key,omitempty"`
}

// Signed returns the amount with the sign of its effect on the wallet balance.
func (t *Transaction) Signed() decimal.Decimal {
	if t.Type.IsDebit() {
		return t.Amount.Neg()
	}
	return t.Amount
}

// IsDebit reports whether the type takes money out of the wallet.
func (t TransactionType) IsDebit() bool {
	return t == TransactionWithdrawal || t == TransactionInvestment
}

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionDeposit, TransactionWithdrawal, TransactionProfit, TransactionAdminCredit,
		TransactionInvestment, TransactionPrincipalReturn:
		return true
	}
	return false
}
