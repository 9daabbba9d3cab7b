package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "profitflow/internal/errors"
	"profitflow/internal/logger"
	"profitflow/internal/models"
	"profitflow/internal/outbox"
	"profitflow/internal/pagination"
)

// depositService records user deposits as PENDING transactions and settles
// them on admin confirmation.
type depositService struct {
	db       *gorm.DB
	wallets  WalletServicer
	notifier NotificationServicer
	audit    AuditServicer
}

// NewDepositService creates a new DepositServicer.
func NewDepositService(db *gorm.DB, wallets WalletServicer, notifier NotificationServicer, audit AuditServicer) DepositServicer {
	return &depositService{db: db, wallets: wallets, notifier: notifier, audit: audit}
}

// CreateDeposit records a PENDING deposit, optionally funding one of the
// user's PENDING investments.
func (s *depositService) CreateDeposit(userID, currency string, amount decimal.Decimal, investmentID *string) (*models.Transaction, error) {
	if !amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "deposit amount must be positive")
	}
	currency = strings.ToUpper(currency)

	if investmentID != nil {
		var inv models.Investment
		if err := s.db.Where("id = ? AND user_id = ?", *investmentID, userID).First(&inv).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrInvestmentNotFound
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if inv.Status != models.InvestmentPending {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidStatusChange, "deposits can only fund pending investments")
		}
		if inv.Currency != currency {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "deposit currency must match the investment")
		}
	}

	txn := &models.Transaction{
		UserID:       userID,
		InvestmentID: investmentID,
		Type:         models.TransactionDeposit,
		Amount:       amount.Round(moneyPlaces),
		Currency:     currency,
		Status:       models.TransactionPending,
	}
	if err := s.db.Create(txn).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return txn, nil
}

// ListPendingDeposits lists deposits awaiting review, oldest first.
func (s *depositService) ListPendingDeposits(page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
	query := s.db.Model(&models.Transaction{}).
		Where("type = ? AND status = ?", models.TransactionDeposit, models.TransactionPending)
	resp, err := pagination.Fetch[models.Transaction](query, page, "created_at, id")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return resp, nil
}

func lockDeposit(tx *gorm.DB, transactionID string) (*models.Transaction, error) {
	var txn models.Transaction
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND type = ?", transactionID, models.TransactionDeposit).
		First(&txn).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &txn, nil
}

// ConfirmDeposit credits a PENDING deposit to the wallet. A funded investment
// that is still PENDING becomes ACTIVE in the same transaction once the wallet
// covers its principal; otherwise it stays PENDING with the deposit credited.
func (s *depositService) ConfirmDeposit(adminID, transactionID string) (*LedgerEntry, error) {
	var (
		entry     *LedgerEntry
		activated *models.Investment
	)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		txn, err := lockDeposit(tx, transactionID)
		if err != nil {
			return err
		}
		if entry, err = s.wallets.Settle(tx, txn); err != nil {
			return err
		}

		if txn.InvestmentID != nil {
			inv, err := lockInvestment(tx, *txn.InvestmentID)
			if err != nil {
				return err
			}
			if inv.Status == models.InvestmentPending {
				err := activateInvestment(tx, s.wallets, inv, time.Now().UTC())
				switch {
				case err == nil:
					activated = inv
				case errors.Is(err, apperrors.ErrInsufficientBalance):
					logger.Get().Infow("deposit does not cover investment principal",
						"transaction_id", txn.ID, "investment_id", inv.ID)
				default:
					return err
				}
			}
		}

		if err := outbox.Enqueue(tx, outbox.EventDepositConfirmed, txn.ID, map[string]interface{}{
			"transaction_id": txn.ID,
			"user_id":        txn.UserID,
			"amount":         txn.Amount.String(),
			"currency":       txn.Currency,
		}); err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	txn := entry.Transaction
	s.audit.Log(adminID, "CONFIRM_DEPOSIT", "transaction", txn.ID, "", map[string]interface{}{
		"amount":   txn.Amount.String(),
		"currency": txn.Currency,
	})

	ctx := context.Background()
	s.notifier.Notify(ctx, txn.UserID, models.NotificationDeposit,
		"Deposit confirmed",
		fmt.Sprintf("Your deposit of %s %s has been credited.", txn.Amount, txn.Currency),
		map[string]interface{}{"transaction_id": txn.ID})
	if activated != nil {
		s.notifier.Notify(ctx, activated.UserID, models.NotificationInvestment,
			"Investment activated",
			fmt.Sprintf("Your %s %s investment in the %s plan is now active.", activated.Principal, activated.Currency, activated.PlanID),
			map[string]interface{}{"investment_id": activated.ID})
	}
	return entry, nil
}

// RejectDeposit marks a PENDING deposit FAILED without touching the wallet.
func (s *depositService) RejectDeposit(adminID, transactionID, reason string) (*models.Transaction, error) {
	var txn *models.Transaction
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		if txn, err = lockDeposit(tx, transactionID); err != nil {
			return err
		}
		if txn.Status != models.TransactionPending {
			return apperrors.ErrTransactionSettled
		}

		ref, err := toJSON(map[string]interface{}{"rejection_reason": reason})
		if err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Model(txn).Updates(map[string]interface{}{
			"status":    models.TransactionFailed,
			"reference": ref,
		}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		txn.Status = models.TransactionFailed
		txn.Reference = ref
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Log(adminID, "REJECT_DEPOSIT", "transaction", txn.ID, "", map[string]interface{}{"reason": reason})
	s.notifier.Notify(context.Background(), txn.UserID, models.NotificationDeposit,
		"Deposit rejected", reason, map[string]interface{}{"transaction_id": txn.ID})
	return txn, nil
}
