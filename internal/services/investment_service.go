package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "profitflow/internal/errors"
	"profitflow/internal/models"
	"profitflow/internal/outbox"
	"profitflow/internal/pagination"
)

// investmentService handles the investment lifecycle PENDING → ACTIVE → MATURED.
type investmentService struct {
	db       *gorm.DB
	wallets  WalletServicer
	notifier NotificationServicer
	audit    AuditServicer
}

// NewInvestmentService creates a new InvestmentServicer.
func NewInvestmentService(db *gorm.DB, wallets WalletServicer, notifier NotificationServicer, audit AuditServicer) InvestmentServicer {
	return &investmentService{db: db, wallets: wallets, notifier: notifier, audit: audit}
}

// CreateInvestment opens a PENDING investment in an active plan.
func (s *investmentService) CreateInvestment(userID, planID string, principal decimal.Decimal) (*models.Investment, error) {
	var plan models.InvestmentPlan
	if err := s.db.Where("id = ?", planID).First(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPlanNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if !plan.Active {
		return nil, apperrors.ErrPlanInactive
	}
	if !principal.IsPositive() || !plan.Accepts(principal) {
		return nil, apperrors.WithMessage(apperrors.ErrAmountOutOfPlan,
			fmt.Sprintf("amount must be between %s and %s %s", plan.MinAmount, plan.MaxAmount, plan.Currency))
	}

	inv := &models.Investment{
		UserID:    userID,
		PlanID:    plan.ID,
		Principal: principal.Round(moneyPlaces),
		Currency:  plan.Currency,
		Status:    models.InvestmentPending,
	}
	if err := s.db.Create(inv).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return inv, nil
}

// GetUserInvestments lists the user's investments, newest first.
func (s *investmentService) GetUserInvestments(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Investment], error) {
	query := s.db.Model(&models.Investment{}).Where("user_id = ?", userID)
	resp, err := pagination.Fetch[models.Investment](query, page, "created_at DESC, id DESC")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return resp, nil
}

// GetInvestmentByID retrieves one of the user's investments.
func (s *investmentService) GetInvestmentByID(userID, investmentID string) (*models.Investment, error) {
	var inv models.Investment
	if err := s.db.Where("id = ? AND user_id = ?", investmentID, userID).First(&inv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvestmentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &inv, nil
}

// ListInvestments lists all investments for admins, optionally by status.
func (s *investmentService) ListInvestments(status *models.InvestmentStatus, page pagination.PageRequest) (*pagination.PageResponse[models.Investment], error) {
	query := s.db.Model(&models.Investment{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	resp, err := pagination.Fetch[models.Investment](query, page, "created_at DESC, id DESC")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return resp, nil
}

// lockInvestment loads an investment for update inside tx.
func lockInvestment(tx *gorm.DB, investmentID string) (*models.Investment, error) {
	var inv models.Investment
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", investmentID).First(&inv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvestmentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &inv, nil
}

// activateInvestment moves a PENDING investment to ACTIVE inside tx, taking
// its principal out of the user's wallet.
func activateInvestment(tx *gorm.DB, wallets WalletServicer, inv *models.Investment, now time.Time) error {
	if inv.Status != models.InvestmentPending {
		return apperrors.WithMessage(apperrors.ErrInvalidStatusChange,
			fmt.Sprintf("cannot activate a %s investment", inv.Status))
	}
	if _, err := wallets.Debit(tx, DebitParams{
		UserID:       inv.UserID,
		Currency:     inv.Currency,
		Amount:       inv.Principal,
		Type:         models.TransactionInvestment,
		InvestmentID: &inv.ID,
		Reference:    map[string]interface{}{"plan_id": inv.PlanID},
	}); err != nil {
		return err
	}
	if err := tx.Model(inv).Updates(map[string]interface{}{
		"status":     models.InvestmentActive,
		"start_date": now,
	}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	inv.Status = models.InvestmentActive
	inv.StartDate = &now

	if err := outbox.Enqueue(tx, outbox.EventInvestmentActivated, inv.ID, map[string]interface{}{
		"investment_id": inv.ID,
		"user_id":       inv.UserID,
		"plan_id":       inv.PlanID,
		"principal":     inv.Principal.String(),
	}); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ActivateInvestment approves a PENDING investment. The wallet must already
// hold the principal.
func (s *investmentService) ActivateInvestment(adminID, investmentID string) (*models.Investment, error) {
	var inv *models.Investment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		if inv, err = lockInvestment(tx, investmentID); err != nil {
			return err
		}
		return activateInvestment(tx, s.wallets, inv, time.Now().UTC())
	})
	if err != nil {
		return nil, err
	}

	s.audit.Log(adminID, "ACTIVATE_INVESTMENT", "investment", inv.ID, "", nil)
	s.notifier.Notify(context.Background(), inv.UserID, models.NotificationInvestment,
		"Investment activated",
		fmt.Sprintf("Your %s %s investment in the %s plan is now active.", inv.Principal, inv.Currency, inv.PlanID),
		map[string]interface{}{"investment_id": inv.ID})
	return inv, nil
}

// MatureInvestment closes an ACTIVE investment and returns its principal to
// the user's wallet.
func (s *investmentService) MatureInvestment(adminID, investmentID string) (*models.Investment, error) {
	var inv *models.Investment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		if inv, err = lockInvestment(tx, investmentID); err != nil {
			return err
		}
		if inv.Status != models.InvestmentActive {
			return apperrors.WithMessage(apperrors.ErrInvalidStatusChange,
				fmt.Sprintf("cannot mature a %s investment", inv.Status))
		}

		now := time.Now().UTC()
		if err := tx.Model(inv).Updates(map[string]interface{}{
			"status":     models.InvestmentMatured,
			"matured_at": now,
		}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		inv.Status = models.InvestmentMatured
		inv.MaturedAt = &now

		if _, err := s.wallets.Credit(tx, CreditParams{
			UserID:       inv.UserID,
			Currency:     inv.Currency,
			Amount:       inv.Principal,
			Type:         models.TransactionPrincipalReturn,
			InvestmentID: &inv.ID,
			Reference:    map[string]interface{}{"admin_id": adminID},
		}); err != nil {
			return err
		}

		if err := outbox.Enqueue(tx, outbox.EventInvestmentMatured, inv.ID, map[string]interface{}{
			"investment_id": inv.ID,
			"user_id":       inv.UserID,
			"principal":     inv.Principal.String(),
		}); err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Log(adminID, "MATURE_INVESTMENT", "investment", inv.ID, "", nil)
	s.notifier.Notify(context.Background(), inv.UserID, models.NotificationInvestment,
		"Investment matured",
		fmt.Sprintf("Your %s %s principal has been returned to your wallet.", inv.Principal, inv.Currency),
		map[string]interface{}{"investment_id": inv.ID})
	return inv, nil
}
