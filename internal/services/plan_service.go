package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "profitflow/internal/errors"
	"profitflow/internal/models"
)

// planService manages investment plan reference data.
type planService struct {
	db *gorm.DB
}

// NewPlanService creates a new PlanServicer.
func NewPlanService(db *gorm.DB) PlanServicer {
	return &planService{db: db}
}

// ListPlans returns plans ordered by minimum amount.
func (s *planService) ListPlans(activeOnly bool) ([]models.InvestmentPlan, error) {
	query := s.db.Model(&models.InvestmentPlan{})
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var plans []models.InvestmentPlan
	if err := query.Order("min_amount, id").Find(&plans).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if plans == nil {
		plans = []models.InvestmentPlan{}
	}
	return plans, nil
}

// GetPlan retrieves a plan by its slug.
func (s *planService) GetPlan(id string) (*models.InvestmentPlan, error) {
	var plan models.InvestmentPlan
	if err := s.db.Where("id = ?", id).First(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPlanNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &plan, nil
}

func validatePlanBounds(plan *models.InvestmentPlan) error {
	if plan.ReturnPercentage.IsNegative() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "return percentage cannot be negative")
	}
	if plan.MinAmount.IsNegative() || plan.MaxAmount.IsNegative() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "plan amounts cannot be negative")
	}
	if plan.MaxAmount.IsPositive() && plan.MaxAmount.LessThan(plan.MinAmount) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "max amount must not be below min amount")
	}
	if plan.DurationDays <= 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "duration must be positive")
	}
	return nil
}

// CreatePlan adds a plan. Its slug must be unused.
func (s *planService) CreatePlan(input PlanInput) (*models.InvestmentPlan, error) {
	plan := &models.InvestmentPlan{
		ID:               strings.ToLower(strings.TrimSpace(input.ID)),
		Name:             input.Name,
		ReturnPercentage: input.ReturnPercentage,
		MinAmount:        input.MinAmount,
		MaxAmount:        input.MaxAmount,
		DurationDays:     input.DurationDays,
		PayoutFrequency:  input.PayoutFrequency,
		Currency:         strings.ToUpper(input.Currency),
		Active:           true,
	}
	if plan.ID == "" || plan.Name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "plan id and name are required")
	}
	if plan.PayoutFrequency == "" {
		plan.PayoutFrequency = models.PayoutWeekly
	}
	if plan.Currency == "" {
		plan.Currency = "USD"
	}
	if err := validatePlanBounds(plan); err != nil {
		return nil, err
	}

	if err := s.db.Create(plan).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, apperrors.ErrDuplicatePlan
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return plan, nil
}

// UpdatePlan applies the non-nil fields of update.
func (s *planService) UpdatePlan(id string, update PlanUpdate) (*models.InvestmentPlan, error) {
	plan, err := s.GetPlan(id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		plan.Name = *update.Name
	}
	if update.ReturnPercentage != nil {
		plan.ReturnPercentage = *update.ReturnPercentage
	}
	if update.MinAmount != nil {
		plan.MinAmount = *update.MinAmount
	}
	if update.MaxAmount != nil {
		plan.MaxAmount = *update.MaxAmount
	}
	if update.DurationDays != nil {
		plan.DurationDays = *update.DurationDays
	}
	if update.PayoutFrequency != nil {
		plan.PayoutFrequency = *update.PayoutFrequency
	}
	if update.Active != nil {
		plan.Active = *update.Active
	}
	if err := validatePlanBounds(plan); err != nil {
		return nil, err
	}

	if err := s.db.Save(plan).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return plan, nil
}
