package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "profitflow/internal/errors"
	"profitflow/internal/models"
	"profitflow/internal/services"
)

// PlanHandler serves investment plan reference data.
type PlanHandler struct {
	planService  services.PlanServicer
	auditService services.AuditServicer
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService services.PlanServicer, auditService services.AuditServicer) *PlanHandler {
	return &PlanHandler{planService: planService, auditService: auditService}
}

// CreatePlanRequest represents the request payload for creating a plan.
type CreatePlanRequest struct {
	ID               string                 `json:"id" binding:"required,plan_slug"`
	Name             string                 `json:"name" binding:"required,min=1,max=100"`
	ReturnPercentage decimal.Decimal        `json:"return_percentage"`
	MinAmount        decimal.Decimal        `json:"min_amount"`
	MaxAmount        decimal.Decimal        `json:"max_amount"`
	DurationDays     int                    `json:"duration_days" binding:"required,gt=0"`
	PayoutFrequency  models.PayoutFrequency `json:"payout_frequency" binding:"omitempty,payout_frequency"`
	Currency         string                 `json:"currency" binding:"omitempty,iso4217"`
}

// UpdatePlanRequest represents the request payload for updating a plan.
type UpdatePlanRequest struct {
	Name             *string                 `json:"name" binding:"omitempty,min=1,max=100"`
	ReturnPercentage *decimal.Decimal        `json:"return_percentage"`
	MinAmount        *decimal.Decimal        `json:"min_amount"`
	MaxAmount        *decimal.Decimal        `json:"max_amount"`
	DurationDays     *int                    `json:"duration_days" binding:"omitempty,gt=0"`
	PayoutFrequency  *models.PayoutFrequency `json:"payout_frequency" binding:"omitempty,payout_frequency"`
	Active           *bool                   `json:"active"`
}

// ListPlans handles listing plans.
// @Summary     List investment plans
// @Description List active plans; admins may pass all=true to include retired plans
// @Tags        plans
// @Produce     json
// @Param       all query bool false "Include inactive plans"
// @Success     200 {object} map[string][]models.InvestmentPlan "Plans"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /plans [get]
func (h *PlanHandler) ListPlans(c *gin.Context) {
	activeOnly := !(c.Query("all") == "true" && models.Role(c.GetString("role")) == models.RoleAdmin)

	plans, err := h.planService.ListPlans(activeOnly)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

// GetPlan handles retrieving a single plan.
// @Summary     Get plan
// @Tags        plans
// @Produce     json
// @Param       id path string true "Plan ID"
// @Success     200 {object} models.InvestmentPlan "Plan"
// @Failure     404 {object} ErrorResponse "Plan not found"
// @Router      /plans/{id} [get]
func (h *PlanHandler) GetPlan(c *gin.Context) {
	plan, err := h.planService.GetPlan(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"plan": plan})
}

// CreatePlan handles creating a plan.
// @Summary     Create plan
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreatePlanRequest true "Plan"
// @Success     201 {object} models.InvestmentPlan "Plan created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     409 {object} ErrorResponse "Duplicate plan"
// @Router      /admin/plans [post]
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	adminID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	plan, err := h.planService.CreatePlan(services.PlanInput{
		ID:               req.ID,
		Name:             req.Name,
		ReturnPercentage: req.ReturnPercentage,
		MinAmount:        req.MinAmount,
		MaxAmount:        req.MaxAmount,
		DurationDays:     req.DurationDays,
		PayoutFrequency:  req.PayoutFrequency,
		Currency:         req.Currency,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(adminID, "CREATE_PLAN", "investment_plan", plan.ID, clientIP(c),
		map[string]interface{}{"return_percentage": plan.ReturnPercentage.String()})

	c.JSON(http.StatusCreated, gin.H{"plan": plan})
}

// UpdatePlan handles partial plan updates.
// @Summary     Update plan
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string            true "Plan ID"
// @Param       request body UpdatePlanRequest true "Changes"
// @Success     200 {object} models.InvestmentPlan "Plan updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Plan not found"
// @Router      /admin/plans/{id} [patch]
func (h *PlanHandler) UpdatePlan(c *gin.Context) {
	adminID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	plan, err := h.planService.UpdatePlan(c.Param("id"), services.PlanUpdate{
		Name:             req.Name,
		ReturnPercentage: req.ReturnPercentage,
		MinAmount:        req.MinAmount,
		MaxAmount:        req.MaxAmount,
		DurationDays:     req.DurationDays,
		PayoutFrequency:  req.PayoutFrequency,
		Active:           req.Active,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(adminID, "UPDATE_PLAN", "investment_plan", plan.ID, clientIP(c), nil)

	c.JSON(http.StatusOK, gin.H{"plan": plan})
}
