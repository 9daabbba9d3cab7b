package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "profitflow/internal/errors"
	"profitflow/internal/models"
	"profitflow/internal/services"
)

// InvestmentHandler handles investment-related requests.
type InvestmentHandler struct {
	investmentService services.InvestmentServicer
	auditService      services.AuditServicer
}

// NewInvestmentHandler creates a new InvestmentHandler.
func NewInvestmentHandler(investmentService services.InvestmentServicer, auditService services.AuditServicer) *InvestmentHandler {
	return &InvestmentHandler{investmentService: investmentService, auditService: auditService}
}

// CreateInvestmentRequest represents the request payload for opening an investment.
type CreateInvestmentRequest struct {
	PlanID    string          `json:"plan_id" binding:"required,plan_slug"`
	Principal decimal.Decimal `json:"principal"`
}

// CreateInvestment handles opening a PENDING investment.
// @Summary     Create investment
// @Description Open an investment in a plan; it stays PENDING until funded or activated by an admin
// @Tags        investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateInvestmentRequest true "Investment details"
// @Success     201 {object} models.Investment "Investment created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Plan not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments [post]
func (h *InvestmentHandler) CreateInvestment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	if !req.Principal.IsPositive() {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "principal must be positive"))
		return
	}

	investment, err := h.investmentService.CreateInvestment(userID, req.PlanID, req.Principal)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_INVESTMENT", "investment", investment.ID, clientIP(c),
		map[string]interface{}{"plan_id": req.PlanID, "principal": req.Principal.String()})

	c.JSON(http.StatusCreated, gin.H{"investment": investment})
}

// GetInvestments handles listing the caller's investments.
// @Summary     List own investments
// @Tags        investments
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Investment] "Paginated investments"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /investments [get]
func (h *InvestmentHandler) GetInvestments(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	page, err := parsePage(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.investmentService.GetUserInvestments(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetInvestment handles retrieving one of the caller's investments.
// @Summary     Get investment by ID
// @Tags        investments
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Investment ID"
// @Success     200 {object} models.Investment "Investment details"
// @Failure     400 {object} ErrorResponse "Invalid investment ID"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Router      /investments/{id} [get]
func (h *InvestmentHandler) GetInvestment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	investmentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	investment, err := h.investmentService.GetInvestmentByID(userID, investmentID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"investment": investment})
}

// ListInvestments handles the admin view of all investments.
// @Summary     List all investments
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Param       status    query string false "PENDING, ACTIVE or MATURED"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Investment] "Paginated investments"
// @Failure     400 {object} ErrorResponse "Invalid status"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Router      /admin/investments [get]
func (h *InvestmentHandler) ListInvestments(c *gin.Context) {
	page, err := parsePage(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var status *models.InvestmentStatus
	if raw := c.Query("status"); raw != "" {
		s := models.InvestmentStatus(raw)
		switch s {
		case models.InvestmentPending, models.InvestmentActive, models.InvestmentMatured:
			status = &s
		default:
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid status"))
			return
		}
	}

	result, err := h.investmentService.ListInvestments(status, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ActivateInvestment handles PENDING to ACTIVE.
// @Summary     Activate investment
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Investment ID"
// @Success     200 {object} models.Investment "Investment activated"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Failure     409 {object} ErrorResponse "Invalid status transition"
// @Router      /admin/investments/{id}/activate [post]
func (h *InvestmentHandler) ActivateInvestment(c *gin.Context) {
	h.transition(c, h.investmentService.ActivateInvestment)
}

// MatureInvestment handles ACTIVE to MATURED and returns the principal.
// @Summary     Mature investment
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Investment ID"
// @Success     200 {object} models.Investment "Investment matured"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Failure     409 {object} ErrorResponse "Invalid status transition"
// @Router      /admin/investments/{id}/mature [post]
func (h *InvestmentHandler) MatureInvestment(c *gin.Context) {
	h.transition(c, h.investmentService.MatureInvestment)
}

func (h *InvestmentHandler) transition(c *gin.Context, fn func(adminID, investmentID string) (*models.Investment, error)) {
	adminID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	investmentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	investment, err := fn(adminID, investmentID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"investment": investment})
}
