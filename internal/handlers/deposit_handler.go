package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "profitflow/internal/errors"
	"profitflow/internal/services"
)

// DepositHandler handles manually reviewed deposits.
type DepositHandler struct {
	depositService services.DepositServicer
}

// NewDepositHandler creates a new DepositHandler.
func NewDepositHandler(depositService services.DepositServicer) *DepositHandler {
	return &DepositHandler{depositService: depositService}
}

// CreateDepositRequest represents a deposit announced by a user.
type CreateDepositRequest struct {
	Currency     string          `json:"currency" binding:"required,iso4217"`
	Amount       decimal.Decimal `json:"amount"`
	InvestmentID *string         `json:"investment_id" binding:"omitempty,uuid"`
}

// RejectDepositRequest carries the reason shown to the user.
type RejectDepositRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// CreateDeposit handles a user announcing a deposit.
// @Summary     Create deposit
// @Description Record a PENDING deposit, optionally funding a PENDING investment
// @Tags        deposits
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateDepositRequest true "Deposit"
// @Success     201 {object} models.Transaction "Deposit recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Router      /deposits [post]
func (h *DepositHandler) CreateDeposit(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	if !req.Amount.IsPositive() {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be positive"))
		return
	}

	txn, err := h.depositService.CreateDeposit(userID, strings.ToUpper(req.Currency), req.Amount, req.InvestmentID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"deposit": txn})
}

// ListPendingDeposits handles the admin review queue.
// @Summary     List pending deposits
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Transaction] "Pending deposits"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Router      /admin/deposits [get]
func (h *DepositHandler) ListPendingDeposits(c *gin.Context) {
	page, err := parsePage(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.depositService.ListPendingDeposits(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ConfirmDeposit handles crediting a pending deposit.
// @Summary     Confirm deposit
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} services.LedgerEntry "Deposit credited"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     409 {object} ErrorResponse "Already settled"
// @Router      /admin/deposits/{id}/confirm [post]
func (h *DepositHandler) ConfirmDeposit(c *gin.Context) {
	adminID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	txID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	entry, err := h.depositService.ConfirmDeposit(adminID, txID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

// RejectDeposit handles failing a pending deposit.
// @Summary     Reject deposit
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string               true "Transaction ID"
// @Param       request body RejectDepositRequest true "Reason"
// @Success     200 {object} models.Transaction "Deposit rejected"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     409 {object} ErrorResponse "Already settled"
// @Router      /admin/deposits/{id}/reject [post]
func (h *DepositHandler) RejectDeposit(c *gin.Context) {
	adminID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	txID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RejectDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	txn, err := h.depositService.RejectDeposit(adminID, txID, req.Reason)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deposit": txn})
}
