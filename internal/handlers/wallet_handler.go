package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "profitflow/internal/errors"
	"profitflow/internal/models"
	"profitflow/internal/services"
)

// WalletHandler exposes wallets and the transaction ledger.
type WalletHandler struct {
	walletService services.WalletServicer
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(walletService services.WalletServicer) *WalletHandler {
	return &WalletHandler{walletService: walletService}
}

// WithdrawRequest represents a withdrawal request.
type WithdrawRequest struct {
	Currency string          `json:"currency" binding:"required,iso4217"`
	Amount   decimal.Decimal `json:"amount"`
}

// AdminCreditRequest represents a manual admin credit.
type AdminCreditRequest struct {
	UserID   string          `json:"user_id" binding:"required,uuid"`
	Currency string          `json:"currency" binding:"required,iso4217"`
	Amount   decimal.Decimal `json:"amount"`
	Note     string          `json:"note" binding:"max=500"`
}

// GetWallets handles listing the caller's wallets.
// @Summary     List wallets
// @Tags        wallets
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string][]models.Wallet "Wallets"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /wallets [get]
func (h *WalletHandler) GetWallets(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	wallets, err := h.walletService.GetUserWallets(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"wallets": wallets})
}

// GetTransactions handles listing the caller's ledger.
// @Summary     List transactions
// @Tags        wallets
// @Produce     json
// @Security    BearerAuth
// @Param       type      query string false "DEPOSIT, WITHDRAWAL, PROFIT, ADMIN_CREDIT, INVESTMENT or PRINCIPAL_RETURN"
// @Param       status    query string false "PENDING, COMPLETED or FAILED"
// @Param       currency  query string false "ISO 4217 currency"
// @Param       from_date query string false "RFC3339 lower bound"
// @Param       to_date   query string false "RFC3339 upper bound"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Transaction] "Paginated transactions"
// @Failure     400 {object} ErrorResponse "Invalid filter"
// @Router      /wallets/transactions [get]
func (h *WalletHandler) GetTransactions(c *gin.Context) {
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

	filter, err := parseTransactionFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.walletService.GetUserTransactions(userID, page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func parseTransactionFilter(c *gin.Context) (services.TransactionFilter, error) {
	var filter services.TransactionFilter
	if raw := c.Query("type"); raw != "" {
		t := models.TransactionType(strings.ToUpper(raw))
		if !t.Valid() {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid transaction type")
		}
		filter.Type = &t
	}
	if raw := c.Query("status"); raw != "" {
		s := models.TransactionStatus(strings.ToUpper(raw))
		switch s {
		case models.TransactionPending, models.TransactionCompleted, models.TransactionFailed:
			filter.Status = &s
		default:
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid transaction status")
		}
	}
	if raw := c.Query("currency"); raw != "" {
		cur := strings.ToUpper(raw)
		filter.Currency = &cur
	}
	for param, dst := range map[string]**time.Time{"from_date": &filter.FromDate, "to_date": &filter.ToDate} {
		raw := c.Query(param)
		if raw == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
		}
		*dst = &t
	}
	return filter, nil
}

// Withdraw handles debiting the caller's wallet.
// @Summary     Withdraw
// @Tags        wallets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body WithdrawRequest true "Withdrawal"
// @Success     201 {object} services.LedgerEntry "Withdrawal recorded"
// @Failure     400 {object} ErrorResponse "Invalid input or insufficient balance"
// @Failure     404 {object} ErrorResponse "Wallet not found"
// @Router      /wallets/withdraw [post]
func (h *WalletHandler) Withdraw(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	if !req.Amount.IsPositive() {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be positive"))
		return
	}

	entry, err := h.walletService.Withdraw(userID, strings.ToUpper(req.Currency), req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// AdminCredit handles a manual credit by an admin.
// @Summary     Credit a wallet
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body AdminCreditRequest true "Credit"
// @Success     201 {object} services.LedgerEntry "Credit recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Router      /admin/wallets/credit [post]
func (h *WalletHandler) AdminCredit(c *gin.Context) {
	adminID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AdminCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	if !req.Amount.IsPositive() {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be positive"))
		return
	}

	entry, err := h.walletService.AdminCredit(adminID, req.UserID, strings.ToUpper(req.Currency), req.Amount, req.Note)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// Reconcile handles checking a wallet against its ledger.
// @Summary     Reconcile a wallet
// @Description Compare a wallet balance with the sum of its completed transactions
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Param       user_id  query string true "User ID"
// @Param       currency query string true "ISO 4217 currency"
// @Success     200 {object} services.Reconciliation "Balanced"
// @Failure     404 {object} ErrorResponse "Wallet not found"
// @Failure     409 {object} ErrorResponse "Ledger mismatch"
// @Router      /admin/wallets/reconcile [get]
func (h *WalletHandler) Reconcile(c *gin.Context) {
	userID := c.Query("user_id")
	currency := strings.ToUpper(c.Query("currency"))
	if userID == "" || currency == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "user_id and currency are required"))
		return
	}

	rec, err := h.walletService.Reconcile(userID, currency)
	if err != nil {
		if rec != nil && errors.Is(err, apperrors.ErrLedgerMismatch) {
			c.JSON(apperrors.ErrLedgerMismatch.StatusCode, gin.H{
				"error": gin.H{
					"code":    apperrors.ErrLedgerMismatch.Code,
					"message": apperrors.ErrLedgerMismatch.Message,
				},
				"reconciliation": rec,
			})
			return
		}
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, rec)
}
