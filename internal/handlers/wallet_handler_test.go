package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "profitflow/internal/errors"
	"profitflow/internal/models"
	"profitflow/internal/pagination"
	"profitflow/internal/services"
)

func setupWalletRouter(handler *WalletHandler) *gin.Engine {
	r := gin.New()
	user := r.Group("/", injectUserID(testUserID))
	user.GET("/wallets", handler.GetWallets)
	user.GET("/wallets/transactions", handler.GetTransactions)
	user.POST("/wallets/withdraw", handler.Withdraw)
	admin := r.Group("/admin", injectAdmin())
	admin.POST("/wallets/credit", handler.AdminCredit)
	admin.GET("/wallets/reconcile", handler.Reconcile)
	return r
}

func TestWalletHandler_GetTransactions(t *testing.T) {
	t.Run("parses filters", func(t *testing.T) {
		var got services.TransactionFilter
		svc := &mockWalletService{
			getUserTransactionsFn: func(_ string, page pagination.PageRequest, filter services.TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
				got = filter
				resp := pagination.NewPageResponse([]models.Transaction{}, page.Page, page.PageSize, 0)
				return &resp, nil
			},
		}
		r := setupWalletRouter(NewWalletHandler(svc))

		rec := doRequest(r, "GET", "/wallets/transactions?type=profit&currency=usd&from_date=2024-01-01T00:00:00Z", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.Type == nil || *got.Type != models.TransactionProfit {
			t.Errorf("expected PROFIT filter, got %v", got.Type)
		}
		if got.Currency == nil || *got.Currency != "USD" {
			t.Errorf("expected USD filter, got %v", got.Currency)
		}
		if got.FromDate == nil || got.ToDate != nil {
			t.Errorf("unexpected date filters %v %v", got.FromDate, got.ToDate)
		}
	})

	t.Run("rejects bad filters", func(t *testing.T) {
		for _, q := range []string{"type=BONUS", "status=LOST", "to_date=yesterday"} {
			r := setupWalletRouter(NewWalletHandler(&mockWalletService{}))

			rec := doRequest(r, "GET", "/wallets/transactions?"+q, "")

			if rec.Code != http.StatusBadRequest {
				t.Errorf("%s: expected 400, got %d", q, rec.Code)
			}
		}
	})
}

func TestWalletHandler_Withdraw(t *testing.T) {
	t.Run("returns 201", func(t *testing.T) {
		var currency string
		svc := &mockWalletService{
			withdrawFn: func(_, cur string, _ decimal.Decimal) (*services.LedgerEntry, error) {
				currency = cur
				return &services.LedgerEntry{}, nil
			},
		}
		r := setupWalletRouter(NewWalletHandler(svc))

		rec := doRequest(r, "POST", "/wallets/withdraw", `{"currency":"EUR","amount":"25"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if currency != "EUR" {
			t.Errorf("expected EUR, got %s", currency)
		}
	})

	t.Run("returns 400 on insufficient balance", func(t *testing.T) {
		svc := &mockWalletService{
			withdrawFn: func(_, _ string, _ decimal.Decimal) (*services.LedgerEntry, error) {
				return nil, apperrors.ErrInsufficientBalance
			},
		}
		r := setupWalletRouter(NewWalletHandler(svc))

		rec := doRequest(r, "POST", "/wallets/withdraw", `{"currency":"USD","amount":"25"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INSUFFICIENT_BALANCE")
	})

	t.Run("rejects negative amounts", func(t *testing.T) {
		r := setupWalletRouter(NewWalletHandler(&mockWalletService{}))

		rec := doRequest(r, "POST", "/wallets/withdraw", `{"currency":"USD","amount":"-5"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestWalletHandler_AdminCredit(t *testing.T) {
	var admin, target string
	svc := &mockWalletService{
		adminCreditFn: func(adminID, userID, _ string, _ decimal.Decimal, _ string) (*services.LedgerEntry, error) {
			admin, target = adminID, userID
			return &services.LedgerEntry{}, nil
		},
	}
	r := setupWalletRouter(NewWalletHandler(svc))

	rec := doRequest(r, "POST", "/admin/wallets/credit",
		`{"user_id":"`+testUserID+`","currency":"USD","amount":"100","note":"goodwill"}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if admin != testAdminID || target != testUserID {
		t.Errorf("unexpected ids admin=%s target=%s", admin, target)
	}
}

func TestWalletHandler_Reconcile(t *testing.T) {
	t.Run("returns 200 when balanced", func(t *testing.T) {
		r := setupWalletRouter(NewWalletHandler(&mockWalletService{}))

		rec := doRequest(r, "GET", "/admin/wallets/reconcile?user_id="+testUserID+"&currency=USD", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("returns 409 with the reconciliation on mismatch", func(t *testing.T) {
		svc := &mockWalletService{
			reconcileFn: func(userID, currency string) (*services.Reconciliation, error) {
				return &services.Reconciliation{
					UserID:      userID,
					Currency:    currency,
					Balance:     decimal.NewFromInt(110),
					LedgerTotal: decimal.NewFromInt(100),
					Difference:  decimal.NewFromInt(10),
				}, apperrors.ErrLedgerMismatch
			},
		}
		r := setupWalletRouter(NewWalletHandler(svc))

		rec := doRequest(r, "GET", "/admin/wallets/reconcile?user_id="+testUserID+"&currency=USD", "")

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		assertErrorCode(t, result, "LEDGER_MISMATCH")
		recon := result["reconciliation"].(map[string]interface{})
		if recon["difference"] != "10" {
			t.Errorf("expected difference 10, got %v", recon["difference"])
		}
	})

	t.Run("requires user and currency", func(t *testing.T) {
		r := setupWalletRouter(NewWalletHandler(&mockWalletService{}))

		rec := doRequest(r, "GET", "/admin/wallets/reconcile?currency=USD", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
