package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "profitflow/internal/errors"
	"profitflow/internal/models"
	"profitflow/internal/services"
)

const testDepositID = "0190a5d2-7c1e-7b3a-9f00-0000000000d1"

func setupDepositRouter(handler *DepositHandler) *gin.Engine {
	r := gin.New()
	r.POST("/deposits", injectUserID(testUserID), handler.CreateDeposit)
	admin := r.Group("/admin", injectAdmin())
	admin.GET("/deposits", handler.ListPendingDeposits)
	admin.POST("/deposits/:id/confirm", handler.ConfirmDeposit)
	admin.POST("/deposits/:id/reject", handler.RejectDeposit)
	return r
}

func TestDepositHandler_CreateDeposit(t *testing.T) {
	t.Run("returns 201 with the linked investment", func(t *testing.T) {
		var linked *string
		svc := &mockDepositService{
			createDepositFn: func(userID, currency string, amount decimal.Decimal, investmentID *string) (*models.Transaction, error) {
				linked = investmentID
				return &models.Transaction{UserID: userID, Currency: currency, Amount: amount, Status: models.TransactionPending}, nil
			},
		}
		r := setupDepositRouter(NewDepositHandler(svc))

		rec := doRequest(r, "POST", "/deposits",
			`{"currency":"USD","amount":"500","investment_id":"`+testInvestmentID+`"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if linked == nil || *linked != testInvestmentID {
			t.Errorf("expected linked investment, got %v", linked)
		}
		deposit := parseJSON(t, rec)["deposit"].(map[string]interface{})
		if deposit["status"] != "PENDING" {
			t.Errorf("expected PENDING, got %v", deposit["status"])
		}
	})

	t.Run("rejects an unknown currency", func(t *testing.T) {
		r := setupDepositRouter(NewDepositHandler(&mockDepositService{}))

		rec := doRequest(r, "POST", "/deposits", `{"currency":"XXX","amount":"500"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestDepositHandler_Review(t *testing.T) {
	t.Run("confirm returns the ledger entry", func(t *testing.T) {
		svc := &mockDepositService{
			confirmFn: func(_, txID string) (*services.LedgerEntry, error) {
				return &services.LedgerEntry{
					Wallet:      &models.Wallet{Balance: decimal.NewFromInt(500)},
					Transaction: &models.Transaction{Base: models.Base{ID: txID}, Status: models.TransactionCompleted},
				}, nil
			},
		}
		r := setupDepositRouter(NewDepositHandler(svc))

		rec := doRequest(r, "POST", "/admin/deposits/"+testDepositID+"/confirm", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		txn := parseJSON(t, rec)["transaction"].(map[string]interface{})
		if txn["status"] != "COMPLETED" {
			t.Errorf("expected COMPLETED, got %v", txn["status"])
		}
	})

	t.Run("confirm twice is a conflict", func(t *testing.T) {
		svc := &mockDepositService{
			confirmFn: func(_, _ string) (*services.LedgerEntry, error) {
				return nil, apperrors.ErrTransactionSettled
			},
		}
		r := setupDepositRouter(NewDepositHandler(svc))

		rec := doRequest(r, "POST", "/admin/deposits/"+testDepositID+"/confirm", "")

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "TRANSACTION_SETTLED")
	})

	t.Run("reject needs a reason", func(t *testing.T) {
		r := setupDepositRouter(NewDepositHandler(&mockDepositService{}))

		rec := doRequest(r, "POST", "/admin/deposits/"+testDepositID+"/reject", `{}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("reject passes the reason", func(t *testing.T) {
		var got string
		svc := &mockDepositService{
			rejectFn: func(_, _, reason string) (*models.Transaction, error) {
				got = reason
				return &models.Transaction{Status: models.TransactionFailed}, nil
			},
		}
		r := setupDepositRouter(NewDepositHandler(svc))

		rec := doRequest(r, "POST", "/admin/deposits/"+testDepositID+"/reject", `{"reason":"no funds received"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if got != "no funds received" {
			t.Errorf("unexpected reason %q", got)
		}
	})
}
