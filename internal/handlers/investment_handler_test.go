package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "profitflow/internal/errors"
	"profitflow/internal/models"
	"profitflow/internal/pagination"
)

const testInvestmentID = "0190a5d2-7c1e-7b3a-9f00-0000000000f1"

func setupInvestmentRouter(handler *InvestmentHandler) *gin.Engine {
	r := gin.New()
	user := r.Group("/", injectUserID(testUserID))
	user.POST("/investments", handler.CreateInvestment)
	user.GET("/investments", handler.GetInvestments)
	user.GET("/investments/:id", handler.GetInvestment)
	admin := r.Group("/admin", injectAdmin())
	admin.GET("/investments", handler.ListInvestments)
	admin.POST("/investments/:id/activate", handler.ActivateInvestment)
	admin.POST("/investments/:id/mature", handler.MatureInvestment)
	return r
}

func TestInvestmentHandler_CreateInvestment(t *testing.T) {
	t.Run("returns 201 and audits", func(t *testing.T) {
		var gotPrincipal decimal.Decimal
		svc := &mockInvestmentService{
			createInvestmentFn: func(userID, planID string, principal decimal.Decimal) (*models.Investment, error) {
				gotPrincipal = principal
				return &models.Investment{Base: models.Base{ID: testInvestmentID}, UserID: userID, PlanID: planID, Principal: principal}, nil
			},
		}
		audit := &mockAuditService{}
		r := setupInvestmentRouter(NewInvestmentHandler(svc, audit))

		rec := doRequest(r, "POST", "/investments", `{"plan_id":"pro","principal":"1000.50"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if !gotPrincipal.Equal(decimal.RequireFromString("1000.5")) {
			t.Errorf("expected principal 1000.5, got %s", gotPrincipal)
		}
		if len(audit.actions) != 1 || audit.actions[0] != "CREATE_INVESTMENT" {
			t.Errorf("expected CREATE_INVESTMENT audit, got %v", audit.actions)
		}
	})

	t.Run("rejects non-positive principal", func(t *testing.T) {
		r := setupInvestmentRouter(NewInvestmentHandler(&mockInvestmentService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/investments", `{"plan_id":"pro","principal":"0"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("rejects malformed plan id", func(t *testing.T) {
		r := setupInvestmentRouter(NewInvestmentHandler(&mockInvestmentService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/investments", `{"plan_id":"Pro Plan!","principal":"10"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("surfaces amount limits", func(t *testing.T) {
		svc := &mockInvestmentService{
			createInvestmentFn: func(_, _ string, _ decimal.Decimal) (*models.Investment, error) {
				return nil, apperrors.ErrAmountOutOfPlan
			},
		}
		r := setupInvestmentRouter(NewInvestmentHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "POST", "/investments", `{"plan_id":"pro","principal":"1"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "AMOUNT_OUT_OF_RANGE")
	})
}

func TestInvestmentHandler_GetInvestment(t *testing.T) {
	t.Run("returns 400 on a non-uuid id", func(t *testing.T) {
		r := setupInvestmentRouter(NewInvestmentHandler(&mockInvestmentService{}, &mockAuditService{}))

		rec := doRequest(r, "GET", "/investments/42", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 404 for another user's investment", func(t *testing.T) {
		svc := &mockInvestmentService{
			getInvestmentByIDFn: func(_, _ string) (*models.Investment, error) {
				return nil, apperrors.ErrInvestmentNotFound
			},
		}
		r := setupInvestmentRouter(NewInvestmentHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/investments/"+testInvestmentID, "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVESTMENT_NOT_FOUND")
	})
}

func TestInvestmentHandler_ListInvestments(t *testing.T) {
	t.Run("passes the status filter", func(t *testing.T) {
		var got *models.InvestmentStatus
		svc := &mockInvestmentService{
			listInvestmentsFn: func(status *models.InvestmentStatus, page pagination.PageRequest) (*pagination.PageResponse[models.Investment], error) {
				got = status
				resp := pagination.NewPageResponse([]models.Investment{}, page.Page, page.PageSize, 0)
				return &resp, nil
			},
		}
		r := setupInvestmentRouter(NewInvestmentHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/admin/investments?status=ACTIVE", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if got == nil || *got != models.InvestmentActive {
			t.Errorf("expected ACTIVE filter, got %v", got)
		}
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		r := setupInvestmentRouter(NewInvestmentHandler(&mockInvestmentService{}, &mockAuditService{}))

		rec := doRequest(r, "GET", "/admin/investments?status=FROZEN", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestInvestmentHandler_Transitions(t *testing.T) {
	t.Run("activate passes the admin id", func(t *testing.T) {
		var admin string
		svc := &mockInvestmentService{
			activateFn: func(adminID, id string) (*models.Investment, error) {
				admin = adminID
				return &models.Investment{Base: models.Base{ID: id}, Status: models.InvestmentActive}, nil
			},
		}
		r := setupInvestmentRouter(NewInvestmentHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "POST", "/admin/investments/"+testInvestmentID+"/activate", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if admin != testAdminID {
			t.Errorf("expected admin %s, got %s", testAdminID, admin)
		}
	})

	t.Run("mature reports invalid transitions", func(t *testing.T) {
		svc := &mockInvestmentService{
			matureFn: func(_, _ string) (*models.Investment, error) {
				return nil, apperrors.ErrInvalidStatusChange
			},
		}
		r := setupInvestmentRouter(NewInvestmentHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "POST", "/admin/investments/"+testInvestmentID+"/mature", "")

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_STATUS_TRANSITION")
	})
}
