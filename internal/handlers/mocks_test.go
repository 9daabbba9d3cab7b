package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"profitflow/internal/models"
	"profitflow/internal/pagination"
	"profitflow/internal/roi"
	"profitflow/internal/services"
	"profitflow/internal/validator"
)

const (
	testUserID  = "0190a5d2-7c1e-7b3a-9f00-000000000001"
	testAdminID = "0190a5d2-7c1e-7b3a-9f00-0000000000ad"
	testOtherID = "0190a5d2-7c1e-7b3a-9f00-000000000002"
)

// --- mock services ---

type mockUserService struct {
	createUserFn     func(email, password, firstName, lastName string) (*models.User, error)
	getUserByEmailFn func(email string) (*models.User, error)
	getUserByIDFn    func(id string) (*models.User, error)
	verifyPasswordFn func(user *models.User, password string) bool
	attemptLoginFn   func(email, password string) (*models.User, error)
	setRoleFn        func(email string, role models.Role) (*models.User, error)
	summaryFn        func(userID string) (*services.AccountSummary, error)
}

func (m *mockUserService) GetAccountSummary(userID string) (*services.AccountSummary, error) {
	if m.summaryFn != nil {
		return m.summaryFn(userID)
	}
	return &services.AccountSummary{Wallets: []models.Wallet{}}, nil
}

func (m *mockUserService) CreateUser(email, password, firstName, lastName string) (*models.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(email, password, firstName, lastName)
	}
	return &models.User{}, nil
}

func (m *mockUserService) GetUserByEmail(email string) (*models.User, error) {
	if m.getUserByEmailFn != nil {
		return m.getUserByEmailFn(email)
	}
	return &models.User{}, nil
}

func (m *mockUserService) GetUserByID(id string) (*models.User, error) {
	if m.getUserByIDFn != nil {
		return m.getUserByIDFn(id)
	}
	return &models.User{}, nil
}

func (m *mockUserService) VerifyPassword(user *models.User, password string) bool {
	if m.verifyPasswordFn != nil {
		return m.verifyPasswordFn(user, password)
	}
	return true
}

func (m *mockUserService) AttemptLogin(email, password string) (*models.User, error) {
	if m.attemptLoginFn != nil {
		return m.attemptLoginFn(email, password)
	}
	return &models.User{}, nil
}

func (m *mockUserService) SetRole(email string, role models.Role) (*models.User, error) {
	if m.setRoleFn != nil {
		return m.setRoleFn(email, role)
	}
	return &models.User{Email: email, Role: role}, nil
}

type mockAuditService struct {
	actions []string
	listFn  func(filter services.AuditFilter, page pagination.PageRequest) (*pagination.PageResponse[models.AuditLog], error)
}

func (m *mockAuditService) Log(_, action, _, _, _ string, _ map[string]interface{}) {
	m.actions = append(m.actions, action)
}

func (m *mockAuditService) List(filter services.AuditFilter, page pagination.PageRequest) (*pagination.PageResponse[models.AuditLog], error) {
	if m.listFn != nil {
		return m.listFn(filter, page)
	}
	return &pagination.PageResponse[models.AuditLog]{Data: []models.AuditLog{}, Page: page.Page, PageSize: page.PageSize}, nil
}

type mockPlanService struct {
	listPlansFn  func(activeOnly bool) ([]models.InvestmentPlan, error)
	getPlanFn    func(id string) (*models.InvestmentPlan, error)
	createPlanFn func(input services.PlanInput) (*models.InvestmentPlan, error)
	updatePlanFn func(id string, update services.PlanUpdate) (*models.InvestmentPlan, error)
}

func (m *mockPlanService) ListPlans(activeOnly bool) ([]models.InvestmentPlan, error) {
	if m.listPlansFn != nil {
		return m.listPlansFn(activeOnly)
	}
	return []models.InvestmentPlan{}, nil
}

func (m *mockPlanService) GetPlan(id string) (*models.InvestmentPlan, error) {
	if m.getPlanFn != nil {
		return m.getPlanFn(id)
	}
	return &models.InvestmentPlan{ID: id}, nil
}

func (m *mockPlanService) CreatePlan(input services.PlanInput) (*models.InvestmentPlan, error) {
	if m.createPlanFn != nil {
		return m.createPlanFn(input)
	}
	return &models.InvestmentPlan{ID: input.ID, Name: input.Name}, nil
}

func (m *mockPlanService) UpdatePlan(id string, update services.PlanUpdate) (*models.InvestmentPlan, error) {
	if m.updatePlanFn != nil {
		return m.updatePlanFn(id, update)
	}
	return &models.InvestmentPlan{ID: id}, nil
}

type mockInvestmentService struct {
	createInvestmentFn   func(userID, planID string, principal decimal.Decimal) (*models.Investment, error)
	getUserInvestmentsFn func(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Investment], error)
	getInvestmentByIDFn  func(userID, investmentID string) (*models.Investment, error)
	listInvestmentsFn    func(status *models.InvestmentStatus, page pagination.PageRequest) (*pagination.PageResponse[models.Investment], error)
	activateFn           func(adminID, investmentID string) (*models.Investment, error)
	matureFn             func(adminID, investmentID string) (*models.Investment, error)
}

func (m *mockInvestmentService) CreateInvestment(userID, planID string, principal decimal.Decimal) (*models.Investment, error) {
	if m.createInvestmentFn != nil {
		return m.createInvestmentFn(userID, planID, principal)
	}
	return &models.Investment{UserID: userID, PlanID: planID, Principal: principal}, nil
}

func (m *mockInvestmentService) GetUserInvestments(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Investment], error) {
	if m.getUserInvestmentsFn != nil {
		return m.getUserInvestmentsFn(userID, page)
	}
	resp := pagination.NewPageResponse([]models.Investment{}, page.Page, page.PageSize, 0)
	return &resp, nil
}

func (m *mockInvestmentService) GetInvestmentByID(userID, investmentID string) (*models.Investment, error) {
	if m.getInvestmentByIDFn != nil {
		return m.getInvestmentByIDFn(userID, investmentID)
	}
	return &models.Investment{Base: models.Base{ID: investmentID}, UserID: userID}, nil
}

func (m *mockInvestmentService) ListInvestments(status *models.InvestmentStatus, page pagination.PageRequest) (*pagination.PageResponse[models.Investment], error) {
	if m.listInvestmentsFn != nil {
		return m.listInvestmentsFn(status, page)
	}
	resp := pagination.NewPageResponse([]models.Investment{}, page.Page, page.PageSize, 0)
	return &resp, nil
}

func (m *mockInvestmentService) ActivateInvestment(adminID, investmentID string) (*models.Investment, error) {
	if m.activateFn != nil {
		return m.activateFn(adminID, investmentID)
	}
	return &models.Investment{Base: models.Base{ID: investmentID}, Status: models.InvestmentActive}, nil
}

func (m *mockInvestmentService) MatureInvestment(adminID, investmentID string) (*models.Investment, error) {
	if m.matureFn != nil {
		return m.matureFn(adminID, investmentID)
	}
	return &models.Investment{Base: models.Base{ID: investmentID}, Status: models.InvestmentMatured}, nil
}

type mockWalletService struct {
	adminCreditFn         func(adminID, userID, currency string, amount decimal.Decimal, note string) (*services.LedgerEntry, error)
	withdrawFn            func(userID, currency string, amount decimal.Decimal) (*services.LedgerEntry, error)
	getUserWalletsFn      func(userID string) ([]models.Wallet, error)
	getUserTransactionsFn func(userID string, page pagination.PageRequest, filter services.TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	reconcileFn           func(userID, currency string) (*services.Reconciliation, error)
}

func (m *mockWalletService) Credit(_ *gorm.DB, _ services.CreditParams) (*services.LedgerEntry, error) {
	return &services.LedgerEntry{}, nil
}

func (m *mockWalletService) Debit(_ *gorm.DB, _ services.DebitParams) (*services.LedgerEntry, error) {
	return &services.LedgerEntry{}, nil
}

func (m *mockWalletService) Settle(_ *gorm.DB, _ *models.Transaction) (*services.LedgerEntry, error) {
	return &services.LedgerEntry{}, nil
}

func (m *mockWalletService) AdminCredit(adminID, userID, currency string, amount decimal.Decimal, note string) (*services.LedgerEntry, error) {
	if m.adminCreditFn != nil {
		return m.adminCreditFn(adminID, userID, currency, amount, note)
	}
	return &services.LedgerEntry{}, nil
}

func (m *mockWalletService) Withdraw(userID, currency string, amount decimal.Decimal) (*services.LedgerEntry, error) {
	if m.withdrawFn != nil {
		return m.withdrawFn(userID, currency, amount)
	}
	return &services.LedgerEntry{}, nil
}

func (m *mockWalletService) GetUserWallets(userID string) ([]models.Wallet, error) {
	if m.getUserWalletsFn != nil {
		return m.getUserWalletsFn(userID)
	}
	return []models.Wallet{}, nil
}

func (m *mockWalletService) GetUserTransactions(userID string, page pagination.PageRequest, filter services.TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	if m.getUserTransactionsFn != nil {
		return m.getUserTransactionsFn(userID, page, filter)
	}
	resp := pagination.NewPageResponse([]models.Transaction{}, page.Page, page.PageSize, 0)
	return &resp, nil
}

func (m *mockWalletService) Reconcile(userID, currency string) (*services.Reconciliation, error) {
	if m.reconcileFn != nil {
		return m.reconcileFn(userID, currency)
	}
	return &services.Reconciliation{UserID: userID, Currency: currency}, nil
}

type mockDepositService struct {
	createDepositFn func(userID, currency string, amount decimal.Decimal, investmentID *string) (*models.Transaction, error)
	listPendingFn   func(page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error)
	confirmFn       func(adminID, transactionID string) (*services.LedgerEntry, error)
	rejectFn        func(adminID, transactionID, reason string) (*models.Transaction, error)
}

func (m *mockDepositService) CreateDeposit(userID, currency string, amount decimal.Decimal, investmentID *string) (*models.Transaction, error) {
	if m.createDepositFn != nil {
		return m.createDepositFn(userID, currency, amount, investmentID)
	}
	return &models.Transaction{UserID: userID, Currency: currency, Amount: amount}, nil
}

func (m *mockDepositService) ListPendingDeposits(page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
	if m.listPendingFn != nil {
		return m.listPendingFn(page)
	}
	resp := pagination.NewPageResponse([]models.Transaction{}, page.Page, page.PageSize, 0)
	return &resp, nil
}

func (m *mockDepositService) ConfirmDeposit(adminID, transactionID string) (*services.LedgerEntry, error) {
	if m.confirmFn != nil {
		return m.confirmFn(adminID, transactionID)
	}
	return &services.LedgerEntry{}, nil
}

func (m *mockDepositService) RejectDeposit(adminID, transactionID, reason string) (*models.Transaction, error) {
	if m.rejectFn != nil {
		return m.rejectFn(adminID, transactionID, reason)
	}
	return &models.Transaction{Status: models.TransactionFailed}, nil
}

type mockPerformanceService struct {
	upsertFn      func(weekEnding time.Time, streams roi.StreamROIs, notes string) (*models.PerformanceRecord, error)
	getByWeekFn   func(weekEnding time.Time) (*models.PerformanceRecord, error)
	weeklyProofFn func(weekEnding time.Time) (*services.WeeklyProof, error)
}

func (m *mockPerformanceService) Upsert(weekEnding time.Time, streams roi.StreamROIs, notes string) (*models.PerformanceRecord, error) {
	if m.upsertFn != nil {
		return m.upsertFn(weekEnding, streams, notes)
	}
	week, day := services.WeekKey(weekEnding)
	return &models.PerformanceRecord{Week: week, WeekEnding: day, Notes: notes}, nil
}

func (m *mockPerformanceService) GetByWeek(weekEnding time.Time) (*models.PerformanceRecord, error) {
	if m.getByWeekFn != nil {
		return m.getByWeekFn(weekEnding)
	}
	week, day := services.WeekKey(weekEnding)
	return &models.PerformanceRecord{Week: week, WeekEnding: day}, nil
}

func (m *mockPerformanceService) List(page pagination.PageRequest) (*pagination.PageResponse[models.PerformanceRecord], error) {
	resp := pagination.NewPageResponse([]models.PerformanceRecord{}, page.Page, page.PageSize, 0)
	return &resp, nil
}

func (m *mockPerformanceService) StreamsForWeek(_ string) (roi.StreamROIs, error) {
	return nil, nil
}

func (m *mockPerformanceService) WeeklyProof(weekEnding time.Time) (*services.WeeklyProof, error) {
	if m.weeklyProofFn != nil {
		return m.weeklyProofFn(weekEnding)
	}
	week, _ := services.WeekKey(weekEnding)
	return &services.WeeklyProof{Week: week}, nil
}

type mockDistributionService struct {
	runFn    func(ctx context.Context, req services.DistributionRequest) (*services.DistributionResult, error)
	hasRunFn func(weekEnding time.Time) (bool, error)
	lastReq  *services.DistributionRequest
}

func (m *mockDistributionService) Run(ctx context.Context, req services.DistributionRequest) (*services.DistributionResult, error) {
	m.lastReq = &req
	if m.runFn != nil {
		return m.runFn(ctx, req)
	}
	week, day := services.WeekKey(req.WeekEnding)
	return &services.DistributionResult{Week: week, WeekEnding: day, Mode: req.Mode, DryRun: req.DryRun}, nil
}

func (m *mockDistributionService) HasRunForWeek(weekEnding time.Time) (bool, error) {
	if m.hasRunFn != nil {
		return m.hasRunFn(weekEnding)
	}
	return false, nil
}

func (m *mockDistributionService) ListRuns(page pagination.PageRequest) (*pagination.PageResponse[models.ProfitLog], error) {
	resp := pagination.NewPageResponse([]models.ProfitLog{}, page.Page, page.PageSize, 0)
	return &resp, nil
}

type mockNotificationService struct {
	getUserNotificationsFn func(userID string, unreadOnly bool, page pagination.PageRequest) (*pagination.PageResponse[models.Notification], error)
	markReadFn             func(userID, notificationID string) (*models.Notification, error)
	markAllReadFn          func(userID string) (int64, error)
}

func (m *mockNotificationService) Notify(_ context.Context, _ string, _ models.NotificationType, _, _ string, _ map[string]interface{}) {
}

func (m *mockNotificationService) GetUserNotifications(userID string, unreadOnly bool, page pagination.PageRequest) (*pagination.PageResponse[models.Notification], error) {
	if m.getUserNotificationsFn != nil {
		return m.getUserNotificationsFn(userID, unreadOnly, page)
	}
	resp := pagination.NewPageResponse([]models.Notification{}, page.Page, page.PageSize, 0)
	return &resp, nil
}

func (m *mockNotificationService) MarkRead(userID, notificationID string) (*models.Notification, error) {
	if m.markReadFn != nil {
		return m.markReadFn(userID, notificationID)
	}
	return &models.Notification{Base: models.Base{ID: notificationID}, UserID: userID}, nil
}

func (m *mockNotificationService) MarkAllRead(userID string) (int64, error) {
	if m.markAllReadFn != nil {
		return m.markAllReadFn(userID)
	}
	return 0, nil
}

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func injectUserID(uid string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", uid)
		c.Next()
	}
}

func injectAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", testAdminID)
		c.Set("role", string(models.RoleAdmin))
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}
