package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"profitflow/internal/models"
	"profitflow/internal/pagination"
	"profitflow/internal/roi"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	GetAccountSummary(userID string) (*AccountSummary, error)
	SetRole(email string, role models.Role) (*models.User, error)
}

// PlanInput carries the editable fields of an investment plan.
type PlanInput struct {
	ID               string
	Name             string
	ReturnPercentage decimal.Decimal
	MinAmount        decimal.Decimal
	MaxAmount        decimal.Decimal
	DurationDays     int
	PayoutFrequency  models.PayoutFrequency
	Currency         string
}

// PlanUpdate holds optional plan changes; nil fields are left untouched.
type PlanUpdate struct {
	Name             *string
	ReturnPercentage *decimal.Decimal
	MinAmount        *decimal.Decimal
	MaxAmount        *decimal.Decimal
	DurationDays     *int
	PayoutFrequency  *models.PayoutFrequency
	Active           *bool
}

// PlanServicer defines the contract for investment plan reference data.
type PlanServicer interface {
	ListPlans(activeOnly bool) ([]models.InvestmentPlan, error)
	GetPlan(id string) (*models.InvestmentPlan, error)
	CreatePlan(input PlanInput) (*models.InvestmentPlan, error)
	UpdatePlan(id string, update PlanUpdate) (*models.InvestmentPlan, error)
}

// InvestmentServicer defines the contract for the investment lifecycle.
type InvestmentServicer interface {
	CreateInvestment(userID, planID string, principal decimal.Decimal) (*models.Investment, error)
	GetUserInvestments(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Investment], error)
	GetInvestmentByID(userID, investmentID string) (*models.Investment, error)
	ListInvestments(status *models.InvestmentStatus, page pagination.PageRequest) (*pagination.PageResponse[models.Investment], error)
	ActivateInvestment(adminID, investmentID string) (*models.Investment, error)
	MatureInvestment(adminID, investmentID string) (*models.Investment, error)
}

// CreditParams describes a single positive wallet movement.
type CreditParams struct {
	UserID       string
	Currency     string
	Amount       decimal.Decimal
	Type         models.TransactionType
	InvestmentID *string
	PeriodKey    *string
	Reference    map[string]interface{}
}

// DebitParams describes a single negative wallet movement. Type defaults to
// WITHDRAWAL.
type DebitParams struct {
	UserID       string
	Currency     string
	Amount       decimal.Decimal
	Type         models.TransactionType
	InvestmentID *string
	Reference    map[string]interface{}
}

// LedgerEntry is the wallet after a movement together with the transaction
// row recording it.
type LedgerEntry struct {
	Wallet      *models.Wallet      `json:"wallet"`
	Transaction *models.Transaction `json:"transaction"`
}

// Reconciliation compares a wallet balance with its transaction history.
type Reconciliation struct {
	WalletID    string          `json:"wallet_id"`
	UserID      string          `json:"user_id"`
	Currency    string          `json:"currency"`
	Balance     decimal.Decimal `json:"balance"`
	LedgerTotal decimal.Decimal `json:"ledger_total"`
	Difference  decimal.Decimal `json:"difference"`
	Entries     int64           `json:"entries"`
}

// Balanced reports whether the balance matches the ledger.
func (r *Reconciliation) Balanced() bool {
	return r.Difference.IsZero()
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	Type     *models.TransactionType
	Status   *models.TransactionStatus
	Currency *string
	FromDate *time.Time
	ToDate   *time.Time
}

// WalletServicer defines the contract for the wallet ledger. Credit, Debit and
// Settle run inside a caller-owned database transaction.
type WalletServicer interface {
	Credit(tx *gorm.DB, p CreditParams) (*LedgerEntry, error)
	Debit(tx *gorm.DB, p DebitParams) (*LedgerEntry, error)
	Settle(tx *gorm.DB, txn *models.Transaction) (*LedgerEntry, error)
	AdminCredit(adminID, userID, currency string, amount decimal.Decimal, note string) (*LedgerEntry, error)
	Withdraw(userID, currency string, amount decimal.Decimal) (*LedgerEntry, error)
	GetUserWallets(userID string) ([]models.Wallet, error)
	GetUserTransactions(userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	Reconcile(userID, currency string) (*Reconciliation, error)
}

// DepositServicer defines the contract for manually reviewed deposits.
type DepositServicer interface {
	CreateDeposit(userID, currency string, amount decimal.Decimal, investmentID *string) (*models.Transaction, error)
	ListPendingDeposits(page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error)
	ConfirmDeposit(adminID, transactionID string) (*LedgerEntry, error)
	RejectDeposit(adminID, transactionID, reason string) (*models.Transaction, error)
}

// PlanReturn is one plan's weighted ROI for a recorded week.
type PlanReturn struct {
	PlanID string          `json:"plan_id"`
	ROIPct decimal.Decimal `json:"roi_pct"`
}

// WeeklyProof is the published per-plan ROI for a week, derived from its
// performance record.
type WeeklyProof struct {
	Week    string         `json:"week"`
	Streams roi.StreamROIs `json:"streams"`
	Plans   []PlanReturn   `json:"plans"`
}

// PerformanceServicer defines the contract for weekly stream performance.
type PerformanceServicer interface {
	Upsert(weekEnding time.Time, streams roi.StreamROIs, notes string) (*models.PerformanceRecord, error)
	GetByWeek(weekEnding time.Time) (*models.PerformanceRecord, error)
	List(page pagination.PageRequest) (*pagination.PageResponse[models.PerformanceRecord], error)
	StreamsForWeek(week string) (roi.StreamROIs, error)
	WeeklyProof(weekEnding time.Time) (*WeeklyProof, error)
}

// DistributionServicer defines the contract for the weekly profit run.
type DistributionServicer interface {
	Run(ctx context.Context, req DistributionRequest) (*DistributionResult, error)
	HasRunForWeek(weekEnding time.Time) (bool, error)
	ListRuns(page pagination.PageRequest) (*pagination.PageResponse[models.ProfitLog], error)
}

// NotificationServicer defines the contract for in-app notifications.
// Notify is best-effort and never fails the caller.
type NotificationServicer interface {
	Notify(ctx context.Context, userID string, kind models.NotificationType, title, message string, data map[string]interface{})
	GetUserNotifications(userID string, unreadOnly bool, page pagination.PageRequest) (*pagination.PageResponse[models.Notification], error)
	MarkRead(userID, notificationID string) (*models.Notification, error)
	MarkAllRead(userID string) (int64, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
	List(filter AuditFilter, page pagination.PageRequest) (*pagination.PageResponse[models.AuditLog], error)
}
