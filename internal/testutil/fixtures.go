package testutil

import (
	"encoding/json"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"profitflow/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a regular user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return CreateTestUserWithRole(t, db, fmt.Sprintf("user%d@test.com", nextID()), models.RoleUser)
}

// CreateTestAdmin creates an admin user.
func CreateTestAdmin(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return CreateTestUserWithRole(t, db, fmt.Sprintf("admin%d@test.com", nextID()), models.RoleAdmin)
}

// CreateTestUserWithRole creates a user with the given email and role.
// The password is always "password123".
func CreateTestUserWithRole(t *testing.T, db *gorm.DB, email string, role models.Role) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		Role:     role,
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestPlan creates an active weekly plan with the given baseline ROI
// and principal bounds of 10 to 1,000,000 USD.
func CreateTestPlan(t *testing.T, db *gorm.DB, id, baselinePct string) *models.InvestmentPlan {
	t.Helper()

	plan := &models.InvestmentPlan{
		ID:               id,
		Name:             fmt.Sprintf("Plan %s", id),
		ReturnPercentage: decimal.RequireFromString(baselinePct),
		MinAmount:        decimal.NewFromInt(10),
		MaxAmount:        decimal.NewFromInt(1_000_000),
		DurationDays:     90,
		PayoutFrequency:  models.PayoutWeekly,
		Currency:         "USD",
		Active:           true,
	}
	if err := db.Create(plan).Error; err != nil {
		t.Fatalf("failed to create test plan: %v", err)
	}
	return plan
}

// CreateTestInvestment creates an investment in the given status.
func CreateTestInvestment(t *testing.T, db *gorm.DB, userID, planID, principal string, status models.InvestmentStatus) *models.Investment {
	t.Helper()

	inv := &models.Investment{
		UserID:    userID,
		PlanID:    planID,
		Principal: decimal.RequireFromString(principal),
		Currency:  "USD",
		Status:    status,
	}
	if status != models.InvestmentPending {
		start := time.Now().UTC().AddDate(0, 0, -7)
		inv.StartDate = &start
	}
	if err := db.Create(inv).Error; err != nil {
		t.Fatalf("failed to create test investment: %v", err)
	}
	return inv
}

// CreateTestWallet creates a wallet holding the given balance. No transaction
// row is written, so tests that reconcile must account for that.
func CreateTestWallet(t *testing.T, db *gorm.DB, userID, currency, balance string) *models.Wallet {
	t.Helper()

	wallet := &models.Wallet{
		UserID:   userID,
		Currency: currency,
		Balance:  decimal.RequireFromString(balance),
	}
	if err := db.Create(wallet).Error; err != nil {
		t.Fatalf("failed to create test wallet: %v", err)
	}
	return wallet
}

// CreateTestPerformanceRecord stores stream percentages for the week of weekEnding.
func CreateTestPerformanceRecord(t *testing.T, db *gorm.DB, weekEnding time.Time, streams map[string]string) *models.PerformanceRecord {
	t.Helper()

	raw, err := json.Marshal(streams)
	if err != nil {
		t.Fatalf("failed to marshal streams: %v", err)
	}
	day := weekEnding.UTC().Truncate(24 * time.Hour)
	record := &models.PerformanceRecord{
		Week:       day.Format("2006-01-02"),
		WeekEnding: day,
		Streams:    datatypes.JSON(raw),
	}
	if err := db.Create(record).Error; err != nil {
		t.Fatalf("failed to create test performance record: %v", err)
	}
	return record
}

// WalletBalance reloads a user's wallet balance, returning zero when absent.
func WalletBalance(t *testing.T, db *gorm.DB, userID, currency string) decimal.Decimal {
	t.Helper()

	var wallet models.Wallet
	err := db.Where("user_id = ? AND currency = ?", userID, currency).Limit(1).Find(&wallet).Error
	if err != nil {
		t.Fatalf("failed to load wallet: %v", err)
	}
	return wallet.Balance
}

// CountRows counts rows of the given model matching an optional condition.
func CountRows(t *testing.T, db *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()

	var n int64
	q := db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	if err := q.Count(&n).Error; err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	return n
}
