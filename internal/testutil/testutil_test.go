package testutil_test

import (
	"testing"
	"time"

	"profitflow/internal/errors"
	"profitflow/internal/models"
	"profitflow/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	// Verify all tables exist by doing a simple count query on each model.
	var count int64
	for _, table := range []string{"users", "investment_plans", "investments", "wallets", "transactions", "profit_logs", "performance_records", "notifications", "outbox_events", "audit_logs"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestSetupTestDBIsolation(t *testing.T) {
	first := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, first)
	second := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, second)

	testutil.CreateTestUser(t, first)
	if n := testutil.CountRows(t, second, &models.User{}, ""); n != 0 {
		t.Errorf("expected isolated database, found %d users", n)
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	user := testutil.CreateTestUser(t, db)
	if user.ID == "" {
		t.Fatal("user should have an ID")
	}
	admin := testutil.CreateTestAdmin(t, db)
	if !admin.IsAdmin() {
		t.Error("expected admin role")
	}

	plan := testutil.CreateTestPlan(t, db, "pro", "5")
	testutil.AssertDecimal(t, plan.ReturnPercentage, "5")

	inv := testutil.CreateTestInvestment(t, db, user.ID, plan.ID, "1000", models.InvestmentActive)
	if inv.StartDate == nil {
		t.Error("active investment should have a start date")
	}

	testutil.CreateTestWallet(t, db, user.ID, "USD", "12.5")
	testutil.AssertDecimal(t, testutil.WalletBalance(t, db, user.ID, "USD"), "12.5")
	testutil.AssertDecimal(t, testutil.WalletBalance(t, db, user.ID, "EUR"), "0")

	record := testutil.CreateTestPerformanceRecord(t, db, time.Date(2024, 1, 7, 15, 0, 0, 0, time.UTC), map[string]string{"trading": "40"})
	if record.Week != "2024-01-07" {
		t.Errorf("expected week 2024-01-07, got %s", record.Week)
	}
}

func TestAssertAppError(t *testing.T) {
	err := errors.WithMessage(errors.ErrWalletNotFound, "custom message")
	testutil.AssertAppError(t, err, "WALLET_NOT_FOUND")
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}
