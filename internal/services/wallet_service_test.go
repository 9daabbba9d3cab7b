package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"profitflow/internal/models"
	"profitflow/internal/pagination"
	"profitflow/internal/testutil"
)

func newTestWalletService(db *gorm.DB) *walletService {
	return &walletService{db: db, audit: NewAuditService(db)}
}

func creditInTx(t *testing.T, db *gorm.DB, svc WalletServicer, p CreditParams) (*LedgerEntry, error) {
	t.Helper()
	var entry *LedgerEntry
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		entry, err = svc.Credit(tx, p)
		return err
	})
	return entry, err
}

func TestWalletCredit(t *testing.T) {
	t.Run("creates_wallet_on_first_credit", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestWalletService(db)
		user := testutil.CreateTestUser(t, db)

		entry, err := creditInTx(t, db, svc, CreditParams{
			UserID:   user.ID,
			Currency: "usd",
			Amount:   decimal.RequireFromString("12.5"),
			Type:     models.TransactionProfit,
		})
		testutil.AssertNoError(t, err)

		if entry.Wallet.Currency != "USD" {
			t.Errorf("expected currency USD, got %s", entry.Wallet.Currency)
		}
		testutil.AssertDecimal(t, entry.Wallet.Balance, "12.5")
		testutil.AssertDecimal(t, testutil.WalletBalance(t, db, user.ID, "USD"), "12.5")
		if entry.Transaction.Status != models.TransactionCompleted {
			t.Errorf("expected COMPLETED, got %s", entry.Transaction.Status)
		}
		if entry.Transaction.WalletID == nil || *entry.Transaction.WalletID != entry.Wallet.ID {
			t.Error("expected transaction to reference the wallet")
		}
	})

	t.Run("rounds_to_eight_places_with_one_transaction", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestWalletService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestWallet(t, db, user.ID, "USD", "100.12345678")

		entry, err := creditInTx(t, db, svc, CreditParams{
			UserID:   user.ID,
			Currency: "USD",
			Amount:   decimal.RequireFromString("0.000000014"),
			Type:     models.TransactionAdminCredit,
		})
		testutil.AssertNoError(t, err)

		testutil.AssertDecimal(t, entry.Wallet.Balance, "100.12345679")
		testutil.AssertDecimal(t, *entry.Transaction.BalanceAfter, "100.12345679")
		if n := testutil.CountRows(t, db, &models.Transaction{}, "user_id = ?", user.ID); n != 1 {
			t.Errorf("expected exactly 1 transaction, got %d", n)
		}
	})

	t.Run("rejects_non_positive_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestWalletService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := creditInTx(t, db, svc, CreditParams{
			UserID: user.ID, Currency: "USD", Amount: decimal.Zero, Type: models.TransactionProfit,
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("rejects_debit_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestWalletService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := creditInTx(t, db, svc, CreditParams{
			UserID: user.ID, Currency: "USD", Amount: decimal.NewFromInt(1), Type: models.TransactionWithdrawal,
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("duplicate_period_key_rolls_back", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestWalletService(db)
		user := testutil.CreateTestUser(t, db)
		key := "2024-01-07:inv-1"

		_, err := creditInTx(t, db, svc, CreditParams{
			UserID: user.ID, Currency: "USD", Amount: decimal.NewFromInt(10), Type: models.TransactionProfit, PeriodKey: &key,
		})
		testutil.AssertNoError(t, err)

		_, err = creditInTx(t, db, svc, CreditParams{
			UserID: user.ID, Currency: "USD", Amount: decimal.NewFromInt(10), Type: models.TransactionProfit, PeriodKey: &key,
		})
		if err == nil {
			t.Fatal("expected duplicate period key to fail")
		}
		if !isDuplicateKey(err) {
			t.Errorf("expected duplicate key error, got %v", err)
		}
		testutil.AssertDecimal(t, testutil.WalletBalance(t, db, user.ID, "USD"), "10")
	})
}

func TestWalletWithdraw(t *testing.T) {
	t.Run("debits_balance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestWalletService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestWallet(t, db, user.ID, "USD", "50")

		entry, err := svc.Withdraw(user.ID, "USD", decimal.NewFromInt(20))
		testutil.AssertNoError(t, err)

		testutil.AssertDecimal(t, entry.Wallet.Balance, "30")
		if entry.Transaction.Type != models.TransactionWithdrawal {
			t.Errorf("expected WITHDRAWAL, got %s", entry.Transaction.Type)
		}
	})

	t.Run("insufficient_balance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestWalletService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestWallet(t, db, user.ID, "USD", "5")

		_, err := svc.Withdraw(user.ID, "USD", decimal.NewFromInt(20))
		testutil.AssertAppError(t, err, "INSUFFICIENT_BALANCE")
		testutil.AssertDecimal(t, testutil.WalletBalance(t, db, user.ID, "USD"), "5")
	})

	t.Run("debit_types", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestWalletService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.Credit(db, CreditParams{UserID: user.ID, Currency: "USD", Amount: decimal.NewFromInt(100), Type: models.TransactionDeposit})
		testutil.AssertNoError(t, err)

		_, err = svc.Debit(db, DebitParams{UserID: user.ID, Currency: "USD", Amount: decimal.NewFromInt(10), Type: models.TransactionProfit})
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		entry, err := svc.Debit(db, DebitParams{UserID: user.ID, Currency: "USD", Amount: decimal.NewFromInt(60), Type: models.TransactionInvestment})
		testutil.AssertNoError(t, err)
		if entry.Transaction.Type != models.TransactionInvestment {
			t.Errorf("expected INVESTMENT, got %s", entry.Transaction.Type)
		}

		rec, err := svc.Reconcile(user.ID, "USD")
		testutil.AssertNoError(t, err)
		testutil.AssertDecimal(t, rec.Balance, "40")
		testutil.AssertDecimal(t, rec.Difference, "0")
	})
}

func TestWalletAdminCredit(t *testing.T) {
	t.Run("credits_and_audits", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestWalletService(db)
		admin := testutil.CreateTestAdmin(t, db)
		user := testutil.CreateTestUser(t, db)

		entry, err := svc.AdminCredit(admin.ID, user.ID, "USD", decimal.NewFromInt(75), "bonus")
		testutil.AssertNoError(t, err)

		if entry.Transaction.Type != models.TransactionAdminCredit {
			t.Errorf("expected ADMIN_CREDIT, got %s", entry.Transaction.Type)
		}
		if n := testutil.CountRows(t, db, &models.AuditLog{}, "action = ?", "ADMIN_CREDIT"); n != 1 {
			t.Errorf("expected 1 audit entry, got %d", n)
		}
	})

	t.Run("unknown_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestWalletService(db)
		admin := testutil.CreateTestAdmin(t, db)

		_, err := svc.AdminCredit(admin.ID, "00000000-0000-0000-0000-000000000000", "USD", decimal.NewFromInt(1), "")
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}

func TestWalletReconcile(t *testing.T) {
	t.Run("balanced", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestWalletService(db)
		user := testutil.CreateTestUser(t, db)

		for _, amt := range []string{"10.5", "4.25"} {
			_, err := creditInTx(t, db, svc, CreditParams{
				UserID: user.ID, Currency: "USD", Amount: decimal.RequireFromString(amt), Type: models.TransactionProfit,
			})
			testutil.AssertNoError(t, err)
		}
		_, err := svc.Withdraw(user.ID, "USD", decimal.NewFromInt(3))
		testutil.AssertNoError(t, err)

		rec, err := svc.Reconcile(user.ID, "USD")
		testutil.AssertNoError(t, err)
		testutil.AssertDecimal(t, rec.LedgerTotal, "11.75")
		if !rec.Balanced() || rec.Entries != 3 {
			t.Errorf("expected balanced ledger with 3 entries, got %+v", rec)
		}
	})

	t.Run("mismatch", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestWalletService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestWallet(t, db, user.ID, "USD", "9")

		rec, err := svc.Reconcile(user.ID, "USD")
		testutil.AssertAppError(t, err, "LEDGER_MISMATCH")
		testutil.AssertDecimal(t, rec.Difference, "9")
	})

	t.Run("missing_wallet", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestWalletService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.Reconcile(user.ID, "EUR")
		testutil.AssertAppError(t, err, "WALLET_NOT_FOUND")
	})
}

func TestGetUserTransactions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := newTestWalletService(db)
	user := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)

	for _, uid := range []string{user.ID, user.ID, other.ID} {
		_, err := creditInTx(t, db, svc, CreditParams{
			UserID: uid, Currency: "USD", Amount: decimal.NewFromInt(1), Type: models.TransactionProfit,
		})
		testutil.AssertNoError(t, err)
	}

	profit := models.TransactionProfit
	resp, err := svc.GetUserTransactions(user.ID, pagination.PageRequest{Page: 1, PageSize: 1}, TransactionFilter{Type: &profit})
	testutil.AssertNoError(t, err)

	if resp.TotalItems != 2 || resp.TotalPages != 2 || len(resp.Data) != 1 {
		t.Errorf("unexpected page: total=%d pages=%d len=%d", resp.TotalItems, resp.TotalPages, len(resp.Data))
	}
}
