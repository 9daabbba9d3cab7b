package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "profitflow/internal/errors"
	"profitflow/internal/logger"
	"profitflow/internal/models"
	"profitflow/internal/pagination"
)

// moneyPlaces is the precision every stored balance and amount is rounded to.
const moneyPlaces = 8

// walletService maintains per-currency wallet balances and the transaction
// ledger that explains them.
type walletService struct {
	db    *gorm.DB
	audit AuditServicer
}

// NewWalletService creates a new WalletServicer.
func NewWalletService(db *gorm.DB, audit AuditServicer) WalletServicer {
	return &walletService{db: db, audit: audit}
}

// lockWallet loads the (user, currency) wallet for update, creating it with a
// zero balance on first use.
func (s *walletService) lockWallet(tx *gorm.DB, userID, currency string) (*models.Wallet, error) {
	var wallet models.Wallet
	find := func() (int64, error) {
		res := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND currency = ?", userID, currency).
			Limit(1).Find(&wallet)
		return res.RowsAffected, res.Error
	}

	n, err := find()
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return &wallet, nil
	}

	// Insert-if-absent keeps a concurrent first credit from aborting the
	// surrounding transaction on the unique (user, currency) index.
	fresh := models.Wallet{UserID: userID, Currency: currency, Balance: decimal.Zero}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&fresh).Error; err != nil {
		return nil, err
	}
	if _, err := find(); err != nil {
		return nil, err
	}
	return &wallet, nil
}

// apply moves the wallet balance by delta and writes txn as its ledger row.
func (s *walletService) apply(tx *gorm.DB, wallet *models.Wallet, delta decimal.Decimal, txn *models.Transaction) (*LedgerEntry, error) {
	newBalance := wallet.Balance.Add(delta).Round(moneyPlaces)
	if newBalance.IsNegative() {
		return nil, apperrors.ErrInsufficientBalance
	}

	if err := tx.Model(wallet).Update("balance", newBalance).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	wallet.Balance = newBalance

	txn.WalletID = &wallet.ID
	txn.Status = models.TransactionCompleted
	txn.BalanceAfter = &newBalance

	var err error
	if txn.ID == "" {
		err = tx.Create(txn).Error
	} else {
		err = tx.Model(txn).Updates(map[string]interface{}{
			"wallet_id":     txn.WalletID,
			"status":        txn.Status,
			"balance_after": newBalance,
		}).Error
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &LedgerEntry{Wallet: wallet, Transaction: txn}, nil
}

// Credit adds a positive amount to the user's wallet in the given currency and
// records exactly one COMPLETED transaction. It must run inside tx.
func (s *walletService) Credit(tx *gorm.DB, p CreditParams) (*LedgerEntry, error) {
	if !p.Amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "credit amount must be positive")
	}
	switch p.Type {
	case models.TransactionDeposit, models.TransactionProfit, models.TransactionAdminCredit, models.TransactionPrincipalReturn:
	default:
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("%s is not a credit type", p.Type))
	}

	currency := strings.ToUpper(p.Currency)
	wallet, err := s.lockWallet(tx, p.UserID, currency)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	ref, err := toJSON(p.Reference)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	amount := p.Amount.Round(moneyPlaces)
	txn := &models.Transaction{
		UserID:       p.UserID,
		InvestmentID: p.InvestmentID,
		Type:         p.Type,
		Amount:       amount,
		Currency:     currency,
		Reference:    ref,
		PeriodKey:    p.PeriodKey,
	}
	return s.apply(tx, wallet, amount, txn)
}

// Debit removes a positive amount from the wallet and records it as a
// WITHDRAWAL or INVESTMENT transaction. It never overdraws.
func (s *walletService) Debit(tx *gorm.DB, p DebitParams) (*LedgerEntry, error) {
	if !p.Amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "debit amount must be positive")
	}
	if p.Type == "" {
		p.Type = models.TransactionWithdrawal
	}
	if !p.Type.IsDebit() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("%s is not a debit type", p.Type))
	}

	currency := strings.ToUpper(p.Currency)
	wallet, err := s.lockWallet(tx, p.UserID, currency)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	amount := p.Amount.Round(moneyPlaces)
	if wallet.Balance.LessThan(amount) {
		return nil, apperrors.ErrInsufficientBalance
	}

	ref, err := toJSON(p.Reference)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	txn := &models.Transaction{
		UserID:       p.UserID,
		InvestmentID: p.InvestmentID,
		Type:         p.Type,
		Amount:       amount,
		Currency:     currency,
		Reference:    ref,
	}
	return s.apply(tx, wallet, amount.Neg(), txn)
}

// Settle completes a PENDING transaction, applying it to the wallet.
func (s *walletService) Settle(tx *gorm.DB, txn *models.Transaction) (*LedgerEntry, error) {
	if txn.Status != models.TransactionPending {
		return nil, apperrors.ErrTransactionSettled
	}

	wallet, err := s.lockWallet(tx, txn.UserID, txn.Currency)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.apply(tx, wallet, txn.Signed(), txn)
}

// AdminCredit manually credits a user's wallet and audits the action.
func (s *walletService) AdminCredit(adminID, userID, currency string, amount decimal.Decimal, note string) (*LedgerEntry, error) {
	var count int64
	if err := s.db.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return nil, apperrors.ErrUserNotFound
	}

	var entry *LedgerEntry
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		entry, err = s.Credit(tx, CreditParams{
			UserID:    userID,
			Currency:  currency,
			Amount:    amount,
			Type:      models.TransactionAdminCredit,
			Reference: map[string]interface{}{"note": note, "admin_id": adminID},
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.audit.Log(adminID, "ADMIN_CREDIT", "wallet", entry.Wallet.ID, "", map[string]interface{}{
		"user_id":  userID,
		"currency": entry.Wallet.Currency,
		"amount":   entry.Transaction.Amount.String(),
	})
	return entry, nil
}

// Withdraw debits the user's own wallet. Payout to an external account is
// handled outside this service.
func (s *walletService) Withdraw(userID, currency string, amount decimal.Decimal) (*LedgerEntry, error) {
	var entry *LedgerEntry
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		entry, err = s.Debit(tx, DebitParams{UserID: userID, Currency: currency, Amount: amount})
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// GetUserWallets lists the user's wallets ordered by currency.
func (s *walletService) GetUserWallets(userID string) ([]models.Wallet, error) {
	var wallets []models.Wallet
	if err := s.db.Where("user_id = ?", userID).Order("currency").Find(&wallets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if wallets == nil {
		wallets = []models.Wallet{}
	}
	return wallets, nil
}

// GetUserTransactions lists the user's ledger, newest first.
func (s *walletService) GetUserTransactions(userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	query := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID)
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Currency != nil {
		query = query.Where("currency = ?", strings.ToUpper(*filter.Currency))
	}
	if filter.FromDate != nil {
		query = query.Where("created_at >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("created_at <= ?", *filter.ToDate)
	}

	resp, err := pagination.Fetch[models.Transaction](query, page, "created_at DESC, id DESC")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return resp, nil
}

// Reconcile checks that the wallet balance equals the signed sum of its
// completed transactions. A mismatch is returned alongside LEDGER_MISMATCH.
func (s *walletService) Reconcile(userID, currency string) (*Reconciliation, error) {
	var wallet models.Wallet
	err := s.db.Where("user_id = ? AND currency = ?", userID, strings.ToUpper(currency)).First(&wallet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrWalletNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var txns []models.Transaction
	err = s.db.Select("type", "amount").
		Where("wallet_id = ? AND status = ?", wallet.ID, models.TransactionCompleted).
		Find(&txns).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	total := decimal.Zero
	for i := range txns {
		total = total.Add(txns[i].Signed())
	}
	total = total.Round(moneyPlaces)

	rec := &Reconciliation{
		WalletID:    wallet.ID,
		UserID:      wallet.UserID,
		Currency:    wallet.Currency,
		Balance:     wallet.Balance,
		LedgerTotal: total,
		Difference:  wallet.Balance.Sub(total),
		Entries:     int64(len(txns)),
	}
	if !rec.Balanced() {
		logger.Get().Warnw("wallet ledger mismatch",
			"wallet_id", wallet.ID,
			"balance", wallet.Balance.String(),
			"ledger_total", total.String(),
		)
		return rec, apperrors.ErrLedgerMismatch
	}
	return rec, nil
}
