package services

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "profitflow/internal/errors"
	"profitflow/internal/models"
)

// AccountSummary is the investor's dashboard view of their own account.
type AccountSummary struct {
	Wallets           []models.Wallet `json:"wallets"`
	ActiveInvestments int64           `json:"active_investments"`
	ActivePrincipal   decimal.Decimal `json:"active_principal"`
	LifetimeProfit    decimal.Decimal `json:"lifetime_profit"`
}

type userService struct {
	db              *gorm.DB
	defaultCurrency string
}

// NewUserService creates a new UserServicer. New investors get an empty
// wallet in defaultCurrency; an empty currency skips that.
func NewUserService(db *gorm.DB, defaultCurrency string) UserServicer {
	return &userService{db: db, defaultCurrency: strings.ToUpper(defaultCurrency)}
}

// CreateUser registers an investor and opens their default wallet in the same
// transaction.
func (s *userService) CreateUser(email, password, firstName, lastName string) (*models.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "email and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user := &models.User{
		Email:     email,
		Password:  string(hash),
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		Role:      models.RoleUser,
		IsActive:  true,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var taken int64
		if err := tx.Unscoped().Model(&models.User{}).Where("email = ?", email).Count(&taken).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if taken > 0 {
			return apperrors.ErrDuplicateEmail
		}

		if err := tx.Create(user).Error; err != nil {
			if isDuplicateKey(err) {
				return apperrors.ErrDuplicateEmail
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if s.defaultCurrency == "" {
			return nil
		}
		wallet := &models.Wallet{UserID: user.ID, Currency: s.defaultCurrency, Balance: decimal.Zero}
		if err := tx.Create(wallet).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		user.Wallets = []models.Wallet{*wallet}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByEmail retrieves an active user by email.
func (s *userService) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.db.Where("email = ? AND is_active = ?", normalizeEmail(email), true).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// GetUserByID retrieves a user by ID
func (s *userService) GetUserByID(id string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

func (s *userService) VerifyPassword(user *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) == nil
}

// AttemptLogin returns the user when the credentials match. Unknown emails,
// deactivated accounts and wrong passwords all produce the same error.
func (s *userService) AttemptLogin(email, password string) (*models.User, error) {
	user, err := s.GetUserByEmail(email)
	if errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !s.VerifyPassword(user, password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}

// GetAccountSummary aggregates wallets, live principal and profit paid so far.
func (s *userService) GetAccountSummary(userID string) (*AccountSummary, error) {
	summary := &AccountSummary{Wallets: []models.Wallet{}}

	if err := s.db.Where("user_id = ?", userID).Order("currency").Find(&summary.Wallets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var active []models.Investment
	err := s.db.Select("principal").
		Where("user_id = ? AND status = ?", userID, models.InvestmentActive).
		Find(&active).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	summary.ActiveInvestments = int64(len(active))
	for _, inv := range active {
		summary.ActivePrincipal = summary.ActivePrincipal.Add(inv.Principal)
	}

	// decimals are summed in Go; SQLite has no exact decimal SUM
	var profits []models.Transaction
	err = s.db.Select("amount").
		Where("user_id = ? AND type = ? AND status = ?", userID, models.TransactionProfit, models.TransactionCompleted).
		Find(&profits).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	for _, p := range profits {
		summary.LifetimeProfit = summary.LifetimeProfit.Add(p.Amount)
	}
	return summary, nil
}

// SetRole changes a user's role. Used by the admin bootstrap command.
func (s *userService) SetRole(email string, role models.Role) (*models.User, error) {
	if role != models.RoleUser && role != models.RoleAdmin {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "role must be user or admin")
	}
	user, err := s.GetUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(user).Update("role", role).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	user.Role = role
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
