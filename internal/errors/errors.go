// Package errors provides the structured error type shared by services and
// handlers. Service-layer errors are AppErrors so that responses stay
// consistent and never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Is matches any AppError carrying the same code, so wrapped copies of a
// sentinel still satisfy errors.Is.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
	ErrInvalidAPIKey      = &AppError{Code: "INVALID_API_KEY", Message: "Invalid or missing API key", StatusCode: http.StatusUnauthorized}
)

// General errors.
var (
	ErrInvalidInput        = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound            = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer      = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
	ErrServerConfiguration = &AppError{Code: "server_configuration_error", Message: "The server is missing required configuration", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
)

// Plan errors.
var (
	ErrPlanNotFound    = &AppError{Code: "PLAN_NOT_FOUND", Message: "Investment plan not found", StatusCode: http.StatusNotFound}
	ErrUnknownPlan     = &AppError{Code: "UNKNOWN_PLAN", Message: "Investment references a plan with no allocation", StatusCode: http.StatusBadRequest}
	ErrDuplicatePlan   = &AppError{Code: "DUPLICATE_PLAN", Message: "An investment plan with this id already exists", StatusCode: http.StatusConflict}
	ErrAmountOutOfPlan = &AppError{Code: "AMOUNT_OUT_OF_RANGE", Message: "Amount is outside the plan's limits", StatusCode: http.StatusBadRequest}
)

// Investment errors.
var (
	ErrInvestmentNotFound  = &AppError{Code: "INVESTMENT_NOT_FOUND", Message: "Investment not found", StatusCode: http.StatusNotFound}
	ErrInvalidStatusChange = &AppError{Code: "INVALID_STATUS_TRANSITION", Message: "Investment cannot move to the requested status", StatusCode: http.StatusConflict}
	ErrPlanInactive        = &AppError{Code: "PLAN_INACTIVE", Message: "Investment plan is not accepting new investments", StatusCode: http.StatusBadRequest}
)

// Wallet & transaction errors.
var (
	ErrWalletNotFound      = &AppError{Code: "WALLET_NOT_FOUND", Message: "Wallet not found", StatusCode: http.StatusNotFound}
	ErrTransactionNotFound = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found", StatusCode: http.StatusNotFound}
	ErrInsufficientBalance = &AppError{Code: "INSUFFICIENT_BALANCE", Message: "Insufficient wallet balance", StatusCode: http.StatusBadRequest}
	ErrTransactionSettled  = &AppError{Code: "TRANSACTION_SETTLED", Message: "Transaction is no longer pending", StatusCode: http.StatusConflict}
	ErrLedgerMismatch      = &AppError{Code: "LEDGER_MISMATCH", Message: "Wallet balance does not match its transaction history", StatusCode: http.StatusConflict}
)

// Distribution errors. The lowercase codes are part of the public contract of
// the distribution endpoint.
var (
	ErrAlreadyDistributed  = &AppError{Code: "already_distributed", Message: "Profits for this week have already been distributed", StatusCode: http.StatusConflict}
	ErrInvalidMode         = &AppError{Code: "invalid_mode", Message: "Mode must be baseline or stream", StatusCode: http.StatusBadRequest}
	ErrPerformanceNotFound = &AppError{Code: "PERFORMANCE_NOT_FOUND", Message: "No performance record for this week", StatusCode: http.StatusNotFound}
)

// Notification errors.
var (
	ErrNotificationNotFound = &AppError{Code: "NOTIFICATION_NOT_FOUND", Message: "Notification not found", StatusCode: http.StatusNotFound}
)
