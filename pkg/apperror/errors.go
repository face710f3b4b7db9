package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Funds & Spending (FUND) ----

// ErrInsufficientFunds reports a failed balance-sufficiency precondition
// (withdraw, stake, unstake, treasury debit during liquidation).
func ErrInsufficientFunds() *AppError {
	return New("FUND_001", "Insufficient funds", http.StatusPaymentRequired)
}

// ErrSpendingLimitExceeded reports an authorization or payment exceeding
// the remaining spend headroom.
func ErrSpendingLimitExceeded() *AppError {
	return New("FUND_002", "The requested spend amount exceeds the remaining limit", http.StatusUnprocessableEntity)
}

func ErrInvalidAmount() *AppError {
	return New("FUND_003", "Invalid amount", http.StatusBadRequest)
}

func ErrNotFound(entity string) *AppError {
	return New("FUND_004", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

func ErrAlreadyExists(entity string) *AppError {
	return New("FUND_005", fmt.Sprintf("%s already exists", entity), http.StatusConflict)
}

// ---- Price Oracle (ORCL) ----

// ErrStaleOrMismatchedPrice reports oracle data that is too old or belongs
// to a different price feed than the one this system is fixed to.
func ErrStaleOrMismatchedPrice(err error) *AppError {
	return Wrap("ORCL_001", "Price update is stale or for the wrong feed", http.StatusServiceUnavailable, err)
}

// ---- Checked Arithmetic (CALC) ----

// ErrArithmeticFault reports a checked-arithmetic overflow, underflow or
// division by zero, or an invariant that should be impossible. Fatal for
// the transaction; nothing is committed.
func ErrArithmeticFault(err error) *AppError {
	return Wrap("CALC_001", "Arithmetic fault during ledger computation", http.StatusInternalServerError, err)
}

// ---- Authorization (AUTH) ----

// ErrAuthorizationFault reports a caller identity that does not match the
// record's owner, or a derived address that does not match its stored
// disambiguator.
func ErrAuthorizationFault() *AppError {
	return New("AUTH_001", "Caller is not authorized for this record", http.StatusForbidden)
}

func ErrInvalidCredentials() *AppError {
	return New("AUTH_002", "Invalid credentials", http.StatusUnauthorized)
}

func ErrUsernameExists() *AppError {
	return New("AUTH_003", "Username already exists", http.StatusConflict)
}

func ErrInvalidToken() *AppError {
	return New("AUTH_004", "Invalid or expired token", http.StatusUnauthorized)
}

// ---- Settlement (STLM) ----

// ErrSettlementFailed reports a failed external value transfer. The
// surrounding transaction is rolled back, so no ledger mutation survives.
func ErrSettlementFailed(err error) *AppError {
	return Wrap("STLM_001", "External value transfer failed", http.StatusBadGateway, err)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a request-validation error.
func Validation(message string) *AppError {
	return New("FUND_003", message, http.StatusBadRequest)
}
