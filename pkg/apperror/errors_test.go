package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without wrapped error",
			appErr:   New("FUND_001", "Insufficient funds", http.StatusPaymentRequired),
			expected: "[FUND_001] Insufficient funds",
		},
		{
			name:     "with wrapped error",
			appErr:   Wrap("SYS_001", "DB error", http.StatusInternalServerError, fmt.Errorf("connection refused")),
			expected: "[SYS_001] DB error: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appErr.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("inner error")
	appErr := Wrap("SYS_001", "wrapped", http.StatusInternalServerError, inner)

	assert.True(t, errors.Is(appErr, inner))
}

func TestAppError_IsNilUnwrap(t *testing.T) {
	appErr := New("FUND_001", "test", http.StatusBadRequest)
	assert.Nil(t, appErr.Unwrap())
}

func TestLedgerErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"InsufficientFunds", ErrInsufficientFunds(), "FUND_001", 402},
		{"SpendingLimitExceeded", ErrSpendingLimitExceeded(), "FUND_002", 422},
		{"InvalidAmount", ErrInvalidAmount(), "FUND_003", 400},
		{"NotFound", ErrNotFound("Vault"), "FUND_004", 404},
		{"AlreadyExists", ErrAlreadyExists("Treasury"), "FUND_005", 409},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestOracleAndCalcErrors(t *testing.T) {
	inner := fmt.Errorf("publish time too old")
	staleErr := ErrStaleOrMismatchedPrice(inner)
	assert.Equal(t, "ORCL_001", staleErr.Code)
	assert.Equal(t, 503, staleErr.HTTPStatus)
	assert.True(t, errors.Is(staleErr, inner))

	calcErr := ErrArithmeticFault(fmt.Errorf("mul overflow"))
	assert.Equal(t, "CALC_001", calcErr.Code)
	assert.Equal(t, 500, calcErr.HTTPStatus)
}

func TestAuthErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"AuthorizationFault", ErrAuthorizationFault(), "AUTH_001", 403},
		{"InvalidCredentials", ErrInvalidCredentials(), "AUTH_002", 401},
		{"UsernameExists", ErrUsernameExists(), "AUTH_003", 409},
		{"InvalidToken", ErrInvalidToken(), "AUTH_004", 401},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestSettlementError(t *testing.T) {
	inner := fmt.Errorf("processor timeout")
	err := ErrSettlementFailed(inner)
	assert.Equal(t, "STLM_001", err.Code)
	assert.Equal(t, 502, err.HTTPStatus)
	assert.True(t, errors.Is(err, inner))
}

func TestNotFoundEntity(t *testing.T) {
	err := ErrNotFound("YieldAccount")
	assert.Contains(t, err.Message, "YieldAccount")
	assert.Equal(t, "FUND_004", err.Code)
}
