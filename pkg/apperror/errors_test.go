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
			appErr:   New("ATM_001", "Not connected", http.StatusConflict),
			expected: "[ATM_001] Not connected",
		},
		{
			name:     "with wrapped error",
			appErr:   Wrap("WALLET_002", "Wallet connection failed", http.StatusBadGateway, fmt.Errorf("user rejected")),
			expected: "[WALLET_002] Wallet connection failed: user rejected",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appErr.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("connection refused")
	appErr := ErrBalanceUnavailable(inner)

	assert.True(t, errors.Is(appErr, inner))
	assert.Nil(t, ErrNotConnected().Unwrap())
}

func TestErrorCatalog(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"WalletRequired", ErrWalletRequired(), "WALLET_001", 412},
		{"ConnectFailed", ErrConnectFailed(nil), "WALLET_002", 502},
		{"NotConnected", ErrNotConnected(), "ATM_001", 409},
		{"InvalidAmount", ErrInvalidAmount(nil), "ATM_002", 400},
		{"InFlight", ErrOperationInFlight("deposit"), "ATM_003", 409},
		{"BalanceUnavailable", ErrBalanceUnavailable(nil), "ATM_004", 502},
		{"InvalidSession", ErrInvalidSession(), "SESSION_001", 401},
		{"RateLimit", ErrRateLimitExceeded(), "RATE_001", 429},
		{"Internal", InternalError(nil), "SYS_001", 500},
		{"Validation", Validation("bad"), "SYS_002", 400},
		{"PayloadTooLarge", ErrPayloadTooLarge(), "SYS_003", 413},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
			assert.NotEmpty(t, tt.err.Message)
		})
	}
}

func TestErrOperationInFlight_NamesCategory(t *testing.T) {
	assert.Equal(t, "A withdrawal is already in progress", ErrOperationInFlight("withdrawal").Message)
}
