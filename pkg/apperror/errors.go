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
	Err        error  `json:"-"` // internal cause, never sent to the client
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

// ---- Wallet provider (WALLET) ----

func ErrWalletRequired() *AppError {
	return New("WALLET_001", "A wallet provider is required to connect", http.StatusPreconditionFailed)
}

func ErrConnectFailed(err error) *AppError {
	return Wrap("WALLET_002", "Wallet connection failed", http.StatusBadGateway, err)
}

// ---- ATM operations (ATM) ----

func ErrNotConnected() *AppError {
	return New("ATM_001", "Connect a wallet before using the ATM", http.StatusConflict)
}

func ErrInvalidAmount(err error) *AppError {
	return Wrap("ATM_002", "Invalid amount", http.StatusBadRequest, err)
}

func ErrOperationInFlight(category string) *AppError {
	return New("ATM_003", fmt.Sprintf("A %s is already in progress", category), http.StatusConflict)
}

func ErrBalanceUnavailable(err error) *AppError {
	return Wrap("ATM_004", "Balance could not be read", http.StatusBadGateway, err)
}

// ---- Session (SESSION) ----

func ErrInvalidSession() *AppError {
	return New("SESSION_001", "Invalid or expired session", http.StatusUnauthorized)
}

// ---- Rate limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

func ErrPayloadTooLarge() *AppError {
	return New("SYS_003", "Request body too large", http.StatusRequestEntityTooLarge)
}

// Validation returns a request validation error.
func Validation(message string) *AppError {
	return New("SYS_002", message, http.StatusBadRequest)
}
