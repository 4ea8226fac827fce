package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError represents an application-level error with HTTP status code
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Detail     string `json:"detail,omitempty"`
	StatusCode int    `json:"-"`
}

func (e *AppError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Common error codes
const (
	ErrCodeBadRequest        = "bad_request"
	ErrCodeNotFound          = "not_found"
	ErrCodeConflict          = "conflict"
	ErrCodeExpired           = "expired"
	ErrCodeUnauthorized      = "unauthorized"
	ErrCodeRateLimited       = "rate_limited"
	ErrCodeInternalError     = "internal_error"
	ErrCodeProvisioningError = "provisioning_error"
	ErrCodePersistenceError  = "persistence_error"
	ErrCodeIssuanceError     = "issuance_error"
)

// Predefined errors
var (
	ErrBadRequest = &AppError{
		Code:       ErrCodeBadRequest,
		Message:    "Invalid request parameters",
		StatusCode: http.StatusBadRequest,
	}

	// ErrAccountNotFound carries the exact message clients match on.
	ErrAccountNotFound = &AppError{
		Code:       ErrCodeNotFound,
		Message:    "Can not find the account",
		StatusCode: http.StatusNotFound,
	}

	ErrUnauthorized = &AppError{
		Code:       ErrCodeUnauthorized,
		Message:    "Authentication required",
		StatusCode: http.StatusUnauthorized,
	}

	ErrRateLimited = &AppError{
		Code:       ErrCodeRateLimited,
		Message:    "Too many requests",
		StatusCode: http.StatusTooManyRequests,
	}

	ErrInternalError = &AppError{
		Code:       ErrCodeInternalError,
		Message:    "Internal server error",
		StatusCode: http.StatusInternalServerError,
	}
)

// New creates a new AppError
func New(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// NewWithDetail creates a new AppError with additional detail
func NewWithDetail(code, message, detail string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		Detail:     detail,
		StatusCode: statusCode,
	}
}

// Provisioning creates a provisioning error naming the failed sub-step.
// The message is part of the wallet envelope contract.
func Provisioning(step string, err error) *AppError {
	e := &AppError{
		Code:       ErrCodeProvisioningError,
		Message:    fmt.Sprintf("Internal error on `%s`", step),
		StatusCode: http.StatusInternalServerError,
	}
	if err != nil {
		e.Detail = err.Error()
	}
	return e
}

// Persistence creates a persistence error naming the failed store operation.
func Persistence(op string, err error) *AppError {
	e := &AppError{
		Code:       ErrCodePersistenceError,
		Message:    fmt.Sprintf("Internal error on `%s`", op),
		StatusCode: http.StatusInternalServerError,
	}
	if err != nil {
		e.Detail = err.Error()
	}
	return e
}

// Issuance creates a token issuance error.
func Issuance(err error) *AppError {
	e := &AppError{
		Code:       ErrCodeIssuanceError,
		Message:    "Internal error on `generate_token`",
		StatusCode: http.StatusInternalServerError,
	}
	if err != nil {
		e.Detail = err.Error()
	}
	return e
}

// DuplicateAddress creates a conflict error for an address collision.
func DuplicateAddress(address string) *AppError {
	return &AppError{
		Code:       ErrCodeConflict,
		Message:    "Wallet address already exists",
		Detail:     fmt.Sprintf("address: %s", address),
		StatusCode: http.StatusConflict,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
