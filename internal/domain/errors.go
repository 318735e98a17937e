package domain

import (
	"errors"
	"net/http"
)

// ErrNotFound is returned by repositories when no row matches the owner and id.
var ErrNotFound = errors.New("not found")

// Error codes surfaced to clients in the "code" field.
const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeRegistration      = "REGISTRATION_ERROR"
	CodeInvalidCredential = "INVALID_CREDENTIALS"
	CodeWeakPassword      = "WEAK_PASSWORD"
	CodeMissingPasswords  = "MISSING_PASSWORDS"
	CodeInvalidPassword   = "INVALID_PASSWORD"
	CodeInvalidRefresh    = "INVALID_REFRESH_TOKEN"
	CodeInvalidReset      = "INVALID_RESET_TOKEN"
	CodeAccountInactive   = "ACCOUNT_INACTIVE"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeNotFound          = "NOT_FOUND"
	CodeConflict          = "CONFLICT"
	CodeInvalidState      = "INVALID_STATE"
	CodeAIUnavailable     = "AI_UNAVAILABLE"
	CodeAIError           = "AI_ERROR"
	CodeInternal          = "INTERNAL_ERROR"
)

// AppError is a domain rule violation with the HTTP status it maps to.
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	return e.Code + ": " + e.Message
}

func NewAppError(status int, code, message string) *AppError {
	return &AppError{Status: status, Code: code, Message: message}
}

func NewValidationError(message string, details any) *AppError {
	return &AppError{Status: http.StatusBadRequest, Code: CodeValidation, Message: message, Details: details}
}

func NewNotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotFound, message)
}

func NewUnauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, CodeUnauthorized, message)
}

func NewInvalidState(message string) *AppError {
	return NewAppError(http.StatusConflict, CodeInvalidState, message)
}

// AsAppError unwraps err into an *AppError when one is present in the chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
