package apperrors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode identifies an error class to API clients.
type ErrorCode string

// AppError is the application error carried from services up to handlers.
type AppError struct {
	Code     ErrorCode   `json:"code"`
	Message  string      `json:"message"`
	Details  interface{} `json:"details,omitempty"`
	Err      error       `json:"-"`
	HTTPCode int         `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches two AppErrors by code, so sentinels below work with errors.Is
// even after WithDetails produced a copy.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !stderrors.As(target, &t) {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

func New(code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		HTTPCode: httpCode,
	}
}

func Wrap(err error, code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Err:      err,
		HTTPCode: httpCode,
	}
}

// WithDetails returns a copy carrying extra detail payload, leaving the
// sentinel itself untouched.
func (e *AppError) WithDetails(details interface{}) *AppError {
	clone := *e
	clone.Details = details
	return &clone
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	type alias struct {
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}
	return json.Marshal(&alias{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}

func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// Predefined errors
var (
	// Authentication
	ErrInvalidCredentials = New(CodeInvalidCredentials, "Invalid email or password", http.StatusUnauthorized)
	ErrUnauthorized       = New(CodeUnauthorized, "Authentication required", http.StatusUnauthorized)
	ErrInvalidToken       = New(CodeInvalidToken, "Invalid or expired token", http.StatusUnauthorized)
	ErrWeakPassword       = New(CodeWeakPassword, "Password must be at least 8 characters", http.StatusBadRequest)
	ErrPasswordMismatch   = New(CodeValidationFailed, "Passwords do not match", http.StatusBadRequest)
	ErrInvalidUserRole    = New(CodeInvalidUserRole, "Invalid user role", http.StatusBadRequest)

	// Accounts and verification
	ErrUserNotFound            = New(CodeNotFound, "User not found", http.StatusNotFound)
	ErrEmailAlreadyExists      = New(CodeConflict, "Email already exists", http.StatusConflict)
	ErrPhoneAlreadyExists      = New(CodeConflict, "Phone already exists", http.StatusConflict)
	ErrNationalIDNotRegistered = New(CodeNotFound, "national id not registered", http.StatusNotFound)
	ErrNationalIDAlreadyLinked = New(CodeConflict, "National ID is already linked to another account", http.StatusConflict)
	ErrNotACompany             = New(CodeNotFound, "Company account not found", http.StatusNotFound)
	ErrInvalidVerifyAction     = New(CodeValidationFailed, "Verification action must be 'approve' or 'reject'", http.StatusBadRequest)
	ErrTradesForWorkersOnly    = New(CodeForbidden, "Only workers can have trades", http.StatusForbidden)

	// Jobs
	ErrJobNotFound   = New(CodeNotFound, "Job not found", http.StatusNotFound)
	ErrTradeNotFound = New(CodeNotFound, "Trade not found", http.StatusNotFound)
	ErrNotJobOwner   = New(CodeForbidden, "not job owner", http.StatusForbidden)
	ErrCannotPostJob = New(CodeForbidden, "Only owners and companies can post jobs", http.StatusForbidden)

	// Applications
	ErrJobNotOpen           = New(CodeInvalidState, "job not open", http.StatusConflict)
	ErrDuplicateApplication = New(CodeConflict, "duplicate application", http.StatusConflict)
	ErrCannotApply          = New(CodeForbidden, "Only workers and students can apply to jobs", http.StatusForbidden)
	ErrApplicationNotFound  = New(CodeNotFound, "Application not found", http.StatusNotFound)

	// Ratings
	ErrDuplicateRating = New(CodeConflict, "User already rated for this job", http.StatusConflict)
	ErrInvalidRating   = New(CodeValidationFailed, "Rating must be between 1 and 5", http.StatusBadRequest)

	ErrValidationFailed = New(CodeValidationFailed, "Validation failed", http.StatusBadRequest)
)

// ValidationError builds a 400 with per-field details.
func ValidationError(details interface{}) *AppError {
	return ErrValidationFailed.WithDetails(details)
}

func NewValidationError(message string) *AppError {
	return New(CodeValidationFailed, message, http.StatusBadRequest)
}

func NewNotFoundError(message string) *AppError {
	return New(CodeNotFound, message, http.StatusNotFound)
}

func NewConflictError(message string) *AppError {
	return New(CodeConflict, message, http.StatusConflict)
}

func NewPermissionError(message string) *AppError {
	return New(CodeForbidden, message, http.StatusForbidden)
}

func NewStateError(message string) *AppError {
	return New(CodeInvalidState, message, http.StatusConflict)
}

func InternalError(err error) *AppError {
	return Wrap(err, CodeInternalError, "Internal server error", http.StatusInternalServerError)
}

func EmailDeliveryError(err error) *AppError {
	return Wrap(err, CodeEmailDelivery, "Failed to deliver email", http.StatusBadGateway)
}
