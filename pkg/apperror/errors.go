package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Reason is a stable, machine-readable error category
type Reason string

const (
	ReasonNotFound             Reason = "not_found"
	ReasonValidation           Reason = "validation_error"
	ReasonInsufficientStock    Reason = "insufficient_stock"
	ReasonDuplicateBill        Reason = "duplicate_bill"
	ReasonAmountExceedsPending Reason = "amount_exceeds_pending"
	ReasonConflict             Reason = "conflict"
	ReasonUnauthorized         Reason = "unauthorized"
	ReasonForbidden            Reason = "forbidden"
	ReasonPersistence          Reason = "persistence_failure"
	ReasonRateLimited          Reason = "rate_limited"
	ReasonUnavailable          Reason = "unavailable"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int            `json:"code"`
	Reason  Reason         `json:"reason"`
	Message string         `json:"message"`
	Errors  []FieldError   `json:"errors,omitempty"`
	Details map[string]any `json:"details,omitempty"`

	cause error
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.cause
}

// Is matches on Reason so sentinel comparisons work with errors.Is
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Reason == t.Reason && (t.Message == "" || t.Message == e.Message)
}

// Common errors
var (
	ErrUnauthorized       = &AppError{Code: http.StatusUnauthorized, Reason: ReasonUnauthorized, Message: "Unauthorized"}
	ErrForbidden          = &AppError{Code: http.StatusForbidden, Reason: ReasonForbidden, Message: "Forbidden"}
	ErrInternalServer     = &AppError{Code: http.StatusInternalServerError, Reason: ReasonPersistence, Message: "Internal server error"}
	ErrInvalidCredentials = &AppError{Code: http.StatusUnauthorized, Reason: ReasonUnauthorized, Message: "Invalid email or password"}
	ErrInvalidToken       = &AppError{Code: http.StatusUnauthorized, Reason: ReasonUnauthorized, Message: "Invalid token"}
)

// NewAppError creates a new application error
func NewAppError(code int, reason Reason, message string) *AppError {
	return &AppError{
		Code:    code,
		Reason:  reason,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Reason:  ReasonValidation,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewFieldError is a shorthand for a single-field validation failure
func NewFieldError(field, message string) *AppError {
	return NewValidationError([]FieldError{{Field: field, Message: message}})
}

// NewBadRequestError creates a validation error for a malformed request
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Reason:  ReasonValidation,
		Message: message,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Reason:  ReasonNotFound,
		Message: resource + " not found",
	}
}

// NewConflictError creates a conflict error with a custom message
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Reason:  ReasonConflict,
		Message: message,
	}
}

// NewInsufficientStockError reports a feed that cannot cover the requested quantity
func NewInsufficientStockError(feedName string, available int) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Reason:  ReasonInsufficientStock,
		Message: fmt.Sprintf("Insufficient stock for %s. Available: %d", feedName, available),
		Details: map[string]any{
			"feed_name": feedName,
			"available": available,
		},
	}
}

// NewDuplicateBillError points the caller at the bill that was already created
func NewDuplicateBillError(billID, billNumber string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Reason:  ReasonDuplicateBill,
		Message: fmt.Sprintf("Duplicate bill detected. A similar bill (%s) was just created", billNumber),
		Details: map[string]any{
			"bill_id":     billID,
			"bill_number": billNumber,
		},
	}
}

// NewAmountExceedsPendingError rejects a payment larger than what is owed
func NewAmountExceedsPendingError(pending float64) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Reason:  ReasonAmountExceedsPending,
		Message: fmt.Sprintf("Payment amount cannot exceed pending amount (%.2f)", pending),
		Details: map[string]any{
			"pending_amount": pending,
		},
	}
}

// NewPersistenceError wraps a storage failure. The cause is kept for logs
// and never rendered to clients.
func NewPersistenceError(op string, cause error) *AppError {
	return &AppError{
		Code:    http.StatusInternalServerError,
		Reason:  ReasonPersistence,
		Message: "Failed to " + op,
		cause:   cause,
	}
}

// NewUnavailableError reports a device or dependency that cannot be reached
func NewUnavailableError(message string, cause error) *AppError {
	return &AppError{
		Code:    http.StatusServiceUnavailable,
		Reason:  ReasonUnavailable,
		Message: message,
		cause:   cause,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// HasReason reports whether err is an AppError with the given reason
func HasReason(err error, reason Reason) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Reason == reason
	}
	return false
}

// GetAppError converts an error to AppError if possible. Unknown errors
// become a generic internal error that keeps the original as its cause.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Reason:  ReasonPersistence,
		Message: ErrInternalServer.Message,
		cause:   err,
	}
}
