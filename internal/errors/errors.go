// Package errors provides the application error type used across the
// ledger services. Every service-layer failure is an *AppError so that the
// transport can render a consistent envelope without leaking store details.
package errors

import (
	"net/http"
	"sort"
)

// AppError is a structured application error. Fields carries per-field
// validation messages and is only set for validation failures.
type AppError struct {
	Code       string              `json:"code"`
	Message    string              `json:"message"`
	StatusCode int                 `json:"-"`
	Fields     map[string][]string `json:"errors,omitempty"`
	Internal   error               `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is reports whether target carries the same code, so sentinel comparisons
// survive Wrap and WithMessage.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Wrap creates a new AppError with the sentinel's code/message/status wrapping an internal error.
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
		Fields:     sentinel.Fields,
		Internal:   sentinel.Internal,
	}
}

// FieldErrors accumulates validation messages keyed by field name.
type FieldErrors map[string][]string

// Add appends a message for field.
func (f FieldErrors) Add(field, message string) {
	f[field] = append(f[field], message)
}

// Has reports whether field has at least one message.
func (f FieldErrors) Has(field string) bool {
	return len(f[field]) > 0
}

// Err returns nil when empty, otherwise a validation AppError.
func (f FieldErrors) Err() error {
	if len(f) == 0 {
		return nil
	}
	return NewValidation(f)
}

// NewValidation builds a VALIDATION_FAILED error. The message mirrors the
// first violation, with a count of the remaining ones.
func NewValidation(fields FieldErrors) *AppError {
	msg := ErrValidation.Message
	if len(fields) > 0 {
		names := make([]string, 0, len(fields))
		total := 0
		for name, msgs := range fields {
			names = append(names, name)
			total += len(msgs)
		}
		sort.Strings(names)
		if first := fields[names[0]]; len(first) > 0 {
			msg = first[0]
			if total > 1 {
				msg += " (and more errors)"
			}
		}
	}
	return &AppError{
		Code:       ErrValidation.Code,
		Message:    msg,
		StatusCode: ErrValidation.StatusCode,
		Fields:     fields,
	}
}

// Field builds a validation error for a single field.
func Field(field, message string) *AppError {
	return NewValidation(FieldErrors{field: {message}})
}

// Authentication errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Unauthenticated.", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
	ErrInvalidToken       = &AppError{Code: "INVALID_TOKEN", Message: "Invalid or expired token", StatusCode: http.StatusUnauthorized}
)

// General errors.
var (
	ErrValidation     = &AppError{Code: "VALIDATION_FAILED", Message: "The given data was invalid.", StatusCode: http.StatusUnprocessableEntity}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusUnprocessableEntity}
)

// Account errors.
var (
	ErrAccountNotFound        = &AppError{Code: "ACCOUNT_NOT_FOUND", Message: "Account not found", StatusCode: http.StatusNotFound}
	ErrAccountHasTransactions = &AppError{Code: "ACCOUNT_HAS_TRANSACTIONS", Message: "Cannot delete account that has transactions", StatusCode: http.StatusUnprocessableEntity}
)

// Category errors.
var (
	ErrCategoryNotFound        = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Category not found", StatusCode: http.StatusNotFound}
	ErrCategoryHasTransactions = &AppError{Code: "CATEGORY_HAS_TRANSACTIONS", Message: "Cannot delete category that has transactions", StatusCode: http.StatusUnprocessableEntity}
	ErrCategoryHasChildren     = &AppError{Code: "CATEGORY_HAS_CHILDREN", Message: "Cannot delete category that has child categories", StatusCode: http.StatusUnprocessableEntity}
)

// Transaction errors.
var (
	ErrTransactionNotFound   = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found", StatusCode: http.StatusNotFound}
	ErrTransferNotEditable   = &AppError{Code: "TRANSFER_NOT_EDITABLE", Message: "Transfer transactions cannot be updated through this endpoint", StatusCode: http.StatusUnprocessableEntity}
	ErrTransferAccountsOwned = &AppError{Code: "ACCOUNT_NOT_FOUND", Message: "One or both accounts not found or do not belong to you", StatusCode: http.StatusNotFound}
)

// Attachment errors.
var (
	ErrAttachmentNotFound = &AppError{Code: "ATTACHMENT_NOT_FOUND", Message: "Attachment not found", StatusCode: http.StatusNotFound}
)
