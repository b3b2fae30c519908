package errors

import (
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	InvalidAccountNumber   ErrorCode = "invalid_account_number"
	NegativeInitialBalance ErrorCode = "negative_initial_balance"
	NonNumericAmount       ErrorCode = "non_numeric_amount"
	NonPositiveAmount      ErrorCode = "non_positive_amount"
	InsufficientFunds      ErrorCode = "insufficient_funds"
	AccountNotFound        ErrorCode = "account_not_found"
	DuplicateAccount       ErrorCode = "duplicate_account"
	SameAccountTransfer    ErrorCode = "same_account_transfer"
	InvalidInput           ErrorCode = "invalid_input"
	InternalError          ErrorCode = "internal_error"
)

type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

func (e AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is reports whether target carries the same error code, so callers can
// branch on failure kind with errors.Is.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// HTTPStatus maps the error code to the status the HTTP layer should return.
func (e *AppError) HTTPStatus() int {
	switch e.Code {
	case InvalidAccountNumber, NegativeInitialBalance, NonNumericAmount,
		NonPositiveAmount, SameAccountTransfer, InvalidInput:
		return http.StatusBadRequest
	case InsufficientFunds:
		return http.StatusUnprocessableEntity
	case AccountNotFound:
		return http.StatusNotFound
	case DuplicateAccount:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func NewAppError(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

func NewAppErrorf(code ErrorCode, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WithDetails returns a copy carrying extra diagnostic detail. Copying keeps
// the predefined errors below immutable.
func (e *AppError) WithDetails(details string) *AppError {
	out := *e
	out.Details = details
	return &out
}

// Predefined errors for common cases. The two invalid_account_number
// variants share a code but keep distinct messages so callers get exact
// diagnostics.
var (
	ErrEmptyAccountNumber     = NewAppError(InvalidAccountNumber, "account number cannot be empty")
	ErrMalformedAccountNumber = NewAppError(InvalidAccountNumber, "account number must be exactly 9 digits")
	ErrNegativeInitialBalance = NewAppError(NegativeInitialBalance, "initial balance cannot be negative")
	ErrNonNumericAmount       = NewAppError(NonNumericAmount, "amount must be numeric")
	ErrNonPositiveAmount      = NewAppError(NonPositiveAmount, "amount must be positive")
	ErrInsufficientFunds      = NewAppError(InsufficientFunds, "insufficient funds")
	ErrAccountNotFound        = NewAppError(AccountNotFound, "account not found")
	ErrDuplicateAccount       = NewAppError(DuplicateAccount, "account already exists")
	ErrSameAccountTransfer    = NewAppError(SameAccountTransfer, "source and destination accounts are the same")
)
