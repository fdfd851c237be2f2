package errors

import (
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	InvalidInput        ErrorCode = "invalid_input"
	InvalidAmount       ErrorCode = "invalid_amount"
	DailyLimitExceeded  ErrorCode = "daily_limit_exceeded"
	InsufficientFunds   ErrorCode = "insufficient_funds"
	CreditLimitExceeded ErrorCode = "credit_limit_exceeded"
	AccountNotFound     ErrorCode = "account_not_found"
	InternalError       ErrorCode = "internal_error"
)

type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
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

func (e *AppError) WithDetails(details string) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
	}
}

// HTTPStatus maps error kinds to response status codes. Business-rule
// rejections are 4xx; anything infrastructure-level is 500.
func (e *AppError) HTTPStatus() int {
	switch e.Code {
	case AccountNotFound:
		return http.StatusNotFound
	case InvalidInput, InvalidAmount, DailyLimitExceeded,
		InsufficientFunds, CreditLimitExceeded:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Predefined errors for common cases
var (
	ErrAccountNotFound      = NewAppError(AccountNotFound, "Account not found")
	ErrInvalidAccountNumber = NewAppError(InvalidInput, "Account number must be a positive integer")
	ErrInsufficientFunds    = NewAppError(InsufficientFunds, "Insufficient funds.")
	ErrCreditLimitExceeded  = NewAppError(CreditLimitExceeded, "Withdrawal exceeds credit limit.")
	ErrDailyLimitExceeded   = NewAppError(DailyLimitExceeded, "Cannot withdraw more than $400 in a single day for one account.")
)
