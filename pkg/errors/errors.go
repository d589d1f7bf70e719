package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidMonth     = errors.New("invalid month")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidFrequency = errors.New("invalid frequency")
	ErrInvalidRange     = errors.New("invalid date range")
	ErrValidation       = errors.New("validation failed")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeInvalidDate      = "INVALID_DATE"
	ErrCodeInvalidMonth     = "INVALID_MONTH"
	ErrCodeInvalidAmount    = "INVALID_AMOUNT"
	ErrCodeInvalidFrequency = "INVALID_FREQUENCY"
	ErrCodeInvalidRange     = "INVALID_RANGE"
	ErrCodeValidation       = "VALIDATION_FAILED"
	ErrCodeCacheError       = "CACHE_ERROR"
)

// IsClientError reports whether err was caused by bad caller input
func IsClientError(err error) bool {
	var be *BusinessError
	if !errors.As(err, &be) {
		return false
	}
	return be.Code != ErrCodeCacheError
}

func WrapInvalidDate(field, value string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidDate,
		fmt.Sprintf("%s %q is not a valid YYYY-MM-DD date", field, value),
		ErrInvalidDate,
	)
}

func WrapInvalidMonth(field, value string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidMonth,
		fmt.Sprintf("%s %q is not a valid YYYY-MM month", field, value),
		ErrInvalidMonth,
	)
}

func WrapInvalidAmount(field, value string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidAmount,
		fmt.Sprintf("%s %s must be greater than zero", field, value),
		ErrInvalidAmount,
	)
}

func WrapInvalidFrequency(field, value string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidFrequency,
		fmt.Sprintf("%s %q is not a supported frequency", field, value),
		ErrInvalidFrequency,
	)
}

func WrapInvalidRange(from, to string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidRange,
		fmt.Sprintf("range start %s is after range end %s", from, to),
		ErrInvalidRange,
	)
}

func WrapValidation(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeValidation,
		"request validation failed",
		errors.Join(ErrValidation, err),
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"Cache operation failed",
		err,
	)
}
