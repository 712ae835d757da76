package types

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	PermissionDenied     ErrorCode = "PERMISSION_DENIED"
	AlreadyExists        ErrorCode = "ALREADY_EXISTS"
	ClaimNotAvailableYet ErrorCode = "CLAIM_NOT_AVAILABLE_YET"
	InvalidVestingPeriod ErrorCode = "INVALID_VESTING_PERIOD"
	CalculationOverflow  ErrorCode = "CALCULATION_OVERFLOW"
	NothingToClaim       ErrorCode = "NOTHING_TO_CLAIM"
	InvalidPool          ErrorCode = "INVALID_POOL"
	TransferFailed       ErrorCode = "TRANSFER_FAILED"
	NotFound             ErrorCode = "NOT_FOUND"
	InvalidArgument      ErrorCode = "INVALID_ARGUMENT"
	ClaimInProgress      ErrorCode = "CLAIM_IN_PROGRESS"
	InternalServiceError ErrorCode = "INTERNAL_SERVICE_ERROR"
)

func (e ErrorCode) String() string {
	return string(e)
}

// StatusCode returns the http status a code is reported with by default.
func (e ErrorCode) StatusCode() int {
	switch e {
	case PermissionDenied:
		return http.StatusForbidden
	case AlreadyExists, ClaimInProgress:
		return http.StatusConflict
	case ClaimNotAvailableYet, InvalidVestingPeriod, CalculationOverflow, NothingToClaim:
		return http.StatusUnprocessableEntity
	case InvalidPool, InvalidArgument:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case TransferFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Error is the error type returned by the service layer. It carries the
// code surfaced to callers and the http status used by the api.
type Error struct {
	StatusCode int
	ErrorCode  ErrorCode
	Err        error
}

func NewError(statusCode int, errorCode ErrorCode, err error) *Error {
	return &Error{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Err:        err,
	}
}

// NewCodeError builds an error using the default status of the code.
func NewCodeError(errorCode ErrorCode, format string, args ...any) *Error {
	return &Error{
		StatusCode: errorCode.StatusCode(),
		ErrorCode:  errorCode,
		Err:        fmt.Errorf(format, args...),
	}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.ErrorCode.String()
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsErrorCode reports whether err is a *Error carrying the given code.
func IsErrorCode(err error, code ErrorCode) bool {
	var typedErr *Error
	if errors.As(err, &typedErr) {
		return typedErr.ErrorCode == code
	}
	return false
}
