package db

import "errors"

// DuplicateKeyError is an error type for duplicate key errors
type DuplicateKeyError struct {
	Key     string
	Message string
}

func (e *DuplicateKeyError) Error() string {
	return e.Message
}

func IsDuplicateKeyError(err error) bool {
	var target *DuplicateKeyError
	return errors.As(err, &target)
}

// Not found Error
type NotFoundError struct {
	Key     string
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func IsNotFoundError(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// StaleWriteError is returned when a conditional update found the document
// in a different state than the caller expected
type StaleWriteError struct {
	Key     string
	Message string
}

func (e *StaleWriteError) Error() string {
	return e.Message
}

func IsStaleWriteError(err error) bool {
	var target *StaleWriteError
	return errors.As(err, &target)
}

// LockHeldError is returned when the claim lock of a grant belongs to
// another holder and has not expired yet
type LockHeldError struct {
	Key     string
	Message string
}

func (e *LockHeldError) Error() string {
	return e.Message
}

func IsLockHeldError(err error) bool {
	var target *LockHeldError
	return errors.As(err, &target)
}
