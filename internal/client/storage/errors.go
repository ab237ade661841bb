package storage

import "errors"

// Common client storage errors
var (
	// ErrRecordNotFound indicates that cached entity record was not found
	ErrRecordNotFound = errors.New("record not found")

	// ErrConflictNotFound indicates that conflict was not found
	ErrConflictNotFound = errors.New("conflict not found")

	// ErrTokenNotFound indicates that no auth token is stored
	ErrTokenNotFound = errors.New("auth token not found")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
