package storage

import "errors"

// Common storage errors
var (
	// ErrRecordNotFound indicates that entity record was not found
	ErrRecordNotFound = errors.New("record not found")

	// ErrRecordExists indicates that a record with this id already exists
	ErrRecordExists = errors.New("record already exists")

	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that user with this username already exists
	ErrUserAlreadyExists = errors.New("user already exists")
)
