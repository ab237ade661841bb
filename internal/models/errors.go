package models

import "errors"

// Validation errors for queued operations
var (
	// ErrInvalidEntityType indicates an unknown entity type
	ErrInvalidEntityType = errors.New("invalid entity type")

	// ErrMissingEntityID indicates an operation without an entity id
	ErrMissingEntityID = errors.New("missing entity id")

	// ErrInvalidAction indicates an unknown operation action
	ErrInvalidAction = errors.New("invalid action")

	// ErrMissingPayload indicates a create/update operation without a payload
	ErrMissingPayload = errors.New("missing payload")
)
