package errors

import "errors"

var (
	ErrClientNotFound   = errors.New("client not found")
	ErrInvalidName      = errors.New("client name must be between 2 and 120 characters")
	ErrContactTooLong   = errors.New("client contact must be 320 characters or fewer")
	ErrNotesTooLong     = errors.New("client notes must be 2000 characters or fewer")
	ErrNoFieldsToUpdate = errors.New("provide at least one field to update")
	ErrOwnerRequired    = errors.New("owner id is required")
)
