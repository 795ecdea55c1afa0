package domain

import (
	"errors"
)

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// DuplicateFileError is returned when an upload targets a logical path that
// is already occupied and no resolution mode was supplied. It carries enough
// detail for an interactive client to offer replace/keep-both choices.
type DuplicateFileError struct {
	Message      string
	ExistingID   string
	ExistingName string
	ExistingPath string
}

func (e *DuplicateFileError) Error() string {
	return e.Message
}

// Is allows errors.Is() to match against ErrConflict
func (e *DuplicateFileError) Is(target error) bool {
	return target == ErrConflict
}
