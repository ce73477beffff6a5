package services

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an operation references a post, user or slug
// that is not in the store.
var ErrNotFound = errors.New("not found")

// ValidationError reports a missing or otherwise unusable field on create.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input: field %q", e.Field)
}

// StorageError wraps a failure of the underlying storage backend. Not retried.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
