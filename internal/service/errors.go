package service

import (
	"errors"
	"fmt"
)

var (
	ErrExamRequired    = errors.New("exam is required")
	ErrNotFound        = errors.New("report not found")
	ErrInvalidFilename = errors.New("invalid report filename")
)

// StorageError reports a failure of the document store while writing or
// reading a report artifact.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
