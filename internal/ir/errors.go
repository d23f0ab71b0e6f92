package ir

import (
	"errors"
	"fmt"
)

// Error kinds shared by the codec, payload and pipeline packages.
var (
	ErrMalformedInput = errors.New("malformed input")
	ErrIOFailure      = errors.New("i/o failure")
)

// IOError wraps a filesystem error so that it matches both ErrIOFailure and
// the underlying cause (fs.ErrNotExist, fs.ErrPermission, ...).
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() []error {
	return []error{e.Err, ErrIOFailure}
}

func NewIOError(op, path string, err error) error {
	return &IOError{Op: op, Path: path, Err: err}
}
