package api

import (
	"errors"
	"fmt"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = NewKind("bad request")
	ErrInternal   = NewKind("internal server error")
)

// NewKind returns a sentinel for a class of API failures.
func NewKind(msg string) error {
	return errors.New(msg)
}

// Wrap tags err with the operation that produced it.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("api.%s: %w", op, err)
}

// WrapKind tags err with op and makes it match kind under errors.Is.
func WrapKind(op string, kind, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("api.%s: %w: %w", op, kind, err)
}
