package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateName  = errors.New("unique constraint violation: name already exists")
	ErrInvalidProduct = errors.New("invalid product")
	ErrUnsupportedDSN = errors.New("unsupported database url")
)
