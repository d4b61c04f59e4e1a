package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNotFound       = errors.New("product not found")
	ErrDealerNotFound = errors.New("dealer not found")
	ErrNotStarted     = errors.New("service not started")
	ErrSeed           = errors.New("seed failed")
)
