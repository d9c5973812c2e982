package repository

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrNotFound = errors.New("entry not found")
	ErrOpen     = errors.New("open store failed")
	ErrQuery    = errors.New("store query failed")
)
