package export

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrExport      = errors.New("export failed")
	ErrBadSnapshot = errors.New("invalid snapshot")
)
