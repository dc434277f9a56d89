package cli

import "errors"

// Sentinel error kinds for this package.
var (
	ErrNoInput     = errors.New("no input given")
	ErrInvalidArgs = errors.New("invalid arguments")
)
