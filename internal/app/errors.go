package app

import "errors"

// Sentinel errors for conversions.
var (
	// ErrSameVersion is a configuration error: the input already has the
	// target revision and no cycle range was requested.
	ErrSameVersion   = errors.New("input and output log versions are the same")
	ErrInvalidRange  = errors.New("invalid cycle range")
	ErrConvertFailed = errors.New("conversion failed")
	ErrSameFile      = errors.New("output is the input file")
)
