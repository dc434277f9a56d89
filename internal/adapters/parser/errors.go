package parser

import "errors"

// Sentinel errors returned by Parse and Detect.
var (
	ErrUnknownMode        = errors.New("unknown record mode")
	ErrUnsupportedVersion = errors.New("unsupported log version")
	ErrShortRecord        = errors.New("short record")
	ErrMalformedRecord    = errors.New("malformed record")
	ErrNilHandler         = errors.New("nil handler")
)
