package stream

import "errors"

// Sentinel errors.
var (
	ErrUnknownCompression = errors.New("unknown compression")
)
