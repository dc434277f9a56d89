package serializer

import "errors"

// Sentinel errors returned by New and the Write methods.
var (
	ErrUnsupportedVersion = errors.New("unsupported log version")
	ErrMessageTooLong     = errors.New("message too long")
	ErrMessageMultiline   = errors.New("message contains a line break")
)
