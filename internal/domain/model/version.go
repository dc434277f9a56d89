// Package model contains the revision-independent event model passed
// between the parser, the handlers and the serializers.
package model

import "fmt"

// LogVersion identifies one of the on-disk revisions of the game log.
type LogVersion int

// Known revisions. Versions 1-3 are binary, 4 and 5 are line-oriented text.
const (
	VersionUnknown LogVersion = 0
	Version1       LogVersion = 1
	Version2       LogVersion = 2
	Version3       LogVersion = 3
	Version4       LogVersion = 4
	Version5       LogVersion = 5

	// Latest always points to the newest revision.
	Latest = Version5
)

// Valid reports whether v is one of the known revisions.
func (v LogVersion) Valid() bool {
	return Version1 <= v && v <= Latest
}

// IsBinary reports whether v is a binary revision.
func (v LogVersion) IsBinary() bool {
	return Version1 <= v && v <= Version3
}

// IsText reports whether v is a text revision.
func (v LogVersion) IsText() bool {
	return Version4 <= v && v <= Latest
}

// String implements fmt.Stringer.
func (v LogVersion) String() string {
	if !v.Valid() {
		return "Version(none)"
	}
	return fmt.Sprintf("Version(%d)", int(v))
}
