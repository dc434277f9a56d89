package app

import (
	"time"
)

// Record kinds used as Stats keys and metric labels.
const (
	KindShow        = "show"
	KindMsg         = "msg"
	KindPlayMode    = "playmode"
	KindTeam        = "team"
	KindServerParam = "server_param"
	KindPlayerParam = "player_param"
	KindPlayerType  = "player_type"
)

// Stats summarises one conversion.
type Stats struct {
	InputVersion  int
	OutputVersion int

	// Read counts decoded records by kind; Written counts records that
	// produced output bytes.
	Read    map[string]int
	Written map[string]int

	// Skipped counts shows and messages outside the cycle range.
	Skipped  int
	Warnings int

	BytesRead    int64
	BytesWritten int64
	Duration     time.Duration
}

func newStats() Stats {
	return Stats{
		Read:    make(map[string]int),
		Written: make(map[string]int),
	}
}

// Total returns the sum of a per-kind map.
func Total(counts map[string]int) int {
	n := 0
	for _, c := range counts {
		n += c
	}
	return n
}
