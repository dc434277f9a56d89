package app

import (
	"fmt"
	"strconv"
	"strings"
)

// CycleRange selects shows and messages by simulation time. End below zero
// leaves the range open.
type CycleRange struct {
	Start int
	End   int
}

// Contains reports whether t falls inside the range.
func (r CycleRange) Contains(t int) bool {
	return t >= r.Start && (r.End < 0 || t <= r.End)
}

// Validate checks the bounds.
func (r CycleRange) Validate() error {
	if r.Start < 0 {
		return fmt.Errorf("%w: negative start %d", ErrInvalidRange, r.Start)
	}
	if r.End >= 0 && r.End < r.Start {
		return fmt.Errorf("%w: end %d before start %d", ErrInvalidRange, r.End, r.Start)
	}
	return nil
}

func (r CycleRange) String() string {
	if r.End < 0 {
		return strconv.Itoa(r.Start) + "-"
	}
	return strconv.Itoa(r.Start) + "-" + strconv.Itoa(r.End)
}

// ParseCycleRange reads "start-end", "start-" or a single cycle.
func ParseCycleRange(s string) (CycleRange, error) {
	s = strings.TrimSpace(s)
	lo, hi, found := strings.Cut(s, "-")

	start, err := strconv.Atoi(strings.TrimSpace(lo))
	if err != nil {
		return CycleRange{}, fmt.Errorf("%w: %q", ErrInvalidRange, s)
	}

	r := CycleRange{Start: start, End: start}
	if found {
		hi = strings.TrimSpace(hi)
		if hi == "" {
			r.End = -1
		} else if r.End, err = strconv.Atoi(hi); err != nil {
			return CycleRange{}, fmt.Errorf("%w: %q", ErrInvalidRange, s)
		}
	}
	if err := r.Validate(); err != nil {
		return CycleRange{}, err
	}
	return r, nil
}
