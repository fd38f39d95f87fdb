// Package scheduling implements the slot availability math: clock
// intervals, template/override merging and bookable slot resolution.
// Everything here is pure; callers fetch rows and hand them in.
package scheduling

import (
	"errors"
	"fmt"
	"sort"
)

var ErrDegenerateInterval = errors.New("interval start must be before end")

// Interval is a half-open [Start, End) window expressed in minutes
// since midnight.
type Interval struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// NewInterval builds a validated interval from "HH:MM" clock strings.
func NewInterval(start, end string) (Interval, error) {
	s, err := ParseClock(start)
	if err != nil {
		return Interval{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return Interval{}, err
	}
	iv := Interval{Start: s, End: e}
	if !iv.Valid() {
		return Interval{}, ErrDegenerateInterval
	}
	return iv, nil
}

func (iv Interval) Valid() bool {
	return iv.Start < iv.End
}

func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start < other.End && other.Start < iv.End
}

func (iv Interval) Contains(point int) bool {
	return point >= iv.Start && point < iv.End
}

// Duration returns the interval length in minutes.
func (iv Interval) Duration() int {
	return iv.End - iv.Start
}

// StartClock and EndClock render the bounds as "HH:MM".
func (iv Interval) StartClock() string { return FormatClock(iv.Start) }
func (iv Interval) EndClock() string   { return FormatClock(iv.End) }

// Subtract removes excl from iv, returning the zero, one or two
// remaining sub-intervals.
func (iv Interval) Subtract(excl Interval) []Interval {
	if !iv.Overlaps(excl) {
		return []Interval{iv}
	}
	var out []Interval
	if excl.Start > iv.Start {
		out = append(out, Interval{Start: iv.Start, End: excl.Start})
	}
	if excl.End < iv.End {
		out = append(out, Interval{Start: excl.End, End: iv.End})
	}
	return out
}

// SubtractAll removes every exclusion from every interval.
func SubtractAll(ivs []Interval, exclusions []Interval) []Interval {
	remaining := ivs
	for _, excl := range exclusions {
		var next []Interval
		for _, iv := range remaining {
			next = append(next, iv.Subtract(excl)...)
		}
		remaining = next
	}
	return remaining
}

// Partition splits an interval into consecutive fixed-size slots. A
// trailing remainder shorter than one slot is dropped.
func Partition(iv Interval, size int) []Interval {
	if size <= 0 {
		return nil
	}
	var slots []Interval
	for start := iv.Start; start+size <= iv.End; start += size {
		slots = append(slots, Interval{Start: start, End: start + size})
	}
	return slots
}

// SortChronological orders intervals by start time in place, shorter
// intervals first on equal starts.
func SortChronological(ivs []Interval) {
	sort.Slice(ivs, func(i, j int) bool {
		if ivs[i].Start != ivs[j].Start {
			return ivs[i].Start < ivs[j].Start
		}
		return ivs[i].End < ivs[j].End
	})
}

// ParseClock converts a 24h "HH:MM" string to minutes since midnight.
func ParseClock(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	return h*60 + m, nil
}

// FormatClock renders minutes since midnight as "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
