package scheduling

import (
	"fmt"
	"time"
)

// Window is an availability source interval with its own slot
// granularity. Template entries carry the schedule's slot duration;
// added overrides fall back to the provider default.
type Window struct {
	Interval
	SlotDuration int
}

// Exclusion removes availability on a date, either entirely or for a
// sub-window.
type Exclusion struct {
	Interval
	WholeDay bool
}

// DayInput is everything the resolver needs for one (provider, date):
// the weekly template windows matching the date's weekday, the
// date-specific overrides, and the non-cancelled booked windows.
type DayInput struct {
	Template            []Window
	Added               []Window
	Excluded            []Exclusion
	Booked              []Interval
	DefaultSlotDuration int
}

// ResolveSlots computes the bookable slots for a date. Availability is
// (template union added) minus exclusions, partitioned into fixed-size
// slots, minus any slot overlapping a booked window. Past dates are
// never bookable, and on the current date slots that have already
// started are dropped. The returned slots are chronological and
// mutually disjoint: when source windows overlap at an offset, the
// earlier slot wins and the straddling one is discarded, so no two
// offered slots can ever book the same minutes.
func ResolveSlots(date, now time.Time, in DayInput) []Interval {
	if beforeDay(date, now) {
		return nil
	}
	cutoff := -1
	if !beforeDay(now, date) {
		cutoff = now.Hour()*60 + now.Minute()
	}

	var exclusions []Interval
	for _, ex := range in.Excluded {
		if ex.WholeDay {
			return nil
		}
		exclusions = append(exclusions, ex.Interval)
	}

	var slots []Interval
	for _, w := range append(append([]Window{}, in.Template...), in.Added...) {
		size := w.SlotDuration
		if size <= 0 {
			size = in.DefaultSlotDuration
		}
		for _, free := range SubtractAll([]Interval{w.Interval}, exclusions) {
			for _, slot := range Partition(free, size) {
				if slot.Start < cutoff {
					continue
				}
				if overlapsAny(slot, in.Booked) {
					continue
				}
				slots = append(slots, slot)
			}
		}
	}

	SortChronological(slots)
	return disjoint(slots)
}

// MatchSlot reports whether the requested interval is exactly one of
// the resolved slots.
func MatchSlot(slots []Interval, want Interval) bool {
	for _, s := range slots {
		if s == want {
			return true
		}
	}
	return false
}

// ValidateWeek rejects weekly template entries that overlap on the same
// day. Entries are (day, interval) pairs as submitted by the provider.
type WeekEntry struct {
	DayOfWeek int
	Interval  Interval
}

func ValidateWeek(entries []WeekEntry) error {
	for i, a := range entries {
		if !a.Interval.Valid() {
			return ErrDegenerateInterval
		}
		if a.DayOfWeek < 0 || a.DayOfWeek > 6 {
			return fmt.Errorf("day_of_week must be between 0 and 6, got %d", a.DayOfWeek)
		}
		for _, b := range entries[:i] {
			if a.DayOfWeek == b.DayOfWeek && a.Interval.Overlaps(b.Interval) {
				return fmt.Errorf("schedule windows %s-%s and %s-%s overlap on day %d",
					b.Interval.StartClock(), b.Interval.EndClock(),
					a.Interval.StartClock(), a.Interval.EndClock(), a.DayOfWeek)
			}
		}
	}
	return nil
}

func overlapsAny(iv Interval, others []Interval) bool {
	for _, o := range others {
		if iv.Overlaps(o) {
			return true
		}
	}
	return false
}

// disjoint drops duplicates and any slot overlapping an earlier kept
// slot. Every kept slot starts at or after the previous one's end, so
// the result is a non-overlapping chain even when template and added
// windows disagree on slot boundaries.
func disjoint(sorted []Interval) []Interval {
	var out []Interval
	for _, iv := range sorted {
		if len(out) > 0 && iv.Overlaps(out[len(out)-1]) {
			continue
		}
		out = append(out, iv)
	}
	return out
}

// beforeDay compares calendar days, ignoring time of day.
func beforeDay(date, now time.Time) bool {
	y1, m1, d1 := date.Date()
	y2, m2, d2 := now.Date()
	if y1 != y2 {
		return y1 < y2
	}
	if m1 != m2 {
		return m1 < m2
	}
	return d1 < d2
}
