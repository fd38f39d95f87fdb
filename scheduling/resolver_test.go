package scheduling

import (
	"testing"
	"time"
)

var (
	testNow  = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)  // Monday
	tomorrow = time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
)

func morning(t *testing.T) Window {
	return Window{Interval: mustInterval(t, "09:00", "12:00"), SlotDuration: 30}
}

func TestResolveSlotsFromTemplate(t *testing.T) {
	slots := ResolveSlots(tomorrow, testNow, DayInput{
		Template: []Window{morning(t)},
	})
	if len(slots) != 6 {
		t.Fatalf("expected 6 slots, got %d: %v", len(slots), slots)
	}
	if slots[0] != (Interval{540, 570}) || slots[5] != (Interval{690, 720}) {
		t.Errorf("unexpected slot bounds: %v", slots)
	}
	for i := 1; i < len(slots); i++ {
		if slots[i].Start < slots[i-1].Start {
			t.Errorf("slots out of order at %d: %v", i, slots)
		}
	}
}

func TestResolveSlotsPastDateEmpty(t *testing.T) {
	yesterday := testNow.AddDate(0, 0, -1)
	slots := ResolveSlots(yesterday, testNow, DayInput{Template: []Window{morning(t)}})
	if len(slots) != 0 {
		t.Errorf("past date should have no slots, got %v", slots)
	}
	// Same calendar day is still bookable.
	slots = ResolveSlots(testNow, testNow, DayInput{Template: []Window{morning(t)}})
	if len(slots) == 0 {
		t.Error("today should still be bookable")
	}
}

func TestResolveSlotsAddedAvailability(t *testing.T) {
	added := Window{Interval: mustInterval(t, "14:00", "15:00")}
	slots := ResolveSlots(tomorrow, testNow, DayInput{
		Added:               []Window{added},
		DefaultSlotDuration: 20,
	})
	if len(slots) != 3 {
		t.Fatalf("expected 3 added slots, got %d: %v", len(slots), slots)
	}
	for _, s := range slots {
		if s.Start < added.Start || s.End > added.End {
			t.Errorf("slot %v escapes the added window", s)
		}
	}
}

// An added window overlapping the template at an offset must not yield
// offset slot pairs: two bookings on 09:00-09:30 and 09:15-09:45 would
// have distinct start times and both survive the storage uniqueness
// guard. The resolver keeps the earlier slot and discards stragglers.
func TestResolveSlotsOverlappingSourcesStayDisjoint(t *testing.T) {
	slots := ResolveSlots(tomorrow, testNow, DayInput{
		Template:            []Window{morning(t)},
		Added:               []Window{{Interval: mustInterval(t, "09:15", "10:15")}},
		DefaultSlotDuration: 30,
	})
	if len(slots) == 0 {
		t.Fatal("expected slots")
	}
	for i := 1; i < len(slots); i++ {
		if slots[i].Overlaps(slots[i-1]) {
			t.Fatalf("offered slots %v and %v overlap", slots[i-1], slots[i])
		}
	}
	if !MatchSlot(slots, Interval{540, 570}) {
		t.Error("template slot 09:00-09:30 should survive")
	}
	if MatchSlot(slots, Interval{555, 585}) {
		t.Error("offset slot 09:15-09:45 must not be offered alongside 09:00-09:30")
	}
}

// On the current date only slots that have not yet started are offered.
func TestResolveSlotsElapsedTodayDropped(t *testing.T) {
	midMorning := time.Date(2026, 3, 2, 10, 5, 0, 0, time.UTC)
	slots := ResolveSlots(midMorning, midMorning, DayInput{Template: []Window{morning(t)}})
	if len(slots) != 3 {
		t.Fatalf("expected 3 remaining slots at 10:05, got %d: %v", len(slots), slots)
	}
	if slots[0] != (Interval{630, 660}) {
		t.Errorf("first remaining slot should be 10:30-11:00, got %v", slots[0])
	}

	evening := time.Date(2026, 3, 2, 20, 0, 0, 0, time.UTC)
	slots = ResolveSlots(evening, evening, DayInput{Template: []Window{morning(t)}})
	if len(slots) != 0 {
		t.Errorf("no morning slots should remain at 20:00, got %v", slots)
	}
}

func TestResolveSlotsExclusionClipsAndSplits(t *testing.T) {
	excl := Exclusion{Interval: mustInterval(t, "10:00", "11:00")}
	slots := ResolveSlots(tomorrow, testNow, DayInput{
		Template: []Window{morning(t)},
		Excluded: []Exclusion{excl},
	})
	// 09:00-10:00 and 11:00-12:00 remain, two slots each.
	if len(slots) != 4 {
		t.Fatalf("expected 4 slots, got %d: %v", len(slots), slots)
	}
	for _, s := range slots {
		if s.Overlaps(excl.Interval) {
			t.Errorf("slot %v overlaps the excluded window", s)
		}
	}
}

func TestResolveSlotsWholeDayExclusion(t *testing.T) {
	slots := ResolveSlots(tomorrow, testNow, DayInput{
		Template: []Window{morning(t)},
		Added:    []Window{{Interval: mustInterval(t, "14:00", "16:00"), SlotDuration: 30}},
		Excluded: []Exclusion{{WholeDay: true}},
	})
	if len(slots) != 0 {
		t.Errorf("whole-day exclusion should remove every slot, got %v", slots)
	}
}

func TestResolveSlotsBookedWindowsRemoved(t *testing.T) {
	booked := mustInterval(t, "09:30", "10:00")
	slots := ResolveSlots(tomorrow, testNow, DayInput{
		Template: []Window{morning(t)},
		Booked:   []Interval{booked},
	})
	if len(slots) != 5 {
		t.Fatalf("expected 5 slots after booking, got %d: %v", len(slots), slots)
	}
	for _, s := range slots {
		if s.Overlaps(booked) {
			t.Errorf("slot %v overlaps booked window", s)
		}
	}

	// Cancelling means the window is no longer passed in; the slot
	// reappears.
	slots = ResolveSlots(tomorrow, testNow, DayInput{Template: []Window{morning(t)}})
	if !MatchSlot(slots, booked) {
		t.Error("freed slot should be resolvable again")
	}
}

// Every resolved slot must lie inside some source window and outside
// every exclusion and booked window.
func TestResolveSlotsContainment(t *testing.T) {
	in := DayInput{
		Template: []Window{morning(t), {Interval: mustInterval(t, "13:00", "17:00"), SlotDuration: 45}},
		Added:    []Window{{Interval: mustInterval(t, "18:00", "19:30")}},
		Excluded: []Exclusion{
			{Interval: mustInterval(t, "13:30", "14:15")},
			{Interval: mustInterval(t, "18:30", "18:45")},
		},
		Booked:              []Interval{mustInterval(t, "09:00", "09:30"), mustInterval(t, "15:00", "15:45")},
		DefaultSlotDuration: 30,
	}
	slots := ResolveSlots(tomorrow, testNow, in)
	if len(slots) == 0 {
		t.Fatal("expected some slots")
	}
	sources := append([]Window{}, in.Template...)
	sources = append(sources, in.Added...)
	for _, s := range slots {
		inside := false
		for _, w := range sources {
			if s.Start >= w.Start && s.End <= w.End {
				inside = true
				break
			}
		}
		if !inside {
			t.Errorf("slot %v outside every source window", s)
		}
		for _, ex := range in.Excluded {
			if s.Overlaps(ex.Interval) {
				t.Errorf("slot %v overlaps exclusion %v", s, ex.Interval)
			}
		}
		for _, b := range in.Booked {
			if s.Overlaps(b) {
				t.Errorf("slot %v overlaps booking %v", s, b)
			}
		}
	}
}

func TestMatchSlot(t *testing.T) {
	slots := []Interval{{540, 570}, {570, 600}}
	if !MatchSlot(slots, Interval{540, 570}) {
		t.Error("exact slot should match")
	}
	if MatchSlot(slots, Interval{540, 600}) {
		t.Error("spanning two slots should not match")
	}
	if MatchSlot(slots, Interval{545, 575}) {
		t.Error("offset interval should not match")
	}
}

func TestValidateWeek(t *testing.T) {
	ok := []WeekEntry{
		{DayOfWeek: 1, Interval: Interval{540, 720}},
		{DayOfWeek: 1, Interval: Interval{780, 1020}}, // split shift
		{DayOfWeek: 2, Interval: Interval{540, 720}},
	}
	if err := ValidateWeek(ok); err != nil {
		t.Errorf("valid week rejected: %v", err)
	}

	overlapping := []WeekEntry{
		{DayOfWeek: 1, Interval: Interval{540, 720}},
		{DayOfWeek: 1, Interval: Interval{700, 780}},
	}
	if err := ValidateWeek(overlapping); err == nil {
		t.Error("overlapping same-day entries should be rejected")
	}

	degenerate := []WeekEntry{{DayOfWeek: 1, Interval: Interval{600, 600}}}
	if err := ValidateWeek(degenerate); err == nil {
		t.Error("degenerate entry should be rejected")
	}

	badDay := []WeekEntry{{DayOfWeek: 7, Interval: Interval{540, 720}}}
	if err := ValidateWeek(badDay); err == nil {
		t.Error("day 7 should be rejected")
	}
}
