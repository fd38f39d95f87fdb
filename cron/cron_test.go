package cron

import (
	"testing"
	"time"
)

func TestReminderWindowsSameDay(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	windows := reminderWindows(now)
	if len(windows) != 1 {
		t.Fatalf("expected one window, got %v", windows)
	}
	w := windows[0]
	if w.date != "2026-03-02" || w.from != "10:55" || w.to != "11:05" {
		t.Errorf("unexpected window %+v", w)
	}
}

// When the hour ahead crosses midnight the clock range inverts, so the
// query must be split per date or it matches nothing.
func TestReminderWindowsAcrossMidnight(t *testing.T) {
	now := time.Date(2026, 3, 2, 23, 0, 0, 0, time.UTC)
	windows := reminderWindows(now)
	if len(windows) != 2 {
		t.Fatalf("expected two windows across midnight, got %v", windows)
	}
	if windows[0].date != "2026-03-02" || windows[0].from != "23:55" || windows[0].to != "23:59" {
		t.Errorf("unexpected pre-midnight window %+v", windows[0])
	}
	if windows[1].date != "2026-03-03" || windows[1].from != "00:00" || windows[1].to != "00:05" {
		t.Errorf("unexpected post-midnight window %+v", windows[1])
	}

	// Shortly after 23:05 the whole lookahead is already tomorrow.
	now = time.Date(2026, 3, 2, 23, 30, 0, 0, time.UTC)
	windows = reminderWindows(now)
	if len(windows) != 1 || windows[0].date != "2026-03-03" {
		t.Errorf("lookahead fully on the next date should be one window, got %v", windows)
	}
}
