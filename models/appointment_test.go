package models

import "testing"

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from    AppointmentStatus
		to      AppointmentStatus
		allowed bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusPending, StatusNoShow, false},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusNoShow, true},
		{StatusConfirmed, StatusPending, false},
		{StatusCompleted, StatusPending, false},
		{StatusCompleted, StatusConfirmed, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCancelled, StatusPending, false},
		{StatusNoShow, StatusConfirmed, false},
		{StatusNoShow, StatusPending, false},
	}

	for _, tc := range cases {
		a := Appointment{Status: tc.from}
		err := a.CanTransition(tc.to)
		if tc.allowed && err != nil {
			t.Errorf("%s -> %s: expected allowed, got %v", tc.from, tc.to, err)
		}
		if !tc.allowed && err == nil {
			t.Errorf("%s -> %s: expected rejection", tc.from, tc.to)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	terminal := []AppointmentStatus{StatusCompleted, StatusCancelled, StatusNoShow}
	for _, s := range terminal {
		if !(&Appointment{Status: s}).IsTerminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
	for _, s := range []AppointmentStatus{StatusPending, StatusConfirmed} {
		if (&Appointment{Status: s}).IsTerminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}

func TestChildBelongsTo(t *testing.T) {
	ch := Child{UserID: 7, Name: "Ahmed"}
	if !ch.BelongsTo(7) {
		t.Error("child should belong to its owner")
	}
	if ch.BelongsTo(8) {
		t.Error("child should not belong to another user")
	}
}
