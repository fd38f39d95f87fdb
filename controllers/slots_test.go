package controllers

import (
	"fmt"
	"testing"

	"github.com/sahtee/clinic-booking/utils"
)

func TestParseYearMonthBounds(t *testing.T) {
	current := utils.ClinicNow().Year()

	year, month, err := parseYearMonth(fmt.Sprint(current), "7")
	if err != nil || year != current || month != 7 {
		t.Fatalf("current year rejected: %v", err)
	}

	// One year back and five forward are the accepted window.
	if _, _, err := parseYearMonth(fmt.Sprint(current-1), "1"); err != nil {
		t.Errorf("last year should be accepted: %v", err)
	}
	if _, _, err := parseYearMonth(fmt.Sprint(current+5), "12"); err != nil {
		t.Errorf("five years out should be accepted: %v", err)
	}
	if _, _, err := parseYearMonth(fmt.Sprint(current-2), "1"); err == nil {
		t.Error("two years back should be rejected")
	}
	if _, _, err := parseYearMonth(fmt.Sprint(current+6), "1"); err == nil {
		t.Error("six years out should be rejected")
	}

	if _, _, err := parseYearMonth("abc", "1"); err == nil {
		t.Error("non-numeric year should be rejected")
	}
	for _, m := range []string{"0", "13", "x"} {
		if _, _, err := parseYearMonth(fmt.Sprint(current), m); err == nil {
			t.Errorf("month %q should be rejected", m)
		}
	}
}
