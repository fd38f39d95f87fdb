package scheduling

import "testing"

func mustInterval(t *testing.T, start, end string) Interval {
	t.Helper()
	iv, err := NewInterval(start, end)
	if err != nil {
		t.Fatalf("NewInterval(%s, %s): %v", start, end, err)
	}
	return iv
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:30", 570, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"09:60", 0, true},
		{"garbage", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseClock(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseClock(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestFormatClock(t *testing.T) {
	if got := FormatClock(570); got != "09:30" {
		t.Errorf("FormatClock(570) = %s, want 09:30", got)
	}
	if got := FormatClock(0); got != "00:00" {
		t.Errorf("FormatClock(0) = %s, want 00:00", got)
	}
}

func TestNewIntervalRejectsDegenerate(t *testing.T) {
	if _, err := NewInterval("10:00", "10:00"); err != ErrDegenerateInterval {
		t.Errorf("empty interval: got %v, want ErrDegenerateInterval", err)
	}
	if _, err := NewInterval("11:00", "10:00"); err != ErrDegenerateInterval {
		t.Errorf("inverted interval: got %v, want ErrDegenerateInterval", err)
	}
}

func TestOverlaps(t *testing.T) {
	base := Interval{Start: 600, End: 720} // 10:00-12:00
	cases := []struct {
		other Interval
		want  bool
	}{
		{Interval{540, 600}, false}, // abuts on the left
		{Interval{720, 780}, false}, // abuts on the right
		{Interval{540, 601}, true},
		{Interval{719, 780}, true},
		{Interval{630, 660}, true}, // inside
		{Interval{540, 780}, true}, // covers
	}
	for _, tc := range cases {
		if got := base.Overlaps(tc.other); got != tc.want {
			t.Errorf("%v.Overlaps(%v) = %v, want %v", base, tc.other, got, tc.want)
		}
	}
}

func TestContains(t *testing.T) {
	iv := Interval{Start: 600, End: 720}
	if !iv.Contains(600) {
		t.Error("start point should be contained")
	}
	if iv.Contains(720) {
		t.Error("end point is exclusive")
	}
	if iv.Contains(599) {
		t.Error("point before start should not be contained")
	}
}

func TestSubtract(t *testing.T) {
	iv := Interval{Start: 540, End: 720} // 09:00-12:00

	// No overlap leaves the interval intact.
	got := iv.Subtract(Interval{Start: 720, End: 780})
	if len(got) != 1 || got[0] != iv {
		t.Errorf("disjoint subtract: got %v", got)
	}

	// Middle exclusion splits in two.
	got = iv.Subtract(Interval{Start: 600, End: 660})
	if len(got) != 2 || got[0] != (Interval{540, 600}) || got[1] != (Interval{660, 720}) {
		t.Errorf("split subtract: got %v", got)
	}

	// Left clip.
	got = iv.Subtract(Interval{Start: 480, End: 600})
	if len(got) != 1 || got[0] != (Interval{600, 720}) {
		t.Errorf("left clip: got %v", got)
	}

	// Full coverage removes everything.
	got = iv.Subtract(Interval{Start: 480, End: 780})
	if len(got) != 0 {
		t.Errorf("full coverage: got %v", got)
	}
}

func TestPartition(t *testing.T) {
	iv := Interval{Start: 540, End: 650} // 09:00-10:50
	slots := Partition(iv, 30)
	// 09:00, 09:30, 10:00 fit; the 10:30-11:00 slot exceeds 10:50 and
	// the 20-minute remainder is dropped.
	if len(slots) != 3 {
		t.Fatalf("expected 3 slots, got %d: %v", len(slots), slots)
	}
	if slots[0] != (Interval{540, 570}) || slots[2] != (Interval{600, 630}) {
		t.Errorf("unexpected slots: %v", slots)
	}
	if got := Partition(iv, 0); got != nil {
		t.Errorf("zero slot size should yield nothing, got %v", got)
	}
}
