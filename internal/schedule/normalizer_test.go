package schedule

import (
	"testing"
	"time"
)

func TestExpandDatesPairsTimesPositionally(t *testing.T) {
	now := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	occ := ExpandDates("July 17, August 24", "6:00 PM / 4:00 PM", now)
	if len(occ) != 2 {
		t.Fatalf("expected 2 occurrences, got %d", len(occ))
	}

	want0 := time.Date(2025, time.July, 17, 18, 0, 0, 0, time.UTC)
	if !occ[0].At.Equal(want0) {
		t.Errorf("first occurrence = %v, want %v", occ[0].At, want0)
	}
	want1 := time.Date(2025, time.August, 24, 16, 0, 0, 0, time.UTC)
	if !occ[1].At.Equal(want1) {
		t.Errorf("second occurrence = %v, want %v", occ[1].At, want1)
	}

	if occ[0].DateLabel != "July 17" || occ[1].DateLabel != "August 24" {
		t.Errorf("date labels = %q, %q", occ[0].DateLabel, occ[1].DateLabel)
	}
}

func TestExpandDatesRollsForwardPastDates(t *testing.T) {
	now := time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC)

	occ := ExpandDates("June 21", "6:00 PM", now)
	if len(occ) != 1 {
		t.Fatalf("expected 1 occurrence, got %d", len(occ))
	}
	if occ[0].At.Year() != 2026 {
		t.Errorf("expected rollover to 2026, got %v", occ[0].At)
	}
	if occ[0].At.Month() != time.June || occ[0].At.Day() != 21 {
		t.Errorf("month/day should survive rollover, got %v", occ[0].At)
	}
}

func TestExpandDatesExplicitYearSuppressesRollover(t *testing.T) {
	now := time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC)

	// "June 21, 2024" splits into a date segment and a bare year segment.
	occ := ExpandDates("June 21, 2024", "6:00 PM", now)
	if len(occ) != 1 {
		t.Fatalf("expected 1 occurrence, got %d", len(occ))
	}
	if occ[0].At.Year() != 2024 {
		t.Errorf("explicit year must not roll forward, got %v", occ[0].At)
	}
}

func TestExpandDatesNeverResolvesToPastWithoutExplicitYear(t *testing.T) {
	now := time.Date(2025, time.October, 1, 12, 0, 0, 0, time.UTC)

	for _, expr := range []string{"January 1", "June 21", "September 30", "October 2", "December 31"} {
		occ := ExpandDates(expr, "", now)
		if len(occ) != 1 {
			t.Fatalf("%q: expected 1 occurrence, got %d", expr, len(occ))
		}
		if occ[0].At.Before(now) {
			t.Errorf("%q resolved to the past: %v", expr, occ[0].At)
		}
	}
}

func TestExpandDatesFallsBackToFirstTimeSegment(t *testing.T) {
	now := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

	occ := ExpandDates("March 1, April 1, May 1", "8:00 PM", now)
	if len(occ) != 3 {
		t.Fatalf("expected 3 occurrences, got %d", len(occ))
	}
	for i, o := range occ {
		if o.At.Hour() != 20 {
			t.Errorf("occurrence %d: hour = %d, want 20", i, o.At.Hour())
		}
		if o.TimeLabel != "8:00 PM" {
			t.Errorf("occurrence %d: time label = %q", i, o.TimeLabel)
		}
	}
}

func TestExpandDatesDefaultsTimeWhenAbsent(t *testing.T) {
	now := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

	occ := ExpandDates("March 1", "", now)
	if len(occ) != 1 {
		t.Fatalf("expected 1 occurrence, got %d", len(occ))
	}
	if occ[0].At.Hour() != 18 {
		t.Errorf("default time should be 6:00 PM, got hour %d", occ[0].At.Hour())
	}
}

func TestExpandDatesDropsMalformedSegments(t *testing.T) {
	now := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		expr string
		want int
	}{
		{"", 0},
		{"   ", 0},
		{"Someday", 0},
		{"Juneteenth 19, July 4", 1},
		{"june 21", 0}, // month names are case-sensitive
		{"July 45", 0},
		{"July 4, nonsense, August 1", 2},
	}
	for _, tc := range cases {
		occ := ExpandDates(tc.expr, "", now)
		if len(occ) != tc.want {
			t.Errorf("ExpandDates(%q) yielded %d occurrences, want %d", tc.expr, len(occ), tc.want)
		}
	}
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		label  string
		hour   int
		minute int
	}{
		{"6:00 PM", 18, 0},
		{"4:00 PM", 16, 0},
		{"7:30 AM", 7, 30},
		{"2 PM", 14, 0},
		{"18:00", 18, 0},
	}
	for _, tc := range cases {
		h, m, err := ParseClock(tc.label)
		if err != nil {
			t.Errorf("ParseClock(%q) failed: %v", tc.label, err)
			continue
		}
		if h != tc.hour || m != tc.minute {
			t.Errorf("ParseClock(%q) = %d:%02d, want %d:%02d", tc.label, h, m, tc.hour, tc.minute)
		}
	}

	if _, _, err := ParseClock("whenever"); err == nil {
		t.Error("expected error for unparseable clock label")
	}
}

func TestAt(t *testing.T) {
	at, err := At("2025-07-12", "6:00 PM", time.UTC)
	if err != nil {
		t.Fatalf("At failed: %v", err)
	}
	want := time.Date(2025, time.July, 12, 18, 0, 0, 0, time.UTC)
	if !at.Equal(want) {
		t.Errorf("At = %v, want %v", at, want)
	}

	if _, err := At("not-a-date", "6:00 PM", time.UTC); err == nil {
		t.Error("expected error for malformed date")
	}
}
