package utils

import (
	"testing"
	"time"
)

func TestBeginningAndEndOfDay(t *testing.T) {
	ts := time.Date(2025, 3, 15, 14, 45, 12, 500, time.UTC)

	start := BeginningOfDay(ts)
	if start.Hour() != 0 || start.Minute() != 0 || start.Second() != 0 || start.Nanosecond() != 0 {
		t.Errorf("BeginningOfDay = %v, want midnight", start)
	}
	if start.Day() != 15 {
		t.Errorf("BeginningOfDay moved the date to %v", start)
	}

	end := EndOfDay(ts)
	if end.Hour() != 23 || end.Minute() != 59 || end.Second() != 59 {
		t.Errorf("EndOfDay = %v, want the day's last second", end)
	}
	if !end.Before(start.AddDate(0, 0, 1)) {
		t.Error("EndOfDay must stay within the same day")
	}
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2025, 3, 10, 23, 0, 0, 0, time.UTC)
	b := time.Date(2025, 3, 15, 1, 0, 0, 0, time.UTC)

	if got := DaysBetween(a, b); got != 5 {
		t.Errorf("DaysBetween = %d, want 5; time of day must not matter", got)
	}
	if got := DaysBetween(b, a); got != -5 {
		t.Errorf("DaysBetween reversed = %d, want -5", got)
	}
	if got := DaysBetween(a, a); got != 0 {
		t.Errorf("DaysBetween same day = %d, want 0", got)
	}
}

func TestMonthBounds(t *testing.T) {
	ref := time.Date(2025, 2, 14, 9, 30, 0, 0, time.UTC)

	first, last := MonthBounds(ref)
	if first.Day() != 1 || first.Month() != time.February || first.Hour() != 0 {
		t.Errorf("first = %v, want Feb 1 midnight", first)
	}
	if last.Day() != 28 || last.Month() != time.February {
		t.Errorf("last = %v, want Feb 28", last)
	}
	if !last.Before(first.AddDate(0, 1, 0)) {
		t.Error("last must fall inside the month")
	}

	leapFirst, leapLast := MonthBounds(time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC))
	if leapLast.Day() != 29 {
		t.Errorf("leap February last = %v, want day 29", leapLast)
	}
	if leapFirst.Day() != 1 {
		t.Errorf("leap February first = %v, want day 1", leapFirst)
	}
}
