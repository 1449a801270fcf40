package calendar

import (
	"testing"
	"time"
)

func TestDaysInMonth(t *testing.T) {
	cases := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2025, time.January, 31},
		{2025, time.February, 28},
		{2024, time.February, 29},
		{2025, time.April, 30},
		{2025, time.December, 31},
	}
	for _, tc := range cases {
		if got := DaysInMonth(tc.year, tc.month); got != tc.want {
			t.Fatalf("DaysInMonth(%d, %s) = %d, want %d", tc.year, tc.month, got, tc.want)
		}
	}
}

func TestMonthWindow(t *testing.T) {
	start, end := MonthWindow(2025, time.February)
	if start.Day() != 1 || start.Month() != time.February {
		t.Fatalf("unexpected start: %v", start)
	}
	if end.Day() != 28 {
		t.Fatalf("unexpected end: %v", end)
	}
}

func TestClipRange(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2025, time.March, d, 0, 0, 0, 0, time.UTC) }

	from, to, ok := ClipRange(day(5), day(20), day(10), day(15))
	if !ok || from.Day() != 10 || to.Day() != 15 {
		t.Fatalf("clip failed: %v %v %v", from, to, ok)
	}

	if _, _, ok := ClipRange(day(1), day(5), day(10), day(15)); ok {
		t.Fatal("expected no overlap")
	}
}

func TestClipRangeNormalizesTime(t *testing.T) {
	start := time.Date(2025, time.March, 5, 23, 30, 0, 0, time.UTC)
	end := time.Date(2025, time.March, 5, 1, 0, 0, 0, time.UTC)
	from, to, ok := ClipRange(start, end, YearStart(2025), YearEnd(2025))
	if !ok {
		t.Fatal("expected overlap")
	}
	if from.Hour() != 0 || !from.Equal(to) {
		t.Fatalf("expected normalized single day, got %v..%v", from, to)
	}
}

func TestInclusiveDays(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2025, time.March, d, 0, 0, 0, 0, time.UTC) }
	if got := InclusiveDays(day(3), day(5)); got != 3 {
		t.Fatalf("InclusiveDays = %d, want 3", got)
	}
	if got := InclusiveDays(day(5), day(5)); got != 1 {
		t.Fatalf("single day = %d, want 1", got)
	}
	if got := InclusiveDays(day(6), day(5)); got != 0 {
		t.Fatalf("inverted = %d, want 0", got)
	}
}
