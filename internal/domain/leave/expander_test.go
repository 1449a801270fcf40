package leave

import (
	"testing"
	"time"

	"leaveadmin/internal/domain/calendar"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestExpandDaysFullRange(t *testing.T) {
	days := ExpandDays(day(2025, time.March, 3), day(2025, time.March, 5), false,
		calendar.YearStart(2025), calendar.YearEnd(2025))
	if len(days) != 3 {
		t.Fatalf("expected 3 days, got %d", len(days))
	}
	for i, d := range days {
		if d.HalfDay {
			t.Fatalf("day %d unexpectedly half", i)
		}
		if d.Weight() != 1 {
			t.Fatalf("weight = %v, want 1", d.Weight())
		}
	}
}

func TestExpandDaysHalfDayAppliesPerDay(t *testing.T) {
	// The half-day flag lives on the request, so a multi-day half-day
	// request contributes 0.5 for every expanded day.
	days := ExpandDays(day(2025, time.March, 3), day(2025, time.March, 6), true,
		calendar.YearStart(2025), calendar.YearEnd(2025))
	if len(days) != 4 {
		t.Fatalf("expected 4 days, got %d", len(days))
	}
	total := 0.0
	for _, d := range days {
		total += d.Weight()
	}
	if total != 2 {
		t.Fatalf("total weight = %v, want 2", total)
	}
}

func TestExpandDaysClipsToWindow(t *testing.T) {
	days := ExpandDays(day(2024, time.December, 30), day(2025, time.January, 2), false,
		calendar.YearStart(2025), calendar.YearEnd(2025))
	if len(days) != 2 {
		t.Fatalf("expected 2 days inside 2025, got %d", len(days))
	}
	if days[0].Date.Day() != 1 || days[1].Date.Day() != 2 {
		t.Fatalf("unexpected dates: %v", days)
	}
}

func TestExpandDaysNoOverlap(t *testing.T) {
	days := ExpandDays(day(2024, time.June, 1), day(2024, time.June, 3), false,
		calendar.YearStart(2025), calendar.YearEnd(2025))
	if days != nil {
		t.Fatalf("expected nil, got %v", days)
	}
}

func TestBucketByMonthAndWeights(t *testing.T) {
	days := ExpandDays(day(2025, time.January, 30), day(2025, time.February, 2), false,
		calendar.YearStart(2025), calendar.YearEnd(2025))
	buckets := BucketByMonth(days)
	if len(buckets) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(buckets))
	}
	weights := MonthWeights(buckets)
	if weights[MonthKey{2025, time.January}] != 2 {
		t.Fatalf("january weight = %v", weights[MonthKey{2025, time.January}])
	}
	if weights[MonthKey{2025, time.February}] != 2 {
		t.Fatalf("february weight = %v", weights[MonthKey{2025, time.February}])
	}

	keys := SortedKeys(buckets)
	if keys[0].Month != time.January || keys[1].Month != time.February {
		t.Fatalf("keys out of order: %v", keys)
	}
}
