package leave

import (
	"errors"
	"testing"
	"time"
)

func window(start, end time.Time) Window {
	return Window{StartDate: start, EndDate: end}
}

func TestOverlaps(t *testing.T) {
	existing := window(day(2025, time.March, 10), day(2025, time.March, 15))

	cases := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"start inside", day(2025, time.March, 12), day(2025, time.March, 20), true},
		{"end inside", day(2025, time.March, 5), day(2025, time.March, 12), true},
		{"contains", day(2025, time.March, 5), day(2025, time.March, 20), true},
		{"contained", day(2025, time.March, 11), day(2025, time.March, 14), true},
		{"identical", day(2025, time.March, 10), day(2025, time.March, 15), true},
		{"before", day(2025, time.March, 1), day(2025, time.March, 9), false},
		{"after", day(2025, time.March, 16), day(2025, time.March, 20), false},
		{"touching start", day(2025, time.March, 5), day(2025, time.March, 10), true},
	}
	for _, tc := range cases {
		if got := Overlaps(tc.start, tc.end, existing); got != tc.want {
			t.Fatalf("%s: Overlaps = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestCheckOverlapRejects(t *testing.T) {
	existing := []Window{window(day(2025, time.March, 10), day(2025, time.March, 15))}
	err := CheckOverlap(day(2025, time.March, 14), day(2025, time.March, 18), existing)
	if !errors.Is(err, ErrOverlap) {
		t.Fatalf("expected ErrOverlap, got %v", err)
	}
	if err := CheckOverlap(day(2025, time.April, 1), day(2025, time.April, 2), existing); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRange(t *testing.T) {
	if err := ValidateRange(day(2025, time.March, 5), day(2025, time.March, 4)); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
	if err := ValidateRange(day(2025, time.March, 5), day(2025, time.March, 5)); err != nil {
		t.Fatalf("single day should be valid: %v", err)
	}
}

func TestValidateFuture(t *testing.T) {
	today := day(2025, time.March, 10)

	if err := ValidateFuture(day(2025, time.March, 11), day(2025, time.March, 12), today); err != nil {
		t.Fatalf("future range rejected: %v", err)
	}
	if err := ValidateFuture(day(2025, time.March, 10), day(2025, time.March, 12), today); !errors.Is(err, ErrNotFuture) {
		t.Fatalf("today should be rejected, got %v", err)
	}
	if err := ValidateFuture(day(2025, time.March, 1), day(2025, time.March, 2), today); !errors.Is(err, ErrNotFuture) {
		t.Fatalf("past should be rejected, got %v", err)
	}
}
