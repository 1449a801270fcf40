package jobs

import (
	"testing"
	"time"
)

func TestNextDailyRunBeforeTrigger(t *testing.T) {
	now := time.Date(2025, time.March, 10, 7, 30, 0, 0, time.UTC)
	next := NextDailyRun(now, 9)
	want := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Fatalf("next = %v, want %v", next, want)
	}
}

func TestNextDailyRunAfterTrigger(t *testing.T) {
	now := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	next := NextDailyRun(now, 9)
	want := time.Date(2025, time.March, 11, 9, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Fatalf("next = %v, want %v", next, want)
	}
}

func TestNextDailyRunKeepsLocation(t *testing.T) {
	loc := time.FixedZone("test", 5*3600)
	now := time.Date(2025, time.March, 10, 23, 0, 0, 0, loc)
	next := NextDailyRun(now, 9)
	if next.Location() != loc {
		t.Fatalf("location = %v, want %v", next.Location(), loc)
	}
	if next.Day() != 11 || next.Hour() != 9 {
		t.Fatalf("next = %v", next)
	}
}
