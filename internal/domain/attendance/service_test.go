package attendance

import (
	"testing"
	"time"
)

func TestWorkedHoursSubtractsBreak(t *testing.T) {
	in := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	out := time.Date(2025, time.March, 10, 17, 45, 0, 0, time.UTC)
	if got := WorkedHours(in, out, 45); got != 8 {
		t.Fatalf("worked = %v, want 8", got)
	}
}

func TestWorkedHoursNeverNegative(t *testing.T) {
	in := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	out := in.Add(20 * time.Minute)
	if got := WorkedHours(in, out, 45); got != 0 {
		t.Fatalf("worked = %v, want 0", got)
	}
}

func TestWorkedHoursRounding(t *testing.T) {
	in := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	out := time.Date(2025, time.March, 10, 13, 10, 0, 0, time.UTC)
	if got := WorkedHours(in, out, 45); got != 3.42 {
		t.Fatalf("worked = %v, want 3.42", got)
	}
}
