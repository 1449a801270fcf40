package employee

import (
	"testing"
	"time"
)

func TestPoolResetDayOnlyJanuaryFirst(t *testing.T) {
	cases := []struct {
		date time.Time
		want bool
	}{
		{time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC), true},
		{time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), false},
		{time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), false},
		{time.Date(2026, 12, 31, 23, 59, 0, 0, time.UTC), false},
	}
	for _, tc := range cases {
		if got := isPoolResetDay(tc.date); got != tc.want {
			t.Fatalf("isPoolResetDay(%s) = %v, want %v", tc.date.Format("2006-01-02"), got, tc.want)
		}
	}
}
