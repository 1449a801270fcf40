package calendar

import "time"

// Date-only arithmetic. All helpers normalize to midnight UTC so that range
// comparisons never depend on the wall-clock time of their inputs.

func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthWindow returns the first and last calendar day of a month.
func MonthWindow(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, month, DaysInMonth(year, month), 0, 0, 0, 0, time.UTC)
	return start, end
}

func YearStart(year int) time.Time {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
}

func YearEnd(year int) time.Time {
	return time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
}

// Day truncates a timestamp to its calendar day.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ClipRange intersects [start, end] with [winStart, winEnd]. The returned ok
// is false when the ranges do not overlap.
func ClipRange(start, end, winStart, winEnd time.Time) (time.Time, time.Time, bool) {
	start, end = Day(start), Day(end)
	winStart, winEnd = Day(winStart), Day(winEnd)
	if start.Before(winStart) {
		start = winStart
	}
	if end.After(winEnd) {
		end = winEnd
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// InclusiveDays counts calendar days in [start, end], both ends included.
func InclusiveDays(start, end time.Time) int {
	start, end = Day(start), Day(end)
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}
