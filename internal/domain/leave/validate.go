package leave

import (
	"errors"
	"time"

	"leaveadmin/internal/domain/calendar"
)

var (
	ErrInvalidRange   = errors.New("start date must not be after end date")
	ErrOverlap        = errors.New("an overlapping leave request already exists")
	ErrNotFuture      = errors.New("leave dates must be after today")
	ErrDuplicateRange = errors.New("a leave request already exists for these dates")
)

// Overlaps reports whether [start, end] intersects the existing window:
// proposed start inside it, proposed end inside it, or full containment.
func Overlaps(start, end time.Time, existing Window) bool {
	start, end = calendar.Day(start), calendar.Day(end)
	exStart, exEnd := calendar.Day(existing.StartDate), calendar.Day(existing.EndDate)

	startInside := !start.Before(exStart) && !start.After(exEnd)
	endInside := !end.Before(exStart) && !end.After(exEnd)
	contains := start.Before(exStart) && end.After(exEnd)
	return startInside || endInside || contains
}

// ValidateRange rejects inverted date ranges.
func ValidateRange(start, end time.Time) error {
	if calendar.Day(start).After(calendar.Day(end)) {
		return ErrInvalidRange
	}
	return nil
}

// ValidateFuture enforces the self-service rule that both dates lie strictly
// after today. Manager submissions on an employee's behalf skip this check.
func ValidateFuture(start, end, today time.Time) error {
	day := calendar.Day(today)
	if !calendar.Day(start).After(day) || !calendar.Day(end).After(day) {
		return ErrNotFuture
	}
	return nil
}

// CheckOverlap rejects a proposed range that intersects any non-rejected
// existing request.
func CheckOverlap(start, end time.Time, existing []Window) error {
	for _, window := range existing {
		if Overlaps(start, end, window) {
			return ErrOverlap
		}
	}
	return nil
}
