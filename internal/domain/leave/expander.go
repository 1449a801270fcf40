package leave

import (
	"sort"
	"time"

	"leaveadmin/internal/domain/calendar"
)

// ExpandDays turns a request's inclusive [start, end] range into one entry per
// calendar day, clipped to [winStart, winEnd]. A request-level half-day flag is
// copied onto every expanded day, so a multi-day half-day request contributes
// 0.5 per day. Returns nil when the ranges do not overlap.
func ExpandDays(start, end time.Time, halfDay bool, winStart, winEnd time.Time) []Day {
	from, to, ok := calendar.ClipRange(start, end, winStart, winEnd)
	if !ok {
		return nil
	}
	days := make([]Day, 0, calendar.InclusiveDays(from, to))
	for dt := from; !dt.After(to); dt = dt.AddDate(0, 0, 1) {
		days = append(days, Day{Date: dt, HalfDay: halfDay})
	}
	return days
}

// BucketByMonth groups expanded days by calendar month.
func BucketByMonth(days []Day) map[MonthKey][]Day {
	buckets := make(map[MonthKey][]Day)
	for _, day := range days {
		key := MonthKey{Year: day.Date.Year(), Month: day.Date.Month()}
		buckets[key] = append(buckets[key], day)
	}
	return buckets
}

// MonthWeights collapses month buckets into total day-weights per month.
func MonthWeights(buckets map[MonthKey][]Day) map[MonthKey]float64 {
	weights := make(map[MonthKey]float64, len(buckets))
	for key, days := range buckets {
		total := 0.0
		for _, day := range days {
			total += day.Weight()
		}
		weights[key] = total
	}
	return weights
}

// SortedKeys returns month keys in calendar order. The accrual fold depends on
// processing months strictly in this order.
func SortedKeys[V any](buckets map[MonthKey]V) []MonthKey {
	keys := make([]MonthKey, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })
	return keys
}
