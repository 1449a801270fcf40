package salary

import (
	"math"

	"github.com/shopspring/decimal"
)

// AdjustPool rolls back a previously recorded free-leave usage and applies a
// new one against the employee's annual pool. Passing previous = 0 covers the
// first save for a month. The result is clamped at zero and rounded to one
// decimal place, matching the half-day granularity of the pool.
func AdjustPool(pool, previous, next float64) float64 {
	adjusted := pool + previous - next
	if adjusted < 0 {
		adjusted = 0
	}
	return math.Round(adjusted*10) / 10
}

// BuildHistoryRows produces the full audit trail for one adjustment: a row
// per {full, half} x {free-used, paid-deducted} combination with non-zero
// days, or a single no-deduction row when nothing was used. Paid rows carry
// the monetary amount at the one-day rate.
func BuildHistoryRows(adj SalaryAdjustment) []AdjustmentHistory {
	var rows []AdjustmentHistory

	add := func(category, dayKind string, days float64, amount decimal.Decimal) {
		rows = append(rows, AdjustmentHistory{
			EmployeeID: adj.EmployeeID,
			Year:       adj.Year,
			Month:      adj.Month,
			Category:   category,
			DayKind:    dayKind,
			Days:       days,
			Amount:     amount,
		})
	}

	split := func(category string, days float64, priced bool) {
		full := math.Floor(days)
		half := days - full
		if full > 0 {
			amount := decimal.Zero
			if priced {
				amount = adj.OneDaySalary.Mul(decimal.NewFromFloat(full)).Round(2)
			}
			add(category, DayKindFull, full, amount)
		}
		if half > 0 {
			amount := decimal.Zero
			if priced {
				amount = adj.OneDaySalary.Mul(decimal.NewFromFloat(half)).Round(2)
			}
			add(category, DayKindHalf, half, amount)
		}
	}

	split(HistoryFreeLeave, adj.FreeLeavesUsed, false)
	split(HistoryPaidDeduct, adj.PaidLeavesDeducted, true)

	if adj.FreeLeavesUsed == 0 && adj.PaidLeavesDeducted == 0 {
		add(HistoryNoDeduction, DayKindNone, 0, decimal.Zero)
	}
	return rows
}
