package leave

import (
	"math"
	"time"
)

// MonthUsage is one month's slice of an accrual apportionment.
type MonthUsage struct {
	Month        time.Month `json:"month"`
	Taken        float64    `json:"taken"`
	Allowed      float64    `json:"allowed"`
	PaidUsed     float64    `json:"paidUsed"`
	UnpaidUsed   float64    `json:"unpaidUsed"`
	CarryForward float64    `json:"carryForward"`
}

// AccrualResult is the outcome of apportioning one year of leave usage into
// allowance-covered (paid) and allowance-exceeding (unpaid) days.
type AccrualResult struct {
	Months        []MonthUsage `json:"months"`
	TotalPaidUsed float64      `json:"totalPaidUsed"`
	TotalUnpaid   float64      `json:"totalUnpaid"`
	CarryForward  float64      `json:"carryForward"`
}

// Ledger apportions a year's month-bucketed leave weights into paid and unpaid
// usage. Implementations must be pure: same buckets in, same result out.
type Ledger interface {
	Apportion(takenByMonth map[time.Month]float64, throughMonth time.Month) AccrualResult
}

// MonthAccrualLedger grants one paid day per calendar month and rolls unused
// allowance forward within the year. The fold is order-dependent: it always
// walks January through the target month, never from an arbitrary midpoint.
// Carry-forward never goes negative; a month cannot borrow from the future.
type MonthAccrualLedger struct {
	MonthlyAllowance float64
}

func NewMonthAccrualLedger() MonthAccrualLedger {
	return MonthAccrualLedger{MonthlyAllowance: 1}
}

func (l MonthAccrualLedger) Apportion(takenByMonth map[time.Month]float64, throughMonth time.Month) AccrualResult {
	var result AccrualResult
	carryForward := 0.0

	for month := time.January; month <= throughMonth; month++ {
		allowed := l.MonthlyAllowance + carryForward
		taken := takenByMonth[month]

		paidUsed := math.Min(taken, allowed)
		unpaidUsed := math.Max(0, taken-allowed)
		carryForward = math.Max(0, allowed-paidUsed)

		result.Months = append(result.Months, MonthUsage{
			Month:        month,
			Taken:        taken,
			Allowed:      allowed,
			PaidUsed:     paidUsed,
			UnpaidUsed:   unpaidUsed,
			CarryForward: carryForward,
		})
		result.TotalPaidUsed += paidUsed
		result.TotalUnpaid += unpaidUsed
	}

	result.CarryForward = carryForward
	return result
}

// AnnualPoolLedger covers leave from a single yearly pool until it runs dry;
// everything beyond the pool is unpaid. This is the model behind the explicit
// salary-adjustment ledger, where the pool is the employee's free-leave
// balance for the year.
type AnnualPoolLedger struct {
	Pool float64
}

func (l AnnualPoolLedger) Apportion(takenByMonth map[time.Month]float64, throughMonth time.Month) AccrualResult {
	var result AccrualResult
	remaining := math.Max(0, l.Pool)

	for month := time.January; month <= throughMonth; month++ {
		taken := takenByMonth[month]

		paidUsed := math.Min(taken, remaining)
		unpaidUsed := taken - paidUsed
		remaining -= paidUsed

		result.Months = append(result.Months, MonthUsage{
			Month:        month,
			Taken:        taken,
			Allowed:      remaining + paidUsed,
			PaidUsed:     paidUsed,
			UnpaidUsed:   unpaidUsed,
			CarryForward: remaining,
		})
		result.TotalPaidUsed += paidUsed
		result.TotalUnpaid += unpaidUsed
	}

	result.CarryForward = remaining
	return result
}
