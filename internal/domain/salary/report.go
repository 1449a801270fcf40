package salary

import (
	"time"

	"github.com/shopspring/decimal"

	"leaveadmin/internal/domain/calendar"
)

// ReportInputs are the facts needed to compute one monthly report.
type ReportInputs struct {
	BaseSalary  decimal.Decimal
	JoiningDate time.Time
	Year        int
	Month       time.Month
	LeaveTaken  float64
	UnpaidDays  float64
}

// ReportFigures are the computed monetary fields of a report.
type ReportFigures struct {
	TotalWorkingDays int
	PerDaySalary     decimal.Decimal
	ProratedBase     decimal.Decimal
	Deductions       decimal.Decimal
}

// ComputeFigures derives the prorated base and deductions for one month.
// Working days shrink only in the joining month; the per-day rate always
// divides by the full month length. Deductible unpaid days are capped at the
// working-day count so a deduction can never exceed the prorated base.
func ComputeFigures(in ReportInputs) ReportFigures {
	daysInMonth := calendar.DaysInMonth(in.Year, in.Month)

	workingDays := daysInMonth
	if in.JoiningDate.Year() == in.Year && in.JoiningDate.Month() == in.Month {
		workingDays = daysInMonth - (in.JoiningDate.Day() - 1)
	}
	if workingDays < 0 {
		workingDays = 0
	}

	perDay := in.BaseSalary.Div(decimal.NewFromInt(int64(daysInMonth)))

	unpaid := in.UnpaidDays
	if unpaid < 0 {
		unpaid = 0
	}
	if unpaid > float64(workingDays) {
		unpaid = float64(workingDays)
	}

	return ReportFigures{
		TotalWorkingDays: workingDays,
		PerDaySalary:     perDay,
		ProratedBase:     perDay.Mul(decimal.NewFromInt(int64(workingDays))).Round(2),
		Deductions:       perDay.Mul(decimal.NewFromFloat(unpaid)).Round(2),
	}
}

// ApplyRegeneration merges freshly computed figures into a stored report row.
// A frozen row comes back unchanged with ok = false. Bonuses and the paid
// flag always survive regeneration.
func ApplyRegeneration(existing SalaryReport, figures ReportFigures, taken float64) (SalaryReport, bool) {
	if existing.Frozen() {
		return existing, false
	}
	existing.TotalWorkingDays = figures.TotalWorkingDays
	existing.BaseSalary = figures.ProratedBase
	existing.LeaveTaken = taken
	existing.Deductions = figures.Deductions
	return existing, true
}
