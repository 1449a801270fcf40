package salary

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestComputeFiguresNoLeave(t *testing.T) {
	// Full 31-day month with no leave: prorated base equals the full salary
	// and nothing is deducted.
	figures := ComputeFigures(ReportInputs{
		BaseSalary:  decimal.NewFromInt(3000),
		JoiningDate: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
		Year:        2025,
		Month:       time.January,
	})
	if figures.TotalWorkingDays != 31 {
		t.Fatalf("working days = %d, want 31", figures.TotalWorkingDays)
	}
	if figures.ProratedBase.StringFixed(2) != "3000.00" {
		t.Fatalf("prorated = %s, want 3000.00", figures.ProratedBase.StringFixed(2))
	}
	if figures.Deductions.StringFixed(2) != "0.00" {
		t.Fatalf("deductions = %s, want 0.00", figures.Deductions.StringFixed(2))
	}
}

func TestComputeFiguresJoiningMidMonth(t *testing.T) {
	// Joining on day 11 of a 30-day month leaves 20 working days; the
	// per-day rate still divides by the full month.
	base := decimal.NewFromInt(3000)
	figures := ComputeFigures(ReportInputs{
		BaseSalary:  base,
		JoiningDate: time.Date(2025, time.April, 11, 0, 0, 0, 0, time.UTC),
		Year:        2025,
		Month:       time.April,
	})
	if figures.TotalWorkingDays != 20 {
		t.Fatalf("working days = %d, want 20", figures.TotalWorkingDays)
	}
	perDay := base.Div(decimal.NewFromInt(30))
	want := perDay.Mul(decimal.NewFromInt(20)).Round(2)
	if !figures.ProratedBase.Equal(want) {
		t.Fatalf("prorated = %s, want %s", figures.ProratedBase, want)
	}
}

func TestComputeFiguresJoiningEarlierMonthUnaffected(t *testing.T) {
	figures := ComputeFigures(ReportInputs{
		BaseSalary:  decimal.NewFromInt(3100),
		JoiningDate: time.Date(2025, time.February, 15, 0, 0, 0, 0, time.UTC),
		Year:        2025,
		Month:       time.March,
	})
	if figures.TotalWorkingDays != 31 {
		t.Fatalf("working days = %d, want 31", figures.TotalWorkingDays)
	}
}

func TestComputeFiguresDeductions(t *testing.T) {
	figures := ComputeFigures(ReportInputs{
		BaseSalary:  decimal.NewFromInt(3100),
		JoiningDate: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
		Year:        2025,
		Month:       time.January,
		UnpaidDays:  2,
	})
	// 3100 / 31 = 100 per day, two unpaid days.
	if figures.Deductions.StringFixed(2) != "200.00" {
		t.Fatalf("deductions = %s, want 200.00", figures.Deductions.StringFixed(2))
	}
}

func TestComputeFiguresDeductionCappedAtWorkingDays(t *testing.T) {
	figures := ComputeFigures(ReportInputs{
		BaseSalary:  decimal.NewFromInt(3000),
		JoiningDate: time.Date(2025, time.April, 26, 0, 0, 0, 0, time.UTC),
		Year:        2025,
		Month:       time.April,
		UnpaidDays:  10,
	})
	if figures.TotalWorkingDays != 5 {
		t.Fatalf("working days = %d, want 5", figures.TotalWorkingDays)
	}
	// Only 5 of the 10 unpaid days are deductible.
	perDay := decimal.NewFromInt(3000).Div(decimal.NewFromInt(30))
	want := perDay.Mul(decimal.NewFromInt(5)).Round(2)
	if !figures.Deductions.Equal(want) {
		t.Fatalf("deductions = %s, want %s", figures.Deductions, want)
	}
	if figures.Deductions.GreaterThan(figures.ProratedBase) {
		t.Fatal("deductions exceed prorated base")
	}
}

func TestPaidReportFiguresAreFrozen(t *testing.T) {
	existing := SalaryReport{
		TotalWorkingDays: 30,
		BaseSalary:       decimal.NewFromInt(3000),
		LeaveTaken:       2,
		Deductions:       decimal.NewFromInt(100),
		Bonuses:          decimal.NewFromInt(50),
		IsPaid:           true,
	}
	fresh := ReportFigures{
		TotalWorkingDays: 31,
		ProratedBase:     decimal.NewFromInt(3100),
		Deductions:       decimal.NewFromInt(200),
	}

	updated, ok := ApplyRegeneration(existing, fresh, 5)
	if ok {
		t.Fatal("expected paid report to be skipped")
	}
	if updated.TotalWorkingDays != 30 || updated.LeaveTaken != 2 {
		t.Fatalf("paid report mutated: %+v", updated)
	}
	if !updated.BaseSalary.Equal(existing.BaseSalary) || !updated.Deductions.Equal(existing.Deductions) {
		t.Fatalf("paid report figures mutated: %+v", updated)
	}
}

func TestUnpaidReportRegenerationPreservesBonus(t *testing.T) {
	existing := SalaryReport{
		TotalWorkingDays: 30,
		BaseSalary:       decimal.NewFromInt(3000),
		Bonuses:          decimal.NewFromInt(75),
	}
	fresh := ReportFigures{
		TotalWorkingDays: 31,
		ProratedBase:     decimal.NewFromInt(3100),
		Deductions:       decimal.NewFromInt(200),
	}

	updated, ok := ApplyRegeneration(existing, fresh, 3)
	if !ok {
		t.Fatal("expected unpaid report to regenerate")
	}
	if updated.TotalWorkingDays != 31 || updated.LeaveTaken != 3 {
		t.Fatalf("figures not refreshed: %+v", updated)
	}
	if !updated.BaseSalary.Equal(fresh.ProratedBase) || !updated.Deductions.Equal(fresh.Deductions) {
		t.Fatalf("figures not refreshed: %+v", updated)
	}
	if !updated.Bonuses.Equal(decimal.NewFromInt(75)) {
		t.Fatalf("bonus did not survive: %s", updated.Bonuses)
	}
	if updated.IsPaid {
		t.Fatal("regeneration must not mark a report paid")
	}
}

func TestFinalSalaryDerived(t *testing.T) {
	report := SalaryReport{
		BaseSalary: decimal.NewFromInt(3000),
		Deductions: decimal.NewFromInt(200),
		Bonuses:    decimal.NewFromInt(50),
	}
	if report.FinalSalary().StringFixed(2) != "2850.00" {
		t.Fatalf("final = %s, want 2850.00", report.FinalSalary().StringFixed(2))
	}
}
