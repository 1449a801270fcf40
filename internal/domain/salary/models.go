package salary

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalaryReport is the persisted monthly payroll row, one per
// (employee, year, month). FinalSalary is derived on read, never stored.
type SalaryReport struct {
	ID               string          `json:"id"`
	EmployeeID       string          `json:"employeeId"`
	Year             int             `json:"year"`
	Month            time.Month      `json:"month"`
	TotalWorkingDays int             `json:"totalWorkingDays"`
	BaseSalary       decimal.Decimal `json:"baseSalary"`
	LeaveTaken       float64         `json:"leaveTaken"`
	Deductions       decimal.Decimal `json:"deductions"`
	Bonuses          decimal.Decimal `json:"bonuses"`
	IsPaid           bool            `json:"isPaid"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

func (r SalaryReport) FinalSalary() decimal.Decimal {
	return r.BaseSalary.Sub(r.Deductions).Add(r.Bonuses)
}

// Frozen reports whether the row may still be regenerated. Marking a report
// paid freezes its figures for good.
func (r SalaryReport) Frozen() bool {
	return r.IsPaid
}

// SalaryAdjustment is the explicit annual-pool ledger row: a per
// (employee, month, year) snapshot of usage plus the running pool balance
// after the adjustment was applied.
type SalaryAdjustment struct {
	ID                 string          `json:"id"`
	EmployeeID         string          `json:"employeeId"`
	Year               int             `json:"year"`
	Month              time.Month      `json:"month"`
	LeavesTaken        float64         `json:"leavesTaken"`
	FreeLeavesUsed     float64         `json:"freeLeavesUsed"`
	PaidLeavesDeducted float64         `json:"paidLeavesDeducted"`
	OneDaySalary       decimal.Decimal `json:"oneDaySalary"`
	BalanceAfter       float64         `json:"balanceAfter"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

// Audit-trail categories for adjustment history rows.
const (
	HistoryFreeLeave   = "free_leave_used"
	HistoryPaidDeduct  = "paid_leave_deducted"
	HistoryNoDeduction = "no_deduction"

	DayKindFull = "full"
	DayKindHalf = "half"
	DayKindNone = "none"
)

// AdjustmentHistory is one audit-trail row. The set of rows for an
// (employee, month, year) key is regenerated wholesale on every save.
type AdjustmentHistory struct {
	ID         string          `json:"id"`
	EmployeeID string          `json:"employeeId"`
	Year       int             `json:"year"`
	Month      time.Month      `json:"month"`
	Category   string          `json:"category"`
	DayKind    string          `json:"dayKind"`
	Days       float64         `json:"days"`
	Amount     decimal.Decimal `json:"amount"`
	CreatedAt  time.Time       `json:"createdAt"`
}
