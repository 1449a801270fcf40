package leave

import "time"

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

type LeaveType struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type Holiday struct {
	ID   string    `json:"id"`
	Date time.Time `json:"date"`
	Name string    `json:"name"`
}

type LeaveRequest struct {
	ID          string    `json:"id"`
	EmployeeID  string    `json:"employeeId"`
	LeaveTypeID string    `json:"leaveTypeId"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	IsHalfDay   bool      `json:"isHalfDay"`
	Reason      string    `json:"reason"`
	Status      string    `json:"status"`
	AppliedOn   time.Time `json:"appliedOn"`
}

// Window is the inclusive date range of an existing request, as much as the
// overlap check needs to know about it.
type Window struct {
	StartDate time.Time
	EndDate   time.Time
}

// Day is a single expanded calendar day of a leave request. The half-day flag
// is per-request, so every day of a multi-day half-day request carries it.
type Day struct {
	Date    time.Time
	HalfDay bool
}

// Weight is the day's contribution to leave totals: 0.5 for half days.
func (d Day) Weight() float64 {
	if d.HalfDay {
		return 0.5
	}
	return 1
}

// MonthKey buckets expanded days for ledger consumption.
type MonthKey struct {
	Year  int
	Month time.Month
}

func (k MonthKey) Before(other MonthKey) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	return k.Month < other.Month
}
