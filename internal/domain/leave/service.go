package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"leaveadmin/internal/domain/calendar"
)

var (
	ErrNotFound     = errors.New("leave request not found")
	ErrInvalidState = errors.New("leave request is not pending")
)

type Service struct {
	Store  *Store
	Ledger Ledger
}

func NewService(store *Store) *Service {
	return &Service{Store: store, Ledger: NewMonthAccrualLedger()}
}

func (s *Service) ListTypes(ctx context.Context) ([]LeaveType, error) {
	rows, err := s.Store.DB.Query(ctx, `
    SELECT id, name, created_at
    FROM leave_types
    ORDER BY name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []LeaveType
	for rows.Next() {
		var t LeaveType
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}

func (s *Service) CreateType(ctx context.Context, name string) (string, error) {
	var id string
	if err := s.Store.DB.QueryRow(ctx, `
    INSERT INTO leave_types (name)
    VALUES ($1)
    ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
    RETURNING id
  `, name).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Service) ListHolidays(ctx context.Context) ([]Holiday, error) {
	rows, err := s.Store.DB.Query(ctx, `
    SELECT id, date, name
    FROM holidays
    ORDER BY date
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holidays []Holiday
	for rows.Next() {
		var h Holiday
		if err := rows.Scan(&h.ID, &h.Date, &h.Name); err != nil {
			return nil, err
		}
		holidays = append(holidays, h)
	}
	return holidays, nil
}

func (s *Service) CreateHoliday(ctx context.Context, date time.Time, name string) (string, error) {
	var id string
	if err := s.Store.DB.QueryRow(ctx, `
    INSERT INTO holidays (date, name)
    VALUES ($1,$2)
    RETURNING id
  `, date, name).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Service) DeleteHoliday(ctx context.Context, id string) error {
	_, err := s.Store.DB.Exec(ctx, "DELETE FROM holidays WHERE id = $1", id)
	return err
}

// nonRejectedWindows loads every window that participates in overlap checks.
func (s *Service) nonRejectedWindows(ctx context.Context, employeeID string) ([]Window, error) {
	rows, err := s.Store.DB.Query(ctx, `
    SELECT start_date, end_date
    FROM leave_requests
    WHERE employee_id = $1 AND status != $2
  `, employeeID, StatusRejected)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var windows []Window
	for rows.Next() {
		var w Window
		if err := rows.Scan(&w.StartDate, &w.EndDate); err != nil {
			return nil, err
		}
		windows = append(windows, w)
	}
	return windows, nil
}

type SubmitParams struct {
	EmployeeID  string
	LeaveTypeID string
	StartDate   time.Time
	EndDate     time.Time
	IsHalfDay   bool
	Reason      string
}

// Submit files a self-service request: dates must be strictly in the future,
// an exact duplicate range is rejected, and the range may not overlap any
// non-rejected request. The request starts out pending.
func (s *Service) Submit(ctx context.Context, params SubmitParams, now time.Time) (LeaveRequest, error) {
	if err := ValidateRange(params.StartDate, params.EndDate); err != nil {
		return LeaveRequest{}, err
	}
	if err := ValidateFuture(params.StartDate, params.EndDate, now); err != nil {
		return LeaveRequest{}, err
	}

	var duplicate bool
	if err := s.Store.DB.QueryRow(ctx, `
    SELECT EXISTS (
      SELECT 1 FROM leave_requests
      WHERE employee_id = $1 AND start_date = $2 AND end_date = $3
    )
  `, params.EmployeeID, calendar.Day(params.StartDate), calendar.Day(params.EndDate)).Scan(&duplicate); err != nil {
		return LeaveRequest{}, err
	}
	if duplicate {
		return LeaveRequest{}, ErrDuplicateRange
	}

	windows, err := s.nonRejectedWindows(ctx, params.EmployeeID)
	if err != nil {
		return LeaveRequest{}, err
	}
	if err := CheckOverlap(params.StartDate, params.EndDate, windows); err != nil {
		return LeaveRequest{}, err
	}

	return s.insert(ctx, params, StatusPending, now)
}

// SubmitOnBehalf files a manager-entered request. It skips the future-date and
// exact-duplicate checks (intentional asymmetry with self-service) and is
// approved immediately.
func (s *Service) SubmitOnBehalf(ctx context.Context, params SubmitParams, now time.Time) (LeaveRequest, error) {
	if err := ValidateRange(params.StartDate, params.EndDate); err != nil {
		return LeaveRequest{}, err
	}
	windows, err := s.nonRejectedWindows(ctx, params.EmployeeID)
	if err != nil {
		return LeaveRequest{}, err
	}
	if err := CheckOverlap(params.StartDate, params.EndDate, windows); err != nil {
		return LeaveRequest{}, err
	}

	return s.insert(ctx, params, StatusApproved, now)
}

// newRequest builds the row to persist: dates normalized to calendar days,
// status and application time stamped in.
func newRequest(params SubmitParams, status string, now time.Time) LeaveRequest {
	return LeaveRequest{
		EmployeeID:  params.EmployeeID,
		LeaveTypeID: params.LeaveTypeID,
		StartDate:   calendar.Day(params.StartDate),
		EndDate:     calendar.Day(params.EndDate),
		IsHalfDay:   params.IsHalfDay,
		Reason:      params.Reason,
		Status:      status,
		AppliedOn:   now,
	}
}

func (s *Service) insert(ctx context.Context, params SubmitParams, status string, now time.Time) (LeaveRequest, error) {
	req := newRequest(params, status, now)
	err := s.Store.DB.QueryRow(ctx, `
    INSERT INTO leave_requests (employee_id, leave_type_id, start_date, end_date, is_half_day, reason, status, applied_on)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    RETURNING id
  `, req.EmployeeID, req.LeaveTypeID, req.StartDate, req.EndDate,
		req.IsHalfDay, req.Reason, req.Status, req.AppliedOn).Scan(&req.ID)
	if err != nil {
		return LeaveRequest{}, err
	}
	return req, nil
}

const requestColumns = `
  id, employee_id, leave_type_id, start_date, end_date, is_half_day, COALESCE(reason, ''), status, applied_on
`

func scanRequest(row pgx.Row) (LeaveRequest, error) {
	var req LeaveRequest
	err := row.Scan(&req.ID, &req.EmployeeID, &req.LeaveTypeID, &req.StartDate, &req.EndDate,
		&req.IsHalfDay, &req.Reason, &req.Status, &req.AppliedOn)
	return req, err
}

func (s *Service) Get(ctx context.Context, id string) (LeaveRequest, error) {
	row := s.Store.DB.QueryRow(ctx, "SELECT "+requestColumns+" FROM leave_requests WHERE id = $1", id)
	req, err := scanRequest(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return LeaveRequest{}, ErrNotFound
	}
	return req, err
}

func (s *Service) List(ctx context.Context, employeeID, status string, limit, offset int) ([]LeaveRequest, error) {
	query := "SELECT " + requestColumns + " FROM leave_requests WHERE 1=1"
	args := []any{}
	if employeeID != "" {
		args = append(args, employeeID)
		query += fmt.Sprintf(" AND employee_id = $%d", len(args))
	}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY applied_on DESC"
	if limit > 0 {
		args = append(args, limit, offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	rows, err := s.Store.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []LeaveRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, nil
}

// UpdateStatus moves a pending request to approved or rejected. The transition
// happens at most once; anything but pending is ErrInvalidState.
func (s *Service) UpdateStatus(ctx context.Context, id, newStatus string) (LeaveRequest, error) {
	if newStatus != StatusApproved && newStatus != StatusRejected {
		return LeaveRequest{}, ErrInvalidState
	}
	req, err := s.Get(ctx, id)
	if err != nil {
		return LeaveRequest{}, err
	}
	if req.Status != StatusPending {
		return LeaveRequest{}, ErrInvalidState
	}

	if _, err := s.Store.DB.Exec(ctx, `
    UPDATE leave_requests SET status = $1 WHERE id = $2
  `, newStatus, id); err != nil {
		return LeaveRequest{}, err
	}
	req.Status = newStatus
	return req, nil
}

// Delete removes a request and returns it so the caller can reverse any
// salary-report impact of an approved leave.
func (s *Service) Delete(ctx context.Context, id string) (LeaveRequest, error) {
	req, err := s.Get(ctx, id)
	if err != nil {
		return LeaveRequest{}, err
	}
	if _, err := s.Store.DB.Exec(ctx, "DELETE FROM leave_requests WHERE id = $1", id); err != nil {
		return LeaveRequest{}, err
	}
	return req, nil
}

// ApprovedInWindow lists approved requests touching [winStart, winEnd],
// optionally excluding one request by id.
func (s *Service) ApprovedInWindow(ctx context.Context, employeeID string, winStart, winEnd time.Time, excludeID string) ([]LeaveRequest, error) {
	query := `
    SELECT ` + requestColumns + `
    FROM leave_requests
    WHERE employee_id = $1 AND status = $2 AND end_date >= $3 AND start_date <= $4
  `
	args := []any{employeeID, StatusApproved, winStart, winEnd}
	if excludeID != "" {
		query += " AND id != $5"
		args = append(args, excludeID)
	}

	rows, err := s.Store.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []LeaveRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, nil
}

// YearUsage expands an employee's approved leaves from January 1 through the
// end of the given month and returns per-month day-weights for that year.
func (s *Service) YearUsage(ctx context.Context, employeeID string, year int, throughMonth time.Month) (map[time.Month]float64, error) {
	winStart := calendar.YearStart(year)
	_, winEnd := calendar.MonthWindow(year, throughMonth)

	requests, err := s.ApprovedInWindow(ctx, employeeID, winStart, winEnd, "")
	if err != nil {
		return nil, err
	}

	usage := make(map[time.Month]float64)
	for _, req := range requests {
		for _, day := range ExpandDays(req.StartDate, req.EndDate, req.IsHalfDay, winStart, winEnd) {
			usage[day.Date.Month()] += day.Weight()
		}
	}
	return usage, nil
}

type Summary struct {
	EmployeeID     string  `json:"employeeId"`
	FullName       string  `json:"fullName"`
	Email          string  `json:"email"`
	TotalAllocated float64 `json:"totalAllocated"`
	Used           float64 `json:"used"`
	Remaining      float64 `json:"remaining"`
	Unpaid         float64 `json:"unpaid"`
}

// Summarize runs the accrual ledger for one employee up to the given month.
func (s *Service) Summarize(ctx context.Context, employeeID string, year int, throughMonth time.Month) (AccrualResult, error) {
	usage, err := s.YearUsage(ctx, employeeID, year, throughMonth)
	if err != nil {
		return AccrualResult{}, err
	}
	return s.Ledger.Apportion(usage, throughMonth), nil
}

// SummarizeAll produces the remaining-leave overview for every active
// employee, one ledger fold each.
func (s *Service) SummarizeAll(ctx context.Context, now time.Time) ([]Summary, error) {
	rows, err := s.Store.DB.Query(ctx, `
    SELECT id, COALESCE(full_name, ''), email
    FROM employees
    WHERE role = 'employee' AND is_active = true
    ORDER BY full_name, email
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type employeeRow struct {
		id, name, email string
	}
	var employees []employeeRow
	for rows.Next() {
		var e employeeRow
		if err := rows.Scan(&e.id, &e.name, &e.email); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}

	summaries := make([]Summary, 0, len(employees))
	for _, e := range employees {
		result, err := s.Summarize(ctx, e.id, now.Year(), now.Month())
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, Summary{
			EmployeeID:     e.id,
			FullName:       e.name,
			Email:          e.email,
			TotalAllocated: float64(now.Month()),
			Used:           round1(result.TotalPaidUsed),
			Remaining:      round1(result.CarryForward),
			Unpaid:         round1(result.TotalUnpaid),
		})
	}
	return summaries, nil
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
