package salary

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"leaveadmin/internal/domain/employee"
	"leaveadmin/internal/domain/leave"
	cryptoutil "leaveadmin/internal/platform/crypto"
)

var (
	ErrReportNotFound = errors.New("salary report not found")
	ErrReportPaid     = errors.New("salary report is already paid")
)

type Service struct {
	Store      *Store
	Crypto     *cryptoutil.Service
	Employees  *employee.Service
	Leaves     *leave.Service
	PayslipDir string

	locks *keyedMutex
}

func NewService(store *Store, crypto *cryptoutil.Service, employees *employee.Service, leaves *leave.Service, payslipDir string) *Service {
	return &Service{
		Store:      store,
		Crypto:     crypto,
		Employees:  employees,
		Leaves:     leaves,
		PayslipDir: payslipDir,
		locks:      newKeyedMutex(),
	}
}

// GenerateMonthReports is the eager path: it runs once per report-list view
// and brings every active employee's row for the month up to date. Reports
// already marked paid are left untouched.
func (s *Service) GenerateMonthReports(ctx context.Context, year int, month time.Month) error {
	employees, err := s.Employees.List(ctx, "", true)
	if err != nil {
		return err
	}
	monthEnd := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
	for _, emp := range employees {
		if emp.JoiningDate.After(monthEnd) {
			continue
		}
		if err := s.RecomputeEmployeeMonth(ctx, emp.ID, year, month); err != nil {
			return err
		}
	}
	return nil
}

// RecomputeEmployeeMonth is the reactive path: it rebuilds one report row from
// the accrual fold over the employee's approved leave, January through the
// target month. Serialized per employee so concurrent approvals cannot race
// to a lost update.
func (s *Service) RecomputeEmployeeMonth(ctx context.Context, employeeID string, year int, month time.Month) error {
	unlock := s.locks.lock(employeeID)
	defer unlock()
	return s.recomputeLocked(ctx, employeeID, year, month)
}

func (s *Service) recomputeLocked(ctx context.Context, employeeID string, year int, month time.Month) error {
	existing := SalaryReport{EmployeeID: employeeID, Year: year, Month: month}
	err := s.Store.DB.QueryRow(ctx, `
    SELECT is_paid FROM salary_reports
    WHERE employee_id = $1 AND year = $2 AND month = $3
  `, employeeID, year, int(month)).Scan(&existing.IsPaid)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	if existing.Frozen() {
		return nil
	}

	emp, err := s.Employees.Get(ctx, employeeID)
	if err != nil {
		return err
	}

	usage, err := s.Leaves.YearUsage(ctx, employeeID, year, month)
	if err != nil {
		return err
	}
	result := s.Leaves.Ledger.Apportion(usage, month)
	monthRow := result.Months[int(month)-1]

	figures := ComputeFigures(ReportInputs{
		BaseSalary:  emp.BaseSalary,
		JoiningDate: emp.JoiningDate,
		Year:        year,
		Month:       month,
		LeaveTaken:  monthRow.Taken,
		UnpaidDays:  monthRow.UnpaidUsed,
	})
	updated, ok := ApplyRegeneration(existing, figures, monthRow.Taken)
	if !ok {
		return nil
	}

	baseEnc, err := s.Crypto.EncodeDecimal(updated.BaseSalary)
	if err != nil {
		return err
	}
	dedEnc, err := s.Crypto.EncodeDecimal(updated.Deductions)
	if err != nil {
		return err
	}

	// Bonuses and the paid flag survive regeneration; the guard on is_paid
	// keeps a row frozen even if it was marked paid between the check above
	// and this write.
	_, err = s.Store.DB.Exec(ctx, `
    INSERT INTO salary_reports (employee_id, year, month, total_working_days, base_salary_enc, leave_taken, deductions_enc, bonuses_enc, is_paid, updated_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7,'',false,now())
    ON CONFLICT (employee_id, year, month) DO UPDATE
    SET total_working_days = EXCLUDED.total_working_days,
        base_salary_enc = EXCLUDED.base_salary_enc,
        leave_taken = EXCLUDED.leave_taken,
        deductions_enc = EXCLUDED.deductions_enc,
        updated_at = now()
    WHERE salary_reports.is_paid = false
  `, employeeID, year, int(month), updated.TotalWorkingDays, baseEnc, updated.LeaveTaken, dedEnc)
	return err
}

// RecomputeForLeave rebuilds every report month a leave request touches.
// Called after approval and after deletion of an approved request; the fold
// reads the surviving rows, so the same call serves both directions.
func (s *Service) RecomputeForLeave(ctx context.Context, req leave.LeaveRequest) error {
	days := leave.ExpandDays(req.StartDate, req.EndDate, req.IsHalfDay, req.StartDate, req.EndDate)
	buckets := leave.BucketByMonth(days)
	for _, key := range leave.SortedKeys(buckets) {
		if err := s.RecomputeEmployeeMonth(ctx, req.EmployeeID, key.Year, key.Month); err != nil {
			return err
		}
	}
	return nil
}

type ReportView struct {
	SalaryReport
	FullName    string          `json:"fullName"`
	Email       string          `json:"email"`
	FinalSalary decimal.Decimal `json:"finalSalary"`
}

const reportColumns = `
  r.id, r.employee_id, r.year, r.month, r.total_working_days,
  COALESCE(r.base_salary_enc, ''), r.leave_taken, COALESCE(r.deductions_enc, ''),
  COALESCE(r.bonuses_enc, ''), r.is_paid, r.updated_at,
  COALESCE(e.full_name, ''), e.email
`

func (s *Service) scanReport(row pgx.Row) (ReportView, error) {
	var v ReportView
	var month int
	var baseEnc, dedEnc, bonusEnc string
	if err := row.Scan(&v.ID, &v.EmployeeID, &v.Year, &month, &v.TotalWorkingDays,
		&baseEnc, &v.LeaveTaken, &dedEnc, &bonusEnc, &v.IsPaid, &v.UpdatedAt,
		&v.FullName, &v.Email); err != nil {
		return ReportView{}, err
	}
	v.Month = time.Month(month)

	var err error
	if v.BaseSalary, err = s.Crypto.DecodeDecimal(baseEnc); err != nil {
		return ReportView{}, err
	}
	if v.Deductions, err = s.Crypto.DecodeDecimal(dedEnc); err != nil {
		return ReportView{}, err
	}
	if v.Bonuses, err = s.Crypto.DecodeDecimal(bonusEnc); err != nil {
		return ReportView{}, err
	}
	v.FinalSalary = v.SalaryReport.FinalSalary()
	return v, nil
}

func (s *Service) ListReports(ctx context.Context, year int, month time.Month, employeeID string) ([]ReportView, error) {
	query := `
    SELECT ` + reportColumns + `
    FROM salary_reports r
    JOIN employees e ON e.id = r.employee_id
    WHERE r.year = $1 AND r.month = $2
  `
	args := []any{year, int(month)}
	if employeeID != "" {
		query += " AND r.employee_id = $3"
		args = append(args, employeeID)
	}
	query += " ORDER BY e.full_name, e.email"

	rows, err := s.Store.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []ReportView
	for rows.Next() {
		v, err := s.scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, v)
	}
	return reports, nil
}

func (s *Service) GetReport(ctx context.Context, id string) (ReportView, error) {
	row := s.Store.DB.QueryRow(ctx, `
    SELECT `+reportColumns+`
    FROM salary_reports r
    JOIN employees e ON e.id = r.employee_id
    WHERE r.id = $1
  `, id)
	v, err := s.scanReport(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return ReportView{}, ErrReportNotFound
	}
	return v, err
}

// MarkPaid freezes a report. Every regeneration path checks the flag, so the
// row's figures are immutable from this point on.
func (s *Service) MarkPaid(ctx context.Context, id string) error {
	tag, err := s.Store.DB.Exec(ctx, "UPDATE salary_reports SET is_paid = true, updated_at = now() WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrReportNotFound
	}
	return nil
}

func (s *Service) SetBonus(ctx context.Context, id string, bonus decimal.Decimal) error {
	report, err := s.GetReport(ctx, id)
	if err != nil {
		return err
	}
	if report.IsPaid {
		return ErrReportPaid
	}
	bonusEnc, err := s.Crypto.EncodeDecimal(bonus)
	if err != nil {
		return err
	}
	_, err = s.Store.DB.Exec(ctx, `
    UPDATE salary_reports SET bonuses_enc = $1, updated_at = now()
    WHERE id = $2 AND is_paid = false
  `, bonusEnc, id)
	return err
}

type AdjustmentParams struct {
	EmployeeID         string
	Year               int
	Month              time.Month
	LeavesTaken        float64
	FreeLeavesUsed     float64
	PaidLeavesDeducted float64
	OneDaySalary       decimal.Decimal
}

// ApplyAdjustment saves an annual-pool ledger entry. Re-saving the same
// (employee, month, year) rolls back the previously recorded free-leave usage
// before applying the new value, so repeated edits never double-deduct. The
// audit trail for the key is replaced wholesale.
func (s *Service) ApplyAdjustment(ctx context.Context, params AdjustmentParams) (SalaryAdjustment, error) {
	unlock := s.locks.lock(params.EmployeeID)
	defer unlock()

	var pool float64
	err := s.Store.DB.QueryRow(ctx,
		"SELECT free_leaves_left FROM employees WHERE id = $1", params.EmployeeID).Scan(&pool)
	if errors.Is(err, pgx.ErrNoRows) {
		return SalaryAdjustment{}, employee.ErrNotFound
	}
	if err != nil {
		return SalaryAdjustment{}, err
	}

	var previous float64
	err = s.Store.DB.QueryRow(ctx, `
    SELECT free_leaves_used FROM salary_adjustments
    WHERE employee_id = $1 AND year = $2 AND month = $3
  `, params.EmployeeID, params.Year, int(params.Month)).Scan(&previous)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return SalaryAdjustment{}, err
	}

	balance := AdjustPool(pool, previous, params.FreeLeavesUsed)
	if _, err := s.Store.DB.Exec(ctx,
		"UPDATE employees SET free_leaves_left = $1 WHERE id = $2", balance, params.EmployeeID); err != nil {
		return SalaryAdjustment{}, err
	}

	oneDayEnc, err := s.Crypto.EncodeDecimal(params.OneDaySalary)
	if err != nil {
		return SalaryAdjustment{}, err
	}

	adj := SalaryAdjustment{
		EmployeeID:         params.EmployeeID,
		Year:               params.Year,
		Month:              params.Month,
		LeavesTaken:        params.LeavesTaken,
		FreeLeavesUsed:     params.FreeLeavesUsed,
		PaidLeavesDeducted: params.PaidLeavesDeducted,
		OneDaySalary:       params.OneDaySalary,
		BalanceAfter:       balance,
	}
	err = s.Store.DB.QueryRow(ctx, `
    INSERT INTO salary_adjustments (employee_id, year, month, leaves_taken, free_leaves_used, paid_leaves_deducted, one_day_salary_enc, balance_after, updated_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,now())
    ON CONFLICT (employee_id, year, month) DO UPDATE
    SET leaves_taken = EXCLUDED.leaves_taken,
        free_leaves_used = EXCLUDED.free_leaves_used,
        paid_leaves_deducted = EXCLUDED.paid_leaves_deducted,
        one_day_salary_enc = EXCLUDED.one_day_salary_enc,
        balance_after = EXCLUDED.balance_after,
        updated_at = now()
    RETURNING id
  `, params.EmployeeID, params.Year, int(params.Month), params.LeavesTaken,
		params.FreeLeavesUsed, params.PaidLeavesDeducted, oneDayEnc, balance).Scan(&adj.ID)
	if err != nil {
		return SalaryAdjustment{}, err
	}

	// Delete-then-reinsert keeps the history free of stale rows from earlier
	// saves of the same month.
	if _, err := s.Store.DB.Exec(ctx, `
    DELETE FROM leave_adjustment_history
    WHERE employee_id = $1 AND year = $2 AND month = $3
  `, params.EmployeeID, params.Year, int(params.Month)); err != nil {
		return SalaryAdjustment{}, err
	}
	inserts, err := encodeHistoryRows(s.Crypto, adj)
	if err != nil {
		return SalaryAdjustment{}, err
	}
	for _, ins := range inserts {
		if _, err := s.Store.DB.Exec(ctx, `
      INSERT INTO leave_adjustment_history (employee_id, year, month, category, day_kind, days, amount_enc)
      VALUES ($1,$2,$3,$4,$5,$6,$7)
    `, ins.row.EmployeeID, ins.row.Year, int(ins.row.Month), ins.row.Category, ins.row.DayKind,
			ins.row.Days, ins.amountEnc); err != nil {
			return SalaryAdjustment{}, err
		}
	}
	return adj, nil
}

type historyInsert struct {
	row       AdjustmentHistory
	amountEnc string
}

// encodeHistoryRows pairs each audit row with its encrypted amount. Any
// encryption failure aborts the whole save; a history row never stores an
// empty amount.
func encodeHistoryRows(crypto *cryptoutil.Service, adj SalaryAdjustment) ([]historyInsert, error) {
	rows := BuildHistoryRows(adj)
	out := make([]historyInsert, 0, len(rows))
	for _, row := range rows {
		enc, err := crypto.EncodeDecimal(row.Amount)
		if err != nil {
			return nil, err
		}
		out = append(out, historyInsert{row: row, amountEnc: enc})
	}
	return out, nil
}

func (s *Service) ListAdjustments(ctx context.Context, employeeID string, year int) ([]SalaryAdjustment, error) {
	rows, err := s.Store.DB.Query(ctx, `
    SELECT id, employee_id, year, month, leaves_taken, free_leaves_used, paid_leaves_deducted,
           COALESCE(one_day_salary_enc, ''), balance_after, updated_at
    FROM salary_adjustments
    WHERE employee_id = $1 AND year = $2
    ORDER BY month
  `, employeeID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var adjustments []SalaryAdjustment
	for rows.Next() {
		var adj SalaryAdjustment
		var month int
		var oneDayEnc string
		if err := rows.Scan(&adj.ID, &adj.EmployeeID, &adj.Year, &month, &adj.LeavesTaken,
			&adj.FreeLeavesUsed, &adj.PaidLeavesDeducted, &oneDayEnc, &adj.BalanceAfter, &adj.UpdatedAt); err != nil {
			return nil, err
		}
		adj.Month = time.Month(month)
		if adj.OneDaySalary, err = s.Crypto.DecodeDecimal(oneDayEnc); err != nil {
			return nil, err
		}
		adjustments = append(adjustments, adj)
	}
	return adjustments, nil
}

func (s *Service) ListHistory(ctx context.Context, employeeID string, year int, month time.Month) ([]AdjustmentHistory, error) {
	rows, err := s.Store.DB.Query(ctx, `
    SELECT id, employee_id, year, month, category, day_kind, days, COALESCE(amount_enc, ''), created_at
    FROM leave_adjustment_history
    WHERE employee_id = $1 AND year = $2 AND month = $3
    ORDER BY created_at, category, day_kind
  `, employeeID, year, int(month))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []AdjustmentHistory
	for rows.Next() {
		var h AdjustmentHistory
		var monthVal int
		var amountEnc string
		if err := rows.Scan(&h.ID, &h.EmployeeID, &h.Year, &monthVal, &h.Category,
			&h.DayKind, &h.Days, &amountEnc, &h.CreatedAt); err != nil {
			return nil, err
		}
		h.Month = time.Month(monthVal)
		if h.Amount, err = s.Crypto.DecodeDecimal(amountEnc); err != nil {
			return nil, err
		}
		history = append(history, h)
	}
	return history, nil
}
