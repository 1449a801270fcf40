package attendance

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"leaveadmin/internal/domain/calendar"
)

var (
	ErrAlreadyCheckedIn = errors.New("already checked in today")
	ErrNotCheckedIn     = errors.New("no open check-in for today")
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

type Service struct {
	Store     *Store
	BreakMins int
}

func NewService(store *Store, breakMins int) *Service {
	return &Service{Store: store, BreakMins: breakMins}
}

// WorkedHours is the span between check-in and check-out minus the daily
// break, floored at zero and rounded to two decimals.
func WorkedHours(in, out time.Time, breakMins int) float64 {
	hours := out.Sub(in).Hours() - float64(breakMins)/60
	if hours < 0 {
		hours = 0
	}
	return math.Round(hours*100) / 100
}

func (s *Service) CheckIn(ctx context.Context, employeeID, imageRef string, now time.Time) (Record, error) {
	day := calendar.Day(now)

	var exists bool
	if err := s.Store.DB.QueryRow(ctx, `
    SELECT EXISTS (SELECT 1 FROM attendance WHERE employee_id = $1 AND date = $2)
  `, employeeID, day).Scan(&exists); err != nil {
		return Record{}, err
	}
	if exists {
		return Record{}, ErrAlreadyCheckedIn
	}

	rec := Record{EmployeeID: employeeID, Date: day, CheckIn: now, CheckInImage: imageRef}
	err := s.Store.DB.QueryRow(ctx, `
    INSERT INTO attendance (employee_id, date, check_in, check_in_image)
    VALUES ($1,$2,$3,$4)
    RETURNING id
  `, employeeID, day, now, imageRef).Scan(&rec.ID)
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}

func (s *Service) CheckOut(ctx context.Context, employeeID, imageRef string, now time.Time) (Record, error) {
	day := calendar.Day(now)

	row := s.Store.DB.QueryRow(ctx, `
    SELECT id, check_in FROM attendance
    WHERE employee_id = $1 AND date = $2 AND check_out IS NULL
  `, employeeID, day)
	var id string
	var checkIn time.Time
	if err := row.Scan(&id, &checkIn); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Record{}, ErrNotCheckedIn
		}
		return Record{}, err
	}

	worked := WorkedHours(checkIn, now, s.BreakMins)
	if _, err := s.Store.DB.Exec(ctx, `
    UPDATE attendance
    SET check_out = $1, check_out_image = $2, worked_hours = $3
    WHERE id = $4
  `, now, imageRef, worked, id); err != nil {
		return Record{}, err
	}

	return Record{
		ID: id, EmployeeID: employeeID, Date: day,
		CheckIn: checkIn, CheckOut: &now,
		CheckInImage: "", CheckOutImage: imageRef,
		WorkedHours: worked,
	}, nil
}

// DayReport lists every active employee with their attendance for the date,
// marking those without a record as absent.
func (s *Service) DayReport(ctx context.Context, date time.Time) ([]DayEntry, error) {
	day := calendar.Day(date)
	rows, err := s.Store.DB.Query(ctx, `
    SELECT e.id, COALESCE(e.full_name, ''), e.email,
           a.id, a.check_in, a.check_out, COALESCE(a.check_in_image, ''),
           COALESCE(a.check_out_image, ''), COALESCE(a.worked_hours, 0)
    FROM employees e
    LEFT JOIN attendance a ON a.employee_id = e.id AND a.date = $1
    WHERE e.is_active = true
    ORDER BY e.full_name, e.email
  `, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []DayEntry
	for rows.Next() {
		var entry DayEntry
		var recID *string
		var checkIn, checkOut *time.Time
		var inImg, outImg string
		var worked float64
		if err := rows.Scan(&entry.EmployeeID, &entry.FullName, &entry.Email,
			&recID, &checkIn, &checkOut, &inImg, &outImg, &worked); err != nil {
			return nil, err
		}
		if recID != nil {
			entry.Present = true
			entry.Record = &Record{
				ID: *recID, EmployeeID: entry.EmployeeID, Date: day,
				CheckIn: *checkIn, CheckOut: checkOut,
				CheckInImage: inImg, CheckOutImage: outImg,
				WorkedHours: worked,
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// History lists an employee's attendance records in a date range, newest first.
func (s *Service) History(ctx context.Context, employeeID string, from, to time.Time) ([]Record, error) {
	rows, err := s.Store.DB.Query(ctx, `
    SELECT id, employee_id, date, check_in, check_out,
           COALESCE(check_in_image, ''), COALESCE(check_out_image, ''), COALESCE(worked_hours, 0)
    FROM attendance
    WHERE employee_id = $1 AND date >= $2 AND date <= $3
    ORDER BY date DESC
  `, employeeID, calendar.Day(from), calendar.Day(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.EmployeeID, &rec.Date, &rec.CheckIn, &rec.CheckOut,
			&rec.CheckInImage, &rec.CheckOutImage, &rec.WorkedHours); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}
