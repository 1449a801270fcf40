package employee

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"leaveadmin/internal/domain/auth"
	cryptoutil "leaveadmin/internal/platform/crypto"
)

var (
	ErrNotFound    = errors.New("employee not found")
	ErrEmailInUse  = errors.New("email already in use")
	ErrInvalidRole = errors.New("invalid role")
)

type Service struct {
	Store  *Store
	Crypto *cryptoutil.Service
}

func NewService(store *Store, crypto *cryptoutil.Service) *Service {
	return &Service{Store: store, Crypto: crypto}
}

const employeeColumns = `
  id, email, COALESCE(full_name, ''), role, joining_date, birth_date,
  COALESCE(base_salary_enc, ''), is_active, yearly_free_leaves, free_leaves_left, created_at
`

func (s *Service) scanEmployee(row pgx.Row) (Employee, error) {
	var e Employee
	var salaryEnc string
	if err := row.Scan(&e.ID, &e.Email, &e.FullName, &e.Role, &e.JoiningDate, &e.BirthDate,
		&salaryEnc, &e.IsActive, &e.YearlyFreeLeaves, &e.FreeLeavesLeft, &e.CreatedAt); err != nil {
		return Employee{}, err
	}
	salary, err := s.Crypto.DecodeDecimal(salaryEnc)
	if err != nil {
		return Employee{}, err
	}
	e.BaseSalary = salary
	return e, nil
}

func (s *Service) List(ctx context.Context, role string, activeOnly bool) ([]Employee, error) {
	query := "SELECT " + employeeColumns + " FROM employees WHERE 1=1"
	args := []any{}
	if role != "" {
		args = append(args, role)
		query += " AND role = $1"
	}
	if activeOnly {
		query += " AND is_active = true"
	}
	query += " ORDER BY full_name, email"

	rows, err := s.Store.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		e, err := s.scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (Employee, error) {
	row := s.Store.DB.QueryRow(ctx, "SELECT "+employeeColumns+" FROM employees WHERE id = $1", id)
	e, err := s.scanEmployee(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrNotFound
	}
	return e, err
}

func (s *Service) CredentialByEmail(ctx context.Context, email string) (Credential, error) {
	var c Credential
	err := s.Store.DB.QueryRow(ctx, `
    SELECT id, email, role, password_hash, is_active
    FROM employees
    WHERE lower(email) = lower($1)
  `, strings.TrimSpace(email)).Scan(&c.EmployeeID, &c.Email, &c.Role, &c.PasswordHash, &c.IsActive)
	if errors.Is(err, pgx.ErrNoRows) {
		return Credential{}, ErrNotFound
	}
	return c, err
}

// isPoolResetDay reports whether the annual free-leave reset is due.
func isPoolResetDay(t time.Time) bool {
	return t.Month() == time.January && t.Day() == 1
}

// ResetAnnualPools restores every active employee's free-leave balance to the
// yearly allotment and returns how many rows changed.
func (s *Service) ResetAnnualPools(ctx context.Context) (int64, error) {
	tag, err := s.Store.DB.Exec(ctx, `
    UPDATE employees
    SET free_leaves_left = yearly_free_leaves
    WHERE is_active = true
  `)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// AnnualPoolReset is the scheduled entry point. It runs on the daily trigger
// and acts only on January 1.
func (s *Service) AnnualPoolReset(ctx context.Context) (any, error) {
	if !isPoolResetDay(time.Now().UTC()) {
		return map[string]any{"skipped": true}, nil
	}
	reset, err := s.ResetAnnualPools(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]any{"employeesReset": reset}, nil
}

type CreateParams struct {
	Email            string
	FullName         string
	Role             string
	Password         string
	JoiningDate      time.Time
	BirthDate        *time.Time
	BaseSalary       decimal.Decimal
	YearlyFreeLeaves decimal.Decimal
}

func (s *Service) Create(ctx context.Context, params CreateParams) (string, error) {
	if params.Role != auth.RoleManager && params.Role != auth.RoleEmployee {
		return "", ErrInvalidRole
	}

	var exists bool
	if err := s.Store.DB.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM employees WHERE lower(email) = lower($1))", params.Email).Scan(&exists); err != nil {
		return "", err
	}
	if exists {
		return "", ErrEmailInUse
	}

	hash, err := auth.HashPassword(params.Password)
	if err != nil {
		return "", err
	}
	salaryEnc, err := s.Crypto.EncodeDecimal(params.BaseSalary)
	if err != nil {
		return "", err
	}

	var id string
	err = s.Store.DB.QueryRow(ctx, `
    INSERT INTO employees (email, full_name, password_hash, role, joining_date, birth_date, base_salary_enc, is_active, yearly_free_leaves, free_leaves_left)
    VALUES ($1,$2,$3,$4,$5,$6,$7,true,$8,$8)
    RETURNING id
  `, strings.TrimSpace(params.Email), params.FullName, hash, params.Role,
		params.JoiningDate, params.BirthDate, salaryEnc, params.YearlyFreeLeaves).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

type UpdateParams struct {
	FullName         string
	Role             string
	JoiningDate      time.Time
	BirthDate        *time.Time
	BaseSalary       decimal.Decimal
	IsActive         bool
	YearlyFreeLeaves decimal.Decimal
}

func (s *Service) Update(ctx context.Context, id string, params UpdateParams) error {
	if params.Role != auth.RoleManager && params.Role != auth.RoleEmployee {
		return ErrInvalidRole
	}
	salaryEnc, err := s.Crypto.EncodeDecimal(params.BaseSalary)
	if err != nil {
		return err
	}
	tag, err := s.Store.DB.Exec(ctx, `
    UPDATE employees
    SET full_name = $1, role = $2, joining_date = $3, birth_date = $4,
        base_salary_enc = $5, is_active = $6, yearly_free_leaves = $7
    WHERE id = $8
  `, params.FullName, params.Role, params.JoiningDate, params.BirthDate,
		salaryEnc, params.IsActive, params.YearlyFreeLeaves, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	tag, err := s.Store.DB.Exec(ctx, "DELETE FROM employees WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
