package db

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"leaveadmin/internal/platform/config"
)

// Seed inserts the bootstrap manager account and default leave types. It is
// idempotent; existing rows are left alone.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	for _, name := range []string{"Annual Leave", "Sick Leave", "Casual Leave"} {
		if _, err := pool.Exec(ctx, `
      INSERT INTO leave_types (name)
      VALUES ($1)
      ON CONFLICT (name) DO NOTHING
    `, name); err != nil {
			return err
		}
	}

	email := strings.TrimSpace(cfg.SeedManagerEmail)
	if email == "" {
		return nil
	}

	var exists bool
	if err := pool.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM employees WHERE email = $1)", email).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return nil
	}

	password := cfg.SeedManagerPassword
	if password == "" {
		password = "Default@123"
		slog.Warn("seed manager created with default password, change it immediately", "email", email)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
    INSERT INTO employees (email, full_name, password_hash, role, joining_date, is_active, yearly_free_leaves, free_leaves_left)
    VALUES ($1, $2, $3, 'manager', CURRENT_DATE, true, $4, $4)
  `, email, "Manager", string(hash), cfg.DefaultYearlyLeaves)
	return err
}
