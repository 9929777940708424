package db

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"hrpay/internal/domain/auth"
	"hrpay/internal/platform/config"
)

var seedLeaveTypes = []struct {
	Name           string
	DaysAllowed    int
	PenaltyPercent string
}{
	{"Annual Leave", 12, "10"},
	{"Sick Leave", 30, "50"},
	{"Unpaid Leave", 0, "100"},
}

func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	deptID, err := ensureDepartment(ctx, pool, "General", "Default department")
	if err != nil {
		return err
	}

	if err := ensureLeaveTypes(ctx, pool); err != nil {
		return err
	}

	if cfg.SeedManagerEmail != "" {
		if err := ensureManager(ctx, pool, deptID, cfg.SeedManagerEmail, cfg.SeedManagerPassword); err != nil {
			return err
		}
	}

	return nil
}

func ensureDepartment(ctx context.Context, pool *pgxpool.Pool, name, description string) (string, error) {
	var id string
	err := pool.QueryRow(ctx, "SELECT id FROM departments WHERE name = $1", name).Scan(&id)
	if err == nil {
		return id, nil
	}

	err = pool.QueryRow(ctx, "INSERT INTO departments (name, description) VALUES ($1, $2) RETURNING id", name, description).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func ensureLeaveTypes(ctx context.Context, pool *pgxpool.Pool) error {
	for _, lt := range seedLeaveTypes {
		var id string
		err := pool.QueryRow(ctx, "SELECT id FROM leave_types WHERE name = $1", lt.Name).Scan(&id)
		if err != nil {
			err = pool.QueryRow(ctx, `
        INSERT INTO leave_types (name, days_allowed) VALUES ($1, $2) RETURNING id
      `, lt.Name, lt.DaysAllowed).Scan(&id)
			if err != nil {
				return err
			}
		}
		_, err = pool.Exec(ctx, `
      INSERT INTO leave_penalties (leave_type_id, penalty_percent)
      VALUES ($1, $2)
      ON CONFLICT (leave_type_id) DO NOTHING
    `, id, lt.PenaltyPercent)
		if err != nil {
			return err
		}
	}
	return nil
}

func ensureManager(ctx context.Context, pool *pgxpool.Pool, deptID, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	var userID string
	err := pool.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
	if err != nil {
		hash, err := auth.HashPassword(password)
		if err != nil {
			return err
		}
		err = pool.QueryRow(ctx, `
      INSERT INTO users (email, password_hash, first_name, last_name)
      VALUES ($1, $2, 'Seed', 'Manager')
      RETURNING id
    `, email, hash).Scan(&userID)
		if err != nil {
			return err
		}
	}

	_, err = pool.Exec(ctx, `
    INSERT INTO employees (user_id, employee_code, department_id, role, status, hire_date)
    VALUES ($1, 'EMP0001', $2, 'manager', 'active', CURRENT_DATE)
    ON CONFLICT (user_id) DO NOTHING
  `, userID, deptID)
	return err
}
