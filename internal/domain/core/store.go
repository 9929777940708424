package core

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrEmployeeNotFound = errors.New("employee not found")

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const employeeColumns = `
  e.id, e.user_id, e.employee_code,
  u.first_name, u.last_name, u.email,
  e.department_id, d.name,
  COALESCE(e.position_id::text, ''), COALESCE(p.title, ''),
  e.hire_date, e.base_salary, e.role, e.status
`

const employeeJoins = `
  FROM employees e
  JOIN users u ON u.id = e.user_id
  JOIN departments d ON d.id = e.department_id
  LEFT JOIN positions p ON p.id = e.position_id
`

func scanEmployee(row pgx.Row) (Employee, error) {
	var e Employee
	err := row.Scan(
		&e.ID, &e.UserID, &e.EmployeeCode,
		&e.FirstName, &e.LastName, &e.Email,
		&e.DepartmentID, &e.Department,
		&e.PositionID, &e.PositionTitle,
		&e.HireDate, &e.BaseSalary, &e.Role, &e.Status,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrEmployeeNotFound
	}
	if err != nil {
		return Employee{}, err
	}
	return e, nil
}

func (s *Store) EmployeeByID(ctx context.Context, employeeID string) (Employee, error) {
	row := s.DB.QueryRow(ctx, "SELECT "+employeeColumns+employeeJoins+" WHERE e.id = $1", employeeID)
	return scanEmployee(row)
}

func (s *Store) EmployeeByUserID(ctx context.Context, userID string) (Employee, error) {
	row := s.DB.QueryRow(ctx, "SELECT "+employeeColumns+employeeJoins+" WHERE e.user_id = $1", userID)
	return scanEmployee(row)
}

// DepartmentMembers lists active employees in a department, ordered by name.
func (s *Store) DepartmentMembers(ctx context.Context, departmentID string) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, "SELECT "+employeeColumns+employeeJoins+`
    WHERE e.department_id = $1 AND e.status = 'active'
    ORDER BY u.first_name, u.last_name, e.id
  `, departmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []Employee
	for rows.Next() {
		member, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	return members, rows.Err()
}

func (s *Store) ListEmployees(ctx context.Context, limit, offset int) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, "SELECT "+employeeColumns+employeeJoins+`
    ORDER BY u.first_name, u.last_name, e.id
    LIMIT $1 OFFSET $2
  `, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, employee)
	}
	return employees, rows.Err()
}

func (s *Store) UpdateBaseSalary(ctx context.Context, employeeID string, amount int64) error {
	tag, err := s.DB.Exec(ctx, "UPDATE employees SET base_salary = $2 WHERE id = $1", employeeID, amount)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}
