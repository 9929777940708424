package payroll

import (
	"context"

	"github.com/shopspring/decimal"

	"hrpay/internal/domain/attendance"
	"hrpay/internal/domain/core"
	"hrpay/internal/domain/leave"
)

// Store is the read path the engine consumes: reference data, attendance
// and leave snapshots. The engine owns no state of its own; every payslip
// is recomputed from these sources on demand.
type Store interface {
	EmployeeByID(ctx context.Context, employeeID string) (core.Employee, error)
	EmployeeByUserID(ctx context.Context, userID string) (core.Employee, error)
	DepartmentMembers(ctx context.Context, departmentID string) ([]core.Employee, error)
	AttendanceForPeriod(ctx context.Context, employeeID string, p Period) ([]attendance.Record, error)
	LeaveForPeriod(ctx context.Context, employeeID string, p Period) ([]leave.Request, error)
	PenaltyPercents(ctx context.Context) (map[string]decimal.Decimal, error)
	UpdateBaseSalary(ctx context.Context, employeeID string, amount int64) error
}
