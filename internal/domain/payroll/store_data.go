package payroll

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"hrpay/internal/domain/attendance"
	"hrpay/internal/domain/core"
	"hrpay/internal/domain/leave"
)

// DataStore adapts the reference-data, attendance and leave stores to the
// engine's read interface.
type DataStore struct {
	employees *core.Store
	records   *attendance.Store
	leaves    *leave.Store
}

func NewDataStore(pool *pgxpool.Pool, policy attendance.Policy) *DataStore {
	return &DataStore{
		employees: core.NewStore(pool),
		records:   attendance.NewStore(pool, policy),
		leaves:    leave.NewStore(pool),
	}
}

func (d *DataStore) EmployeeByID(ctx context.Context, employeeID string) (core.Employee, error) {
	return d.employees.EmployeeByID(ctx, employeeID)
}

func (d *DataStore) EmployeeByUserID(ctx context.Context, userID string) (core.Employee, error) {
	return d.employees.EmployeeByUserID(ctx, userID)
}

func (d *DataStore) DepartmentMembers(ctx context.Context, departmentID string) ([]core.Employee, error) {
	return d.employees.DepartmentMembers(ctx, departmentID)
}

func (d *DataStore) AttendanceForPeriod(ctx context.Context, employeeID string, p Period) ([]attendance.Record, error) {
	return d.records.ListForRange(ctx, employeeID, p.Start(), p.Next())
}

func (d *DataStore) LeaveForPeriod(ctx context.Context, employeeID string, p Period) ([]leave.Request, error) {
	return d.leaves.ListForRange(ctx, employeeID, p.Start(), p.Next())
}

func (d *DataStore) PenaltyPercents(ctx context.Context) (map[string]decimal.Decimal, error) {
	return d.leaves.PenaltyPercents(ctx)
}

func (d *DataStore) UpdateBaseSalary(ctx context.Context, employeeID string, amount int64) error {
	return d.employees.UpdateBaseSalary(ctx, employeeID, amount)
}
