package payroll

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"hrpay/internal/domain/auth"
	"hrpay/internal/domain/core"
)

type Service struct {
	store  Store
	policy Policy
}

func NewService(store Store, policy Policy) *Service {
	return &Service{store: store, policy: policy}
}

// ComputeMySalary builds the payslip for the calling user's own employee
// record.
func (s *Service) ComputeMySalary(ctx context.Context, userID string, p Period) (Breakdown, error) {
	if err := p.Validate(); err != nil {
		return Breakdown{}, err
	}
	employee, err := s.store.EmployeeByUserID(ctx, userID)
	if err != nil {
		return Breakdown{}, err
	}
	return s.computeFor(ctx, employee, p)
}

// ComputeEmployeeSalary builds another employee's payslip after the
// visibility guard passes.
func (s *Service) ComputeEmployeeSalary(ctx context.Context, viewerUserID, employeeID string, p Period) (Breakdown, error) {
	if err := p.Validate(); err != nil {
		return Breakdown{}, err
	}
	viewer, err := s.store.EmployeeByUserID(ctx, viewerUserID)
	if err != nil {
		return Breakdown{}, err
	}
	target, err := s.store.EmployeeByID(ctx, employeeID)
	if err != nil {
		return Breakdown{}, err
	}
	if !CanView(viewer, target) {
		return Breakdown{}, ErrUnauthorized
	}
	return s.computeFor(ctx, target, p)
}

// ComputeTeamSalary builds summaries for every active employee in the
// manager's department, the manager excluded, ordered by name. One member's
// failure is recorded on that row and never aborts the batch.
func (s *Service) ComputeTeamSalary(ctx context.Context, managerUserID string, p Period) ([]TeamMember, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	manager, err := s.store.EmployeeByUserID(ctx, managerUserID)
	if err != nil {
		return nil, err
	}
	if !isManager(manager) {
		return nil, ErrManagerOnly
	}

	members, err := s.store.DepartmentMembers(ctx, manager.DepartmentID)
	if err != nil {
		return nil, err
	}

	team := make([]TeamMember, 0, len(members))
	for _, member := range members {
		if member.ID == manager.ID {
			continue
		}
		row := TeamMember{
			EmployeeID:   member.ID,
			EmployeeName: member.FullName(),
			EmployeeCode: member.EmployeeCode,
			Position:     member.PositionTitle,
			Month:        p.String(),
		}
		breakdown, err := s.computeFor(ctx, member, p)
		if err != nil {
			row.Err = err.Error()
		} else {
			row.NetSalary = breakdown.NetSalary
			row.BaseSalary = breakdown.BaseSalary
			row.Bonus = breakdown.OvertimeBonus + breakdown.OtherBonus
			row.Deductions = breakdown.TotalDeductions
		}
		team = append(team, row)
	}
	return team, nil
}

// SetBaseSalary updates an employee's base salary on the reference data.
// Managers may only set salaries within their own department. The next
// calculation reads the new figure; nothing is cached.
func (s *Service) SetBaseSalary(ctx context.Context, managerUserID, employeeID string, amount int64) (core.Employee, error) {
	if amount < 0 {
		return core.Employee{}, ErrInvalidSalary
	}
	manager, err := s.store.EmployeeByUserID(ctx, managerUserID)
	if err != nil {
		return core.Employee{}, err
	}
	if !isManager(manager) {
		return core.Employee{}, ErrManagerOnly
	}
	target, err := s.store.EmployeeByID(ctx, employeeID)
	if err != nil {
		return core.Employee{}, err
	}
	if target.DepartmentID != manager.DepartmentID {
		return core.Employee{}, ErrUnauthorized
	}

	if err := s.store.UpdateBaseSalary(ctx, target.ID, amount); err != nil {
		return core.Employee{}, err
	}
	return s.store.EmployeeByID(ctx, target.ID)
}

func (s *Service) computeFor(ctx context.Context, employee core.Employee, p Period) (Breakdown, error) {
	records, err := s.store.AttendanceForPeriod(ctx, employee.ID, p)
	if err != nil {
		return Breakdown{}, fmt.Errorf("load attendance: %w", err)
	}
	requests, err := s.store.LeaveForPeriod(ctx, employee.ID, p)
	if err != nil {
		return Breakdown{}, fmt.Errorf("load leave requests: %w", err)
	}
	percents, err := s.store.PenaltyPercents(ctx)
	if err != nil {
		return Breakdown{}, fmt.Errorf("load penalty table: %w", err)
	}

	att := SummarizeAttendance(p, records)
	lv := SummarizeLeave(requests, percents, s.policy.LeavePenaltyThreshold, employee.BaseSalary, p.DaysInMonth())

	return BuildPayslip(CalcInput{
		EmployeeID:    employee.ID,
		EmployeeName:  employee.FullName(),
		Period:        p,
		BaseSalary:    employee.BaseSalary,
		OvertimeBonus: overtimeBonus(att.OvertimeHours, s.policy.OvertimeHourlyRate),
		OtherBonus:    0,
		Attendance:    att,
		Leave:         lv,
		Rates:         s.policy.Rates,
	}), nil
}

// overtimeBonus converts accumulated overtime hours to whole VND at the
// configured hourly rate, truncating the fraction.
func overtimeBonus(hours float64, hourlyRate int64) int64 {
	if hours <= 0 || hourlyRate <= 0 {
		return 0
	}
	return decimal.NewFromFloat(hours).Mul(decimal.NewFromInt(hourlyRate)).IntPart()
}

func isManager(employee core.Employee) bool {
	return employee.Role == auth.RoleManager
}
