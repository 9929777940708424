package payroll

import (
	"bytes"
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"hrpay/internal/domain/attendance"
	"hrpay/internal/domain/auth"
	"hrpay/internal/domain/core"
	"hrpay/internal/domain/leave"
)

type fakeStore struct {
	employees     map[string]core.Employee
	attendance    map[string][]attendance.Record
	leaves        map[string][]leave.Request
	percents      map[string]decimal.Decimal
	attendanceErr map[string]error
}

func newFakeStore(employees ...core.Employee) *fakeStore {
	s := &fakeStore{
		employees:     make(map[string]core.Employee),
		attendance:    make(map[string][]attendance.Record),
		leaves:        make(map[string][]leave.Request),
		percents:      make(map[string]decimal.Decimal),
		attendanceErr: make(map[string]error),
	}
	for _, e := range employees {
		s.employees[e.ID] = e
	}
	return s
}

func (s *fakeStore) EmployeeByID(_ context.Context, employeeID string) (core.Employee, error) {
	e, ok := s.employees[employeeID]
	if !ok {
		return core.Employee{}, ErrEmployeeNotFound
	}
	return e, nil
}

func (s *fakeStore) EmployeeByUserID(_ context.Context, userID string) (core.Employee, error) {
	for _, e := range s.employees {
		if e.UserID == userID {
			return e, nil
		}
	}
	return core.Employee{}, ErrEmployeeNotFound
}

func (s *fakeStore) DepartmentMembers(_ context.Context, departmentID string) ([]core.Employee, error) {
	var members []core.Employee
	for _, e := range s.employees {
		if e.DepartmentID == departmentID && e.Status == core.StatusActive {
			members = append(members, e)
		}
	}
	sort.Slice(members, func(i, j int) bool { return members[i].ID < members[j].ID })
	return members, nil
}

func (s *fakeStore) AttendanceForPeriod(_ context.Context, employeeID string, _ Period) ([]attendance.Record, error) {
	if err := s.attendanceErr[employeeID]; err != nil {
		return nil, err
	}
	return s.attendance[employeeID], nil
}

func (s *fakeStore) LeaveForPeriod(_ context.Context, employeeID string, _ Period) ([]leave.Request, error) {
	return s.leaves[employeeID], nil
}

func (s *fakeStore) PenaltyPercents(_ context.Context) (map[string]decimal.Decimal, error) {
	return s.percents, nil
}

func (s *fakeStore) UpdateBaseSalary(_ context.Context, employeeID string, amount int64) error {
	e, ok := s.employees[employeeID]
	if !ok {
		return ErrEmployeeNotFound
	}
	e.BaseSalary = amount
	s.employees[employeeID] = e
	return nil
}

var testPolicy = Policy{
	Rates:                 testRates,
	LeavePenaltyThreshold: 4,
	OvertimeHourlyRate:    50000,
}

func testEmployees() (manager, worker, outsider core.Employee) {
	manager = core.Employee{
		ID: "mgr-1", UserID: "user-mgr", EmployeeCode: "EMP0001",
		FirstName: "Linh", LastName: "Tran",
		DepartmentID: "dept-a", Role: auth.RoleManager, Status: core.StatusActive,
		BaseSalary: 20000000,
	}
	worker = core.Employee{
		ID: "emp-1", UserID: "user-emp", EmployeeCode: "EMP0002",
		FirstName: "An", LastName: "Nguyen", PositionTitle: "Engineer",
		DepartmentID: "dept-a", Role: auth.RoleEmployee, Status: core.StatusActive,
		BaseSalary: 10000000,
	}
	outsider = core.Employee{
		ID: "emp-9", UserID: "user-out", EmployeeCode: "EMP0009",
		FirstName: "Minh", LastName: "Pham",
		DepartmentID: "dept-b", Role: auth.RoleEmployee, Status: core.StatusActive,
		BaseSalary: 8000000,
	}
	return manager, worker, outsider
}

// fullAprilAttendance closes out every weekday of the month so nothing
// reads as absent.
func fullAprilAttendance(employeeID string) []attendance.Record {
	var records []attendance.Record
	for d := 1; d <= 30; d++ {
		day := aprilDay(d)
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		in := day.Add(8 * time.Hour)
		out := day.Add(16 * time.Hour)
		records = append(records, attendance.Record{
			EmployeeID: employeeID, Day: day, Status: attendance.StatusCheckedOut,
			CheckIn: &in, CheckOut: &out, HoursWorked: 8,
		})
	}
	return records
}

func lateRecord(employeeID string, day time.Time) attendance.Record {
	in := day.Add(9 * time.Hour)
	out := day.Add(17 * time.Hour)
	return attendance.Record{
		EmployeeID: employeeID, Day: day, Status: attendance.StatusCheckedOut,
		CheckIn: &in, CheckOut: &out, HoursWorked: 8, LateArrival: true,
	}
}

func TestComputeMySalary(t *testing.T) {
	manager, worker, _ := testEmployees()
	store := newFakeStore(manager, worker)
	store.attendance[worker.ID] = fullAprilAttendance(worker.ID)
	store.attendance[worker.ID][0] = lateRecord(worker.ID, aprilDay(1))
	store.attendance[worker.ID][1] = lateRecord(worker.ID, aprilDay(2))
	svc := NewService(store, testPolicy)

	b, err := svc.ComputeMySalary(context.Background(), worker.UserID, april())
	if err != nil {
		t.Fatalf("ComputeMySalary: %v", err)
	}
	if b.LateDays != 2 {
		t.Fatalf("expected 2 late days, got %d", b.LateDays)
	}
	if b.LatePenalty != 200000 {
		t.Fatalf("expected late penalty 200000, got %d", b.LatePenalty)
	}
	if b.NetSalary != 9800000 {
		t.Fatalf("expected net 9800000, got %d", b.NetSalary)
	}
	if b.EmployeeName != "An Nguyen" {
		t.Fatalf("unexpected employee name %q", b.EmployeeName)
	}
}

func TestComputeMySalaryIdempotent(t *testing.T) {
	manager, worker, _ := testEmployees()
	store := newFakeStore(manager, worker)
	store.attendance[worker.ID] = fullAprilAttendance(worker.ID)
	svc := NewService(store, testPolicy)

	first, err := svc.ComputeMySalary(context.Background(), worker.UserID, april())
	if err != nil {
		t.Fatalf("first compute: %v", err)
	}
	second, err := svc.ComputeMySalary(context.Background(), worker.UserID, april())
	if err != nil {
		t.Fatalf("second compute: %v", err)
	}
	if first.NetSalary != second.NetSalary || first.TotalDeductions != second.TotalDeductions {
		t.Fatalf("repeated computation diverged: %d/%d vs %d/%d",
			first.NetSalary, first.TotalDeductions, second.NetSalary, second.TotalDeductions)
	}
}

func TestComputeMySalaryInvalidPeriod(t *testing.T) {
	manager, worker, _ := testEmployees()
	svc := NewService(newFakeStore(manager, worker), testPolicy)

	_, err := svc.ComputeMySalary(context.Background(), worker.UserID, Period{Year: 2025, Month: 13})
	if !errors.Is(err, ErrInvalidPeriod) {
		t.Fatalf("expected ErrInvalidPeriod, got %v", err)
	}
}

func TestComputeEmployeeSalaryManagerSameDepartment(t *testing.T) {
	manager, worker, _ := testEmployees()
	store := newFakeStore(manager, worker)
	store.attendance[worker.ID] = fullAprilAttendance(worker.ID)
	svc := NewService(store, testPolicy)

	b, err := svc.ComputeEmployeeSalary(context.Background(), manager.UserID, worker.ID, april())
	if err != nil {
		t.Fatalf("ComputeEmployeeSalary: %v", err)
	}
	if b.EmployeeID != worker.ID {
		t.Fatalf("expected payslip for %s, got %s", worker.ID, b.EmployeeID)
	}
}

func TestComputeEmployeeSalaryCrossDepartment(t *testing.T) {
	manager, _, outsider := testEmployees()
	svc := NewService(newFakeStore(manager, outsider), testPolicy)

	_, err := svc.ComputeEmployeeSalary(context.Background(), manager.UserID, outsider.ID, april())
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestComputeEmployeeSalaryEmployeeViewingPeer(t *testing.T) {
	manager, worker, _ := testEmployees()
	peer := worker
	peer.ID, peer.UserID, peer.EmployeeCode = "emp-2", "user-peer", "EMP0003"
	svc := NewService(newFakeStore(manager, worker, peer), testPolicy)

	_, err := svc.ComputeEmployeeSalary(context.Background(), worker.UserID, peer.ID, april())
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestComputeEmployeeSalaryUnknownTarget(t *testing.T) {
	manager, worker, _ := testEmployees()
	svc := NewService(newFakeStore(manager, worker), testPolicy)

	_, err := svc.ComputeEmployeeSalary(context.Background(), manager.UserID, "missing", april())
	if !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestComputeTeamSalary(t *testing.T) {
	manager, worker, _ := testEmployees()
	second := worker
	second.ID, second.UserID, second.EmployeeCode = "emp-2", "user-2", "EMP0003"
	second.FirstName = "Bao"
	store := newFakeStore(manager, worker, second)
	store.attendance[worker.ID] = fullAprilAttendance(worker.ID)
	store.attendance[second.ID] = fullAprilAttendance(second.ID)
	svc := NewService(store, testPolicy)

	team, err := svc.ComputeTeamSalary(context.Background(), manager.UserID, april())
	if err != nil {
		t.Fatalf("ComputeTeamSalary: %v", err)
	}
	if len(team) != 2 {
		t.Fatalf("expected 2 team rows, got %d", len(team))
	}
	for _, row := range team {
		if row.EmployeeID == manager.ID {
			t.Fatal("manager must not appear in their own team listing")
		}
		if row.Err != "" {
			t.Fatalf("unexpected row error for %s: %s", row.EmployeeID, row.Err)
		}
		if row.NetSalary != 10000000 {
			t.Fatalf("expected net 10000000 for %s, got %d", row.EmployeeID, row.NetSalary)
		}
	}
}

func TestComputeTeamSalaryIsolatesFailures(t *testing.T) {
	manager, worker, _ := testEmployees()
	broken := worker
	broken.ID, broken.UserID, broken.EmployeeCode = "emp-2", "user-2", "EMP0003"
	store := newFakeStore(manager, worker, broken)
	store.attendance[worker.ID] = fullAprilAttendance(worker.ID)
	store.attendanceErr[broken.ID] = errors.New("scan failed")
	svc := NewService(store, testPolicy)

	team, err := svc.ComputeTeamSalary(context.Background(), manager.UserID, april())
	if err != nil {
		t.Fatalf("ComputeTeamSalary: %v", err)
	}
	if len(team) != 2 {
		t.Fatalf("expected 2 team rows, got %d", len(team))
	}
	var failed, ok int
	for _, row := range team {
		if row.Err != "" {
			failed++
			if row.EmployeeID != broken.ID {
				t.Fatalf("wrong row carries the error: %s", row.EmployeeID)
			}
			if row.NetSalary != 0 {
				t.Fatalf("failed row must carry no figures, got net %d", row.NetSalary)
			}
		} else {
			ok++
		}
	}
	if failed != 1 || ok != 1 {
		t.Fatalf("expected one failed and one successful row, got %d/%d", failed, ok)
	}
}

func TestComputeTeamSalaryEmployeeForbidden(t *testing.T) {
	manager, worker, _ := testEmployees()
	svc := NewService(newFakeStore(manager, worker), testPolicy)

	_, err := svc.ComputeTeamSalary(context.Background(), worker.UserID, april())
	if !errors.Is(err, ErrManagerOnly) {
		t.Fatalf("expected ErrManagerOnly, got %v", err)
	}
}

func TestSetBaseSalary(t *testing.T) {
	manager, worker, _ := testEmployees()
	store := newFakeStore(manager, worker)
	svc := NewService(store, testPolicy)

	updated, err := svc.SetBaseSalary(context.Background(), manager.UserID, worker.ID, 12000000)
	if err != nil {
		t.Fatalf("SetBaseSalary: %v", err)
	}
	if updated.BaseSalary != 12000000 {
		t.Fatalf("expected updated base 12000000, got %d", updated.BaseSalary)
	}

	// The next calculation reads the new figure.
	store.attendance[worker.ID] = fullAprilAttendance(worker.ID)
	b, err := svc.ComputeMySalary(context.Background(), worker.UserID, april())
	if err != nil {
		t.Fatalf("ComputeMySalary after update: %v", err)
	}
	if b.BaseSalary != 12000000 {
		t.Fatalf("payslip still reads old base: %d", b.BaseSalary)
	}
}

func TestSetBaseSalaryNegativeAmount(t *testing.T) {
	manager, worker, _ := testEmployees()
	svc := NewService(newFakeStore(manager, worker), testPolicy)

	_, err := svc.SetBaseSalary(context.Background(), manager.UserID, worker.ID, -1)
	if !errors.Is(err, ErrInvalidSalary) {
		t.Fatalf("expected ErrInvalidSalary, got %v", err)
	}
}

func TestSetBaseSalaryEmployeeForbidden(t *testing.T) {
	manager, worker, _ := testEmployees()
	svc := NewService(newFakeStore(manager, worker), testPolicy)

	_, err := svc.SetBaseSalary(context.Background(), worker.UserID, manager.ID, 1000000)
	if !errors.Is(err, ErrManagerOnly) {
		t.Fatalf("expected ErrManagerOnly, got %v", err)
	}
}

func TestSetBaseSalaryCrossDepartment(t *testing.T) {
	manager, _, outsider := testEmployees()
	svc := NewService(newFakeStore(manager, outsider), testPolicy)

	_, err := svc.SetBaseSalary(context.Background(), manager.UserID, outsider.ID, 1000000)
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestRenderPayslipPDF(t *testing.T) {
	manager, worker, _ := testEmployees()
	store := newFakeStore(manager, worker)
	store.attendance[worker.ID] = fullAprilAttendance(worker.ID)
	store.leaves[worker.ID] = []leave.Request{
		approvedRequest("req-1", "lt-sick", "Sick Leave", aprilDay(7), aprilDay(11)),
	}
	store.percents["lt-sick"] = decimal.NewFromInt(50)
	svc := NewService(store, testPolicy)

	data, filename, err := svc.RenderPayslipPDF(context.Background(), worker.UserID, "", april())
	if err != nil {
		t.Fatalf("RenderPayslipPDF: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatal("output is not a PDF document")
	}
	if filename != "payslip_emp-1_2025_04.pdf" {
		t.Fatalf("unexpected filename %q", filename)
	}
}

func TestRenderPayslipPDFGuarded(t *testing.T) {
	manager, _, outsider := testEmployees()
	svc := NewService(newFakeStore(manager, outsider), testPolicy)

	_, _, err := svc.RenderPayslipPDF(context.Background(), manager.UserID, outsider.ID, april())
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
