package leave

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var (
	ErrRequestNotFound   = errors.New("leave request not found")
	ErrInvalidTransition = errors.New("invalid leave status transition")
	ErrLeaveTypeNotFound = errors.New("leave type not found")
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) ListTypes(ctx context.Context) ([]Type, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT t.id, t.name, t.days_allowed, t.description,
           COALESCE(p.penalty_percent, 0)
    FROM leave_types t
    LEFT JOIN leave_penalties p ON p.leave_type_id = t.id
    ORDER BY t.name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []Type
	for rows.Next() {
		var t Type
		if err := rows.Scan(&t.ID, &t.Name, &t.DaysAllowed, &t.Description, &t.PenaltyPercent); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

// PenaltyPercents maps leave type id to its configured penalty percent.
// Types with no penalty row are simply absent from the map.
func (s *Store) PenaltyPercents(ctx context.Context) (map[string]decimal.Decimal, error) {
	rows, err := s.DB.Query(ctx, "SELECT leave_type_id, penalty_percent FROM leave_penalties")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	percents := make(map[string]decimal.Decimal)
	for rows.Next() {
		var typeID string
		var percent decimal.Decimal
		if err := rows.Scan(&typeID, &percent); err != nil {
			return nil, err
		}
		percents[typeID] = percent
	}
	return percents, rows.Err()
}

const requestColumns = `
  r.id, r.employee_id, r.leave_type_id, t.name,
  r.start_date, r.end_date, r.days_requested, r.reason, r.status,
  COALESCE(r.approved_by::text, ''), r.created_at, r.responded_at
`

func scanRequest(row pgx.Row) (Request, error) {
	var r Request
	err := row.Scan(
		&r.ID, &r.EmployeeID, &r.LeaveTypeID, &r.LeaveTypeName,
		&r.StartDate, &r.EndDate, &r.DaysRequested, &r.Reason, &r.Status,
		&r.ApprovedBy, &r.CreatedAt, &r.RespondedAt,
	)
	return r, err
}

func (s *Store) Submit(ctx context.Context, employeeID, leaveTypeID string, start, end time.Time, reason string) (Request, error) {
	days, err := WeekdayCount(start, end)
	if err != nil {
		return Request{}, err
	}

	var exists bool
	if err := s.DB.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM leave_types WHERE id = $1)", leaveTypeID).Scan(&exists); err != nil {
		return Request{}, err
	}
	if !exists {
		return Request{}, ErrLeaveTypeNotFound
	}

	row := s.DB.QueryRow(ctx, `
    INSERT INTO leave_requests (employee_id, leave_type_id, start_date, end_date, days_requested, reason)
    VALUES ($1, $2, $3, $4, $5, $6)
    RETURNING id
  `, employeeID, leaveTypeID, start, end, days, reason)
	var id string
	if err := row.Scan(&id); err != nil {
		return Request{}, err
	}
	return s.RequestByID(ctx, id)
}

func (s *Store) RequestByID(ctx context.Context, requestID string) (Request, error) {
	row := s.DB.QueryRow(ctx, "SELECT "+requestColumns+`
    FROM leave_requests r
    JOIN leave_types t ON t.id = r.leave_type_id
    WHERE r.id = $1
  `, requestID)
	request, err := scanRequest(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Request{}, ErrRequestNotFound
	}
	if err != nil {
		return Request{}, err
	}
	return request, nil
}

// Decide moves a pending request to approved or rejected.
func (s *Store) Decide(ctx context.Context, requestID, status, approverID string) (Request, error) {
	request, err := s.RequestByID(ctx, requestID)
	if err != nil {
		return Request{}, err
	}
	if !CanTransition(request.Status, status) {
		return Request{}, ErrInvalidTransition
	}

	_, err = s.DB.Exec(ctx, `
    UPDATE leave_requests
    SET status = $2, approved_by = $3, responded_at = now()
    WHERE id = $1
  `, requestID, status, approverID)
	if err != nil {
		return Request{}, err
	}
	return s.RequestByID(ctx, requestID)
}

// Cancel withdraws an employee's own pending request.
func (s *Store) Cancel(ctx context.Context, requestID, employeeID string) (Request, error) {
	request, err := s.RequestByID(ctx, requestID)
	if err != nil {
		return Request{}, err
	}
	if request.EmployeeID != employeeID {
		return Request{}, ErrRequestNotFound
	}
	if !CanTransition(request.Status, StatusCancelled) {
		return Request{}, ErrInvalidTransition
	}

	_, err = s.DB.Exec(ctx, `
    UPDATE leave_requests SET status = $2, responded_at = now() WHERE id = $1
  `, requestID, StatusCancelled)
	if err != nil {
		return Request{}, err
	}
	return s.RequestByID(ctx, requestID)
}

// ListForRange returns an employee's requests starting in [from, to),
// oldest start date first.
func (s *Store) ListForRange(ctx context.Context, employeeID string, from, to time.Time) ([]Request, error) {
	rows, err := s.DB.Query(ctx, "SELECT "+requestColumns+`
    FROM leave_requests r
    JOIN leave_types t ON t.id = r.leave_type_id
    WHERE r.employee_id = $1 AND r.start_date >= $2 AND r.start_date < $3
    ORDER BY r.start_date, r.id
  `, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []Request
	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}
	return requests, rows.Err()
}

// ListForEmployee returns all of an employee's requests, newest first.
func (s *Store) ListForEmployee(ctx context.Context, employeeID string) ([]Request, error) {
	rows, err := s.DB.Query(ctx, "SELECT "+requestColumns+`
    FROM leave_requests r
    JOIN leave_types t ON t.id = r.leave_type_id
    WHERE r.employee_id = $1
    ORDER BY r.created_at DESC, r.id
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []Request
	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}
	return requests, rows.Err()
}

// ListPendingForDepartment returns pending requests for a manager's inbox.
func (s *Store) ListPendingForDepartment(ctx context.Context, departmentID string) ([]Request, error) {
	rows, err := s.DB.Query(ctx, "SELECT "+requestColumns+`
    FROM leave_requests r
    JOIN leave_types t ON t.id = r.leave_type_id
    JOIN employees e ON e.id = r.employee_id
    WHERE e.department_id = $1 AND r.status = 'pending'
    ORDER BY r.created_at, r.id
  `, departmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []Request
	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}
	return requests, rows.Err()
}
