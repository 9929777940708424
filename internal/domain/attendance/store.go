package attendance

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrAlreadyCheckedIn  = errors.New("already checked in today")
	ErrNotCheckedIn      = errors.New("not checked in today")
	ErrAlreadyCheckedOut = errors.New("already checked out today")
)

type Store struct {
	DB     *pgxpool.Pool
	Policy Policy
}

func NewStore(db *pgxpool.Pool, policy Policy) *Store {
	return &Store{DB: db, Policy: policy}
}

const recordColumns = `
  id, employee_id, day, status, check_in, check_out, break_minutes,
  hours_worked, overtime_hours, late_arrival, early_departure, notes
`

func scanRecord(row pgx.Row) (Record, error) {
	var r Record
	err := row.Scan(
		&r.ID, &r.EmployeeID, &r.Day, &r.Status, &r.CheckIn, &r.CheckOut,
		&r.BreakMinutes, &r.HoursWorked, &r.OvertimeHours,
		&r.LateArrival, &r.EarlyDeparture, &r.Notes,
	)
	return r, err
}

func (s *Store) RecordForDay(ctx context.Context, employeeID string, day time.Time) (Record, bool, error) {
	row := s.DB.QueryRow(ctx, "SELECT "+recordColumns+`
    FROM attendance_records WHERE employee_id = $1 AND day = $2
  `, employeeID, day)
	record, err := scanRecord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, err
	}
	return record, true, nil
}

func (s *Store) CheckIn(ctx context.Context, employeeID string, now time.Time) (Record, error) {
	day := now.Truncate(24 * time.Hour)
	_, exists, err := s.RecordForDay(ctx, employeeID, day)
	if err != nil {
		return Record{}, err
	}
	if exists {
		return Record{}, ErrAlreadyCheckedIn
	}

	late := s.Policy.IsLate(now)
	row := s.DB.QueryRow(ctx, `
    INSERT INTO attendance_records (employee_id, day, status, check_in, late_arrival)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING `+recordColumns, employeeID, day, StatusCheckedIn, now, late)
	return scanRecord(row)
}

func (s *Store) StartBreak(ctx context.Context, employeeID string, now time.Time) (Record, error) {
	day := now.Truncate(24 * time.Hour)
	record, exists, err := s.RecordForDay(ctx, employeeID, day)
	if err != nil {
		return Record{}, err
	}
	if !exists || record.Status == StatusNotStarted {
		return Record{}, ErrNotCheckedIn
	}
	if record.Status == StatusCheckedOut {
		return Record{}, ErrAlreadyCheckedOut
	}

	row := s.DB.QueryRow(ctx, `
    UPDATE attendance_records SET status = $3
    WHERE employee_id = $1 AND day = $2
    RETURNING `+recordColumns, employeeID, day, StatusOnBreak)
	return scanRecord(row)
}

func (s *Store) CheckOut(ctx context.Context, employeeID string, now time.Time, breakMinutes int) (Record, error) {
	day := now.Truncate(24 * time.Hour)
	record, exists, err := s.RecordForDay(ctx, employeeID, day)
	if err != nil {
		return Record{}, err
	}
	if !exists || record.CheckIn == nil {
		return Record{}, ErrNotCheckedIn
	}
	if record.Status == StatusCheckedOut {
		return Record{}, ErrAlreadyCheckedOut
	}

	worked, overtime := s.Policy.WorkedHours(*record.CheckIn, now, breakMinutes)
	early := s.Policy.IsEarlyDeparture(*record.CheckIn, now, breakMinutes)
	row := s.DB.QueryRow(ctx, `
    UPDATE attendance_records
    SET status = $3, check_out = $4, break_minutes = $5,
        hours_worked = $6, overtime_hours = $7, early_departure = $8
    WHERE employee_id = $1 AND day = $2
    RETURNING `+recordColumns, employeeID, day,
		StatusCheckedOut, now, breakMinutes, worked, overtime, early)
	return scanRecord(row)
}

// ListForRange returns records in [from, to), oldest first. A record that was
// never closed on a past day reads back as incomplete.
func (s *Store) ListForRange(ctx context.Context, employeeID string, from, to time.Time) ([]Record, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, day,
           CASE WHEN check_in IS NOT NULL AND check_out IS NULL AND day < CURRENT_DATE
                THEN 'incomplete' ELSE status END,
           check_in, check_out, break_minutes,
           hours_worked, overtime_hours, late_arrival, early_departure, notes
    FROM attendance_records
    WHERE employee_id = $1 AND day >= $2 AND day < $3
    ORDER BY day
  `, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
