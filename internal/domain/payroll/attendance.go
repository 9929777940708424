package payroll

import (
	"time"

	"hrpay/internal/domain/attendance"
)

// AttendanceSummary reduces a month of attendance records to the counts the
// calculator charges for. Each weekday lands in at most one bucket.
type AttendanceSummary struct {
	WorkingDays    int
	LateDays       int
	AbsentDays     int
	IncompleteDays int
	OvertimeHours  float64
}

// SummarizeAttendance walks every weekday of the period. A weekday with no
// record is absent; a recorded weekday flagged late is a late day; otherwise
// a record that was never checked out counts as incomplete. Late wins over
// incomplete so one day is never double-penalized. Overtime hours sum over
// all records, weekends included.
func SummarizeAttendance(p Period, records []attendance.Record) AttendanceSummary {
	byDay := make(map[string]attendance.Record, len(records))
	var summary AttendanceSummary
	for _, record := range records {
		byDay[record.Day.Format("2006-01-02")] = record
		summary.OvertimeHours += record.OvertimeHours
	}

	for day := p.Start(); day.Before(p.Next()); day = day.AddDate(0, 0, 1) {
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}
		summary.WorkingDays++

		record, ok := byDay[day.Format("2006-01-02")]
		switch {
		case !ok:
			summary.AbsentDays++
		case record.LateArrival:
			summary.LateDays++
		case record.Open():
			summary.IncompleteDays++
		}
	}
	return summary
}
