package payroll

import (
	"testing"
	"time"

	"hrpay/internal/domain/attendance"
)

func april() Period { return Period{Year: 2025, Month: time.April} }

func aprilDay(d int) time.Time {
	return time.Date(2025, time.April, d, 0, 0, 0, 0, time.UTC)
}

func TestSummarizeAttendanceEmptyMonth(t *testing.T) {
	summary := SummarizeAttendance(april(), nil)
	if summary.WorkingDays != 22 {
		t.Fatalf("April 2025 has 22 weekdays, got %d", summary.WorkingDays)
	}
	if summary.AbsentDays != 22 {
		t.Fatalf("every weekday without a record is absent, got %d", summary.AbsentDays)
	}
	if summary.LateDays != 0 || summary.IncompleteDays != 0 {
		t.Fatalf("unexpected counts: %+v", summary)
	}
}

func TestSummarizeAttendanceBuckets(t *testing.T) {
	records := []attendance.Record{
		{Day: aprilDay(1), Status: attendance.StatusCheckedOut, LateArrival: true},
		{Day: aprilDay(2), Status: attendance.StatusCheckedOut},
		{Day: aprilDay(3), Status: attendance.StatusCheckedIn},
		{Day: aprilDay(4), Status: attendance.StatusIncomplete},
	}
	summary := SummarizeAttendance(april(), records)
	if summary.LateDays != 1 {
		t.Fatalf("expected 1 late day, got %d", summary.LateDays)
	}
	if summary.IncompleteDays != 2 {
		t.Fatalf("expected 2 incomplete days, got %d", summary.IncompleteDays)
	}
	if summary.AbsentDays != 22-4 {
		t.Fatalf("expected %d absent days, got %d", 22-4, summary.AbsentDays)
	}
}

func TestSummarizeAttendanceExclusivity(t *testing.T) {
	// A day both late and never checked out counts once, as late.
	records := []attendance.Record{
		{Day: aprilDay(7), Status: attendance.StatusIncomplete, LateArrival: true},
	}
	summary := SummarizeAttendance(april(), records)
	if summary.LateDays != 1 || summary.IncompleteDays != 0 {
		t.Fatalf("late must win over incomplete, got %+v", summary)
	}
	total := summary.LateDays + summary.AbsentDays + summary.IncompleteDays
	if total != summary.WorkingDays {
		t.Fatalf("buckets must partition weekdays: %d vs %d", total, summary.WorkingDays)
	}
}

func TestSummarizeAttendanceWeekendRecordsIgnored(t *testing.T) {
	// April 5, 2025 is a Saturday; its record contributes overtime only.
	records := []attendance.Record{
		{Day: aprilDay(5), Status: attendance.StatusCheckedOut, LateArrival: true, OvertimeHours: 4},
	}
	summary := SummarizeAttendance(april(), records)
	if summary.LateDays != 0 {
		t.Fatalf("weekend record must not count as late, got %d", summary.LateDays)
	}
	if summary.OvertimeHours != 4 {
		t.Fatalf("weekend overtime must still sum, got %v", summary.OvertimeHours)
	}
	if summary.AbsentDays != 22 {
		t.Fatalf("weekday absences unaffected, got %d", summary.AbsentDays)
	}
}

func TestSummarizeAttendanceOvertimeSum(t *testing.T) {
	records := []attendance.Record{
		{Day: aprilDay(1), Status: attendance.StatusCheckedOut, OvertimeHours: 1.5},
		{Day: aprilDay(2), Status: attendance.StatusCheckedOut, OvertimeHours: 2},
	}
	summary := SummarizeAttendance(april(), records)
	if summary.OvertimeHours != 3.5 {
		t.Fatalf("expected 3.5 overtime hours, got %v", summary.OvertimeHours)
	}
}
