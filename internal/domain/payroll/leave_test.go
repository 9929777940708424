package payroll

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"hrpay/internal/domain/leave"
)

func approvedRequest(id, typeID, typeName string, start, end time.Time) leave.Request {
	return leave.Request{
		ID:            id,
		LeaveTypeID:   typeID,
		LeaveTypeName: typeName,
		StartDate:     start,
		EndDate:       end,
		Status:        leave.StatusApproved,
	}
}

func percentTable(entries map[string]int64) map[string]decimal.Decimal {
	table := make(map[string]decimal.Decimal, len(entries))
	for id, percent := range entries {
		table[id] = decimal.NewFromInt(percent)
	}
	return table
}

func TestSummarizeLeaveUnderThreshold(t *testing.T) {
	// Mon Apr 7 - Wed Apr 9: 3 weekdays, threshold 4.
	requests := []leave.Request{
		approvedRequest("r1", "sick", "Sick Leave", aprilDay(7), aprilDay(9)),
	}
	summary := SummarizeLeave(requests, percentTable(map[string]int64{"sick": 50}), 4, 9000000, 30)
	if summary.ApprovedDays != 3 {
		t.Fatalf("expected 3 approved days, got %d", summary.ApprovedDays)
	}
	if summary.Penalty != 0 {
		t.Fatalf("expected no penalty under threshold, got %d", summary.Penalty)
	}
	if len(summary.Breakdown) != 0 {
		t.Fatalf("expected empty breakdown, got %v", summary.Breakdown)
	}
}

func TestSummarizeLeaveExcessSingleType(t *testing.T) {
	// Scenario: threshold 2, 5 approved days at 50%, base 9,000,000 over a
	// 30-day month; pro-rated day is 300,000, so 3 excess days cost 450,000.
	requests := []leave.Request{
		approvedRequest("r1", "sick", "Sick Leave", aprilDay(7), aprilDay(11)),
	}
	summary := SummarizeLeave(requests, percentTable(map[string]int64{"sick": 50}), 2, 9000000, 30)
	if summary.ApprovedDays != 5 {
		t.Fatalf("expected 5 approved days, got %d", summary.ApprovedDays)
	}
	if summary.Penalty != 450000 {
		t.Fatalf("expected penalty 450000, got %d", summary.Penalty)
	}
	if len(summary.Breakdown) != 1 {
		t.Fatalf("expected one breakdown line, got %v", summary.Breakdown)
	}
	line := summary.Breakdown[0]
	if line.LeaveType != "Sick Leave" || line.Days != 3 || line.PenaltyAmount != 450000 {
		t.Fatalf("unexpected breakdown line: %+v", line)
	}
}

func TestSummarizeLeaveThresholdZero(t *testing.T) {
	requests := []leave.Request{
		approvedRequest("r1", "sick", "Sick Leave", aprilDay(7), aprilDay(8)),
	}
	summary := SummarizeLeave(requests, percentTable(map[string]int64{"sick": 50}), 0, 9000000, 30)
	if summary.Penalty != 2*150000 {
		t.Fatalf("threshold zero must penalize every approved day, got %d", summary.Penalty)
	}
}

func TestSummarizeLeaveAggregatesByType(t *testing.T) {
	// Three requests, two types, threshold 2 leaves 4 excess days:
	// annual takes 2 (its first request), sick takes 2, the later annual
	// request is fully covered by the allocation ending.
	requests := []leave.Request{
		approvedRequest("r3", "annual", "Annual Leave", aprilDay(14), aprilDay(15)),
		approvedRequest("r1", "annual", "Annual Leave", aprilDay(7), aprilDay(8)),
		approvedRequest("r2", "sick", "Sick Leave", aprilDay(9), aprilDay(10)),
	}
	table := percentTable(map[string]int64{"annual": 10, "sick": 50})
	summary := SummarizeLeave(requests, table, 2, 9000000, 30)

	if summary.ApprovedDays != 6 {
		t.Fatalf("expected 6 approved days, got %d", summary.ApprovedDays)
	}
	if len(summary.Breakdown) != 2 {
		t.Fatalf("expected one line per type, got %v", summary.Breakdown)
	}
	annual, sick := summary.Breakdown[0], summary.Breakdown[1]
	if annual.LeaveType != "Annual Leave" || annual.Days != 2 || annual.PenaltyAmount != 60000 {
		t.Fatalf("unexpected annual line: %+v", annual)
	}
	if sick.LeaveType != "Sick Leave" || sick.Days != 2 || sick.PenaltyAmount != 300000 {
		t.Fatalf("unexpected sick line: %+v", sick)
	}
	if summary.Penalty != annual.PenaltyAmount+sick.PenaltyAmount {
		t.Fatalf("breakdown must sum to penalty: %d vs %d", summary.Penalty, annual.PenaltyAmount+sick.PenaltyAmount)
	}
}

func TestSummarizeLeaveUnknownTypeUnpenalized(t *testing.T) {
	requests := []leave.Request{
		approvedRequest("r1", "special", "Special Leave", aprilDay(7), aprilDay(14)),
	}
	summary := SummarizeLeave(requests, percentTable(nil), 2, 9000000, 30)
	if summary.ApprovedDays != 6 {
		t.Fatalf("expected 6 approved days, got %d", summary.ApprovedDays)
	}
	if summary.Penalty != 0 {
		t.Fatalf("unknown type must charge nothing, got %d", summary.Penalty)
	}
	if len(summary.Breakdown) != 1 {
		t.Fatalf("the touched type still appears in the breakdown, got %v", summary.Breakdown)
	}
	if line := summary.Breakdown[0]; line.Days != 4 || line.PenaltyPercent != 0 || line.PenaltyAmount != 0 {
		t.Fatalf("unexpected line for unknown type: %+v", line)
	}
}

func TestSummarizeLeaveWeekendOnlyRequest(t *testing.T) {
	// Sat Apr 5 - Sun Apr 6 contributes zero days.
	requests := []leave.Request{
		approvedRequest("r1", "annual", "Annual Leave", aprilDay(5), aprilDay(6)),
	}
	summary := SummarizeLeave(requests, percentTable(map[string]int64{"annual": 10}), 0, 9000000, 30)
	if summary.ApprovedDays != 0 {
		t.Fatalf("weekend-only request must contribute nothing, got %d", summary.ApprovedDays)
	}
	if summary.Penalty != 0 || len(summary.Breakdown) != 0 {
		t.Fatalf("unexpected penalty: %+v", summary)
	}
}

func TestSummarizeLeaveRejectedInformational(t *testing.T) {
	requests := []leave.Request{
		approvedRequest("r1", "annual", "Annual Leave", aprilDay(7), aprilDay(8)),
		{
			ID: "r2", LeaveTypeID: "sick", LeaveTypeName: "Sick Leave",
			StartDate: aprilDay(9), EndDate: aprilDay(11),
			Status: leave.StatusRejected,
		},
		{
			ID: "r3", LeaveTypeID: "sick", LeaveTypeName: "Sick Leave",
			StartDate: aprilDay(14), EndDate: aprilDay(14),
			Status: leave.StatusCancelled,
		},
	}
	table := percentTable(map[string]int64{"annual": 10, "sick": 50})
	summary := SummarizeLeave(requests, table, 4, 9000000, 30)
	if summary.ApprovedDays != 2 {
		t.Fatalf("expected 2 approved days, got %d", summary.ApprovedDays)
	}
	if summary.RejectedDays != 3 {
		t.Fatalf("expected 3 rejected days, got %d", summary.RejectedDays)
	}
	if summary.Penalty != 0 {
		t.Fatalf("rejected days must never be penalized, got %d", summary.Penalty)
	}
}

func TestSummarizeLeaveBreakdownSumsExactly(t *testing.T) {
	// An awkward divisor (31-day month) with a fractional percent must still
	// leave penalty equal to the breakdown sum.
	requests := []leave.Request{
		approvedRequest("r1", "annual", "Annual Leave", time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)),
		approvedRequest("r2", "sick", "Sick Leave", time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC), time.Date(2025, 1, 17, 0, 0, 0, 0, time.UTC)),
	}
	table := map[string]decimal.Decimal{
		"annual": decimal.RequireFromString("12.5"),
		"sick":   decimal.RequireFromString("33.33"),
	}
	summary := SummarizeLeave(requests, table, 3, 10000001, 31)

	var sum int64
	for _, line := range summary.Breakdown {
		sum += line.PenaltyAmount
	}
	if sum != summary.Penalty {
		t.Fatalf("breakdown sum %d must equal penalty %d", sum, summary.Penalty)
	}
}
