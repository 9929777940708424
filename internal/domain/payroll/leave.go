package payroll

import (
	"sort"

	"github.com/shopspring/decimal"

	"hrpay/internal/domain/leave"
)

var oneHundred = decimal.NewFromInt(100)

// LeaveSummary reduces a month of leave requests to the totals and penalty
// the calculator charges for.
type LeaveSummary struct {
	ApprovedDays int
	RejectedDays int
	Threshold    int
	Penalty      int64
	Breakdown    []PenaltyLine
}

// SummarizeLeave sums approved leave days and, once they exceed the free
// threshold, allocates the excess against the approved requests in
// chronological order. Each excess day is charged at its leave type's
// penalty percent of one pro-rated day of base salary; a type missing from
// the percent table charges nothing. The breakdown carries one line per
// leave type, in the order types first absorbed excess days, and its
// amounts sum to Penalty exactly.
func SummarizeLeave(requests []leave.Request, percents map[string]decimal.Decimal, threshold int, baseSalary int64, daysInMonth int) LeaveSummary {
	summary := LeaveSummary{Threshold: threshold}

	approved := make([]leave.Request, 0, len(requests))
	for _, request := range requests {
		days := requestDays(request)
		switch request.Status {
		case leave.StatusApproved:
			summary.ApprovedDays += days
			approved = append(approved, request)
		case leave.StatusRejected:
			summary.RejectedDays += days
		}
	}

	if summary.ApprovedDays <= threshold || daysInMonth <= 0 {
		return summary
	}

	sort.SliceStable(approved, func(i, j int) bool {
		if approved[i].StartDate.Equal(approved[j].StartDate) {
			return approved[i].ID < approved[j].ID
		}
		return approved[i].StartDate.Before(approved[j].StartDate)
	})

	// Allocate the excess oldest-first, aggregating days per leave type.
	excess := summary.ApprovedDays - threshold
	daysByType := make(map[string]int)
	var typeOrder []string
	for _, request := range approved {
		if excess <= 0 {
			break
		}
		days := requestDays(request)
		if days <= 0 {
			continue
		}
		apply := days
		if apply > excess {
			apply = excess
		}
		if _, seen := daysByType[request.LeaveTypeID]; !seen {
			typeOrder = append(typeOrder, request.LeaveTypeID)
		}
		daysByType[request.LeaveTypeID] += apply
		excess -= apply
	}

	nameByType := make(map[string]string, len(approved))
	for _, request := range approved {
		nameByType[request.LeaveTypeID] = request.LeaveTypeName
	}

	daily := decimal.NewFromInt(baseSalary).Div(decimal.NewFromInt(int64(daysInMonth)))
	for _, typeID := range typeOrder {
		days := daysByType[typeID]
		percent := percents[typeID] // absent type reads as zero percent
		amount := daily.Mul(percent).Mul(decimal.NewFromInt(int64(days))).Div(oneHundred).IntPart()
		summary.Penalty += amount
		summary.Breakdown = append(summary.Breakdown, PenaltyLine{
			LeaveType:      nameByType[typeID],
			Days:           days,
			PenaltyPercent: percent.InexactFloat64(),
			PenaltyAmount:  amount,
		})
	}
	return summary
}

// requestDays recounts the weekdays in the request range; weekends never
// count even if the stored figure disagrees.
func requestDays(request leave.Request) int {
	days, err := leave.WeekdayCount(request.StartDate, request.EndDate)
	if err != nil {
		return 0
	}
	return days
}
