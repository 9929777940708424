package payroll

// CalcInput is everything the calculator needs. It carries no references to
// stores or clocks; calling BuildPayslip twice with the same input yields
// the same Breakdown.
type CalcInput struct {
	EmployeeID    string
	EmployeeName  string
	Period        Period
	BaseSalary    int64
	OvertimeBonus int64
	OtherBonus    int64
	Attendance    AttendanceSummary
	Leave         LeaveSummary
	Rates         PenaltyRates
}

// BuildPayslip combines base salary and bonuses with attendance and leave
// penalties. Net is not clamped at zero; a negative result is surfaced as a
// warning for the caller to flag.
func BuildPayslip(in CalcInput) Breakdown {
	latePenalty := int64(in.Attendance.LateDays) * in.Rates.LatePerDay
	absentPenalty := int64(in.Attendance.AbsentDays) * in.Rates.AbsentPerDay
	incompletePenalty := int64(in.Attendance.IncompleteDays) * in.Rates.IncompletePerDay

	gross := in.BaseSalary + in.OvertimeBonus + in.OtherBonus
	totalDeductions := latePenalty + absentPenalty + incompletePenalty + in.Leave.Penalty
	net := gross - totalDeductions

	b := Breakdown{
		EmployeeID:   in.EmployeeID,
		EmployeeName: in.EmployeeName,
		Month:        in.Period.String(),

		BaseSalary:    in.BaseSalary,
		OvertimeBonus: in.OvertimeBonus,
		OtherBonus:    in.OtherBonus,
		GrossSalary:   gross,

		WorkingDays:       in.Attendance.WorkingDays,
		LateDays:          in.Attendance.LateDays,
		LatePenalty:       latePenalty,
		AbsentDays:        in.Attendance.AbsentDays,
		AbsentPenalty:     absentPenalty,
		IncompleteDays:    in.Attendance.IncompleteDays,
		IncompletePenalty: incompletePenalty,

		ApprovedLeaveDays:     in.Leave.ApprovedDays,
		RejectedLeaveDays:     in.Leave.RejectedDays,
		TotalLeaveDays:        in.Leave.ApprovedDays,
		LeavePenaltyThreshold: in.Leave.Threshold,
		LeavePenalty:          in.Leave.Penalty,
		LeavePenaltyBreakdown: in.Leave.Breakdown,

		TotalDeductions: totalDeductions,
		NetSalary:       net,
	}
	if net < 0 {
		b.Warnings = append(b.Warnings, WarningNegativeNet)
	}
	return b
}
