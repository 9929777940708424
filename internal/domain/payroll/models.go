package payroll

const (
	WarningNegativeNet = "negative_net"
)

// PenaltyLine is one leave type's share of the leave penalty. Lines are
// aggregated per leave type, ordered by when the type first absorbed
// excess days.
type PenaltyLine struct {
	LeaveType      string  `json:"leaveType"`
	Days           int     `json:"days"`
	PenaltyPercent float64 `json:"penaltyPercent"`
	PenaltyAmount  int64   `json:"penaltyAmount"`
}

// Breakdown is the full itemized payslip for one employee and period. It is
// the single contract between the calculator and every renderer, and is
// reproducible from the same inputs. All amounts are whole VND.
type Breakdown struct {
	EmployeeID   string `json:"employeeId"`
	EmployeeName string `json:"employeeName"`
	Month        string `json:"month"`

	BaseSalary    int64 `json:"baseSalary"`
	OvertimeBonus int64 `json:"overtimeBonus"`
	OtherBonus    int64 `json:"otherBonus"`
	GrossSalary   int64 `json:"grossSalary"`

	WorkingDays       int   `json:"workingDays"`
	LateDays          int   `json:"lateDays"`
	LatePenalty       int64 `json:"latePenalty"`
	AbsentDays        int   `json:"absentDays"`
	AbsentPenalty     int64 `json:"absentPenalty"`
	IncompleteDays    int   `json:"incompleteDays"`
	IncompletePenalty int64 `json:"incompletePenalty"`

	ApprovedLeaveDays     int           `json:"approvedLeaveDays"`
	RejectedLeaveDays     int           `json:"rejectedLeaveDays"`
	TotalLeaveDays        int           `json:"totalLeaveDays"`
	LeavePenaltyThreshold int           `json:"leavePenaltyThreshold"`
	LeavePenalty          int64         `json:"leavePenalty"`
	LeavePenaltyBreakdown []PenaltyLine `json:"leavePenaltyBreakdown"`

	TotalDeductions int64 `json:"totalDeductions"`
	NetSalary       int64 `json:"netSalary"`

	Warnings []string `json:"warnings,omitempty"`
}

// TeamMember is one row of a manager's team salary listing. Err marks a
// member whose calculation failed without aborting the batch.
type TeamMember struct {
	EmployeeID   string `json:"employeeId"`
	EmployeeName string `json:"employeeName"`
	EmployeeCode string `json:"employeeCode"`
	Position     string `json:"position"`
	Month        string `json:"month"`
	NetSalary    int64  `json:"netSalary"`
	BaseSalary   int64  `json:"baseSalary"`
	Bonus        int64  `json:"bonus"`
	Deductions   int64  `json:"deductions"`
	Err          string `json:"error,omitempty"`
}

// PenaltyRates are the fixed per-day deduction amounts in whole VND.
type PenaltyRates struct {
	LatePerDay       int64
	AbsentPerDay     int64
	IncompletePerDay int64
}

// Policy is the payroll configuration injected into the service.
type Policy struct {
	Rates                 PenaltyRates
	LeavePenaltyThreshold int
	OvertimeHourlyRate    int64
}
