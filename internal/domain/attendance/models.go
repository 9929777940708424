package attendance

import "time"

const (
	StatusNotStarted = "not_started"
	StatusCheckedIn  = "checked_in"
	StatusOnBreak    = "on_break"
	StatusCheckedOut = "checked_out"
	StatusIncomplete = "incomplete"
)

// Record is one employee's attendance for one calendar day.
type Record struct {
	ID             string     `json:"id"`
	EmployeeID     string     `json:"employeeId"`
	Day            time.Time  `json:"day"`
	Status         string     `json:"status"`
	CheckIn        *time.Time `json:"checkIn,omitempty"`
	CheckOut       *time.Time `json:"checkOut,omitempty"`
	BreakMinutes   int        `json:"breakMinutes"`
	HoursWorked    float64    `json:"hoursWorked"`
	OvertimeHours  float64    `json:"overtimeHours"`
	LateArrival    bool       `json:"lateArrival"`
	EarlyDeparture bool       `json:"earlyDeparture"`
	Notes          string     `json:"notes,omitempty"`
}

// Open reports whether the record was never closed with a check-out.
func (r Record) Open() bool {
	return r.Status == StatusCheckedIn || r.Status == StatusOnBreak || r.Status == StatusIncomplete
}
