package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
)

type Type struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	DaysAllowed    int             `json:"daysAllowed"`
	Description    string          `json:"description,omitempty"`
	PenaltyPercent decimal.Decimal `json:"penaltyPercent"`
}

type Request struct {
	ID            string     `json:"id"`
	EmployeeID    string     `json:"employeeId"`
	LeaveTypeID   string     `json:"leaveTypeId"`
	LeaveTypeName string     `json:"leaveTypeName"`
	StartDate     time.Time  `json:"startDate"`
	EndDate       time.Time  `json:"endDate"`
	DaysRequested int        `json:"daysRequested"`
	Reason        string     `json:"reason,omitempty"`
	Status        string     `json:"status"`
	ApprovedBy    string     `json:"approvedBy,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	RespondedAt   *time.Time `json:"respondedAt,omitempty"`
}
