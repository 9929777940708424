package payroll

import (
	"hrpay/internal/domain/auth"
	"hrpay/internal/domain/core"
)

// CanView is the single payslip visibility rule: employees see their own
// payslip, managers additionally see employees in their own department.
// Every manager-facing entry point goes through this check before any
// calculation runs.
func CanView(viewer, target core.Employee) bool {
	if viewer.ID == target.ID {
		return true
	}
	return viewer.Role == auth.RoleManager && viewer.DepartmentID == target.DepartmentID
}
