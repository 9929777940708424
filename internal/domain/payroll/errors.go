package payroll

import (
	"errors"

	"hrpay/internal/domain/core"
)

var (
	// ErrEmployeeNotFound mirrors the reference-data sentinel so callers
	// match a single error across layers.
	ErrEmployeeNotFound = core.ErrEmployeeNotFound

	ErrUnauthorized  = errors.New("not allowed to view this employee's payslip")
	ErrManagerOnly   = errors.New("only managers can perform this action")
	ErrInvalidPeriod = errors.New("invalid billing period")
	ErrInvalidSalary = errors.New("base salary must not be negative")
)
