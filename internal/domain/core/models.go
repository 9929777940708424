package core

import (
	"strings"
	"time"
)

const (
	StatusActive     = "active"
	StatusInactive   = "inactive"
	StatusTerminated = "terminated"
)

type Employee struct {
	ID            string     `json:"id"`
	UserID        string     `json:"userId"`
	EmployeeCode  string     `json:"employeeCode"`
	FirstName     string     `json:"firstName"`
	LastName      string     `json:"lastName"`
	Email         string     `json:"email"`
	DepartmentID  string     `json:"departmentId"`
	Department    string     `json:"department"`
	PositionID    string     `json:"positionId,omitempty"`
	PositionTitle string     `json:"positionTitle,omitempty"`
	HireDate      *time.Time `json:"hireDate,omitempty"`
	BaseSalary    int64      `json:"baseSalary"`
	Role          string     `json:"role"`
	Status        string     `json:"status"`
}

func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

type Department struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Position struct {
	ID           string `json:"id"`
	DepartmentID string `json:"departmentId"`
	Title        string `json:"title"`
	Description  string `json:"description"`
}
