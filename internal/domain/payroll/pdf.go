package payroll

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// RenderPayslipPDF computes the payslip and lays it out as a PDF document.
// An empty employeeID means the caller's own payslip; anything else goes
// through the visibility guard. Returns the document bytes and a suggested
// file name.
func (s *Service) RenderPayslipPDF(ctx context.Context, viewerUserID, employeeID string, p Period) ([]byte, string, error) {
	var breakdown Breakdown
	var err error
	if employeeID == "" {
		breakdown, err = s.ComputeMySalary(ctx, viewerUserID, p)
	} else {
		breakdown, err = s.ComputeEmployeeSalary(ctx, viewerUserID, employeeID, p)
	}
	if err != nil {
		return nil, "", err
	}

	data, err := renderPayslip(breakdown)
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("payslip_%s_%s.pdf", breakdown.EmployeeID, strings.ReplaceAll(breakdown.Month, "-", "_"))
	return data, filename, nil
}

func renderPayslip(b Breakdown) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "PAYSLIP", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("Employee: %s (ID: %s)", b.EmployeeName, b.EmployeeID), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Month: %s", b.Month), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	if b.ApprovedLeaveDays > 0 || b.RejectedLeaveDays > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 7, "Leave Information", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		if b.ApprovedLeaveDays > 0 {
			pdf.CellFormat(0, 6, fmt.Sprintf("Approved Leave: %d days", b.ApprovedLeaveDays), "", 1, "L", false, 0, "")
		}
		if b.RejectedLeaveDays > 0 {
			pdf.CellFormat(0, 6, fmt.Sprintf("Rejected Leave: %d days", b.RejectedLeaveDays), "", 1, "L", false, 0, "")
		}
		if b.TotalLeaveDays > b.LeavePenaltyThreshold {
			pdf.CellFormat(0, 6, fmt.Sprintf("Penalty applied for: %d days (over %d days limit)",
				b.TotalLeaveDays-b.LeavePenaltyThreshold, b.LeavePenaltyThreshold), "", 1, "L", false, 0, "")
		}
		pdf.Ln(3)
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, "Earnings", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Base Salary: %s VND", formatVND(b.BaseSalary)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Overtime Bonus: %s VND", formatVND(b.OvertimeBonus)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Other Bonus: %s VND", formatVND(b.OtherBonus)), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, "Deductions", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	if b.LateDays > 0 {
		pdf.CellFormat(0, 6, fmt.Sprintf("Late Arrival (%d days): %s VND", b.LateDays, formatVND(b.LatePenalty)), "", 1, "L", false, 0, "")
	}
	if b.AbsentDays > 0 {
		pdf.CellFormat(0, 6, fmt.Sprintf("Absent (%d days): %s VND", b.AbsentDays, formatVND(b.AbsentPenalty)), "", 1, "L", false, 0, "")
	}
	if b.IncompleteDays > 0 {
		pdf.CellFormat(0, 6, fmt.Sprintf("Incomplete Attendance (%d days): %s VND", b.IncompleteDays, formatVND(b.IncompletePenalty)), "", 1, "L", false, 0, "")
	}
	if b.LeavePenalty > 0 {
		pdf.CellFormat(0, 6, fmt.Sprintf("Leave Penalty (over %d days): %s VND", b.LeavePenaltyThreshold, formatVND(b.LeavePenalty)), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		for _, line := range b.LeavePenaltyBreakdown {
			pdf.CellFormat(0, 5, fmt.Sprintf("  - %s (%d days, %.0f%%): %s VND",
				line.LeaveType, line.Days, line.PenaltyPercent, formatVND(line.PenaltyAmount)), "", 1, "L", false, 0, "")
		}
		pdf.SetFont("Helvetica", "", 11)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, fmt.Sprintf("Total Deductions: %s VND", formatVND(b.TotalDeductions)), "", 1, "L", false, 0, "")
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, fmt.Sprintf("Net Salary: %s VND", formatVND(b.NetSalary)), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// formatVND groups digits in thousands, e.g. 10000000 -> "10,000,000".
func formatVND(amount int64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}
	digits := fmt.Sprintf("%d", amount)
	var parts []string
	for len(digits) > 3 {
		parts = append([]string{digits[len(digits)-3:]}, parts...)
		digits = digits[:len(digits)-3]
	}
	parts = append([]string{digits}, parts...)
	out := strings.Join(parts, ",")
	if negative {
		return "-" + out
	}
	return out
}
