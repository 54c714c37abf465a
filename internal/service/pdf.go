package service

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf/v2"

	"ems/backend/internal/repository/postgres/salary"
)

// SalarySlipPDF renders one salary record as a printable slip.
func SalarySlipPDF(data salary.SlipData) (*bytes.Buffer, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 12, "Salary Slip")
	pdf.Ln(14)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", data.EmployeeName))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Department: %s    Position: %s", data.Department, data.Position))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s %d", time.Month(data.Month).String(), data.Year))
	pdf.Ln(12)

	line := func(label, value string) {
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(60, 8, label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 8, value, "1", 1, "R", false, 0, "")
	}

	line("Work Days", fmt.Sprintf("%d", data.WorkDays))
	line("Total Hours", fmt.Sprintf("%.2f", data.TotalHours))
	line("Base Amount", data.BaseAmount.StringFixed(2))
	line("Overtime", data.OvertimeAmount.StringFixed(2))
	line("Deductions", data.Deductions.StringFixed(2))

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(60, 8, "Total", "1", 0, "L", false, 0, "")
	pdf.CellFormat(60, 8, data.TotalAmount.StringFixed(2), "1", 1, "R", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Arial", "I", 10)
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s", data.Status))

	var buffer bytes.Buffer
	if err := pdf.Output(&buffer); err != nil {
		return nil, fmt.Errorf("writing pdf: %w", err)
	}

	return &buffer, nil
}
