package service

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"ems/backend/internal/repository/postgres/attendance"
)

// AttendanceReportExcel renders one month of ledger rows as a spreadsheet and
// returns the file bytes.
func AttendanceReportExcel(report []attendance.ReportRow, month, year int) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	sheet := "Sheet1"
	f.SetSheetName("Sheet1", sheet)

	title := fmt.Sprintf("Attendance %s %d", time.Month(month).String(), year)
	f.SetCellValue(sheet, "A1", title)

	headers := []string{"Employee ID", "First Name", "Last Name", "Department", "Position", "Work Day", "Status", "Hours Worked"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c2", 'A'+i)
		f.SetCellValue(sheet, cell, header)
	}

	rowNum := 3
	for _, entry := range report {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", rowNum), entry.EmployeeID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", rowNum), entry.FirstName)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", rowNum), entry.LastName)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", rowNum), entry.Department)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", rowNum), entry.Position)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", rowNum), entry.WorkDay)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", rowNum), entry.Status)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", rowNum), entry.HoursWorked)
		rowNum++
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("writing excel file: %w", err)
	}

	return buffer, nil
}
