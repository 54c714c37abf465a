package entity

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	AttendanceCheckIn  = "check-in"
	AttendanceCheckOut = "check-out"
	AttendanceAbsent   = "absent"
)

// Attendance holds one row of the daily ledger. The table enforces
// UNIQUE(employee_id, work_day); the status machine is
// nothing -> check-in -> check-out, or nothing -> absent.
type Attendance struct {
	bun.BaseModel `bun:"table:attendance"`

	BasicEntity
	EmployeeID  *int       `json:"employee_id" bun:"employee_id"`
	WorkDay     string     `json:"work_day" bun:"work_day"`
	CheckIn     *time.Time `json:"check_in" bun:"check_in"`
	CheckOut    *time.Time `json:"check_out" bun:"check_out"`
	Status      *string    `json:"status" bun:"status"`
	HoursWorked *float64   `json:"hours_worked" bun:"hours_worked"`
}
