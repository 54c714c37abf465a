package attendance

import (
	"time"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/uptrace/bun"
)

type Filter struct {
	Limit  *int
	Offset *int
	Page   *int
	Search *string
	Status *string
	Date   *string
}

type GetListResponse struct {
	ID          int        `json:"id"`
	EmployeeID  *int       `json:"employee_id"`
	FirstName   *string    `json:"first_name"`
	LastName    *string    `json:"last_name"`
	Department  *string    `json:"department"`
	Position    *string    `json:"position"`
	WorkDay     *date.Date `json:"work_day"`
	CheckIn     *time.Time `json:"check_in"`
	CheckOut    *time.Time `json:"check_out"`
	Status      *string    `json:"status"`
	HoursWorked *float64   `json:"hours_worked"`
}

// GetTodayResponse distinguishes "no row in the ledger" (Exists=false) from a
// row whose status is absent.
type GetTodayResponse struct {
	Exists      bool       `json:"exists"`
	ID          int        `json:"id,omitempty"`
	EmployeeID  *int       `json:"employee_id,omitempty"`
	WorkDay     *date.Date `json:"work_day,omitempty"`
	CheckIn     *time.Time `json:"check_in,omitempty"`
	CheckOut    *time.Time `json:"check_out,omitempty"`
	Status      *string    `json:"status,omitempty"`
	HoursWorked *float64   `json:"hours_worked,omitempty"`
}

type CheckInRequest struct {
	EmployeeID *int `json:"employee_id" form:"employee_id"`
}

type CheckInResponse struct {
	bun.BaseModel `bun:"table:attendance"`

	ID         int       `json:"id" bun:"-"`
	EmployeeID *int      `json:"employee_id" bun:"employee_id"`
	WorkDay    string    `json:"work_day" bun:"work_day"`
	CheckIn    time.Time `json:"check_in" bun:"check_in"`
	Status     string    `json:"status" bun:"status"`
	CreatedAt  time.Time `json:"-" bun:"created_at"`
	CreatedBy  int       `json:"-" bun:"created_by"`
}

type CheckOutRequest struct {
	EmployeeID *int `json:"employee_id" form:"employee_id"`
}

type CheckOutResponse struct {
	ID          int       `json:"id"`
	EmployeeID  *int      `json:"employee_id"`
	WorkDay     string    `json:"work_day"`
	CheckIn     time.Time `json:"check_in"`
	CheckOut    time.Time `json:"check_out"`
	Status      string    `json:"status"`
	HoursWorked float64   `json:"hours_worked"`
}

type MarkAbsentRequest struct {
	EmployeeID *int `json:"employee_id" form:"employee_id"`
}

type MarkAbsentResponse struct {
	bun.BaseModel `bun:"table:attendance"`

	ID         int       `json:"id" bun:"-"`
	EmployeeID *int      `json:"employee_id" bun:"employee_id"`
	WorkDay    string    `json:"work_day" bun:"work_day"`
	Status     string    `json:"status" bun:"status"`
	CreatedAt  time.Time `json:"-" bun:"created_at"`
	CreatedBy  int       `json:"-" bun:"created_by"`
}

// WorkStats is the derived aggregate the salary component reads: completed
// work days and summed hours for one employee and month.
type WorkStats struct {
	EmployeeID int     `json:"employee_id"`
	Month      int     `json:"month"`
	Year       int     `json:"year"`
	WorkDays   int     `json:"work_days"`
	TotalHours float64 `json:"total_hours"`
}

// ReportRow feeds the monthly excel export.
type ReportRow struct {
	EmployeeID  int
	FirstName   string
	LastName    string
	Department  string
	Position    string
	WorkDay     string
	Status      string
	HoursWorked float64
}
