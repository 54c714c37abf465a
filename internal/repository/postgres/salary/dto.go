package salary

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

type Filter struct {
	Limit  *int
	Offset *int
	Page   *int
	Status *string
	Month  *int
	Year   *int
}

type CreateRequest struct {
	EmployeeID     *int             `json:"employee_id" form:"employee_id"`
	Month          *int             `json:"month" form:"month"`
	Year           *int             `json:"year" form:"year"`
	BaseAmount     *decimal.Decimal `json:"base_amount" form:"base_amount"`
	OvertimeAmount *decimal.Decimal `json:"overtime_amount" form:"overtime_amount"`
	Deductions     *decimal.Decimal `json:"deductions" form:"deductions"`
	TotalAmount    *decimal.Decimal `json:"total_amount" form:"total_amount"`
}

type CreateResponse struct {
	bun.BaseModel `bun:"table:salaries"`

	ID             int             `json:"id" bun:"-"`
	EmployeeID     *int            `json:"employee_id" bun:"employee_id"`
	Month          *int            `json:"month" bun:"month"`
	Year           *int            `json:"year" bun:"year"`
	BaseAmount     decimal.Decimal `json:"base_amount" bun:"base_amount"`
	OvertimeAmount decimal.Decimal `json:"overtime_amount" bun:"overtime_amount"`
	Deductions     decimal.Decimal `json:"deductions" bun:"deductions"`
	TotalAmount    decimal.Decimal `json:"total_amount" bun:"total_amount"`
	Status         string          `json:"status" bun:"status"`
	WorkDays       int             `json:"work_days" bun:"-"`
	TotalHours     float64         `json:"total_hours" bun:"-"`
	CreatedAt      time.Time       `json:"created_at" bun:"created_at"`
	CreatedBy      int             `json:"-" bun:"created_by"`
}

type UpdateStatusRequest struct {
	ID     int     `json:"id" form:"id"`
	Status *string `json:"status" form:"status"`
}

type UpdateStatusResponse struct {
	ID          int     `json:"id"`
	Status      string  `json:"status"`
	PaymentDate *string `json:"payment_date,omitempty"`
}

type GetListResponse struct {
	ID             int              `json:"id"`
	EmployeeID     *int            `json:"employee_id"`
	EmployeeName   *string         `json:"employee_name"`
	Department     *string         `json:"department"`
	Position       *string         `json:"position"`
	Month          *int            `json:"month"`
	Year           *int            `json:"year"`
	BaseAmount     decimal.Decimal `json:"base_amount"`
	OvertimeAmount decimal.Decimal `json:"overtime_amount"`
	Deductions     decimal.Decimal `json:"deductions"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	Status         *string         `json:"status"`
	PaymentDate    *string         `json:"payment_date"`
	WorkDays       int             `json:"work_days"`
	TotalHours     float64         `json:"total_hours"`
	CreatedAt      *time.Time      `json:"created_at"`
}

// SlipData feeds the pdf salary slip renderer.
type SlipData struct {
	ID             int
	EmployeeName   string
	Department     string
	Position       string
	Month          int
	Year           int
	BaseAmount     decimal.Decimal
	OvertimeAmount decimal.Decimal
	Deductions     decimal.Decimal
	TotalAmount    decimal.Decimal
	Status         string
	WorkDays       int
	TotalHours     float64
}
