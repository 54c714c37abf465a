package entity

import (
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

const (
	SalaryPending   = "pending"
	SalaryProcessed = "processed"
	SalaryPaid      = "paid"
)

// Salary stores one record per (employee_id, month, year), enforced by the
// table. Work days and total hours are never stored; they are derived from the
// attendance ledger at read time.
type Salary struct {
	bun.BaseModel `bun:"table:salaries"`

	BasicEntity
	EmployeeID     *int             `json:"employee_id" bun:"employee_id"`
	Month          *int             `json:"month" bun:"month"`
	Year           *int             `json:"year" bun:"year"`
	BaseAmount     *decimal.Decimal `json:"base_amount" bun:"base_amount"`
	OvertimeAmount *decimal.Decimal `json:"overtime_amount" bun:"overtime_amount"`
	Deductions     *decimal.Decimal `json:"deductions" bun:"deductions"`
	TotalAmount    *decimal.Decimal `json:"total_amount" bun:"total_amount"`
	Status         *string          `json:"status" bun:"status"`
	PaymentDate    *string          `json:"payment_date" bun:"payment_date"`
}
