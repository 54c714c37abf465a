package leave

import (
	"time"

	"github.com/uptrace/bun"
)

type Filter struct {
	Limit  *int
	Offset *int
	Page   *int
	Status *string
}

type CreateRequest struct {
	EmployeeID *int    `json:"employee_id" form:"employee_id"`
	StartDate  *string `json:"start_date" form:"start_date"`
	EndDate    *string `json:"end_date" form:"end_date"`
	Reason     *string `json:"reason" form:"reason"`
}

type CreateResponse struct {
	bun.BaseModel `bun:"table:leaves"`

	ID         int       `json:"id" bun:"-"`
	EmployeeID *int      `json:"employee_id" bun:"employee_id"`
	StartDate  string    `json:"start_date" bun:"start_date"`
	EndDate    string    `json:"end_date" bun:"end_date"`
	Reason     *string   `json:"reason" bun:"reason"`
	Status     string    `json:"status" bun:"status"`
	CreatedAt  time.Time `json:"created_at" bun:"created_at"`
	CreatedBy  int       `json:"-" bun:"created_by"`
}

type DecideRequest struct {
	ID     int     `json:"id" form:"id"`
	Status *string `json:"status" form:"status"`
}

// BackfillResult reports the outcome for one date of an approved range. A
// date that already had a ledger record is OK but not Inserted.
type BackfillResult struct {
	Date     string `json:"date"`
	Inserted bool   `json:"inserted"`
	OK       bool   `json:"ok"`
	Error    string `json:"error,omitempty"`
}

type DecideResponse struct {
	ID         int              `json:"id"`
	EmployeeID int              `json:"employee_id"`
	StartDate  string           `json:"start_date"`
	EndDate    string           `json:"end_date"`
	Status     string           `json:"status"`
	ApprovedBy int              `json:"approved_by"`
	ApprovedAt time.Time        `json:"approved_at"`
	Backfill   []BackfillResult `json:"backfill,omitempty"`
}

type GetListResponse struct {
	ID           int        `json:"id"`
	EmployeeID   *int       `json:"employee_id"`
	EmployeeName *string    `json:"employee_name"`
	Department   *string    `json:"department"`
	Position     *string    `json:"position"`
	EmployeeRole *string    `json:"employee_role"`
	StartDate    string     `json:"start_date"`
	EndDate      string     `json:"end_date"`
	Reason       *string    `json:"reason"`
	Status       *string    `json:"status"`
	CreatedAt    *time.Time `json:"created_at"`
}
