package entity

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	LeavePending  = "pending"
	LeaveApproved = "approved"
	LeaveRejected = "rejected"
)

type Leave struct {
	bun.BaseModel `bun:"table:leaves"`

	BasicEntity
	EmployeeID *int       `json:"employee_id" bun:"employee_id"`
	StartDate  string     `json:"start_date" bun:"start_date"`
	EndDate    string     `json:"end_date" bun:"end_date"`
	Reason     *string    `json:"reason" bun:"reason"`
	Status     *string    `json:"status" bun:"status"`
	ApprovedBy *int       `json:"approved_by" bun:"approved_by"`
	ApprovedAt *time.Time `json:"approved_at" bun:"approved_at"`
}
