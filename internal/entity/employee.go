package entity

import (
	"github.com/Azure/go-autorest/autorest/date"
	"github.com/uptrace/bun"
)

type Employee struct {
	bun.BaseModel `bun:"table:employees"`

	BasicEntity
	UserID      *int       `json:"user_id" bun:"user_id"`
	FirstName   *string    `json:"first_name" bun:"first_name"`
	LastName    *string    `json:"last_name" bun:"last_name"`
	Email       *string    `json:"email" bun:"email"`
	Phone       *string    `json:"phone" bun:"phone"`
	Address     *string    `json:"address" bun:"address"`
	Position    *string    `json:"position" bun:"position"`
	Department  *string    `json:"department" bun:"department"`
	JoiningDate *date.Date `json:"joining_date" bun:"joining_date"`
	BaseSalary  *float64   `json:"base_salary" bun:"base_salary"`
}
