package employee

import (
	"time"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/uptrace/bun"
)

type Filter struct {
	Limit      *int
	Offset     *int
	Page       *int
	Search     *string
	Department *string
}

type CreateRequest struct {
	Username    *string  `json:"username" form:"username"`
	Password    *string  `json:"password" form:"password"`
	Role        *string  `json:"role" form:"role"`
	FirstName   *string  `json:"first_name" form:"first_name"`
	LastName    *string  `json:"last_name" form:"last_name"`
	Email       *string  `json:"email" form:"email"`
	Phone       *string  `json:"phone" form:"phone"`
	Address     *string  `json:"address" form:"address"`
	Position    *string  `json:"position" form:"position"`
	Department  *string  `json:"department" form:"department"`
	JoiningDate *string  `json:"joining_date" form:"joining_date"`
	BaseSalary  *float64 `json:"base_salary" form:"base_salary"`
}

type CreateResponse struct {
	bun.BaseModel `bun:"table:employees"`

	ID          int       `json:"id" bun:"-"`
	UserID      *int      `json:"user_id" bun:"user_id"`
	FirstName   *string   `json:"first_name" bun:"first_name"`
	LastName    *string   `json:"last_name" bun:"last_name"`
	Email       *string   `json:"email" bun:"email"`
	Phone       *string   `json:"phone" bun:"phone"`
	Address     *string   `json:"address" bun:"address"`
	Position    *string   `json:"position" bun:"position"`
	Department  *string   `json:"department" bun:"department"`
	JoiningDate *string   `json:"joining_date" bun:"joining_date"`
	BaseSalary  *float64  `json:"base_salary" bun:"base_salary"`
	Role        string    `json:"role" bun:"-"`
	CreatedAt   time.Time `json:"created_at" bun:"created_at"`
	CreatedBy   int       `json:"-" bun:"created_by"`
}

type UpdateRequest struct {
	ID          int      `json:"id" form:"id"`
	FirstName   *string  `json:"first_name" form:"first_name"`
	LastName    *string  `json:"last_name" form:"last_name"`
	Email       *string  `json:"email" form:"email"`
	Phone       *string  `json:"phone" form:"phone"`
	Address     *string  `json:"address" form:"address"`
	Position    *string  `json:"position" form:"position"`
	Department  *string  `json:"department" form:"department"`
	JoiningDate *string  `json:"joining_date" form:"joining_date"`
	BaseSalary  *float64 `json:"base_salary" form:"base_salary"`
}

type GetListResponse struct {
	ID          int        `json:"id"`
	FirstName   *string    `json:"first_name"`
	LastName    *string    `json:"last_name"`
	Email       *string    `json:"email"`
	Phone       *string    `json:"phone"`
	Position    *string    `json:"position"`
	Department  *string    `json:"department"`
	JoiningDate *date.Date `json:"joining_date"`
	Role        *string    `json:"role"`
}

type GetDetailByIdResponse struct {
	ID          int        `json:"id"`
	UserID      *int       `json:"user_id"`
	Username    *string    `json:"username"`
	Role        *string    `json:"role"`
	FirstName   *string    `json:"first_name"`
	LastName    *string    `json:"last_name"`
	Email       *string    `json:"email"`
	Phone       *string    `json:"phone"`
	Address     *string    `json:"address"`
	Position    *string    `json:"position"`
	Department  *string    `json:"department"`
	JoiningDate *date.Date `json:"joining_date"`
	BaseSalary  *float64   `json:"base_salary"`
}
