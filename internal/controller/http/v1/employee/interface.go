package employee

import (
	"context"

	"ems/backend/internal/repository/postgres/employee"
)

type Employee interface {
	Create(ctx context.Context, request employee.CreateRequest) (employee.CreateResponse, error)
	Update(ctx context.Context, request employee.UpdateRequest) error
	GetList(ctx context.Context, filter employee.Filter) ([]employee.GetListResponse, int, error)
	GetDetailById(ctx context.Context, id int) (employee.GetDetailByIdResponse, error)
	Delete(ctx context.Context, id int) error
}
