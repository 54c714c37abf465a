package leave

import (
	"context"

	"ems/backend/internal/repository/postgres/leave"
)

type Leave interface {
	Create(ctx context.Context, request leave.CreateRequest) (leave.CreateResponse, error)
	Decide(ctx context.Context, request leave.DecideRequest) (leave.DecideResponse, error)
	GetList(ctx context.Context, filter leave.Filter) ([]leave.GetListResponse, int, error)
	GetListByEmployee(ctx context.Context, employeeID int, filter leave.Filter) ([]leave.GetListResponse, int, error)
	Delete(ctx context.Context, id int) error
}
