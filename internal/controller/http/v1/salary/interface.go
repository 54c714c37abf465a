package salary

import (
	"context"

	"ems/backend/internal/repository/postgres/salary"
)

type Salary interface {
	Create(ctx context.Context, request salary.CreateRequest) (salary.CreateResponse, error)
	UpdateStatus(ctx context.Context, request salary.UpdateStatusRequest) (salary.UpdateStatusResponse, error)
	GetList(ctx context.Context, filter salary.Filter) ([]salary.GetListResponse, int, error)
	GetListByEmployee(ctx context.Context, employeeID int, filter salary.Filter) ([]salary.GetListResponse, int, error)
	GetSlip(ctx context.Context, id int) (salary.SlipData, error)
}
