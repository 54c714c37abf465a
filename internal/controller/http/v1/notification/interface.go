package notification

import (
	"context"

	"ems/backend/internal/repository/postgres/notification"
)

type Notification interface {
	GetList(ctx context.Context, filter notification.Filter) ([]notification.GetListResponse, int, error)
	MarkRead(ctx context.Context, id int) error
}
