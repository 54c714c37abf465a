package attendance

import (
	"context"

	"ems/backend/internal/repository/postgres/attendance"
)

type Attendance interface {
	CheckIn(ctx context.Context, request attendance.CheckInRequest) (attendance.CheckInResponse, error)
	CheckOut(ctx context.Context, request attendance.CheckOutRequest) (attendance.CheckOutResponse, error)
	MarkAbsent(ctx context.Context, request attendance.MarkAbsentRequest) (attendance.MarkAbsentResponse, error)
	GetToday(ctx context.Context, employeeID int) (attendance.GetTodayResponse, error)
	GetListByEmployee(ctx context.Context, employeeID int, filter attendance.Filter) ([]attendance.GetListResponse, int, error)
	GetList(ctx context.Context, filter attendance.Filter) ([]attendance.GetListResponse, int, error)
	AggregateWorkStats(ctx context.Context, employeeID, month, year int) (attendance.WorkStats, error)
	GetMonthlyReport(ctx context.Context, month, year int) ([]attendance.ReportRow, error)
}
