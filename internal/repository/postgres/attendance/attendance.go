package attendance

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"ems/backend/foundation/web"
	"ems/backend/internal/auth"
	"ems/backend/internal/entity"
	"ems/backend/internal/pkg/repository/postgresql"
)

const workDayLayout = "2006-01-02"

// workStatsTTL bounds staleness of the cached monthly aggregates; check-out
// invalidates the affected key eagerly.
const workStatsTTL = 10 * time.Minute

type Repository struct {
	*postgresql.Database
	cache *redis.Client
}

func NewRepository(database *postgresql.Database, cache *redis.Client) *Repository {
	return &Repository{Database: database, cache: cache}
}

// CheckIn opens today's attendance record. A second check-in for the same day
// is a conflict, whether it lost a race or not: the unique constraint on
// (employee_id, work_day) backs the existence check.
func (r Repository) CheckIn(ctx context.Context, request CheckInRequest) (CheckInResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return CheckInResponse{}, err
	}

	if err := r.ValidateStruct(&request, "EmployeeID"); err != nil {
		return CheckInResponse{}, err
	}

	if !auth.CanAccess(claims, *request.EmployeeID, auth.ActionAttendanceWrite) {
		return CheckInResponse{}, web.NewRequestError(errors.New("you can only check in yourself"), http.StatusForbidden)
	}

	now := time.Now()
	today := now.Format(workDayLayout)

	existing, err := r.getByDay(ctx, *request.EmployeeID, today)
	if err != nil {
		return CheckInResponse{}, err
	}
	if existing != nil {
		if *existing.Status == entity.AttendanceAbsent {
			return CheckInResponse{}, web.NewRequestError(errors.New("you are marked absent today"), http.StatusConflict)
		}
		return CheckInResponse{}, web.NewRequestError(errors.New("already checked in today"), http.StatusConflict)
	}

	response := CheckInResponse{
		EmployeeID: request.EmployeeID,
		WorkDay:    today,
		CheckIn:    now,
		Status:     entity.AttendanceCheckIn,
		CreatedAt:  now,
		CreatedBy:  claims.UserId,
	}

	_, err = r.NewInsert().Model(&response).Returning("id").Exec(ctx, &response.ID)
	if postgresql.IsUniqueViolation(err) {
		return CheckInResponse{}, web.NewRequestError(errors.New("already checked in today"), http.StatusConflict)
	}
	if err != nil {
		return CheckInResponse{}, web.NewRequestError(errors.Wrap(err, "creating check-in"), http.StatusInternalServerError)
	}

	return response, nil
}

// CheckOut closes today's record: requires an open check-in, computes the
// wall-clock hours rounded to two decimals and moves the row to its terminal
// status.
func (r Repository) CheckOut(ctx context.Context, request CheckOutRequest) (CheckOutResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return CheckOutResponse{}, err
	}

	if err := r.ValidateStruct(&request, "EmployeeID"); err != nil {
		return CheckOutResponse{}, err
	}

	if !auth.CanAccess(claims, *request.EmployeeID, auth.ActionAttendanceWrite) {
		return CheckOutResponse{}, web.NewRequestError(errors.New("you can only check out yourself"), http.StatusForbidden)
	}

	now := time.Now()
	today := now.Format(workDayLayout)

	existing, err := r.getByDay(ctx, *request.EmployeeID, today)
	if err != nil {
		return CheckOutResponse{}, err
	}
	if existing == nil {
		return CheckOutResponse{}, web.NewRequestError(errors.New("check-in first before check-out"), http.StatusBadRequest)
	}
	if !CanTransition(*existing.Status, entity.AttendanceCheckOut) {
		if *existing.Status == entity.AttendanceAbsent {
			return CheckOutResponse{}, web.NewRequestError(errors.New("you are marked absent today"), http.StatusConflict)
		}
		return CheckOutResponse{}, web.NewRequestError(errors.New("already checked out today"), http.StatusConflict)
	}

	hours := HoursWorked(*existing.CheckIn, now)

	q := r.NewUpdate().Table("attendance").
		Where("deleted_at IS NULL AND id = ? AND status = ?", existing.ID, entity.AttendanceCheckIn)
	q.Set("check_out = ?", now)
	q.Set("hours_worked = ?", hours)
	q.Set("status = ?", entity.AttendanceCheckOut)
	q.Set("updated_at = ?", now)
	q.Set("updated_by = ?", claims.UserId)

	res, err := q.Exec(ctx)
	if err != nil {
		return CheckOutResponse{}, web.NewRequestError(errors.Wrap(err, "updating check-out"), http.StatusInternalServerError)
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		// Another check-out closed the row first.
		return CheckOutResponse{}, web.NewRequestError(errors.New("already checked out today"), http.StatusConflict)
	}

	r.invalidateWorkStats(ctx, *request.EmployeeID, now)

	return CheckOutResponse{
		ID:          existing.ID,
		EmployeeID:  request.EmployeeID,
		WorkDay:     today,
		CheckIn:     *existing.CheckIn,
		CheckOut:    now,
		Status:      entity.AttendanceCheckOut,
		HoursWorked: hours,
	}, nil
}

// MarkAbsent records an absent day. Any pre-existing record for the day,
// whatever its status, makes this a conflict.
func (r Repository) MarkAbsent(ctx context.Context, request MarkAbsentRequest) (MarkAbsentResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return MarkAbsentResponse{}, err
	}

	if err := r.ValidateStruct(&request, "EmployeeID"); err != nil {
		return MarkAbsentResponse{}, err
	}

	if !auth.CanAccess(claims, *request.EmployeeID, auth.ActionAttendanceWrite) {
		return MarkAbsentResponse{}, web.NewRequestError(errors.New("you can only mark yourself absent"), http.StatusForbidden)
	}

	now := time.Now()
	today := now.Format(workDayLayout)

	existing, err := r.getByDay(ctx, *request.EmployeeID, today)
	if err != nil {
		return MarkAbsentResponse{}, err
	}
	if existing != nil {
		return MarkAbsentResponse{}, web.NewRequestError(errors.New("attendance already marked for today"), http.StatusConflict)
	}

	response := MarkAbsentResponse{
		EmployeeID: request.EmployeeID,
		WorkDay:    today,
		Status:     entity.AttendanceAbsent,
		CreatedAt:  now,
		CreatedBy:  claims.UserId,
	}

	_, err = r.NewInsert().Model(&response).Returning("id").Exec(ctx, &response.ID)
	if postgresql.IsUniqueViolation(err) {
		return MarkAbsentResponse{}, web.NewRequestError(errors.New("attendance already marked for today"), http.StatusConflict)
	}
	if err != nil {
		return MarkAbsentResponse{}, web.NewRequestError(errors.Wrap(err, "creating absent record"), http.StatusInternalServerError)
	}

	return response, nil
}

// GetToday returns today's record for an employee, or Exists=false when the
// ledger has nothing for the day.
func (r Repository) GetToday(ctx context.Context, employeeID int) (GetTodayResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return GetTodayResponse{}, err
	}

	if !auth.CanAccess(claims, employeeID, auth.ActionAttendanceRead) {
		return GetTodayResponse{}, web.NewRequestError(errors.New("you can only view your own attendance"), http.StatusForbidden)
	}

	today := time.Now().Format(workDayLayout)

	detail, err := r.getByDay(ctx, employeeID, today)
	if err != nil {
		return GetTodayResponse{}, err
	}
	if detail == nil {
		return GetTodayResponse{Exists: false}, nil
	}

	workDay, err := date.ParseDate(detail.WorkDay)
	if err != nil {
		return GetTodayResponse{}, web.NewRequestError(errors.Wrap(err, "parsing work_day"), http.StatusInternalServerError)
	}

	return GetTodayResponse{
		Exists:      true,
		ID:          detail.ID,
		EmployeeID:  detail.EmployeeID,
		WorkDay:     &workDay,
		CheckIn:     detail.CheckIn,
		CheckOut:    detail.CheckOut,
		Status:      detail.Status,
		HoursWorked: detail.HoursWorked,
	}, nil
}

// GetListByEmployee lists one employee's records, newest day first.
func (r Repository) GetListByEmployee(ctx context.Context, employeeID int, filter Filter) ([]GetListResponse, int, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return nil, 0, err
	}

	if !auth.CanAccess(claims, employeeID, auth.ActionAttendanceRead) {
		return nil, 0, web.NewRequestError(errors.New("you can only view your own attendance"), http.StatusForbidden)
	}

	whereQuery := fmt.Sprintf(`
		WHERE
			a.deleted_at IS NULL
			AND e.deleted_at IS NULL
			AND a.employee_id = %d
	`, employeeID)

	return r.list(ctx, whereQuery, filter)
}

// GetList lists every employee's records for managers and admins.
func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	_, err := r.CheckClaims(ctx, auth.RoleManager, auth.RoleAdmin)
	if err != nil {
		return nil, 0, err
	}

	whereQuery := `
		WHERE
			a.deleted_at IS NULL
			AND e.deleted_at IS NULL
	`

	if filter.Search != nil {
		search := strings.Replace(*filter.Search, "'", "''", -1)
		whereQuery += fmt.Sprintf(` AND (e.first_name ilike '%s' OR e.last_name ilike '%s')`,
			"%"+search+"%", "%"+search+"%")
	}
	if filter.Status != nil {
		status := strings.Replace(*filter.Status, "'", "''", -1)
		whereQuery += fmt.Sprintf(` AND a.status = '%s'`, status)
	}
	if filter.Date != nil {
		day, err := time.Parse(workDayLayout, *filter.Date)
		if err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "date parse"), http.StatusBadRequest)
		}
		whereQuery += fmt.Sprintf(` AND a.work_day = '%s'`, day.Format(workDayLayout))
	}

	return r.list(ctx, whereQuery, filter)
}

func (r Repository) list(ctx context.Context, whereQuery string, filter Filter) ([]GetListResponse, int, error) {
	orderQuery := "ORDER BY a.work_day desc"

	var limitQuery, offsetQuery string

	if filter.Page != nil && filter.Limit != nil {
		offset := (*filter.Page - 1) * (*filter.Limit)
		filter.Offset = &offset
	}
	if filter.Limit != nil {
		limitQuery = fmt.Sprintf(" LIMIT %d", *filter.Limit)
	}
	if filter.Offset != nil {
		offsetQuery = fmt.Sprintf(" OFFSET %d", *filter.Offset)
	}

	query := fmt.Sprintf(`
		SELECT
			a.id,
			a.employee_id,
			e.first_name,
			e.last_name,
			e.department,
			e.position,
			a.work_day,
			a.check_in,
			a.check_out,
			a.status,
			a.hours_worked
		FROM attendance a
		JOIN employees e ON a.employee_id = e.id
		%s %s %s %s
	`, whereQuery, orderQuery, limitQuery, offsetQuery)

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting attendance"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var list []GetListResponse

	for rows.Next() {
		var detail GetListResponse
		var workDayString string

		if err = rows.Scan(
			&detail.ID,
			&detail.EmployeeID,
			&detail.FirstName,
			&detail.LastName,
			&detail.Department,
			&detail.Position,
			&workDayString,
			&detail.CheckIn,
			&detail.CheckOut,
			&detail.Status,
			&detail.HoursWorked); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning attendance list"), http.StatusInternalServerError)
		}

		workDay, err := date.ParseDate(workDayString)
		if err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "converting work_day to date.Date"), http.StatusInternalServerError)
		}
		detail.WorkDay = &workDay

		list = append(list, detail)
	}

	countQuery := fmt.Sprintf(`
		SELECT
			count(a.id)
		FROM attendance a
		JOIN employees e ON a.employee_id = e.id
		%s
	`, whereQuery)

	count := 0
	if err = r.QueryRowContext(ctx, countQuery).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning attendance count"), http.StatusInternalServerError)
	}

	return list, count, nil
}

// AggregateWorkStats derives {work_days, total_hours} from the check-out rows
// of one month. The result is cached per (employee, year, month) and the
// cache entry is dropped whenever a check-out lands in that month.
func (r Repository) AggregateWorkStats(ctx context.Context, employeeID, month, year int) (WorkStats, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return WorkStats{}, err
	}

	if !auth.CanAccess(claims, employeeID, auth.ActionAttendanceRead) {
		return WorkStats{}, web.NewRequestError(errors.New("you can only view your own work days"), http.StatusForbidden)
	}

	if month < 1 || month > 12 {
		return WorkStats{}, web.NewRequestError(errors.New("month must be between 1 and 12"), http.StatusBadRequest)
	}

	stats := WorkStats{EmployeeID: employeeID, Month: month, Year: year}

	key := workStatsKey(employeeID, year, month)
	if r.cache != nil {
		if cached, err := r.cache.Get(ctx, key).Result(); err == nil {
			if err := json.Unmarshal([]byte(cached), &stats); err == nil {
				return stats, nil
			}
		}
	}

	query := fmt.Sprintf(`
		SELECT
			count(*),
			COALESCE(SUM(hours_worked), 0)
		FROM attendance
		WHERE deleted_at IS NULL
		  AND employee_id = %d
		  AND status = '%s'
		  AND EXTRACT(MONTH FROM work_day) = %d
		  AND EXTRACT(YEAR FROM work_day) = %d
	`, employeeID, entity.AttendanceCheckOut, month, year)

	err = r.QueryRowContext(ctx, query).Scan(&stats.WorkDays, &stats.TotalHours)
	if err != nil {
		return WorkStats{}, web.NewRequestError(errors.Wrap(err, "aggregating work stats"), http.StatusInternalServerError)
	}

	if r.cache != nil {
		if payload, err := json.Marshal(stats); err == nil {
			r.cache.Set(ctx, key, payload, workStatsTTL)
		}
	}

	return stats, nil
}

// GetMonthlyReport collects every ledger row of a month for the excel export.
func (r Repository) GetMonthlyReport(ctx context.Context, month, year int) ([]ReportRow, error) {
	_, err := r.CheckClaims(ctx, auth.RoleManager, auth.RoleAdmin)
	if err != nil {
		return nil, err
	}

	if month < 1 || month > 12 {
		return nil, web.NewRequestError(errors.New("month must be between 1 and 12"), http.StatusBadRequest)
	}

	query := fmt.Sprintf(`
		SELECT
			a.employee_id,
			e.first_name,
			e.last_name,
			e.department,
			e.position,
			a.work_day,
			a.status,
			COALESCE(a.hours_worked, 0)
		FROM attendance a
		JOIN employees e ON a.employee_id = e.id
		WHERE a.deleted_at IS NULL
		  AND e.deleted_at IS NULL
		  AND EXTRACT(MONTH FROM a.work_day) = %d
		  AND EXTRACT(YEAR FROM a.work_day) = %d
		ORDER BY e.last_name, a.work_day
	`, month, year)

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting monthly report"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var report []ReportRow
	for rows.Next() {
		var row ReportRow
		if err = rows.Scan(
			&row.EmployeeID,
			&row.FirstName,
			&row.LastName,
			&row.Department,
			&row.Position,
			&row.WorkDay,
			&row.Status,
			&row.HoursWorked); err != nil {
			return nil, web.NewRequestError(errors.Wrap(err, "scanning report row"), http.StatusInternalServerError)
		}
		report = append(report, row)
	}

	return report, nil
}

// BackfillAbsent inserts an absent row for a day unless the ledger already
// has one; it reports whether a row was written. The leave engine calls this
// per date on approval, so it must never overwrite and must stay retryable.
func (r Repository) BackfillAbsent(ctx context.Context, employeeID int, workDay string, createdBy int) (bool, error) {
	record := MarkAbsentResponse{
		EmployeeID: &employeeID,
		WorkDay:    workDay,
		Status:     entity.AttendanceAbsent,
		CreatedAt:  time.Now(),
		CreatedBy:  createdBy,
	}

	res, err := r.NewInsert().Model(&record).On("CONFLICT (employee_id, work_day) DO NOTHING").Exec(ctx)
	if err != nil {
		return false, errors.Wrap(err, "backfilling absent record")
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "backfill rows affected")
	}

	return inserted > 0, nil
}

func (r Repository) getByDay(ctx context.Context, employeeID int, workDay string) (*entity.Attendance, error) {
	var detail entity.Attendance

	err := r.NewSelect().Model(&detail).
		Where("employee_id = ? AND work_day = ? AND deleted_at IS NULL", employeeID, workDay).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting attendance record"), http.StatusInternalServerError)
	}

	return &detail, nil
}

func (r Repository) invalidateWorkStats(ctx context.Context, employeeID int, at time.Time) {
	if r.cache == nil {
		return
	}
	r.cache.Del(ctx, workStatsKey(employeeID, at.Year(), int(at.Month())))
}

func workStatsKey(employeeID, year, month int) string {
	return fmt.Sprintf("workstats:%d:%d:%02d", employeeID, year, month)
}

// CanTransition reports whether a day's record may move between statuses. A
// day starts empty (from ""); check-in opens it, check-out and absent are
// terminal.
func CanTransition(from, to string) bool {
	switch from {
	case "":
		return to == entity.AttendanceCheckIn || to == entity.AttendanceAbsent
	case entity.AttendanceCheckIn:
		return to == entity.AttendanceCheckOut
	default:
		return false
	}
}

// HoursWorked is the wall-clock difference between check-in and check-out in
// hours, rounded to two decimal places.
func HoursWorked(checkIn, checkOut time.Time) float64 {
	return math.Round(checkOut.Sub(checkIn).Hours()*100) / 100
}
