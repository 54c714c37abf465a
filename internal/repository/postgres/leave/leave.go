package leave

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"ems/backend/foundation/web"
	"ems/backend/internal/auth"
	"ems/backend/internal/entity"
	"ems/backend/internal/pkg/repository/postgresql"
	"ems/backend/internal/repository/postgres"
	"ems/backend/internal/repository/postgres/attendance"
)

const dateLayout = "2006-01-02"

// Notifier delivers a decision notice to a user account. Delivery is
// fire-and-forget: a failure is logged and never rolls back the decision.
type Notifier interface {
	Notify(ctx context.Context, userID, senderID int, title, message string) error
}

type Options struct {
	// OverlapCheck rejects a new request whose range intersects an existing
	// non-rejected leave. Off by default: the legacy rule only guards
	// (employee_id, start_date).
	OverlapCheck bool
}

type Repository struct {
	*postgresql.Database
	ledger   *attendance.Repository
	notifier Notifier
	logger   *logrus.Logger
	opts     Options
}

func NewRepository(database *postgresql.Database, ledger *attendance.Repository, notifier Notifier, logger *logrus.Logger, opts Options) *Repository {
	return &Repository{
		Database: database,
		ledger:   ledger,
		notifier: notifier,
		logger:   logger,
		opts:     opts,
	}
}

// Create files a pending leave request.
func (r Repository) Create(ctx context.Context, request CreateRequest) (CreateResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return CreateResponse{}, err
	}

	if err := r.ValidateStruct(&request, "EmployeeID", "StartDate", "EndDate", "Reason"); err != nil {
		return CreateResponse{}, err
	}

	start, err := time.Parse(dateLayout, *request.StartDate)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "parsing start_date"), http.StatusBadRequest)
	}
	end, err := time.Parse(dateLayout, *request.EndDate)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "parsing end_date"), http.StatusBadRequest)
	}
	if start.After(end) {
		return CreateResponse{}, web.NewRequestError(errors.New("start date cannot be after end date"), http.StatusBadRequest)
	}

	if !auth.CanAccess(claims, *request.EmployeeID, auth.ActionLeaveCreate) {
		return CreateResponse{}, web.NewRequestError(errors.New("you can only create leave for yourself"), http.StatusForbidden)
	}

	if r.opts.OverlapCheck {
		overlapping := 0
		query := fmt.Sprintf(`
			SELECT count(id)
			FROM leaves
			WHERE deleted_at IS NULL
			  AND employee_id = %d
			  AND status != '%s'
			  AND start_date <= '%s'
			  AND end_date >= '%s'
		`, *request.EmployeeID, entity.LeaveRejected, end.Format(dateLayout), start.Format(dateLayout))

		if err := r.QueryRowContext(ctx, query).Scan(&overlapping); err != nil {
			return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "checking overlapping leaves"), http.StatusInternalServerError)
		}
		if overlapping > 0 {
			return CreateResponse{}, web.NewRequestError(errors.New("an overlapping leave request already exists"), http.StatusConflict)
		}
	}

	response := CreateResponse{
		EmployeeID: request.EmployeeID,
		StartDate:  start.Format(dateLayout),
		EndDate:    end.Format(dateLayout),
		Reason:     request.Reason,
		Status:     entity.LeavePending,
		CreatedAt:  time.Now(),
		CreatedBy:  claims.UserId,
	}

	_, err = r.NewInsert().Model(&response).Returning("id").Exec(ctx, &response.ID)
	if postgresql.IsUniqueViolation(err) {
		return CreateResponse{}, web.NewRequestError(errors.New("a leave request with this start date already exists"), http.StatusConflict)
	}
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "creating leave request"), http.StatusInternalServerError)
	}

	return response, nil
}

// Decide approves or rejects a pending request exactly once. Approval
// backfills absent records over the range, one insert-if-absent per date;
// a failed date is logged and reported but does not undo the decision.
func (r Repository) Decide(ctx context.Context, request DecideRequest) (DecideResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleManager, auth.RoleAdmin)
	if err != nil {
		return DecideResponse{}, err
	}

	if err := r.ValidateStruct(&request, "ID", "Status"); err != nil {
		return DecideResponse{}, err
	}

	status := *request.Status
	if status != entity.LeaveApproved && status != entity.LeaveRejected {
		return DecideResponse{}, web.NewRequestError(errors.New("status must be approved or rejected"), http.StatusBadRequest)
	}

	var record entity.Leave
	err = r.NewSelect().Model(&record).Where("id = ? AND deleted_at IS NULL", request.ID).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return DecideResponse{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return DecideResponse{}, web.NewRequestError(errors.Wrap(err, "selecting leave request"), http.StatusInternalServerError)
	}

	if !CanTransition(*record.Status, status) {
		return DecideResponse{}, web.NewRequestError(errors.New("leave request is already decided"), http.StatusConflict)
	}

	ownerUserID, ownerRole, err := r.leaveOwner(ctx, *record.EmployeeID)
	if err != nil {
		return DecideResponse{}, err
	}

	if !auth.CanDecideLeave(claims.Role, ownerRole) {
		return DecideResponse{}, web.NewRequestError(errors.New("only admins can decide manager leave requests"), http.StatusForbidden)
	}

	now := time.Now()

	q := r.NewUpdate().Table("leaves").
		Where("deleted_at IS NULL AND id = ? AND status = ?", request.ID, entity.LeavePending)
	q.Set("status = ?", status)
	q.Set("approved_by = ?", claims.UserId)
	q.Set("approved_at = ?", now)
	q.Set("updated_at = ?", now)
	q.Set("updated_by = ?", claims.UserId)

	res, err := q.Exec(ctx)
	if err != nil {
		return DecideResponse{}, web.NewRequestError(errors.Wrap(err, "updating leave status"), http.StatusInternalServerError)
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		// Another decider got here first.
		return DecideResponse{}, web.NewRequestError(errors.New("leave request is already decided"), http.StatusConflict)
	}

	response := DecideResponse{
		ID:         record.ID,
		EmployeeID: *record.EmployeeID,
		StartDate:  record.StartDate,
		EndDate:    record.EndDate,
		Status:     status,
		ApprovedBy: claims.UserId,
		ApprovedAt: now,
	}

	if status == entity.LeaveApproved {
		response.Backfill = r.backfill(ctx, *record.EmployeeID, record.StartDate, record.EndDate, claims.UserId)
	}

	r.notify(ctx, ownerUserID, claims.UserId, record, status)

	return response, nil
}

func (r Repository) backfill(ctx context.Context, employeeID int, startDate, endDate string, decidedBy int) []BackfillResult {
	dates, err := DatesBetween(startDate, endDate)
	if err != nil {
		// Dates were validated at creation; this only fires on corrupt rows.
		r.logger.WithFields(logrus.Fields{
			"employee_id": employeeID,
			"start_date":  startDate,
			"end_date":    endDate,
		}).WithError(err).Error("leave backfill: invalid date range")
		return nil
	}

	results := make([]BackfillResult, 0, len(dates))
	for _, day := range dates {
		inserted, err := r.ledger.BackfillAbsent(ctx, employeeID, day, decidedBy)
		result := BackfillResult{Date: day, Inserted: inserted, OK: err == nil}
		if err != nil {
			result.Error = err.Error()
			r.logger.WithFields(logrus.Fields{
				"employee_id": employeeID,
				"date":        day,
			}).WithError(err).Warn("leave backfill: date failed")
		}
		results = append(results, result)
	}

	return results
}

func (r Repository) notify(ctx context.Context, ownerUserID, senderID int, record entity.Leave, status string) {
	if r.notifier == nil || ownerUserID == 0 {
		return
	}

	title := fmt.Sprintf("Leave Request %s", status)
	message := fmt.Sprintf("Your leave request from %s to %s has been %s.", record.StartDate, record.EndDate, status)

	if err := r.notifier.Notify(ctx, ownerUserID, senderID, title, message); err != nil {
		r.logger.WithFields(logrus.Fields{
			"user_id":  ownerUserID,
			"leave_id": record.ID,
		}).WithError(err).Warn("leave decision notification failed")
	}
}

// leaveOwner resolves the employee's linked user account and role for the
// escalation rule and the notification recipient.
func (r Repository) leaveOwner(ctx context.Context, employeeID int) (int, string, error) {
	query := fmt.Sprintf(`
		SELECT
			COALESCE(e.user_id, 0),
			COALESCE(u.role, '')
		FROM employees e
		LEFT JOIN users u ON e.user_id = u.id
		WHERE e.deleted_at IS NULL AND e.id = %d
	`, employeeID)

	var userID int
	var role string

	err := r.QueryRowContext(ctx, query).Scan(&userID, &role)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, "", web.NewRequestError(errors.New("employee not found"), http.StatusNotFound)
	}
	if err != nil {
		return 0, "", web.NewRequestError(errors.Wrap(err, "selecting leave owner"), http.StatusInternalServerError)
	}

	return userID, role, nil
}

// GetList lists every leave request for managers and admins.
func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	_, err := r.CheckClaims(ctx, auth.RoleManager, auth.RoleAdmin)
	if err != nil {
		return nil, 0, err
	}

	whereQuery := `
		WHERE
			l.deleted_at IS NULL
			AND e.deleted_at IS NULL
	`
	if filter.Status != nil {
		switch *filter.Status {
		case entity.LeavePending, entity.LeaveApproved, entity.LeaveRejected:
			whereQuery += fmt.Sprintf(` AND l.status = '%s'`, *filter.Status)
		default:
			return nil, 0, web.NewRequestError(errors.New("invalid status filter"), http.StatusBadRequest)
		}
	}

	return r.list(ctx, whereQuery, filter)
}

// GetListByEmployee lists one employee's leave requests.
func (r Repository) GetListByEmployee(ctx context.Context, employeeID int, filter Filter) ([]GetListResponse, int, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return nil, 0, err
	}

	if !auth.CanAccess(claims, employeeID, auth.ActionLeaveRead) {
		return nil, 0, web.NewRequestError(errors.New("you can only view your own leaves"), http.StatusForbidden)
	}

	whereQuery := fmt.Sprintf(`
		WHERE
			l.deleted_at IS NULL
			AND e.deleted_at IS NULL
			AND l.employee_id = %d
	`, employeeID)

	return r.list(ctx, whereQuery, filter)
}

func (r Repository) list(ctx context.Context, whereQuery string, filter Filter) ([]GetListResponse, int, error) {
	orderQuery := "ORDER BY l.created_at desc"

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
			l.id,
			l.employee_id,
			concat(e.first_name, ' ', e.last_name),
			e.department,
			e.position,
			u.role,
			l.start_date,
			l.end_date,
			l.reason,
			l.status,
			l.created_at
		FROM leaves l
		JOIN employees e ON l.employee_id = e.id
		LEFT JOIN users u ON e.user_id = u.id
		%s %s %s %s
	`, whereQuery, orderQuery, limitQuery, offsetQuery)

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting leaves"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var list []GetListResponse

	for rows.Next() {
		var detail GetListResponse
		if err = rows.Scan(
			&detail.ID,
			&detail.EmployeeID,
			&detail.EmployeeName,
			&detail.Department,
			&detail.Position,
			&detail.EmployeeRole,
			&detail.StartDate,
			&detail.EndDate,
			&detail.Reason,
			&detail.Status,
			&detail.CreatedAt); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning leave list"), http.StatusInternalServerError)
		}

		list = append(list, detail)
	}

	countQuery := fmt.Sprintf(`
		SELECT
			count(l.id)
		FROM leaves l
		JOIN employees e ON l.employee_id = e.id
		LEFT JOIN users u ON e.user_id = u.id
		%s
	`, whereQuery)

	count := 0
	if err = r.QueryRowContext(ctx, countQuery).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning leave count"), http.StatusInternalServerError)
	}

	return list, count, nil
}

// Delete removes a leave request outright, whatever its status.
func (r Repository) Delete(ctx context.Context, id int) error {
	_, err := r.CheckClaims(ctx, auth.RoleManager, auth.RoleAdmin)
	if err != nil {
		return err
	}

	res, err := r.NewDelete().Table("leaves").Where("id = ?", id).Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "deleting leave request"), http.StatusInternalServerError)
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}

	return nil
}

// CanTransition reports whether a leave may move from one status to another.
// Only a pending request can be decided, and a decision is final.
func CanTransition(from, to string) bool {
	if from != entity.LeavePending {
		return false
	}
	return to == entity.LeaveApproved || to == entity.LeaveRejected
}

// DatesBetween expands an inclusive [start, end] range into calendar days.
func DatesBetween(startDate, endDate string) ([]string, error) {
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return nil, errors.Wrap(err, "parsing start date")
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return nil, errors.Wrap(err, "parsing end date")
	}
	if start.After(end) {
		return nil, errors.New("start date after end date")
	}

	var dates []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(dateLayout))
	}

	return dates, nil
}
