package salary

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"ems/backend/foundation/web"
	"ems/backend/internal/auth"
	"ems/backend/internal/entity"
	"ems/backend/internal/pkg/repository/postgresql"
	"ems/backend/internal/repository/postgres"
	"ems/backend/internal/repository/postgres/attendance"
)

type Options struct {
	// EnforceTotal rejects records whose total_amount does not equal
	// base + overtime - deductions.
	EnforceTotal bool
}

type Repository struct {
	*postgresql.Database
	ledger *attendance.Repository
	opts   Options
}

func NewRepository(database *postgresql.Database, ledger *attendance.Repository, opts Options) *Repository {
	return &Repository{Database: database, ledger: ledger, opts: opts}
}

// Create inserts one salary record per (employee, month, year). Amounts are
// taken as given; work days and hours in the response are derived from the
// attendance ledger, never stored.
func (r Repository) Create(ctx context.Context, request CreateRequest) (CreateResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleManager, auth.RoleAdmin)
	if err != nil {
		return CreateResponse{}, err
	}

	if err := r.ValidateStruct(&request, "EmployeeID", "Month", "Year", "BaseAmount", "TotalAmount"); err != nil {
		return CreateResponse{}, err
	}

	if !auth.CanAccess(claims, *request.EmployeeID, auth.ActionSalaryWrite) {
		return CreateResponse{}, web.NewRequestError(errors.New("only managers and admins can create salary records"), http.StatusForbidden)
	}

	if *request.Month < 1 || *request.Month > 12 {
		return CreateResponse{}, web.NewRequestError(errors.New("month must be between 1 and 12"), http.StatusBadRequest)
	}

	overtime := decimal.Zero
	if request.OvertimeAmount != nil {
		overtime = *request.OvertimeAmount
	}
	deductions := decimal.Zero
	if request.Deductions != nil {
		deductions = *request.Deductions
	}

	if r.opts.EnforceTotal {
		expected := expectedTotal(*request.BaseAmount, overtime, deductions)
		if !request.TotalAmount.Equal(expected) {
			return CreateResponse{}, web.NewRequestError(
				fmt.Errorf("total_amount must equal %s", expected.String()), http.StatusBadRequest)
		}
	}

	exists := 0
	existsQuery := fmt.Sprintf(`
		SELECT count(id) FROM salaries
		WHERE deleted_at IS NULL
		  AND employee_id = %d AND month = %d AND year = %d
	`, *request.EmployeeID, *request.Month, *request.Year)
	if err := r.QueryRowContext(ctx, existsQuery).Scan(&exists); err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "checking existing salary"), http.StatusInternalServerError)
	}
	if exists > 0 {
		return CreateResponse{}, web.NewRequestError(errors.New("salary record already exists for this month"), http.StatusConflict)
	}

	// Derive the work stats before touching the table: a ledger failure here
	// must not leave a salary row behind.
	stats, err := r.ledger.AggregateWorkStats(ctx, *request.EmployeeID, *request.Month, *request.Year)
	if err != nil {
		return CreateResponse{}, err
	}

	response := CreateResponse{
		EmployeeID:     request.EmployeeID,
		Month:          request.Month,
		Year:           request.Year,
		BaseAmount:     *request.BaseAmount,
		OvertimeAmount: overtime,
		Deductions:     deductions,
		TotalAmount:    *request.TotalAmount,
		Status:         entity.SalaryPending,
		WorkDays:       stats.WorkDays,
		TotalHours:     stats.TotalHours,
		CreatedAt:      time.Now(),
		CreatedBy:      claims.UserId,
	}

	_, err = r.NewInsert().Model(&response).Returning("id").Exec(ctx, &response.ID)
	if postgresql.IsUniqueViolation(err) {
		return CreateResponse{}, web.NewRequestError(errors.New("salary record already exists for this month"), http.StatusConflict)
	}
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "creating salary record"), http.StatusInternalServerError)
	}

	return response, nil
}

// UpdateStatus advances a record along pending -> processed -> paid. Any other
// move, including going back, is a conflict. Reaching paid stamps the payment
// date.
func (r Repository) UpdateStatus(ctx context.Context, request UpdateStatusRequest) (UpdateStatusResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleManager, auth.RoleAdmin)
	if err != nil {
		return UpdateStatusResponse{}, err
	}

	if err := r.ValidateStruct(&request, "Status"); err != nil {
		return UpdateStatusResponse{}, err
	}

	newStatus := strings.ToLower(*request.Status)
	switch newStatus {
	case entity.SalaryPending, entity.SalaryProcessed, entity.SalaryPaid:
	default:
		return UpdateStatusResponse{}, web.NewRequestError(errors.New("status must be pending, processed or paid"), http.StatusBadRequest)
	}

	var record entity.Salary
	err = r.NewSelect().Model(&record).
		Where("id = ? AND deleted_at IS NULL", request.ID).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return UpdateStatusResponse{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return UpdateStatusResponse{}, web.NewRequestError(errors.Wrap(err, "selecting salary record"), http.StatusInternalServerError)
	}

	if !CanTransition(*record.Status, newStatus) {
		return UpdateStatusResponse{}, web.NewRequestError(
			fmt.Errorf("cannot move salary from %s to %s", *record.Status, newStatus), http.StatusConflict)
	}

	now := time.Now()

	q := r.NewUpdate().Table("salaries").
		Where("deleted_at IS NULL AND id = ? AND status = ?", request.ID, *record.Status)
	q.Set("status = ?", newStatus)
	q.Set("updated_at = ?", now)
	q.Set("updated_by = ?", claims.UserId)

	response := UpdateStatusResponse{ID: request.ID, Status: newStatus}

	if newStatus == entity.SalaryPaid {
		paymentDate := now.Format("2006-01-02")
		q.Set("payment_date = ?", paymentDate)
		response.PaymentDate = &paymentDate
	}

	res, err := q.Exec(ctx)
	if err != nil {
		return UpdateStatusResponse{}, web.NewRequestError(errors.Wrap(err, "updating salary status"), http.StatusInternalServerError)
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return UpdateStatusResponse{}, web.NewRequestError(errors.New("salary record was updated concurrently"), http.StatusConflict)
	}

	return response, nil
}

// GetList lists every salary record for managers and admins.
func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	_, err := r.CheckClaims(ctx, auth.RoleManager, auth.RoleAdmin)
	if err != nil {
		return nil, 0, err
	}

	whereQuery := `
		WHERE
			s.deleted_at IS NULL
			AND e.deleted_at IS NULL
	`

	return r.list(ctx, whereQuery, filter)
}

// GetListByEmployee lists one employee's salary records.
func (r Repository) GetListByEmployee(ctx context.Context, employeeID int, filter Filter) ([]GetListResponse, int, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return nil, 0, err
	}

	if !auth.CanAccess(claims, employeeID, auth.ActionSalaryRead) {
		return nil, 0, web.NewRequestError(errors.New("you can only view your own salary"), http.StatusForbidden)
	}

	whereQuery := fmt.Sprintf(`
		WHERE
			s.deleted_at IS NULL
			AND e.deleted_at IS NULL
			AND s.employee_id = %d
	`, employeeID)

	return r.list(ctx, whereQuery, filter)
}

func (r Repository) list(ctx context.Context, whereQuery string, filter Filter) ([]GetListResponse, int, error) {
	if filter.Status != nil {
		status := strings.Replace(*filter.Status, "'", "''", -1)
		whereQuery += fmt.Sprintf(` AND s.status = '%s'`, status)
	}
	if filter.Month != nil {
		whereQuery += fmt.Sprintf(` AND s.month = %d`, *filter.Month)
	}
	if filter.Year != nil {
		whereQuery += fmt.Sprintf(` AND s.year = %d`, *filter.Year)
	}

	orderQuery := "ORDER BY s.year desc, s.month desc"

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
			s.id,
			s.employee_id,
			e.first_name || ' ' || e.last_name,
			e.department,
			e.position,
			s.month,
			s.year,
			s.base_amount,
			s.overtime_amount,
			s.deductions,
			s.total_amount,
			s.status,
			s.payment_date,
			s.created_at
		FROM salaries s
		JOIN employees e ON s.employee_id = e.id
		%s %s %s %s
	`, whereQuery, orderQuery, limitQuery, offsetQuery)

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting salaries"), http.StatusInternalServerError)
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
			&detail.Month,
			&detail.Year,
			&detail.BaseAmount,
			&detail.OvertimeAmount,
			&detail.Deductions,
			&detail.TotalAmount,
			&detail.Status,
			&detail.PaymentDate,
			&detail.CreatedAt); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning salary list"), http.StatusInternalServerError)
		}
		list = append(list, detail)
	}
	if err = rows.Close(); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "closing salary rows"), http.StatusInternalServerError)
	}

	// Work stats are derived live so that ledger writes landed after the
	// salary record still show up.
	for i := range list {
		if list[i].EmployeeID == nil || list[i].Month == nil || list[i].Year == nil {
			continue
		}
		stats, err := r.ledger.AggregateWorkStats(ctx, *list[i].EmployeeID, *list[i].Month, *list[i].Year)
		if err != nil {
			return nil, 0, err
		}
		list[i].WorkDays = stats.WorkDays
		list[i].TotalHours = stats.TotalHours
	}

	countQuery := fmt.Sprintf(`
		SELECT
			count(s.id)
		FROM salaries s
		JOIN employees e ON s.employee_id = e.id
		%s
	`, whereQuery)

	count := 0
	if err = r.QueryRowContext(ctx, countQuery).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning salary count"), http.StatusInternalServerError)
	}

	return list, count, nil
}

// GetSlip collects everything the pdf salary slip needs for one record.
func (r Repository) GetSlip(ctx context.Context, id int) (SlipData, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return SlipData{}, err
	}

	query := fmt.Sprintf(`
		SELECT
			s.id,
			s.employee_id,
			e.first_name || ' ' || e.last_name,
			COALESCE(e.department, ''),
			COALESCE(e.position, ''),
			s.month,
			s.year,
			s.base_amount,
			s.overtime_amount,
			s.deductions,
			s.total_amount,
			s.status
		FROM salaries s
		JOIN employees e ON s.employee_id = e.id
		WHERE s.deleted_at IS NULL AND e.deleted_at IS NULL AND s.id = %d
	`, id)

	var (
		data       SlipData
		employeeID int
	)
	err = r.QueryRowContext(ctx, query).Scan(
		&data.ID,
		&employeeID,
		&data.EmployeeName,
		&data.Department,
		&data.Position,
		&data.Month,
		&data.Year,
		&data.BaseAmount,
		&data.OvertimeAmount,
		&data.Deductions,
		&data.TotalAmount,
		&data.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return SlipData{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return SlipData{}, web.NewRequestError(errors.Wrap(err, "selecting salary slip"), http.StatusInternalServerError)
	}

	if !auth.CanAccess(claims, employeeID, auth.ActionSalaryRead) {
		return SlipData{}, web.NewRequestError(errors.New("you can only view your own salary"), http.StatusForbidden)
	}

	stats, err := r.ledger.AggregateWorkStats(ctx, employeeID, data.Month, data.Year)
	if err != nil {
		return SlipData{}, err
	}
	data.WorkDays = stats.WorkDays
	data.TotalHours = stats.TotalHours

	return data, nil
}

func expectedTotal(base, overtime, deductions decimal.Decimal) decimal.Decimal {
	return base.Add(overtime).Sub(deductions)
}

// CanTransition reports whether a salary status change is allowed. Records only
// move forward, one step at a time.
func CanTransition(from, to string) bool {
	switch from {
	case entity.SalaryPending:
		return to == entity.SalaryProcessed
	case entity.SalaryProcessed:
		return to == entity.SalaryPaid
	default:
		return false
	}
}
