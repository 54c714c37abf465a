package employee

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"golang.org/x/crypto/bcrypt"

	"ems/backend/foundation/web"
	"ems/backend/internal/auth"
	"ems/backend/internal/entity"
	"ems/backend/internal/pkg/repository/postgresql"
	"ems/backend/internal/repository/postgres"
)

const joiningDateLayout = "2006-01-02"

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

// Create registers an employee together with their login. Both rows land in
// one transaction so a failed employee insert never leaves an orphan user.
func (r Repository) Create(ctx context.Context, request CreateRequest) (CreateResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return CreateResponse{}, err
	}

	if err := r.ValidateStruct(&request,
		"Username", "Password", "Role", "FirstName", "LastName", "Email",
		"Position", "Department", "JoiningDate", "BaseSalary"); err != nil {
		return CreateResponse{}, err
	}

	role := strings.ToUpper(*request.Role)
	switch role {
	case auth.RoleAdmin, auth.RoleManager, auth.RoleEmployee:
	default:
		return CreateResponse{}, web.NewRequestError(errors.New("role must be ADMIN, MANAGER or EMPLOYEE"), http.StatusBadRequest)
	}

	if request.JoiningDate != nil {
		if _, err := time.Parse(joiningDateLayout, *request.JoiningDate); err != nil {
			return CreateResponse{}, web.NewRequestError(errors.New("joining_date must be YYYY-MM-DD"), http.StatusBadRequest)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*request.Password), bcrypt.DefaultCost)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "hashing password"), http.StatusInternalServerError)
	}
	hashed := string(hash)

	now := time.Now()

	response := CreateResponse{
		FirstName:   request.FirstName,
		LastName:    request.LastName,
		Email:       request.Email,
		Phone:       request.Phone,
		Address:     request.Address,
		Position:    request.Position,
		Department:  request.Department,
		JoiningDate: request.JoiningDate,
		BaseSalary:  request.BaseSalary,
		Role:        role,
		CreatedAt:   now,
		CreatedBy:   claims.UserId,
	}

	err = r.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		user := entity.User{
			BasicEntity: entity.BasicEntity{
				CreatedAt: now,
				CreatedBy: &claims.UserId,
			},
			Username: request.Username,
			Password: &hashed,
			Role:     &role,
		}
		if _, err := tx.NewInsert().Model(&user).Returning("id").Exec(ctx, &user.ID); err != nil {
			return err
		}

		response.UserID = &user.ID
		if _, err := tx.NewInsert().Model(&response).Returning("id").Exec(ctx, &response.ID); err != nil {
			return err
		}

		return nil
	})
	if postgresql.IsUniqueViolation(err) {
		return CreateResponse{}, web.NewRequestError(errors.New("username or email already in use"), http.StatusConflict)
	}
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "creating employee"), http.StatusInternalServerError)
	}

	return response, nil
}

// Update edits an employee's profile. Login credentials are not touched here.
func (r Repository) Update(ctx context.Context, request UpdateRequest) error {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return err
	}

	if err := r.ValidateStruct(&request, "ID"); err != nil {
		return err
	}

	q := r.NewUpdate().Table("employees").Where("deleted_at IS NULL AND id = ?", request.ID)

	if request.FirstName != nil {
		q.Set("first_name = ?", *request.FirstName)
	}
	if request.LastName != nil {
		q.Set("last_name = ?", *request.LastName)
	}
	if request.Email != nil {
		q.Set("email = ?", *request.Email)
	}
	if request.Phone != nil {
		q.Set("phone = ?", *request.Phone)
	}
	if request.Address != nil {
		q.Set("address = ?", *request.Address)
	}
	if request.Position != nil {
		q.Set("position = ?", *request.Position)
	}
	if request.Department != nil {
		q.Set("department = ?", *request.Department)
	}
	if request.JoiningDate != nil {
		if _, err := time.Parse(joiningDateLayout, *request.JoiningDate); err != nil {
			return web.NewRequestError(errors.New("joining_date must be YYYY-MM-DD"), http.StatusBadRequest)
		}
		q.Set("joining_date = ?", *request.JoiningDate)
	}
	if request.BaseSalary != nil {
		q.Set("base_salary = ?", *request.BaseSalary)
	}

	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", claims.UserId)

	res, err := q.Exec(ctx)
	if postgresql.IsUniqueViolation(err) {
		return web.NewRequestError(errors.New("email already in use"), http.StatusConflict)
	}
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating employee"), http.StatusInternalServerError)
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}

	return nil
}

// GetList lists employees for managers and admins.
func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	_, err := r.CheckClaims(ctx, auth.RoleManager, auth.RoleAdmin)
	if err != nil {
		return nil, 0, err
	}

	whereQuery := `
		WHERE
			e.deleted_at IS NULL
	`
	if filter.Search != nil {
		search := strings.Replace(*filter.Search, "'", "''", -1)
		whereQuery += fmt.Sprintf(` AND (e.first_name ilike '%s' OR e.last_name ilike '%s' OR e.email ilike '%s')`,
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}
	if filter.Department != nil {
		department := strings.Replace(*filter.Department, "'", "''", -1)
		whereQuery += fmt.Sprintf(` AND e.department = '%s'`, department)
	}

	orderQuery := "ORDER BY e.last_name, e.first_name"

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
			e.id,
			e.first_name,
			e.last_name,
			e.email,
			e.phone,
			e.position,
			e.department,
			e.joining_date,
			u.role
		FROM employees e
		LEFT JOIN users u ON e.user_id = u.id
		%s %s %s %s
	`, whereQuery, orderQuery, limitQuery, offsetQuery)

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting employees"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var list []GetListResponse
	for rows.Next() {
		var detail GetListResponse
		var joiningDate *string

		if err = rows.Scan(
			&detail.ID,
			&detail.FirstName,
			&detail.LastName,
			&detail.Email,
			&detail.Phone,
			&detail.Position,
			&detail.Department,
			&joiningDate,
			&detail.Role); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning employee list"), http.StatusInternalServerError)
		}

		if joiningDate != nil {
			parsed, err := date.ParseDate(*joiningDate)
			if err != nil {
				return nil, 0, web.NewRequestError(errors.Wrap(err, "converting joining_date to date.Date"), http.StatusInternalServerError)
			}
			detail.JoiningDate = &parsed
		}

		list = append(list, detail)
	}

	countQuery := fmt.Sprintf(`
		SELECT
			count(e.id)
		FROM employees e
		LEFT JOIN users u ON e.user_id = u.id
		%s
	`, whereQuery)

	count := 0
	if err = r.QueryRowContext(ctx, countQuery).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning employee count"), http.StatusInternalServerError)
	}

	return list, count, nil
}

// GetDetailById returns one employee's full profile. Employees can only look
// at their own.
func (r Repository) GetDetailById(ctx context.Context, id int) (GetDetailByIdResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return GetDetailByIdResponse{}, err
	}

	if !auth.CanAccess(claims, id, auth.ActionEmployeeRead) {
		return GetDetailByIdResponse{}, web.NewRequestError(errors.New("you can only view your own profile"), http.StatusForbidden)
	}

	query := fmt.Sprintf(`
		SELECT
			e.id,
			e.user_id,
			u.username,
			u.role,
			e.first_name,
			e.last_name,
			e.email,
			e.phone,
			e.address,
			e.position,
			e.department,
			e.joining_date,
			e.base_salary
		FROM employees e
		LEFT JOIN users u ON e.user_id = u.id
		WHERE e.deleted_at IS NULL AND e.id = %d
	`, id)

	var (
		detail      GetDetailByIdResponse
		joiningDate *string
	)
	err = r.QueryRowContext(ctx, query).Scan(
		&detail.ID,
		&detail.UserID,
		&detail.Username,
		&detail.Role,
		&detail.FirstName,
		&detail.LastName,
		&detail.Email,
		&detail.Phone,
		&detail.Address,
		&detail.Position,
		&detail.Department,
		&joiningDate,
		&detail.BaseSalary)
	if errors.Is(err, sql.ErrNoRows) {
		return GetDetailByIdResponse{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return GetDetailByIdResponse{}, web.NewRequestError(errors.Wrap(err, "selecting employee"), http.StatusInternalServerError)
	}

	if joiningDate != nil {
		parsed, err := date.ParseDate(*joiningDate)
		if err != nil {
			return GetDetailByIdResponse{}, web.NewRequestError(errors.Wrap(err, "converting joining_date to date.Date"), http.StatusInternalServerError)
		}
		detail.JoiningDate = &parsed
	}

	return detail, nil
}

// Delete soft-deletes an employee and their login.
func (r Repository) Delete(ctx context.Context, id int) error {
	_, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return err
	}

	var detail entity.Employee
	err = r.NewSelect().Model(&detail).Column("user_id").
		Where("deleted_at IS NULL AND id = ?", id).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "selecting employee user"), http.StatusInternalServerError)
	}

	if err := r.DeleteRow(ctx, "employees", id); err != nil {
		return err
	}
	if detail.UserID != nil {
		if err := r.DeleteRow(ctx, "users", *detail.UserID); err != nil {
			return err
		}
	}

	return nil
}
