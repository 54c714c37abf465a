package user

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"ems/backend/foundation/web"
	"ems/backend/internal/pkg/repository/postgresql"
)

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

// SignIn verifies a username/password pair and resolves the linked employee.
// Both a missing user and a wrong password come back as the same 401 so the
// response does not leak which usernames exist.
func (r Repository) SignIn(ctx context.Context, request SignInRequest) (AuthData, error) {
	if err := r.ValidateStruct(&request, "Username", "Password"); err != nil {
		return AuthData{}, err
	}

	username := strings.Replace(*request.Username, "'", "''", -1)

	query := fmt.Sprintf(`
		SELECT
			u.id,
			u.password,
			u.role,
			COALESCE(e.id, 0)
		FROM users u
		LEFT JOIN employees e ON e.user_id = u.id AND e.deleted_at IS NULL
		WHERE u.deleted_at IS NULL AND u.username = '%s'
	`, username)

	var (
		data AuthData
		hash string
	)
	err := r.QueryRowContext(ctx, query).Scan(&data.UserID, &hash, &data.Role, &data.EmployeeID)
	if errors.Is(err, sql.ErrNoRows) {
		return AuthData{}, web.NewRequestError(errors.New("incorrect username or password"), http.StatusUnauthorized)
	}
	if err != nil {
		return AuthData{}, web.NewRequestError(errors.Wrap(err, "selecting user"), http.StatusInternalServerError)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(*request.Password)); err != nil {
		return AuthData{}, web.NewRequestError(errors.New("incorrect username or password"), http.StatusUnauthorized)
	}

	data.Username = *request.Username

	return data, nil
}

// GetById reloads a user for the refresh-token flow.
func (r Repository) GetById(ctx context.Context, id int) (AuthData, error) {
	query := fmt.Sprintf(`
		SELECT
			u.id,
			u.username,
			u.role,
			COALESCE(e.id, 0)
		FROM users u
		LEFT JOIN employees e ON e.user_id = u.id AND e.deleted_at IS NULL
		WHERE u.deleted_at IS NULL AND u.id = %d
	`, id)

	var data AuthData
	err := r.QueryRowContext(ctx, query).Scan(&data.UserID, &data.Username, &data.Role, &data.EmployeeID)
	if errors.Is(err, sql.ErrNoRows) {
		return AuthData{}, web.NewRequestError(errors.New("user not found"), http.StatusUnauthorized)
	}
	if err != nil {
		return AuthData{}, web.NewRequestError(errors.Wrap(err, "selecting user"), http.StatusInternalServerError)
	}

	return data, nil
}
