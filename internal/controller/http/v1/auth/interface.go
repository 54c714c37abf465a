package auth

import (
	"context"

	"ems/backend/internal/repository/postgres/user"
)

type User interface {
	SignIn(ctx context.Context, request user.SignInRequest) (user.AuthData, error)
	GetById(ctx context.Context, id int) (user.AuthData, error)
}
