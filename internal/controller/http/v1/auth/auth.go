package auth

import (
	"net/http"

	"ems/backend/foundation/web"
	"ems/backend/internal/commands"
	"ems/backend/internal/repository/postgres/user"
)

type Controller struct {
	user   User
	jwtKey string
}

func NewController(user User, jwtKey string) *Controller {
	return &Controller{user: user, jwtKey: jwtKey}
}

func (uc Controller) SignIn(c *web.Context) error {
	var request user.SignInRequest

	if err := c.BindFunc(&request, "Username", "Password"); err != nil {
		return c.RespondError(err)
	}

	data, err := uc.user.SignIn(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	accessToken, refreshToken, err := commands.GenToken(commands.AuthClaims{
		ID:         data.UserID,
		EmployeeID: data.EmployeeID,
		Role:       data.Role,
	}, uc.jwtKey)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"access_token":  accessToken,
			"refresh_token": refreshToken,
			"role":          data.Role,
			"employee_id":   data.EmployeeID,
		},
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) RefreshToken(c *web.Context) error {
	var request user.RefreshTokenRequest

	if err := c.BindFunc(&request, "AccessToken", "RefreshToken"); err != nil {
		return c.RespondError(err)
	}

	_, refreshClaims, err := commands.VerifyTokens(*request.AccessToken, *request.RefreshToken, uc.jwtKey)
	if err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusUnauthorized))
	}

	// Reload the user so revoked logins and role changes take effect on
	// refresh, not only on sign-in.
	data, err := uc.user.GetById(c.Ctx, refreshClaims.UserId)
	if err != nil {
		return c.RespondError(err)
	}

	accessToken, refreshToken, err := commands.GenToken(commands.AuthClaims{
		ID:         data.UserID,
		EmployeeID: data.EmployeeID,
		Role:       data.Role,
	}, uc.jwtKey)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"access_token":  accessToken,
			"refresh_token": refreshToken,
		},
		"status": true,
	}, http.StatusOK)
}
