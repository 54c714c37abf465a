package user

type SignInRequest struct {
	Username *string `json:"username" form:"username"`
	Password *string `json:"password" form:"password"`
}

type RefreshTokenRequest struct {
	AccessToken  *string `json:"access_token" form:"access_token"`
	RefreshToken *string `json:"refresh_token" form:"refresh_token"`
}

// AuthData is everything the token layer needs about a signed-in user. The
// admin seed has no employee row, so EmployeeID can be zero.
type AuthData struct {
	UserID     int    `json:"user_id"`
	EmployeeID int    `json:"employee_id"`
	Username   string `json:"username"`
	Role       string `json:"role"`
}
