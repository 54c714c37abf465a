// Package auth knows how to validate JWT tokens and answers every
// role/ownership question the repositories ask before touching storage.
package auth

import (
	"net/http"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"

	"ems/backend/foundation/web"
)

type ctxKey int

// Key is used to store/retrieve Claims in a context.Context.
const Key ctxKey = 1

const (
	RoleAdmin    = "ADMIN"
	RoleManager  = "MANAGER"
	RoleEmployee = "EMPLOYEE"
)

// Claims is the payload carried by every access token. EmployeeID is zero for
// accounts with no employee record (the seeded admin).
type Claims struct {
	jwt.StandardClaims
	UserId     int    `json:"user_id"`
	EmployeeID int    `json:"employee_id"`
	Role       string `json:"role"`
	Type       string `json:"type"`
}

// Authorized checks whether the claims carry one of the given roles. With no
// roles listed, any authenticated identity passes.
func (c Claims) Authorized(roles ...string) bool {
	if len(roles) == 0 {
		return true
	}
	for _, role := range roles {
		if c.Role == role {
			return true
		}
	}
	return false
}

// Auth validates tokens signed with the configured key.
type Auth struct {
	key []byte
}

func NewAuth(jwtKey string) (*Auth, error) {
	if jwtKey == "" {
		return nil, errors.New("jwt key is not configured")
	}
	return &Auth{key: []byte(jwtKey)}, nil
}

// ValidateToken parses and verifies the signature of a token.
func (a *Auth) ValidateToken(tokenStr string) (Claims, error) {
	var claims Claims

	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.key, nil
	})
	if err != nil {
		return Claims{}, errors.Wrap(err, "parsing token")
	}
	if !token.Valid {
		return Claims{}, errors.New("invalid token")
	}

	return claims, nil
}

// ErrNoClaims is returned when an operation runs without an authenticated
// identity in its context.
var ErrNoClaims = web.NewRequestError(errors.New("authentication required"), http.StatusUnauthorized)

// GetClaims pulls the authenticated identity out of the context, failing
// closed when it is missing.
func GetClaims(v interface{}) (Claims, error) {
	claims, ok := v.(Claims)
	if !ok {
		return Claims{}, ErrNoClaims
	}
	return claims, nil
}
