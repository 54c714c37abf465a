package commands

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"

	"ems/backend/internal/auth"
)

const (
	accessTokenTTL  = 12 * time.Hour
	refreshTokenTTL = 30 * 24 * time.Hour
)

// AuthClaims is what sign-in knows about a user; the token payload is built
// from it.
type AuthClaims struct {
	ID         int
	EmployeeID int
	Role       string
}

// GenToken mints an access/refresh token pair for the given identity.
func GenToken(c AuthClaims, jwtKey string) (string, string, error) {
	access, err := signToken(c, "access", accessTokenTTL, jwtKey)
	if err != nil {
		return "", "", errors.Wrap(err, "signing access token")
	}

	refresh, err := signToken(c, "refresh", refreshTokenTTL, jwtKey)
	if err != nil {
		return "", "", errors.Wrap(err, "signing refresh token")
	}

	return access, refresh, nil
}

func signToken(c AuthClaims, tokenType string, ttl time.Duration, jwtKey string) (string, error) {
	claims := auth.Claims{
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: time.Now().Add(ttl).Unix(),
		},
		UserId:     c.ID,
		EmployeeID: c.EmployeeID,
		Role:       c.Role,
		Type:       tokenType,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtKey))
}

// VerifyTokens checks an expired-or-not access token together with its
// refresh token and returns both claim sets. The refresh token must be valid
// and of type refresh; the access token only has to be parseable and belong
// to the same user.
func VerifyTokens(accessToken, refreshToken, jwtKey string) (auth.Claims, auth.Claims, error) {
	refreshClaims, err := parseToken(refreshToken, jwtKey)
	if err != nil {
		return auth.Claims{}, auth.Claims{}, errors.Wrap(err, "verifying refresh token")
	}
	if refreshClaims.Type != "refresh" {
		return auth.Claims{}, auth.Claims{}, errors.New("refresh token expected")
	}

	accessClaims, err := parseExpiredToken(accessToken, jwtKey)
	if err != nil {
		return auth.Claims{}, auth.Claims{}, errors.Wrap(err, "verifying access token")
	}
	if accessClaims.UserId != refreshClaims.UserId {
		return auth.Claims{}, auth.Claims{}, errors.New("token pair mismatch")
	}

	return accessClaims, refreshClaims, nil
}

func parseToken(tokenStr, jwtKey string) (auth.Claims, error) {
	var claims auth.Claims

	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(jwtKey), nil
	})
	if err != nil {
		return auth.Claims{}, err
	}
	if !token.Valid {
		return auth.Claims{}, errors.New("invalid token")
	}

	return claims, nil
}

// parseExpiredToken accepts tokens whose only defect is expiry, since refresh
// happens after the access token has lapsed.
func parseExpiredToken(tokenStr, jwtKey string) (auth.Claims, error) {
	var claims auth.Claims

	_, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(jwtKey), nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors == jwt.ValidationErrorExpired {
			return claims, nil
		}
		return auth.Claims{}, err
	}

	return claims, nil
}
