package jwtx

import (
	"errors"

	"travelease/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// CookieName carries the session token for browser clients.
const CookieName = "travelease_session"

const userKey = "session_user"

// SessionIDFromContext reads the session id from verified token claims.
func SessionIDFromContext(c echo.Context) (string, error) {
	claims, ok := c.Get("user").(jwt.MapClaims)
	if !ok || claims == nil {
		return "", errors.New("no session token in context")
	}
	if sid, ok := claims["sub"].(string); ok && sid != "" {
		return sid, nil
	}
	return "", errors.New("sub missing in claims")
}

func SetUser(c echo.Context, u *model.User) { c.Set(userKey, u) }

// UserFromContext is nil for signed-out visitors.
func UserFromContext(c echo.Context) *model.User {
	u, _ := c.Get(userKey).(*model.User)
	return u
}
