package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Issue signs a session token whose subject is the session id.
func Issue(secret string, sessionID string, role string, ttlHours int) (string, error) {
	if sessionID == "" {
		return "", errors.New("missing session id")
	}
	claims := jwt.MapClaims{
		"sub":  sessionID,
		"role": role,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(time.Duration(ttlHours) * time.Hour).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// Parse validates an HS256 session token and returns its claims.
func Parse(tokenStr, secret string) (jwt.MapClaims, error) {
	if tokenStr == "" {
		return nil, errors.New("missing token")
	}
	tok, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok || !tok.Valid {
		return nil, errors.New("invalid claims")
	}
	return mc, nil
}
