package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpired reports whether the stored bearer token carries a JWT "exp"
// claim that has already passed. The signature is never checked here; the
// secret lives on the backend and verification is its job. A token that does
// not parse as a JWT is treated as opaque and reported as not expired, so it
// still gets sent to /api/verify-token.
func TokenExpired(tokenString string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return now.After(exp.Time)
}
