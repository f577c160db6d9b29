// ABOUTME: Bearer token shape checks done before any backend round-trip
// ABOUTME: Validity is always the backend's call; this only filters obvious garbage

package api

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenWellFormed reports whether the token looks like something the
// backend could accept: non-empty and carrying at least one segment
// separator. Anything stricter would reject tokens the backend happily
// serves. A token that passes here can still be rejected by the backend,
// and that rejection is the only authority on validity.
func TokenWellFormed(token string) bool {
	return token != "" && strings.Contains(token, ".")
}

// TokenExpiry peeks at the unverified exp claim of a JWT-shaped token.
// The zero time and false mean the token carries no readable expiry;
// callers must not treat that as "never expires" for anything but
// housekeeping (the session cleaner uses it to prune hopeless sessions).
func TokenExpiry(token string) (time.Time, bool) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
