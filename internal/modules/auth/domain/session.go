// Package domain models the signed-in user session.
package domain

import "time"

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Session pairs the stored user record with the bearer token. The
// token may be an opaque string; when it is a JWT the parsed claims
// override the stored role and provide an expiry.
type Session struct {
	User      User
	Token     string
	ExpiresAt time.Time
}

// Expired reports whether the session carries a known, passed expiry.
// Tokens without an expiry claim never report expired here; the
// backend is the authority.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
