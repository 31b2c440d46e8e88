package dto

import "time"

type LoginInput struct {
	Email     string
	Password  string
	Dashboard bool
}

type SessionOutput struct {
	UserID    string
	Name      string
	Email     string
	Role      string
	ExpiresAt time.Time
}
