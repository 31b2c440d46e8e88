package apperrors

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("not found")
	ErrNoActiveDraft   = errors.New("no active draft")
	ErrNotLoggedIn     = errors.New("not logged in")
	ErrRelayNotRunning = errors.New("relay daemon is not running")
	ErrSaveInFlight    = errors.New("a save is already in flight")
	ErrMissingFields   = errors.New("required fields are missing")
)
