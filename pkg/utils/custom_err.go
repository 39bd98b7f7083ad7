package utils

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrDatabaseError      = errors.New("database error")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrGroupNotFound      = errors.New("group not found")
	ErrTripNotFound       = errors.New("trip not found")
	ErrNoParticipants     = errors.New("group has no participants with preferences")
	ErrAgentFailure       = errors.New("agent failed to produce a plan")
)
