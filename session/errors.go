package session

import "errors"

// Sentinel errors for the session service.
var (
	ErrSessionExists   = errors.New("session already exists")
	ErrSessionNotFound = errors.New("session not found")
)
