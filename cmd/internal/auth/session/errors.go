package session

import "errors"

var (
	// ErrInvalidInput marks a malformed call (empty token, nil store).
	ErrInvalidInput = errors.New("invalid_input")

	// ErrStore marks a persistence failure underneath the session list.
	ErrStore = errors.New("session_store")
)
