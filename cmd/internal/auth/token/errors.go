package token

import "errors"

var (
	// ErrInvalidToken is returned when a token fails signature verification,
	// decryption, or claim decoding. Callers must not distinguish the cases.
	ErrInvalidToken = errors.New("invalid token")

	// ErrInvalidInput is returned when Issue is called with empty inputs.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConfig is returned for missing or malformed codec configuration.
	ErrConfig = errors.New("invalid token codec config")
)
