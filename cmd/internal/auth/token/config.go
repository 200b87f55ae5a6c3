package token

import (
	"fmt"
	"os"
	"strings"
)

// Config holds the two independent codec secrets.
//
// The encryption key and signing key are deliberately separate so that either
// primitive can be rotated or upgraded without touching the other.
type Config struct {
	// EncKey is the AES key for the payload cipher. Must be 16, 24, or 32
	// bytes (AES-128/192/256).
	EncKey []byte

	// SignKey is the HMAC secret for the JWT signer. Minimum 32 bytes.
	SignKey []byte
}

// LoadConfigFromEnv loads codec secrets from environment variables.
//
// Required:
//   - TICK_TOKEN_ENC_KEY  (16/24/32 bytes)
//   - TICK_TOKEN_SIGN_KEY (>= 32 bytes)
//
// Returns ErrConfig (wrapped with detail) when either key is missing or
// malformed. Fail-fast is intentional: silently falling back to weaker
// secrets is unacceptable.
func LoadConfigFromEnv() (Config, error) {
	enc := strings.TrimSpace(os.Getenv("TICK_TOKEN_ENC_KEY"))
	if enc == "" {
		return Config{}, fmt.Errorf("%w: TICK_TOKEN_ENC_KEY is required", ErrConfig)
	}
	switch len(enc) {
	case 16, 24, 32:
	default:
		return Config{}, fmt.Errorf("%w: TICK_TOKEN_ENC_KEY must be 16, 24, or 32 bytes, got %d", ErrConfig, len(enc))
	}

	sign := strings.TrimSpace(os.Getenv("TICK_TOKEN_SIGN_KEY"))
	if sign == "" {
		return Config{}, fmt.Errorf("%w: TICK_TOKEN_SIGN_KEY is required", ErrConfig)
	}
	if len(sign) < 32 {
		return Config{}, fmt.Errorf("%w: TICK_TOKEN_SIGN_KEY must be at least 32 bytes, got %d", ErrConfig, len(sign))
	}

	return Config{
		EncKey:  []byte(enc),
		SignKey: []byte(sign),
	}, nil
}
