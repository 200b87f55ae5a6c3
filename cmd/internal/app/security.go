package app

import (
	"errors"

	"tick/cmd/security/token"
)

// ValidateSecurityConfig enforces tick's security policy at startup.
// Fail-fast: silently falling back to weaker hashing under policy is not
// an option.
func ValidateSecurityConfig(cfg Config) error {
	if !cfg.RequireTokenHMAC {
		return nil
	}

	// Key length is measured in bytes, not runes; the key is raw key material.
	if _, err := token.HMACKeyFromEnv(32); err != nil {
		switch {
		case errors.Is(err, token.ErrHMACKeyMissing):
			return errors.New("security policy: TICK_REQUIRE_TOKEN_HMAC=true but TICK_TOKEN_HMAC_KEY is missing")
		case errors.Is(err, token.ErrHMACKeyTooShort):
			return errors.New("security policy: TICK_REQUIRE_TOKEN_HMAC=true but TICK_TOKEN_HMAC_KEY is too short (min 32 bytes)")
		default:
			return err
		}
	}

	if !token.HMACEnabled() {
		return errors.New("security policy: TICK_REQUIRE_TOKEN_HMAC=true but the session-token hasher is not in HMAC mode")
	}

	return nil
}
