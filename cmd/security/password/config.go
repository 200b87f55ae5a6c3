package password

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Policy controls password length validation.
type Policy struct {
	MinLength int
	MaxLength int
}

// Config is the single configuration surface for this package.
type Config struct {
	// Cost is the bcrypt work factor applied when hashing new passwords.
	Cost   int
	Policy Policy
}

// DefaultConfig returns the baseline configuration: bcrypt cost 10 and a
// password length policy of [7,100] characters.
func DefaultConfig() Config {
	return Config{
		Cost: 10,
		Policy: Policy{
			MinLength: 7,
			MaxLength: 100,
		},
	}
}

// FromEnv loads config from environment variables.
//
// Env surface:
// - TICK_BCRYPT_COST
// - TICK_PASSWORD_MIN_LEN
// - TICK_PASSWORD_MAX_LEN
func FromEnv() (Config, error) {
	cfg := DefaultConfig()

	if v, ok := lookup("TICK_BCRYPT_COST"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("TICK_BCRYPT_COST: %w", err)
		}
		if n < bcrypt.MinCost || n > bcrypt.MaxCost {
			return Config{}, fmt.Errorf("TICK_BCRYPT_COST: out of range [%d,%d]", bcrypt.MinCost, bcrypt.MaxCost)
		}
		cfg.Cost = n
	}

	if v, ok := lookup("TICK_PASSWORD_MIN_LEN"); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("TICK_PASSWORD_MIN_LEN: invalid value %q", v)
		}
		cfg.Policy.MinLength = n
	}

	if v, ok := lookup("TICK_PASSWORD_MAX_LEN"); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("TICK_PASSWORD_MAX_LEN: invalid value %q", v)
		}
		cfg.Policy.MaxLength = n
	}

	if cfg.Policy.MinLength > cfg.Policy.MaxLength {
		return Config{}, fmt.Errorf("password policy: min length %d exceeds max length %d", cfg.Policy.MinLength, cfg.Policy.MaxLength)
	}

	// bcrypt refuses inputs over 72 bytes, but the policy cap is enforced
	// first in Validate, so longer values surface as ErrPasswordTooLong.
	return cfg, nil
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return "", false
	}
	return v, true
}
