package account

import (
	"errors"

	"tick/cmd/security/password"
)

// HashPassword derives a salted bcrypt hash for a plaintext password.
// It returns the salt section of the encoding and the full encoded hash;
// both are stored, neither reveals the plaintext. Cost and length policy come
// from cmd/security/password (defaults + env overrides).
func HashPassword(plain string) (salt, hash string, err error) {
	cfg, err := password.FromEnv()
	if err != nil {
		return "", "", err
	}

	enc, err := cfg.Hash(plain)
	if err != nil {
		switch {
		case errors.Is(err, password.ErrPasswordTooShort):
			return "", "", OpError{Op: "account.HashPassword", Kind: ErrInvalidInput, Msg: "password too short"}
		case errors.Is(err, password.ErrPasswordTooLong):
			return "", "", OpError{Op: "account.HashPassword", Kind: ErrInvalidInput, Msg: "password too long"}
		default:
			return "", "", err
		}
	}

	salt, err = password.SaltFromEncoded(enc)
	if err != nil {
		return "", "", err
	}
	return salt, enc, nil
}

// VerifyPassword checks a plaintext password against a stored bcrypt hash.
// bcrypt's own comparison is constant-time with respect to the derived key;
// no extra comparison is layered on top.
func VerifyPassword(plain, encodedHash string) (bool, error) {
	cfg, err := password.FromEnv()
	if err != nil {
		return false, err
	}
	return cfg.Verify(encodedHash, plain)
}
