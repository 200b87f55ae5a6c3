package password

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt only consumes the first 72 bytes of input. The policy maximum may
// exceed that, so both Hash and Verify truncate consistently instead of
// letting x/crypto reject long-but-legal passwords.
const bcryptMaxInputBytes = 72

// Hash hashes a password using bcrypt and returns the encoded hash string.
// Format: $2a$<cost>$<22-char salt><31-char hash>
func (c Config) Hash(password string) (string, error) {
	if err := c.Validate(password); err != nil {
		return "", err
	}

	enc, err := bcrypt.GenerateFromPassword(truncate(password), c.Cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(enc), nil
}

// Verify checks whether password matches the given encoded hash.
// Returns (true, nil) for a match, (false, nil) for a mismatch,
// and (false, ErrInvalidHash) for malformed/unsupported hashes.
func (c Config) Verify(encodedHash, password string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(encodedHash), truncate(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, ErrInvalidHash
}

// Validate applies the length policy to a candidate password.
func (c Config) Validate(password string) error {
	if len(password) < c.Policy.MinLength {
		return ErrPasswordTooShort
	}
	if c.Policy.MaxLength > 0 && len(password) > c.Policy.MaxLength {
		return ErrPasswordTooLong
	}
	return nil
}

// SaltFromEncoded extracts the salt section of a bcrypt encoding:
// "$2a$10$" + 22 salt chars. The result is stored alongside the full hash to
// keep the salt independently queryable.
func SaltFromEncoded(encodedHash string) (string, error) {
	if !strings.HasPrefix(encodedHash, "$2") {
		return "", ErrInvalidHash
	}
	// $2a$10$ is 7 chars; the salt is the following 22.
	const saltEnd = 7 + 22
	if len(encodedHash) < saltEnd {
		return "", ErrInvalidHash
	}
	return encodedHash[:saltEnd], nil
}

func truncate(password string) []byte {
	b := []byte(password)
	if len(b) > bcryptMaxInputBytes {
		b = b[:bcryptMaxInputBytes]
	}
	return b
}
