package account

import (
	"context"
	"time"
)

// Account is tick's canonical security principal.
// IMPORTANT: PasswordSalt/PasswordHash are server-side only; the plaintext
// password is never stored and neither field may ever be serialized.
type Account struct {
	ID        string
	Email     string
	EmailNorm string

	PasswordSalt string
	PasswordHash string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateInput describes a signup request.
type CreateInput struct {
	Email    string
	Password string
	Now      time.Time
}

// Store is the credential persistence boundary.
//
// Security contract:
//   - Create fails with ErrInvalidInput for malformed email or out-of-policy
//     password, and with ErrConflict when the normalized email is taken.
//   - VerifyCredentials collapses unknown-email and wrong-password into one
//     indistinguishable ErrBadCredentials.
type Store interface {
	Create(ctx context.Context, in CreateInput) (Account, error)
	VerifyCredentials(ctx context.Context, email, password string) (Account, error)
	GetByID(ctx context.Context, id string) (Account, error)
}
