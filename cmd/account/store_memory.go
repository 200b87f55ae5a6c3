package account

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is a dev/test fallback used when no database is configured.
// Semantics match PostgresStore, including indistinguishable credential
// failures and email uniqueness on the normalized form.
type MemoryStore struct {
	mu       sync.Mutex
	byID     map[string]Account
	byNorm   map[string]string // email_norm -> id
	dummyPwh string
}

// NewMemoryStore constructs an in-memory Store implementation.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:     make(map[string]Account),
		byNorm:   make(map[string]string),
		dummyPwh: dummyVerifyHash(),
	}
}

// Create creates a new account.
func (s *MemoryStore) Create(ctx context.Context, in CreateInput) (Account, error) {
	const op = "account.Create"

	if err := ctx.Err(); err != nil {
		return Account{}, err
	}

	email, emailNorm, err := validateCreate(op, in)
	if err != nil {
		return Account{}, err
	}

	now := in.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	salt, hash, err := HashPassword(in.Password)
	if err != nil {
		return Account{}, err
	}

	id, err := NewULID(now)
	if err != nil {
		return Account{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byNorm[emailNorm]; taken {
		return Account{}, ConflictError{Op: op, Field: "email"}
	}

	acc := Account{
		ID:           id,
		Email:        email,
		EmailNorm:    emailNorm,
		PasswordSalt: salt,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.byID[id] = acc
	s.byNorm[emailNorm] = id

	return acc, nil
}

// VerifyCredentials resolves an email/password pair to an account.
func (s *MemoryStore) VerifyCredentials(ctx context.Context, email, password string) (Account, error) {
	if err := ctx.Err(); err != nil {
		return Account{}, err
	}

	emailNorm := NormalizeEmail(email)
	if emailNorm == "" || password == "" {
		return Account{}, badCredentials()
	}

	s.mu.Lock()
	id, found := s.byNorm[emailNorm]
	acc := s.byID[id]
	s.mu.Unlock()

	if !found {
		if s.dummyPwh != "" {
			_, _ = VerifyPassword(password, s.dummyPwh)
		}
		return Account{}, badCredentials()
	}

	ok, err := VerifyPassword(password, acc.PasswordHash)
	if err != nil || !ok {
		return Account{}, badCredentials()
	}
	return acc, nil
}

// GetByID loads an account by its ULID.
func (s *MemoryStore) GetByID(ctx context.Context, id string) (Account, error) {
	const op = "account.GetByID"

	if err := ctx.Err(); err != nil {
		return Account{}, err
	}

	s.mu.Lock()
	acc, found := s.byID[id]
	s.mu.Unlock()

	if !found {
		return Account{}, NotFoundError{Op: op, Resource: "account"}
	}
	return acc, nil
}
