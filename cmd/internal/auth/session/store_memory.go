package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"tick/cmd/account/ids"
	sectoken "tick/cmd/security/token"
)

// MemoryStore is an in-process Store used in tests and DB-less runs.
// It applies the same digest discipline as the Postgres store.
type MemoryStore struct {
	mu       sync.RWMutex
	byDigest map[string]Record
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byDigest: make(map[string]Record)}
}

// Remember records a freshly issued token as active.
func (s *MemoryStore) Remember(ctx context.Context, now time.Time, token string) (Record, error) {
	if s == nil {
		return Record{}, ErrInvalidInput
	}
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	if strings.TrimSpace(token) == "" {
		return Record{}, ErrInvalidInput
	}

	if now.IsZero() {
		now = time.Now().UTC()
	}

	id, err := ids.NewULID(now)
	if err != nil {
		return Record{}, err
	}
	digest := sectoken.HashSessionTokenHex(token)

	rec := Record{ID: id, TokenHash: digest, CreatedAt: now}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.byDigest[digest]; ok {
		return existing, nil
	}
	s.byDigest[digest] = rec
	return rec, nil
}

// IsActive reports whether the token is on the active list.
func (s *MemoryStore) IsActive(ctx context.Context, token string) (bool, error) {
	if s == nil {
		return false, ErrInvalidInput
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if strings.TrimSpace(token) == "" {
		return false, nil
	}

	digest := sectoken.HashSessionTokenHex(token)

	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byDigest[digest]
	return ok, nil
}

// Revoke removes the token from the active list.
func (s *MemoryStore) Revoke(ctx context.Context, token string) (int64, error) {
	if s == nil {
		return 0, ErrInvalidInput
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if strings.TrimSpace(token) == "" {
		return 0, nil
	}

	digest := sectoken.HashSessionTokenHex(token)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byDigest[digest]; !ok {
		return 0, nil
	}
	delete(s.byDigest, digest)
	return 1, nil
}
