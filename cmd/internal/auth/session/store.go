package session

import (
	"context"
	"time"
)

// Record is one remembered session.
//
// TokenHash is the hex digest of the issued bearer token. The raw token is
// never stored.
type Record struct {
	ID        string
	TokenHash string
	CreatedAt time.Time
}

// Store is the active-session list.
//
// Security contract:
//   - Remember persists a digest of the token, never the token itself.
//   - IsActive answers by digest lookup only; it does not decode the token.
//   - Revoke is idempotent and reports how many records it removed.
type Store interface {
	// Remember records a freshly issued token as active.
	Remember(ctx context.Context, now time.Time, token string) (Record, error)

	// IsActive reports whether the token is on the active list.
	IsActive(ctx context.Context, token string) (bool, error)

	// Revoke removes the token from the active list and returns the
	// number of records removed (0 when it was already gone).
	Revoke(ctx context.Context, token string) (int64, error)
}
