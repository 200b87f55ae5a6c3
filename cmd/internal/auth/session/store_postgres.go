package session

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tick/cmd/account/ids"
	sectoken "tick/cmd/security/token"
)

// PostgresStore keeps the active-session list in PostgreSQL.
//
// Design notes:
// - The pgx pool is owned by the caller; this store must NOT close it.
// - Only token digests touch the wire and the table.
type PostgresStore struct {
	pool   *pgxpool.Pool
	schema string
}

// PostgresOption configures the store.
type PostgresOption func(*PostgresStore) error

var pgIdentRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// WithSchema sets the Postgres schema used by the session store (default "tick").
func WithSchema(schema string) PostgresOption {
	return func(s *PostgresStore) error {
		schema = strings.TrimSpace(schema)
		if schema == "" {
			return fmt.Errorf("session: empty schema")
		}
		if !pgIdentRe.MatchString(schema) {
			return fmt.Errorf("session: invalid schema identifier")
		}
		s.schema = schema
		return nil
	}
}

// NewPostgresStore constructs a PostgresStore.
func NewPostgresStore(pool *pgxpool.Pool, opts ...PostgresOption) (*PostgresStore, error) {
	st := &PostgresStore{
		pool:   pool,
		schema: "tick",
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(st); err != nil {
			return nil, err
		}
	}
	if st.pool == nil {
		return nil, fmt.Errorf("session: nil pool")
	}
	return st, nil
}

// Remember records a freshly issued token as active.
func (s *PostgresStore) Remember(ctx context.Context, now time.Time, token string) (Record, error) {
	if s == nil || s.pool == nil {
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

	table := pgIdent(s.schema, "session_tokens")

	_, err = s.pool.Exec(ctx,
		`INSERT INTO `+table+` (id, token_hash, created_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (token_hash) DO NOTHING`,
		id, digest, now,
	)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrStore, err)
	}

	return Record{ID: id, TokenHash: digest, CreatedAt: now}, nil
}

// IsActive reports whether the token is on the active list.
func (s *PostgresStore) IsActive(ctx context.Context, token string) (bool, error) {
	if s == nil || s.pool == nil {
		return false, ErrInvalidInput
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if strings.TrimSpace(token) == "" {
		return false, nil
	}

	digest := sectoken.HashSessionTokenHex(token)
	table := pgIdent(s.schema, "session_tokens")

	var one int
	err := s.pool.QueryRow(ctx,
		`SELECT 1 FROM `+table+` WHERE token_hash = $1`,
		digest,
	).Scan(&one)
	if err != nil {
		if err == pgx.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return true, nil
}

// Revoke removes the token from the active list.
func (s *PostgresStore) Revoke(ctx context.Context, token string) (int64, error) {
	if s == nil || s.pool == nil {
		return 0, ErrInvalidInput
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if strings.TrimSpace(token) == "" {
		return 0, nil
	}

	digest := sectoken.HashSessionTokenHex(token)
	table := pgIdent(s.schema, "session_tokens")

	tag, err := s.pool.Exec(ctx,
		`DELETE FROM `+table+` WHERE token_hash = $1`,
		digest,
	)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return tag.RowsAffected(), nil
}

// pgIdent safely quotes a schema-qualified identifier: "schema"."name".
func pgIdent(schema, name string) string {
	return pgx.Identifier{schema, name}.Sanitize()
}
