package account

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements credential persistence over PostgreSQL.
//
// Design notes:
// - The pgx pool is owned by the caller; this store must NOT close it.
// - Schema/table identifiers are safely quoted to avoid SQL injection via identifiers.
// - Errors are mapped to account sentinel kinds where appropriate.
type PostgresStore struct {
	pool   *pgxpool.Pool
	schema string

	dummyHash string
}

// PostgresOption configures the store.
type PostgresOption func(*PostgresStore) error

var pgIdentRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// WithSchema sets the Postgres schema used by the account store (default "tick").
// The schema name is validated to be a legal PostgreSQL identifier.
func WithSchema(schema string) PostgresOption {
	return func(s *PostgresStore) error {
		schema = strings.TrimSpace(schema)
		if schema == "" {
			return fmt.Errorf("account: empty schema")
		}
		if !pgIdentRe.MatchString(schema) {
			return fmt.Errorf("account: invalid schema identifier")
		}
		s.schema = schema
		return nil
	}
}

// NewPostgresStore constructs a PostgresStore with secure defaults.
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
		return nil, fmt.Errorf("account: nil pool")
	}
	st.dummyHash = dummyVerifyHash()
	return st, nil
}

// Create creates a new account with a freshly salted password hash.
func (s *PostgresStore) Create(ctx context.Context, in CreateInput) (Account, error) {
	const op = "account.Create"

	if s == nil || s.pool == nil {
		return Account{}, OpError{Op: op, Kind: ErrInvalidInput, Msg: "nil store"}
	}
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

	accounts := pgIdent(s.schema, "accounts")

	_, err = s.pool.Exec(ctx,
		`INSERT INTO `+accounts+` (
		     id, email, email_norm, password_salt, password_hash, created_at, updated_at
		   ) VALUES ($1, $2, $3, $4, $5, $6, $6)`,
		id, email, emailNorm, salt, hash, now,
	)
	if err != nil {
		if pgIsUniqueViolation(err) {
			return Account{}, ConflictError{Op: op, Field: "email"}
		}
		return Account{}, err
	}

	return Account{
		ID:           id,
		Email:        email,
		EmailNorm:    emailNorm,
		PasswordSalt: salt,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// VerifyCredentials resolves an email/password pair to an account.
// Unknown email and password mismatch are indistinguishable to the caller.
func (s *PostgresStore) VerifyCredentials(ctx context.Context, email, password string) (Account, error) {
	const op = "account.VerifyCredentials"

	if s == nil || s.pool == nil {
		return Account{}, OpError{Op: op, Kind: ErrInvalidInput, Msg: "nil store"}
	}
	if err := ctx.Err(); err != nil {
		return Account{}, err
	}

	emailNorm := NormalizeEmail(email)
	if emailNorm == "" || password == "" {
		return Account{}, badCredentials()
	}

	accounts := pgIdent(s.schema, "accounts")

	var out Account
	err := s.pool.QueryRow(ctx,
		`SELECT id, email, email_norm, password_salt, password_hash, created_at, updated_at
		   FROM `+accounts+`
		  WHERE email_norm = $1`,
		emailNorm,
	).Scan(&out.ID, &out.Email, &out.EmailNorm, &out.PasswordSalt, &out.PasswordHash, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Timing resistance: run a dummy compare on the missing path.
			if s.dummyHash != "" {
				_, _ = VerifyPassword(password, s.dummyHash)
			}
			return Account{}, badCredentials()
		}
		return Account{}, err
	}

	ok, err := VerifyPassword(password, out.PasswordHash)
	if err != nil || !ok {
		return Account{}, badCredentials()
	}

	return out, nil
}

// GetByID loads an account by its ULID.
func (s *PostgresStore) GetByID(ctx context.Context, id string) (Account, error) {
	const op = "account.GetByID"

	if s == nil || s.pool == nil {
		return Account{}, OpError{Op: op, Kind: ErrInvalidInput, Msg: "nil store"}
	}
	if err := ctx.Err(); err != nil {
		return Account{}, err
	}
	if strings.TrimSpace(id) == "" {
		return Account{}, NotFoundError{Op: op, Resource: "account"}
	}

	accounts := pgIdent(s.schema, "accounts")

	var out Account
	err := s.pool.QueryRow(ctx,
		`SELECT id, email, email_norm, password_salt, password_hash, created_at, updated_at
		   FROM `+accounts+`
		  WHERE id = $1`,
		id,
	).Scan(&out.ID, &out.Email, &out.EmailNorm, &out.PasswordSalt, &out.PasswordHash, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, NotFoundError{Op: op, Resource: "account"}
		}
		return Account{}, err
	}

	return out, nil
}

// ---- helpers ----

// pgIdent safely quotes a schema-qualified identifier: "schema"."name".
func pgIdent(schema, name string) string {
	return pgx.Identifier{schema, name}.Sanitize()
}

func pgIsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "23505" // unique_violation
}
