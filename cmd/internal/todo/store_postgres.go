package todo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tick/cmd/account/ids"
)

// PostgresStore persists tasks in PostgreSQL.
//
// Design notes:
// - The pgx pool is owned by the caller; this store must NOT close it.
// - Every statement carries an owner_id predicate. Scoping lives in SQL,
//   not in handler code.
type PostgresStore struct {
	pool   *pgxpool.Pool
	schema string
}

// PostgresOption configures the store.
type PostgresOption func(*PostgresStore) error

var pgIdentRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// WithSchema sets the Postgres schema used by the task store (default "tick").
func WithSchema(schema string) PostgresOption {
	return func(s *PostgresStore) error {
		schema = strings.TrimSpace(schema)
		if schema == "" {
			return fmt.Errorf("todo: empty schema")
		}
		if !pgIdentRe.MatchString(schema) {
			return fmt.Errorf("todo: invalid schema identifier")
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
		return nil, fmt.Errorf("todo: nil pool")
	}
	return st, nil
}

const taskColumns = `id, owner_id, description, completed, created_at, updated_at`

// Create inserts a new task for the owner.
func (s *PostgresStore) Create(ctx context.Context, in CreateInput) (Task, error) {
	if s == nil || s.pool == nil {
		return Task{}, ErrInvalidInput
	}
	if err := ctx.Err(); err != nil {
		return Task{}, err
	}
	if err := validateCreate(in); err != nil {
		return Task{}, err
	}

	now := in.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	id, err := ids.NewULID(now)
	if err != nil {
		return Task{}, err
	}

	tasks := pgIdent(s.schema, "tasks")

	_, err = s.pool.Exec(ctx,
		`INSERT INTO `+tasks+` (`+taskColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $5)`,
		id, in.OwnerID, in.Description, in.Completed, now,
	)
	if err != nil {
		return Task{}, err
	}

	return Task{
		ID:          id,
		OwnerID:     in.OwnerID,
		Description: in.Description,
		Completed:   in.Completed,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// List returns the owner's tasks in creation order, optionally filtered.
func (s *PostgresStore) List(ctx context.Context, ownerID string, f Filter) ([]Task, error) {
	if s == nil || s.pool == nil {
		return nil, ErrInvalidInput
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(ownerID) == "" {
		return nil, ErrInvalidInput
	}

	tasks := pgIdent(s.schema, "tasks")

	where := []string{"owner_id = $1"}
	args := []any{ownerID}
	if f.Completed != nil {
		args = append(args, *f.Completed)
		where = append(where, "completed = $"+strconv.Itoa(len(args)))
	}
	if f.Query != "" {
		args = append(args, "%"+escapeLike(f.Query)+"%")
		where = append(where, `description LIKE $`+strconv.Itoa(len(args))+` ESCAPE '\'`)
	}

	rows, err := s.pool.Query(ctx,
		`SELECT `+taskColumns+`
		   FROM `+tasks+`
		  WHERE `+strings.Join(where, " AND ")+`
		  ORDER BY id`,
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Task, 0, 16)
	for rows.Next() {
		var t Task
		if err := rows.Scan(&t.ID, &t.OwnerID, &t.Description, &t.Completed, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Get loads one of the owner's tasks.
func (s *PostgresStore) Get(ctx context.Context, ownerID, id string) (Task, error) {
	if s == nil || s.pool == nil {
		return Task{}, ErrInvalidInput
	}
	if err := ctx.Err(); err != nil {
		return Task{}, err
	}
	if strings.TrimSpace(ownerID) == "" || strings.TrimSpace(id) == "" {
		return Task{}, ErrNotFound
	}

	tasks := pgIdent(s.schema, "tasks")

	var t Task
	err := s.pool.QueryRow(ctx,
		`SELECT `+taskColumns+`
		   FROM `+tasks+`
		  WHERE owner_id = $1 AND id = $2`,
		ownerID, id,
	).Scan(&t.ID, &t.OwnerID, &t.Description, &t.Completed, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Task{}, ErrNotFound
		}
		return Task{}, err
	}
	return t, nil
}

// Update applies a partial update to one of the owner's tasks.
func (s *PostgresStore) Update(ctx context.Context, ownerID, id string, p Patch) (Task, error) {
	if s == nil || s.pool == nil {
		return Task{}, ErrInvalidInput
	}
	if err := ctx.Err(); err != nil {
		return Task{}, err
	}
	if strings.TrimSpace(ownerID) == "" || strings.TrimSpace(id) == "" {
		return Task{}, ErrNotFound
	}
	if err := validatePatch(p); err != nil {
		return Task{}, err
	}

	// An empty patch is a read.
	if p.Description == nil && p.Completed == nil {
		return s.Get(ctx, ownerID, id)
	}

	now := time.Now().UTC()

	set := []string{}
	args := []any{ownerID, id}
	if p.Description != nil {
		args = append(args, *p.Description)
		set = append(set, "description = $"+strconv.Itoa(len(args)))
	}
	if p.Completed != nil {
		args = append(args, *p.Completed)
		set = append(set, "completed = $"+strconv.Itoa(len(args)))
	}
	args = append(args, now)
	set = append(set, "updated_at = $"+strconv.Itoa(len(args)))

	tasks := pgIdent(s.schema, "tasks")

	var t Task
	err := s.pool.QueryRow(ctx,
		`UPDATE `+tasks+`
		    SET `+strings.Join(set, ", ")+`
		  WHERE owner_id = $1 AND id = $2
		  RETURNING `+taskColumns,
		args...,
	).Scan(&t.ID, &t.OwnerID, &t.Description, &t.Completed, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Task{}, ErrNotFound
		}
		return Task{}, err
	}
	return t, nil
}

// Delete removes one of the owner's tasks.
func (s *PostgresStore) Delete(ctx context.Context, ownerID, id string) (int64, error) {
	if s == nil || s.pool == nil {
		return 0, ErrInvalidInput
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if strings.TrimSpace(ownerID) == "" || strings.TrimSpace(id) == "" {
		return 0, nil
	}

	tasks := pgIdent(s.schema, "tasks")

	tag, err := s.pool.Exec(ctx,
		`DELETE FROM `+tasks+` WHERE owner_id = $1 AND id = $2`,
		ownerID, id,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// ---- helpers ----

// pgIdent safely quotes a schema-qualified identifier: "schema"."name".
func pgIdent(schema, name string) string {
	return pgx.Identifier{schema, name}.Sanitize()
}

// escapeLike neutralizes LIKE metacharacters so user queries match literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
