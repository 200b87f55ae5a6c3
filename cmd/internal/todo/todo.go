package todo

import (
	"context"
	"strings"
	"time"
)

// Task is one item on an account's list.
type Task struct {
	ID          string
	OwnerID     string
	Description string
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Filter narrows a listing. The zero value matches every task of the owner.
type Filter struct {
	// Completed, when set, keeps only tasks with that completion state.
	Completed *bool

	// Query, when non-empty, keeps only tasks whose description contains
	// it as a case-sensitive substring.
	Query string
}

// Patch is a partial update. Nil fields are left unchanged.
type Patch struct {
	Description *string
	Completed   *bool
}

// CreateInput carries the fields for a new task.
type CreateInput struct {
	OwnerID     string
	Description string
	Completed   bool

	// Now pins timestamps for deterministic tests. Zero means time.Now().
	Now time.Time
}

// Store persists tasks. Every operation is scoped to one owner.
type Store interface {
	Create(ctx context.Context, in CreateInput) (Task, error)
	List(ctx context.Context, ownerID string, f Filter) ([]Task, error)
	Get(ctx context.Context, ownerID, id string) (Task, error)
	Update(ctx context.Context, ownerID, id string, p Patch) (Task, error)

	// Delete removes the task and returns the number of rows removed
	// (0 when nothing matched).
	Delete(ctx context.Context, ownerID, id string) (int64, error)
}

func validateCreate(in CreateInput) error {
	if strings.TrimSpace(in.OwnerID) == "" {
		return ErrInvalidInput
	}
	if strings.TrimSpace(in.Description) == "" {
		return ErrInvalidInput
	}
	return nil
}

func validatePatch(p Patch) error {
	if p.Description != nil && strings.TrimSpace(*p.Description) == "" {
		return ErrInvalidInput
	}
	return nil
}

// matches reports whether t passes the filter. Shared by the memory store
// and kept identical in meaning to the SQL WHERE clause.
func (f Filter) matches(t Task) bool {
	if f.Completed != nil && t.Completed != *f.Completed {
		return false
	}
	if f.Query != "" && !strings.Contains(t.Description, f.Query) {
		return false
	}
	return true
}
