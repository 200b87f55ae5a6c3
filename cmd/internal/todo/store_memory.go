package todo

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"tick/cmd/account/ids"
)

// MemoryStore is an in-process Store used in tests and DB-less runs.
// Semantics match the Postgres store, including owner scoping.
type MemoryStore struct {
	mu   sync.RWMutex
	byID map[string]Task
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byID: make(map[string]Task)}
}

// Create inserts a new task for the owner.
func (s *MemoryStore) Create(ctx context.Context, in CreateInput) (Task, error) {
	if s == nil {
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

	t := Task{
		ID:          id,
		OwnerID:     in.OwnerID,
		Description: in.Description,
		Completed:   in.Completed,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.mu.Lock()
	s.byID[id] = t
	s.mu.Unlock()
	return t, nil
}

// List returns the owner's tasks in creation order, optionally filtered.
func (s *MemoryStore) List(ctx context.Context, ownerID string, f Filter) ([]Task, error) {
	if s == nil {
		return nil, ErrInvalidInput
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(ownerID) == "" {
		return nil, ErrInvalidInput
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Task, 0, 16)
	for _, t := range s.byID {
		if t.OwnerID != ownerID {
			continue
		}
		if !f.matches(t) {
			continue
		}
		out = append(out, t)
	}
	// ULIDs sort in creation order.
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Get loads one of the owner's tasks.
func (s *MemoryStore) Get(ctx context.Context, ownerID, id string) (Task, error) {
	if s == nil {
		return Task{}, ErrInvalidInput
	}
	if err := ctx.Err(); err != nil {
		return Task{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.byID[id]
	if !ok || t.OwnerID != ownerID {
		return Task{}, ErrNotFound
	}
	return t, nil
}

// Update applies a partial update to one of the owner's tasks.
func (s *MemoryStore) Update(ctx context.Context, ownerID, id string, p Patch) (Task, error) {
	if s == nil {
		return Task{}, ErrInvalidInput
	}
	if err := ctx.Err(); err != nil {
		return Task{}, err
	}
	if err := validatePatch(p); err != nil {
		return Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.byID[id]
	if !ok || t.OwnerID != ownerID {
		return Task{}, ErrNotFound
	}
	if p.Description == nil && p.Completed == nil {
		return t, nil
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	t.UpdatedAt = time.Now().UTC()
	s.byID[id] = t
	return t, nil
}

// Delete removes one of the owner's tasks.
func (s *MemoryStore) Delete(ctx context.Context, ownerID, id string) (int64, error) {
	if s == nil {
		return 0, ErrInvalidInput
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.byID[id]
	if !ok || t.OwnerID != ownerID {
		return 0, nil
	}
	delete(s.byID, t.ID)
	return 1, nil
}
