package todo

import (
	"context"
	"testing"
	"time"
)

func mustCreate(t *testing.T, st Store, owner, desc string, done bool) Task {
	t.Helper()
	task, err := st.Create(context.Background(), CreateInput{
		OwnerID:     owner,
		Description: desc,
		Completed:   done,
	})
	if err != nil {
		t.Fatalf("Create(%q,%q): %v", owner, desc, err)
	}
	return task
}

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

func TestMemoryStore_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	created := mustCreate(t, st, "owner-a", "buy milk", false)
	if created.ID == "" || created.OwnerID != "owner-a" || created.Completed {
		t.Fatalf("unexpected task: %+v", created)
	}

	got, err := st.Get(ctx, "owner-a", created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != created {
		t.Fatalf("Get=%+v want=%+v", got, created)
	}
}

func TestMemoryStore_CreateValidation(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	if _, err := st.Create(ctx, CreateInput{OwnerID: "owner-a"}); !IsInvalidInput(err) {
		t.Fatalf("empty description: got %v, want invalid input", err)
	}
	if _, err := st.Create(ctx, CreateInput{Description: "x"}); !IsInvalidInput(err) {
		t.Fatalf("empty owner: got %v, want invalid input", err)
	}
}

func TestMemoryStore_OwnerScoping(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	a := mustCreate(t, st, "owner-a", "a task", false)
	mustCreate(t, st, "owner-b", "b task", false)

	// Reads never cross owners, even with a valid foreign ID.
	if _, err := st.Get(ctx, "owner-b", a.ID); !IsNotFound(err) {
		t.Fatalf("foreign Get: got %v, want not found", err)
	}
	if _, err := st.Update(ctx, "owner-b", a.ID, Patch{Completed: boolPtr(true)}); !IsNotFound(err) {
		t.Fatalf("foreign Update: got %v, want not found", err)
	}
	n, err := st.Delete(ctx, "owner-b", a.ID)
	if err != nil || n != 0 {
		t.Fatalf("foreign Delete=(%d,%v), want (0,nil)", n, err)
	}

	// And the row is untouched.
	got, err := st.Get(ctx, "owner-a", a.ID)
	if err != nil || got.Completed {
		t.Fatalf("task damaged by foreign access: %+v err=%v", got, err)
	}

	// Listing returns only the owner's tasks.
	tasks, err := st.List(ctx, "owner-a", Filter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != a.ID {
		t.Fatalf("List leaked foreign tasks: %+v", tasks)
	}
}

func TestMemoryStore_ListFilters(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	mustCreate(t, st, "owner-a", "buy milk", false)
	mustCreate(t, st, "owner-a", "buy bread", true)
	mustCreate(t, st, "owner-a", "walk dog", true)

	tasks, err := st.List(ctx, "owner-a", Filter{Completed: boolPtr(true)})
	if err != nil {
		t.Fatalf("List completed: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("completed=true matched %d tasks, want 2", len(tasks))
	}

	tasks, err = st.List(ctx, "owner-a", Filter{Query: "buy"})
	if err != nil {
		t.Fatalf("List query: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("q=buy matched %d tasks, want 2", len(tasks))
	}

	// Substring match is case sensitive.
	tasks, err = st.List(ctx, "owner-a", Filter{Query: "BUY"})
	if err != nil {
		t.Fatalf("List query: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("q=BUY matched %d tasks, want 0", len(tasks))
	}

	tasks, err = st.List(ctx, "owner-a", Filter{Completed: boolPtr(true), Query: "buy"})
	if err != nil {
		t.Fatalf("List combined: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Description != "buy bread" {
		t.Fatalf("combined filter: %+v", tasks)
	}
}

func TestMemoryStore_ListOrder(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i, desc := range []string{"first", "second", "third"} {
		if _, err := st.Create(ctx, CreateInput{
			OwnerID:     "owner-a",
			Description: desc,
			Now:         base.Add(time.Duration(i) * time.Second),
		}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	tasks, err := st.List(ctx, "owner-a", Filter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("List returned %d tasks, want 3", len(tasks))
	}
	for i, want := range []string{"first", "second", "third"} {
		if tasks[i].Description != want {
			t.Fatalf("position %d: got %q, want %q", i, tasks[i].Description, want)
		}
	}
}

func TestMemoryStore_PartialUpdate(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	created := mustCreate(t, st, "owner-a", "buy milk", false)

	// Only completed changes; description stays.
	got, err := st.Update(ctx, "owner-a", created.ID, Patch{Completed: boolPtr(true)})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Description != "buy milk" || !got.Completed {
		t.Fatalf("partial update touched absent field: %+v", got)
	}

	// Only description changes; completed stays.
	got, err = st.Update(ctx, "owner-a", created.ID, Patch{Description: strPtr("buy oat milk")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Description != "buy oat milk" || !got.Completed {
		t.Fatalf("partial update reset absent field: %+v", got)
	}

	// Empty patch is a read.
	same, err := st.Update(ctx, "owner-a", created.ID, Patch{})
	if err != nil {
		t.Fatalf("Update (empty patch): %v", err)
	}
	if same != got {
		t.Fatalf("empty patch changed the task: %+v vs %+v", same, got)
	}

	// Blank description is rejected.
	if _, err := st.Update(ctx, "owner-a", created.ID, Patch{Description: strPtr("  ")}); !IsInvalidInput(err) {
		t.Fatalf("blank description: got %v, want invalid input", err)
	}
}

func TestMemoryStore_DeleteIdempotent(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	created := mustCreate(t, st, "owner-a", "buy milk", false)

	n, err := st.Delete(ctx, "owner-a", created.ID)
	if err != nil || n != 1 {
		t.Fatalf("Delete=(%d,%v), want (1,nil)", n, err)
	}
	n, err = st.Delete(ctx, "owner-a", created.ID)
	if err != nil || n != 0 {
		t.Fatalf("repeat Delete=(%d,%v), want (0,nil)", n, err)
	}
	if _, err := st.Get(ctx, "owner-a", created.ID); !IsNotFound(err) {
		t.Fatalf("deleted task still readable: %v", err)
	}
}
