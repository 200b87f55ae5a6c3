package todo

import (
	"log/slog"
	"net/http"
	"time"

	"tick/cmd/internal/auth/api"
)

// taskResponse is the wire shape of a task.
type taskResponse struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toTaskResponse(t Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		OwnerID:     t.OwnerID,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// Request payloads are allow-lists: only the named fields are read.

type createRequest struct {
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

type updateRequest struct {
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

// Handler serves the /todos endpoints. Every route must be mounted behind
// the auth guard; handlers trust the account the guard put on the context.
type Handler struct {
	log     *slog.Logger
	store   Store
	maxBody int64
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithMaxBodyBytes caps the request body size accepted by the decoders.
func WithMaxBodyBytes(n int64) HandlerOption {
	return func(h *Handler) {
		if n > 0 {
			h.maxBody = n
		}
	}
}

// NewHandler wires the task endpoints.
func NewHandler(log *slog.Logger, store Store, opts ...HandlerOption) *Handler {
	h := &Handler{
		log:     log,
		store:   store,
		maxBody: 1 << 20,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	if h.log == nil {
		h.log = slog.Default()
	}
	return h
}

// Register mounts the task routes on mux, wrapped by guard.
func (h *Handler) Register(mux *http.ServeMux, guard func(http.Handler) http.Handler) {
	mux.Handle("GET /todos", guard(http.HandlerFunc(h.handleList)))
	mux.Handle("POST /todos", guard(http.HandlerFunc(h.handleCreate)))
	mux.Handle("GET /todos/{id}", guard(http.HandlerFunc(h.handleGet)))
	mux.Handle("PUT /todos/{id}", guard(http.HandlerFunc(h.handleUpdate)))
	mux.Handle("DELETE /todos/{id}", guard(http.HandlerFunc(h.handleDelete)))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	acct, ok := api.AccountFrom(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var f Filter
	q := r.URL.Query()
	switch q.Get("completed") {
	case "true":
		v := true
		f.Completed = &v
	case "false":
		v := false
		f.Completed = &v
	}
	f.Query = q.Get("q")

	tasks, err := h.store.List(r.Context(), acct.ID, f)
	if err != nil {
		h.log.Error("task list failed", "err", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	out := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskResponse(t))
	}
	api.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	acct, ok := api.AccountFrom(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var req createRequest
	if err := api.DecodeJSON(w, r, h.maxBody, &req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "invalid_body", "request body must be a JSON object")
		return
	}

	t, err := h.store.Create(r.Context(), CreateInput{
		OwnerID:     acct.ID,
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		if IsInvalidInput(err) {
			api.WriteError(w, http.StatusBadRequest, "invalid_input", "description is required")
			return
		}
		h.log.Error("task create failed", "err", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	api.WriteJSON(w, http.StatusOK, toTaskResponse(t))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	acct, ok := api.AccountFrom(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	t, err := h.store.Get(r.Context(), acct.ID, r.PathValue("id"))
	if err != nil {
		if IsNotFound(err) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		h.log.Error("task get failed", "err", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	api.WriteJSON(w, http.StatusOK, toTaskResponse(t))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	acct, ok := api.AccountFrom(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var req updateRequest
	if err := api.DecodeJSON(w, r, h.maxBody, &req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "invalid_body", "request body must be a JSON object")
		return
	}

	t, err := h.store.Update(r.Context(), acct.ID, r.PathValue("id"), Patch{
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		switch {
		case IsNotFound(err):
			w.WriteHeader(http.StatusNotFound)
		case IsInvalidInput(err):
			api.WriteError(w, http.StatusBadRequest, "invalid_input", "description must not be empty")
		default:
			h.log.Error("task update failed", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	api.WriteJSON(w, http.StatusOK, toTaskResponse(t))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	acct, ok := api.AccountFrom(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	n, err := h.store.Delete(r.Context(), acct.ID, r.PathValue("id"))
	if err != nil {
		h.log.Error("task delete failed", "err", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if n == 0 {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
