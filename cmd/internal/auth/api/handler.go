package api

import (
	"log/slog"
	"net/http"
	"time"

	"tick/cmd/account"
	"tick/cmd/internal/auth/session"
	"tick/cmd/internal/auth/token"
)

// AuthHeader is the header that carries the bearer token, on both the
// login response and every authenticated request.
const AuthHeader = "Auth"

// Handler serves the /users endpoints and owns the request guard.
type Handler struct {
	log      *slog.Logger
	accounts account.Store
	sessions session.Store
	codec    *token.Codec
	maxBody  int64
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

// NewHandler wires the auth endpoints.
func NewHandler(log *slog.Logger, accounts account.Store, sessions session.Store, codec *token.Codec, opts ...HandlerOption) *Handler {
	h := &Handler{
		log:      log,
		accounts: accounts,
		sessions: sessions,
		codec:    codec,
		maxBody:  defaultMaxBodyBytes,
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

// Register mounts the auth routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /users", h.handleSignup)
	mux.HandleFunc("POST /users/login", h.handleLogin)
	mux.Handle("DELETE /users/login", h.RequireAuth(http.HandlerFunc(h.handleLogout)))
}

func (h *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := DecodeJSON(w, r, h.maxBody, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_body", "request body must be a JSON object")
		return
	}

	acct, err := h.accounts.Create(r.Context(), account.CreateInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case account.IsConflict(err):
			WriteError(w, http.StatusBadRequest, "email_taken", "an account with this email already exists")
		case account.IsInvalidInput(err):
			WriteError(w, http.StatusBadRequest, "invalid_input", err.Error())
		default:
			h.log.Error("account create failed", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	WriteJSON(w, http.StatusOK, toAccountResponse(acct))
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := DecodeJSON(w, r, h.maxBody, &req); err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	acct, err := h.accounts.VerifyCredentials(r.Context(), req.Email, req.Password)
	if err != nil {
		if account.IsBadCredentials(err) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		h.log.Error("credential check failed", "err", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	tok, err := h.codec.Issue(acct.ID, token.PurposeAuthentication)
	if err != nil {
		h.log.Error("token issue failed", "err", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if _, err := h.sessions.Remember(r.Context(), time.Now().UTC(), tok); err != nil {
		h.log.Error("session remember failed", "err", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set(AuthHeader, tok)
	WriteJSON(w, http.StatusOK, toAccountResponse(acct))
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	tok, ok := TokenFrom(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	if _, err := h.sessions.Revoke(r.Context(), tok); err != nil {
		h.log.Error("session revoke failed", "err", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
