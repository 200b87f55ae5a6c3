package api

import (
	"context"
	"net/http"
	"strings"

	"tick/cmd/account"
	"tick/cmd/internal/auth/token"
)

type ctxKey int

const (
	ctxKeyAccount ctxKey = iota
	ctxKeyToken
)

// ContextWithAccount attaches an authenticated account and its raw token.
// Exposed for handler tests that bypass the guard.
func ContextWithAccount(ctx context.Context, acct account.Account, rawToken string) context.Context {
	ctx = context.WithValue(ctx, ctxKeyAccount, acct)
	ctx = context.WithValue(ctx, ctxKeyToken, rawToken)
	return ctx
}

// AccountFrom returns the authenticated account placed by RequireAuth.
func AccountFrom(ctx context.Context) (account.Account, bool) {
	acct, ok := ctx.Value(ctxKeyAccount).(account.Account)
	return acct, ok
}

// TokenFrom returns the raw bearer token placed by RequireAuth.
func TokenFrom(ctx context.Context) (string, bool) {
	tok, ok := ctx.Value(ctxKeyToken).(string)
	return tok, ok
}

// RequireAuth admits a request only when the Auth header carries a live
// session token that decodes to an existing account.
//
// Every rejection is 401 with an empty body. Missing header, revoked
// session, tampered token, wrong purpose and deleted account all look the
// same from outside.
func (h *Handler) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimSpace(r.Header.Get(AuthHeader))
		if raw == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		// Revocation check first: a logged-out token must fail even
		// though its signature still verifies.
		active, err := h.sessions.IsActive(r.Context(), raw)
		if err != nil {
			h.log.Error("session lookup failed", "err", err)
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if !active {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		claims, err := h.codec.Decode(raw)
		if err != nil || claims.Purpose != token.PurposeAuthentication {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		acct, err := h.accounts.GetByID(r.Context(), claims.AccountID)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithAccount(r.Context(), acct, raw)))
	})
}
