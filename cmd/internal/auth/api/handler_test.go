package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tick/cmd/account"
	"tick/cmd/internal/auth/session"
	"tick/cmd/internal/auth/token"
)

func testEnv(t *testing.T) (*Handler, *httptest.Server) {
	t.Helper()
	t.Setenv("TICK_BCRYPT_COST", "4")

	codec, err := token.NewCodec(token.Config{
		EncKey:  []byte("0123456789abcdef0123456789abcdef"),
		SignKey: []byte(strings.Repeat("s", 32)),
	})
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}

	h := NewHandler(nil, account.NewMemoryStore(), session.NewMemoryStore(), codec)
	mux := http.NewServeMux()
	h.Register(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return h, srv
}

func post(t *testing.T, url, body string, header http.Header) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func TestSignup_PublicJSONOnly(t *testing.T) {
	_, srv := testEnv(t)

	resp := post(t, srv.URL+"/users", `{"email":"a@x.com","password":"password1"}`, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("signup status=%d", resp.StatusCode)
	}

	var raw map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	resp.Body.Close()

	for _, key := range []string{"id", "email", "createdAt", "updatedAt"} {
		if _, ok := raw[key]; !ok {
			t.Fatalf("public JSON missing %q: %v", key, raw)
		}
	}
	for key := range raw {
		switch key {
		case "id", "email", "createdAt", "updatedAt":
		default:
			t.Fatalf("public JSON leaked field %q", key)
		}
	}
	if raw["email"] != "a@x.com" {
		t.Fatalf("email=%v", raw["email"])
	}
}

func TestSignup_Validation(t *testing.T) {
	_, srv := testEnv(t)

	cases := []struct {
		name string
		body string
	}{
		{"malformed body", `not json`},
		{"missing email", `{"password":"password1"}`},
		{"bad email", `{"email":"nope","password":"password1"}`},
		{"short password", `{"email":"a@x.com","password":"short"}`},
	}
	for _, tc := range cases {
		resp := post(t, srv.URL+"/users", tc.body, nil)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: status=%d, want 400", tc.name, resp.StatusCode)
		}
		var body errorBody
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("%s: decode error body: %v", tc.name, err)
		}
		resp.Body.Close()
		if body.Error.Code == "" {
			t.Fatalf("%s: error body must carry a code", tc.name)
		}
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	_, srv := testEnv(t)

	resp := post(t, srv.URL+"/users", `{"email":"a@x.com","password":"password1"}`, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("first signup status=%d", resp.StatusCode)
	}
	resp.Body.Close()

	// Same address, different casing.
	resp = post(t, srv.URL+"/users", `{"email":"A@X.com","password":"password2"}`, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("duplicate signup status=%d, want 400", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestLogin_TokenInAuthHeader(t *testing.T) {
	_, srv := testEnv(t)

	resp := post(t, srv.URL+"/users", `{"email":"a@x.com","password":"password1"}`, nil)
	resp.Body.Close()

	resp = post(t, srv.URL+"/users/login", `{"email":"a@x.com","password":"password1"}`, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status=%d", resp.StatusCode)
	}
	tok := resp.Header.Get(AuthHeader)
	if tok == "" {
		t.Fatalf("login response missing %s header", AuthHeader)
	}

	var raw map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	resp.Body.Close()
	if _, ok := raw["id"]; !ok {
		t.Fatalf("login body missing identity JSON: %v", raw)
	}
}

func TestLogin_BadCredentialsAreUniform(t *testing.T) {
	_, srv := testEnv(t)

	resp := post(t, srv.URL+"/users", `{"email":"a@x.com","password":"password1"}`, nil)
	resp.Body.Close()

	cases := []string{
		`{"email":"a@x.com","password":"wrong-password"}`,
		`{"email":"nobody@x.com","password":"password1"}`,
		`not json`,
	}
	for _, body := range cases {
		resp := post(t, srv.URL+"/users/login", body, nil)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("login %s: status=%d, want 401", body, resp.StatusCode)
		}
		if resp.Header.Get(AuthHeader) != "" {
			t.Fatalf("401 must not carry a token")
		}
		if resp.ContentLength > 0 {
			t.Fatalf("401 must have an empty body")
		}
		resp.Body.Close()
	}
}

func TestLogout_RevokesToken(t *testing.T) {
	h, srv := testEnv(t)

	resp := post(t, srv.URL+"/users", `{"email":"a@x.com","password":"password1"}`, nil)
	resp.Body.Close()
	resp = post(t, srv.URL+"/users/login", `{"email":"a@x.com","password":"password1"}`, nil)
	tok := resp.Header.Get(AuthHeader)
	resp.Body.Close()

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/users/login", nil)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	req.Header.Set(AuthHeader, tok)
	del, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE /users/login: %v", err)
	}
	del.Body.Close()
	if del.StatusCode != http.StatusNoContent {
		t.Fatalf("logout status=%d, want 204", del.StatusCode)
	}

	active, err := h.sessions.IsActive(req.Context(), tok)
	if err != nil {
		t.Fatalf("IsActive: %v", err)
	}
	if active {
		t.Fatalf("token still active after logout")
	}

	// Replaying the same token is rejected.
	replay, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	replay.Body.Close()
	if replay.StatusCode != http.StatusUnauthorized {
		t.Fatalf("replayed token status=%d, want 401", replay.StatusCode)
	}
}
