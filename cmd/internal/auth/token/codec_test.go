package token

import (
	"strings"
	"testing"
	"time"
)

func testCodec(t *testing.T) *Codec {
	t.Helper()
	c, err := NewCodec(Config{
		EncKey:  []byte("0123456789abcdef0123456789abcdef"),
		SignKey: []byte(strings.Repeat("s", 32)),
	})
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	return c
}

func TestCodec_RoundTrip(t *testing.T) {
	c := testCodec(t)

	cases := []Claims{
		{AccountID: "01HZZZZZZZZZZZZZZZZZZZZZZZ", Purpose: PurposeAuthentication},
		{AccountID: "01HAAAAAAAAAAAAAAAAAAAAAAA", Purpose: "other"},
	}

	for _, want := range cases {
		tok, err := c.Issue(want.AccountID, want.Purpose)
		if err != nil {
			t.Fatalf("Issue(%q,%q): %v", want.AccountID, want.Purpose, err)
		}
		if strings.Contains(tok, want.AccountID) {
			t.Fatalf("token must not leak the account id: %q", tok)
		}

		got, err := c.Decode(tok)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if got != want {
			t.Fatalf("Decode=%+v want=%+v", got, want)
		}
	}
}

func TestCodec_IssueRejectsEmptyInputs(t *testing.T) {
	c := testCodec(t)

	if _, err := c.Issue("", PurposeAuthentication); err != ErrInvalidInput {
		t.Fatalf("empty id: got %v, want ErrInvalidInput", err)
	}
	if _, err := c.Issue("01HZZZZZZZZZZZZZZZZZZZZZZZ", ""); err != ErrInvalidInput {
		t.Fatalf("empty purpose: got %v, want ErrInvalidInput", err)
	}
}

func TestCodec_DecodeRejectsTamperedToken(t *testing.T) {
	c := testCodec(t)

	tok, err := c.Issue("01HZZZZZZZZZZZZZZZZZZZZZZZ", PurposeAuthentication)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// Extend the signature section; the signature no longer matches.
	tampered := tok + "x"
	if _, err := c.Decode(tampered); err != ErrInvalidToken {
		t.Fatalf("tampered token: got %v, want ErrInvalidToken", err)
	}
}

func TestCodec_DecodeRejectsGarbage(t *testing.T) {
	c := testCodec(t)

	for _, tok := range []string{"", "   ", "garbage", "a.b.c"} {
		if _, err := c.Decode(tok); err != ErrInvalidToken {
			t.Fatalf("Decode(%q): got %v, want ErrInvalidToken", tok, err)
		}
	}
}

func TestCodec_KeysAreIndependent(t *testing.T) {
	c := testCodec(t)

	tok, err := c.Issue("01HZZZZZZZZZZZZZZZZZZZZZZZ", PurposeAuthentication)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// Different signing key: signature verification fails before decryption.
	otherSign, err := NewCodec(Config{
		EncKey:  []byte("0123456789abcdef0123456789abcdef"),
		SignKey: []byte(strings.Repeat("t", 32)),
	})
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	if _, err := otherSign.Decode(tok); err != ErrInvalidToken {
		t.Fatalf("wrong sign key: got %v, want ErrInvalidToken", err)
	}

	// Same signing key, different encryption key: decryption fails.
	otherEnc, err := NewCodec(Config{
		EncKey:  []byte("fedcba9876543210fedcba9876543210"),
		SignKey: []byte(strings.Repeat("s", 32)),
	})
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	if _, err := otherEnc.Decode(tok); err != ErrInvalidToken {
		t.Fatalf("wrong enc key: got %v, want ErrInvalidToken", err)
	}
}

func TestSigner_PayloadRoundTrip(t *testing.T) {
	s, err := NewHS256Signer([]byte(strings.Repeat("s", 32)))
	if err != nil {
		t.Fatalf("NewHS256Signer: %v", err)
	}

	signed, err := s.Sign("sealed-payload", time.Now().UTC())
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	got, err := s.Verify(signed)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if got != "sealed-payload" {
		t.Fatalf("payload=%q want sealed-payload", got)
	}
}

func TestSigner_RejectsShortKey(t *testing.T) {
	if _, err := NewHS256Signer([]byte("short")); err == nil {
		t.Fatalf("expected error for short signing key")
	}
}

func TestCipher_SealOpenAndTamper(t *testing.T) {
	c, err := NewAESGCMCipher([]byte("0123456789abcdef0123456789abcdef"))
	if err != nil {
		t.Fatalf("NewAESGCMCipher: %v", err)
	}

	sealed, err := c.Seal([]byte(`{"id":"x"}`))
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	plain, err := c.Open(sealed)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if string(plain) != `{"id":"x"}` {
		t.Fatalf("plaintext=%q", plain)
	}

	// AEAD: any mutation fails authentication.
	flip := "A"
	if sealed[0] == 'A' {
		flip = "B"
	}
	mutated := flip + sealed[1:]
	if _, err := c.Open(mutated); err != ErrInvalidToken {
		t.Fatalf("mutated ciphertext: got %v, want ErrInvalidToken", err)
	}
}

func TestCipher_NoncesDiffer(t *testing.T) {
	c, err := NewAESGCMCipher([]byte("0123456789abcdef"))
	if err != nil {
		t.Fatalf("NewAESGCMCipher: %v", err)
	}

	a, err := c.Seal([]byte("same"))
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	b, err := c.Seal([]byte("same"))
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	if a == b {
		t.Fatalf("two seals of the same plaintext must differ (random nonce)")
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("TICK_TOKEN_ENC_KEY", "")
	t.Setenv("TICK_TOKEN_SIGN_KEY", "")
	if _, err := LoadConfigFromEnv(); err == nil {
		t.Fatalf("expected failure with no keys")
	}

	t.Setenv("TICK_TOKEN_ENC_KEY", "tooshort")
	t.Setenv("TICK_TOKEN_SIGN_KEY", strings.Repeat("s", 32))
	if _, err := LoadConfigFromEnv(); err == nil {
		t.Fatalf("expected failure with bad enc key length")
	}

	t.Setenv("TICK_TOKEN_ENC_KEY", "0123456789abcdef")
	t.Setenv("TICK_TOKEN_SIGN_KEY", "short")
	if _, err := LoadConfigFromEnv(); err == nil {
		t.Fatalf("expected failure with short sign key")
	}

	t.Setenv("TICK_TOKEN_ENC_KEY", "0123456789abcdef0123456789abcdef")
	t.Setenv("TICK_TOKEN_SIGN_KEY", strings.Repeat("s", 32))
	cfg, err := LoadConfigFromEnv()
	if err != nil {
		t.Fatalf("LoadConfigFromEnv: %v", err)
	}
	if len(cfg.EncKey) != 32 || len(cfg.SignKey) != 32 {
		t.Fatalf("unexpected key lengths: enc=%d sign=%d", len(cfg.EncKey), len(cfg.SignKey))
	}
}
