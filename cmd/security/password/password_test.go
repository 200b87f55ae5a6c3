package password

import (
	"strings"
	"testing"
)

func testConfig() Config {
	cfg := DefaultConfig()
	// Low cost keeps the suite fast; policy stays at production values.
	cfg.Cost = 4
	return cfg
}

func TestHashAndVerify_RoundTrip(t *testing.T) {
	cfg := testConfig()

	enc, err := cfg.Hash("password1")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if strings.Contains(enc, "password1") {
		t.Fatalf("encoded hash must not contain the plaintext")
	}

	ok, err := cfg.Verify(enc, "password1")
	if err != nil || !ok {
		t.Fatalf("Verify(correct)=%v,%v; want true,nil", ok, err)
	}

	ok, err = cfg.Verify(enc, "password2")
	if err != nil || ok {
		t.Fatalf("Verify(wrong)=%v,%v; want false,nil", ok, err)
	}
}

func TestHash_LengthPolicy(t *testing.T) {
	cfg := testConfig()

	if _, err := cfg.Hash("short6"); err != ErrPasswordTooShort {
		t.Fatalf("6-char password: got %v, want ErrPasswordTooShort", err)
	}
	if _, err := cfg.Hash(strings.Repeat("a", 101)); err != ErrPasswordTooLong {
		t.Fatalf("101-char password: got %v, want ErrPasswordTooLong", err)
	}
	if _, err := cfg.Hash(strings.Repeat("a", 7)); err != nil {
		t.Fatalf("7-char password rejected: %v", err)
	}
	if _, err := cfg.Hash(strings.Repeat("a", 100)); err != nil {
		t.Fatalf("100-char password rejected: %v", err)
	}
}

func TestVerify_MalformedHash(t *testing.T) {
	cfg := testConfig()

	ok, err := cfg.Verify("not-a-bcrypt-hash", "whatever")
	if ok || err != ErrInvalidHash {
		t.Fatalf("Verify(malformed)=%v,%v; want false,ErrInvalidHash", ok, err)
	}
}

func TestSaltFromEncoded(t *testing.T) {
	cfg := testConfig()

	enc, err := cfg.Hash("password1")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}

	salt, err := SaltFromEncoded(enc)
	if err != nil {
		t.Fatalf("SaltFromEncoded: %v", err)
	}
	if len(salt) != 29 {
		t.Fatalf("salt section length=%d want 29 (%q)", len(salt), salt)
	}
	if !strings.HasPrefix(enc, salt) {
		t.Fatalf("salt must be a prefix of the encoding")
	}

	if _, err := SaltFromEncoded("garbage"); err != ErrInvalidHash {
		t.Fatalf("expected ErrInvalidHash for garbage, got %v", err)
	}
}

func TestHash_UniqueSaltPerCall(t *testing.T) {
	cfg := testConfig()

	a, err := cfg.Hash("password1")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	b, err := cfg.Hash("password1")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if a == b {
		t.Fatalf("two hashes of the same password must differ (random salt)")
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("TICK_BCRYPT_COST", "6")
	t.Setenv("TICK_PASSWORD_MIN_LEN", "10")
	t.Setenv("TICK_PASSWORD_MAX_LEN", "64")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.Cost != 6 || cfg.Policy.MinLength != 10 || cfg.Policy.MaxLength != 64 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestFromEnv_RejectsInvertedPolicy(t *testing.T) {
	t.Setenv("TICK_PASSWORD_MIN_LEN", "50")
	t.Setenv("TICK_PASSWORD_MAX_LEN", "10")

	if _, err := FromEnv(); err == nil {
		t.Fatalf("expected error for min > max")
	}
}
