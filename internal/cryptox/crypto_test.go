package cryptox

import (
	"bytes"
	"encoding/hex"
	"errors"
	"strings"
	"testing"
)

func newTestCrypto(t *testing.T) *Crypto {
	t.Helper()
	c, err := New(bytes.Repeat([]byte("k"), 32), []byte("test-salt"))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	return c
}

func TestNew_Validation(t *testing.T) {
	if _, err := New([]byte("short"), []byte("salt")); err == nil {
		t.Fatalf("expected error for short key")
	}
	if _, err := New(bytes.Repeat([]byte("k"), 32), nil); err == nil {
		t.Fatalf("expected error for empty salt")
	}
	if _, err := New(bytes.Repeat([]byte("k"), 32), []byte("salt")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	c := newTestCrypto(t)

	tests := []string{
		"alice@example.com",
		"",
		"with:colons:inside",
		"unicode — приветик ✓",
		strings.Repeat("x", 4096),
	}

	for _, plaintext := range tests {
		enc, err := c.Encrypt(plaintext)
		if err != nil {
			t.Fatalf("Encrypt(%q) error: %v", plaintext, err)
		}
		if parts := strings.Split(enc, ":"); len(parts) != 3 {
			t.Fatalf("expected nonce:tag:body, got %q", enc)
		}
		dec, err := c.Decrypt(enc)
		if err != nil {
			t.Fatalf("Decrypt error: %v", err)
		}
		if dec != plaintext {
			t.Fatalf("round trip mismatch: got %q, want %q", dec, plaintext)
		}
	}
}

func TestEncrypt_FreshNonce(t *testing.T) {
	c := newTestCrypto(t)

	enc1, err := c.Encrypt("same input")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}
	enc2, err := c.Encrypt("same input")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}
	if enc1 == enc2 {
		t.Fatalf("two encryptions of the same plaintext must differ (nonce reuse)")
	}
}

func TestDecrypt_TamperDetection(t *testing.T) {
	c := newTestCrypto(t)

	enc, err := c.Encrypt("sensitive")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}
	parts := strings.Split(enc, ":")

	flip := func(hexStr string) string {
		raw, err := hex.DecodeString(hexStr)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		raw[0] ^= 0x01
		return hex.EncodeToString(raw)
	}

	// flipping any byte of the tag or body must fail, never return altered plaintext
	for i := 1; i <= 2; i++ {
		mutated := make([]string, 3)
		copy(mutated, parts)
		mutated[i] = flip(parts[i])
		if _, err := c.Decrypt(strings.Join(mutated, ":")); !errors.Is(err, ErrDecryptionFailed) {
			t.Fatalf("segment %d: want ErrDecryptionFailed, got %v", i, err)
		}
	}
}

func TestDecrypt_Malformed(t *testing.T) {
	c := newTestCrypto(t)

	tests := []string{
		"",
		"nothexatall",
		"aabb:ccdd",
		"zz:zz:zz",
		"aabb:ccdd:eeff:0011",
	}
	for _, in := range tests {
		if _, err := c.Decrypt(in); !errors.Is(err, ErrDecryptionFailed) {
			t.Fatalf("Decrypt(%q): want ErrDecryptionFailed, got %v", in, err)
		}
	}
}

func TestDecrypt_WrongKey(t *testing.T) {
	c := newTestCrypto(t)
	other, err := New(bytes.Repeat([]byte("z"), 32), []byte("test-salt"))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	enc, err := c.Encrypt("secret")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}
	if _, err := other.Decrypt(enc); !errors.Is(err, ErrDecryptionFailed) {
		t.Fatalf("want ErrDecryptionFailed with wrong key, got %v", err)
	}
}

func TestHash_Deterministic(t *testing.T) {
	c := newTestCrypto(t)

	h1 := c.Hash("alice@example.com")
	h2 := c.Hash("alice@example.com")
	if h1 != h2 {
		t.Fatalf("hash must be stable across calls")
	}
	if len(h1) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(h1))
	}
	if c.Hash("bob@example.com") == h1 {
		t.Fatalf("different inputs must not collide trivially")
	}
}

func TestPassword_HashAndVerify(t *testing.T) {
	c := newTestCrypto(t)

	digest := c.HashPassword("Password123")
	if len(digest) != 128 {
		t.Fatalf("expected 128 hex chars, got %d", len(digest))
	}
	if digest == "Password123" {
		t.Fatalf("password stored in plaintext")
	}
	if !c.VerifyPassword("Password123", digest) {
		t.Fatalf("correct password must verify")
	}
	if c.VerifyPassword("wrong", digest) {
		t.Fatalf("wrong password must not verify")
	}
}

func TestPassword_SaltChangesDigest(t *testing.T) {
	c1 := newTestCrypto(t)
	c2, err := New(bytes.Repeat([]byte("k"), 32), []byte("other-salt"))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	if c1.HashPassword("pw") == c2.HashPassword("pw") {
		t.Fatalf("different salts must give different digests")
	}
}
