// Package cryptox implements the crypto primitives used at the storage
// boundary: authenticated symmetric encryption of PII, a deterministic
// lookup hash, and slow password key-stretching.
//
// Ciphertexts are encoded as three colon-delimited hex segments
// "nonce:tag:body" so that each part is independently recoverable.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// ErrDecryptionFailed is returned for malformed, tampered, or wrong-key
// ciphertexts. Decrypt never returns partial plaintext alongside it.
var ErrDecryptionFailed = errors.New("decryption failed")

const (
	keySize = 32 // AES-256

	// pbkdf2 parameters for password stretching.
	pbkdf2Iterations = 100_000
	pbkdf2KeyLen     = sha512.Size
)

// Crypto holds the process-wide encryption key and password salt. Both are
// injected at construction; there is no ambient global state and no
// hot-reload.
type Crypto struct {
	key  []byte
	salt []byte
}

// New validates the process-wide secrets and returns a Crypto instance.
// A missing or wrong-length key is a startup error, not a per-call one.
func New(key, salt []byte) (*Crypto, error) {
	if len(key) != keySize {
		return nil, fmt.Errorf("encryption key must be %d bytes, got %d", keySize, len(key))
	}
	if len(salt) == 0 {
		return nil, errors.New("password salt must not be empty")
	}
	c := &Crypto{key: make([]byte, keySize), salt: make([]byte, len(salt))}
	copy(c.key, key)
	copy(c.salt, salt)
	return c, nil
}

// Encrypt encrypts plaintext with AES-256-GCM under a freshly drawn random
// nonce and returns "nonce:tag:body" in hex. Nonce reuse would break GCM, so
// every call draws a new one.
func (c *Crypto) Encrypt(plaintext string) (string, error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, aesgcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	// Seal appends the authentication tag to the ciphertext; split it back
	// out so the tag is its own segment.
	sealed := aesgcm.Seal(nil, nonce, []byte(plaintext), nil)
	tagAt := len(sealed) - aesgcm.Overhead()
	body, tag := sealed[:tagAt], sealed[tagAt:]

	return hex.EncodeToString(nonce) + ":" + hex.EncodeToString(tag) + ":" + hex.EncodeToString(body), nil
}

// Decrypt reverses Encrypt. It returns ErrDecryptionFailed when the structure
// is malformed, the tag fails authentication, or the key is wrong.
func (c *Crypto) Decrypt(ciphertext string) (string, error) {
	parts := strings.Split(ciphertext, ":")
	if len(parts) != 3 {
		return "", ErrDecryptionFailed
	}

	nonce, err := hex.DecodeString(parts[0])
	if err != nil {
		return "", ErrDecryptionFailed
	}
	tag, err := hex.DecodeString(parts[1])
	if err != nil {
		return "", ErrDecryptionFailed
	}
	body, err := hex.DecodeString(parts[2])
	if err != nil {
		return "", ErrDecryptionFailed
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}
	if len(nonce) != aesgcm.NonceSize() || len(tag) != aesgcm.Overhead() {
		return "", ErrDecryptionFailed
	}

	plaintext, err := aesgcm.Open(nil, nonce, append(body, tag...), nil)
	if err != nil {
		return "", ErrDecryptionFailed
	}

	return string(plaintext), nil
}

// Hash returns the deterministic sha256 hex digest of text. It is used only
// for equality lookup, never for confidentiality.
func (c *Crypto) Hash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// HashPassword derives a fixed-length hex digest from password using
// pbkdf2-sha512 with the process-wide salt and a high iteration count.
func (c *Crypto) HashPassword(password string) string {
	digest := pbkdf2.Key([]byte(password), c.salt, pbkdf2Iterations, pbkdf2KeyLen, sha512.New)
	return hex.EncodeToString(digest)
}

// VerifyPassword recomputes HashPassword and compares in constant time.
func (c *Crypto) VerifyPassword(password, digest string) bool {
	return subtle.ConstantTimeCompare([]byte(c.HashPassword(password)), []byte(digest)) == 1
}
