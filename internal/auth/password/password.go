// Package password turns plaintext passwords into stored digests and checks
// candidates against them.
package password

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	KindBcrypt = "bcrypt"
	KindSHA256 = "sha256"
)

type Hasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// New returns the hasher registered under kind.
func New(kind string) (Hasher, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", KindBcrypt:
		return NewBcryptHasher(bcrypt.DefaultCost), nil
	case KindSHA256:
		return SHA256Hasher{}, nil
	default:
		return nil, fmt.Errorf("unknown password hasher %q", kind)
	}
}

// SHA256Hasher stores base64(SHA-256(password)). It is unsalted and fast,
// kept so digests written by earlier deployments still verify.
type SHA256Hasher struct{}

func (SHA256Hasher) Hash(plaintext string) (string, error) {
	return sha256Digest(plaintext), nil
}

func (SHA256Hasher) Verify(plaintext, digest string) bool {
	candidate := sha256Digest(plaintext)
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(digest)) == 1
}

func sha256Digest(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return base64.StdEncoding.EncodeToString(sum[:])
}

// BcryptHasher runs bcrypt over the SHA-256 digest of the password, which
// keeps the bcrypt input at 44 bytes whatever the password length.
type BcryptHasher struct {
	cost   int
	legacy SHA256Hasher
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(sha256Digest(plaintext)), h.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(bytes), nil
}

// Verify accepts bcrypt digests and falls back to the legacy SHA-256 format.
func (h *BcryptHasher) Verify(plaintext, digest string) bool {
	if !isBcrypt(digest) {
		return digest != "" && h.legacy.Verify(plaintext, digest)
	}

	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(sha256Digest(plaintext)))
	return err == nil
}

func isBcrypt(digest string) bool {
	return strings.HasPrefix(digest, "$2a$") ||
		strings.HasPrefix(digest, "$2b$") ||
		strings.HasPrefix(digest, "$2y$")
}
