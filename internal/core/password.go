package core

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	hashIterations = 10_000
	hashKeyLen     = 32
	saltLen        = 16
)

// HashPassword derives a PBKDF2-SHA256 hash with a fresh random salt.
func HashPassword(password string) (hash, salt []byte, err error) {
	salt = make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, nil, fmt.Errorf("generating salt: %w", err)
	}
	hash = pbkdf2.Key([]byte(password), salt, hashIterations, hashKeyLen, sha256.New)
	return hash, salt, nil
}

// VerifyPassword reports whether the password matches the account's stored
// hash. The comparison is constant-time.
func (a *Account) VerifyPassword(password string) bool {
	if len(a.PasswordHash) == 0 {
		return false
	}
	derived := pbkdf2.Key([]byte(password), a.Salt, hashIterations, hashKeyLen, sha256.New)
	return subtle.ConstantTimeCompare(derived, a.PasswordHash) == 1
}
