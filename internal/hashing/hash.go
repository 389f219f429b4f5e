package hashing

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

// Password returns a bcrypt hash of the plaintext password.
func Password(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether plain matches the stored bcrypt hash.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// Address returns the hex digest stored in place of a client address, or
// nil when no address is available. The salt is a per-deployment secret
// that makes dictionary reversal of the small address space harder.
func Address(salt, addr string) *string {
	if addr == "" {
		return nil
	}
	sum := sha256.Sum256([]byte(salt + addr))
	digest := hex.EncodeToString(sum[:])
	return &digest
}
