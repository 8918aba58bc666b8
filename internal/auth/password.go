// Package auth implements credential hashing, session token issuance and
// verification, and federated identity token verification.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// PBKDF2 parameters. Changing these invalidates stored hashes.
const (
	pbkdf2Iterations = 100000
	saltBytes        = 16
	keyBytes         = 32
)

// CredentialStore derives and verifies salted password hashes. The stored
// form is hex(salt) + "$" + hex(derivedKey).
type CredentialStore struct{}

// Hash derives a stored form for a password using a fresh random salt.
func (CredentialStore) Hash(password string) (string, error) {
	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	dk := pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, keyBytes, sha256.New)
	return hex.EncodeToString(salt) + "$" + hex.EncodeToString(dk), nil
}

// Verify re-derives the candidate password with the stored salt and
// compares in constant time. A malformed stored form verifies false,
// never errors.
func (CredentialStore) Verify(stored, candidate string) bool {
	saltHex, hashHex, ok := strings.Cut(stored, "$")
	if !ok {
		return false
	}
	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false
	}
	dk := pbkdf2.Key([]byte(candidate), salt, pbkdf2Iterations, keyBytes, sha256.New)
	return subtle.ConstantTimeCompare([]byte(hashHex), []byte(hex.EncodeToString(dk))) == 1
}
