// Package auth provides password hashing and opaque session token generation.
//
// Password digests are stored as "salt$hash" where hash is the hex SHA-256 of
// password||salt. Tokens are random URL-safe strings resolved against the
// sessions table, not self-describing credentials.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	saltBytes  = 16
	tokenBytes = 32
)

// HashPassword returns a salted one-way digest in "salt$hash" form.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	saltHex := hex.EncodeToString(salt)
	return saltHex + "$" + digest(password, saltHex), nil
}

// VerifyPassword checks a password against a stored "salt$hash" digest.
// A malformed digest yields false, never an error.
func VerifyPassword(password, passwordHash string) bool {
	salt, want, ok := strings.Cut(passwordHash, "$")
	if !ok || salt == "" || want == "" {
		return false
	}
	got := digest(password, salt)
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

// NewToken returns a cryptographically random URL-safe bearer token.
func NewToken() (string, error) {
	raw := make([]byte, tokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

func digest(password, salt string) string {
	sum := sha256.Sum256([]byte(password + salt))
	return hex.EncodeToString(sum[:])
}
