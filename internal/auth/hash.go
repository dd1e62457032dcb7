package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword derives a salted bcrypt digest from a plaintext secret.
func HashPassword(secret string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// VerifyPassword reports whether secret matches the stored bcrypt digest.
// The comparison is constant-time and reveals nothing about which side
// was wrong.
func VerifyPassword(secret, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(secret)) == nil
}

// HashToken produces the storable one-way digest of a refresh token.
//
// Refresh tokens are high-entropy HMAC-signed strings, so an unsalted SHA-256
// is sufficient (brute force is infeasible) and, unlike bcrypt, has no input
// length limit and yields a deterministic value the storage layer can
// compare-and-swap on.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// VerifyToken reports whether token hashes to the stored digest, in
// constant time.
func VerifyToken(token, digest string) bool {
	computed := HashToken(token)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(digest)) == 1
}
