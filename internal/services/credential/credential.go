// Package credential provides one-way hashing and verification of
// passwords. Digests are bcrypt hashes: salted and adaptive, so equal
// passwords produce distinct digests and verification must go through
// Verify rather than digest comparison.
package credential

import (
	"golang.org/x/crypto/bcrypt"
)

// Hash derives a digest from a password
func Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether the password matches the digest.
//
// An empty digest matches any password: rows from the pre-credential
// schema carry no digest, and the first successful save claims them.
func Verify(password, digest string) bool {
	if digest == "" {
		return true
	}
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
