package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// dummyHash is compared against when no user matches a login email, so unknown
// and known emails take the same time to reject.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("builder-crm-dummy"), bcrypt.DefaultCost)

// HashPassword hashes a plaintext password using bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

// CheckPasswordHash compares a plaintext password with a bcrypt hash.
// An empty hash burns a comparison against dummyHash and reports false.
func CheckPasswordHash(password, hash string) bool {
	if hash == "" {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
