// ABOUTME: Password hashing and verification using bcrypt
// ABOUTME: Keeps timing flat on unknown accounts via a dummy comparison

package auth

import "golang.org/x/crypto/bcrypt"

// dummyHash is compared against when the account does not exist, so a login
// attempt costs one bcrypt comparison either way.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// HashPassword returns the bcrypt hash of a plaintext password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether the plaintext password matches the stored
// hash. Failure is a plain false; callers decide how to surface it.
func VerifyPassword(password, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(password)) == nil
}

// CompareDummy performs a bcrypt comparison against a throwaway hash to keep
// response timing consistent when no account was found.
func CompareDummy(password string) {
	_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
}
