package helpers

import "golang.org/x/crypto/bcrypt"

// MinPasswordLength is the strength floor applied at registration and reset.
const MinPasswordLength = 8

// HashPassword hashes the plain text password using bcrypt
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CompareHashAndPassword compares a bcrypt hash with a plain password
func CompareHashAndPassword(hash string, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// PasswordStrong reports whether the password meets the minimum length floor.
func PasswordStrong(plain string) bool {
	return len(plain) >= MinPasswordLength
}
