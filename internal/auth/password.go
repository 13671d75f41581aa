package auth

import "golang.org/x/crypto/bcrypt"

// DefaultBcryptCost is the work factor used for stored passwords.
const DefaultBcryptCost = 10

// HashPassword returns a salted bcrypt hash of password.
func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// ComparePassword reports whether password matches hash.
func ComparePassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
