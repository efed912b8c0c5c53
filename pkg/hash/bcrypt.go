// Package hash wraps bcrypt password hashing. Comparison is constant-time;
// callers must never log plaintext passwords.
package hash

import "golang.org/x/crypto/bcrypt"

const DefaultCost = 10

func HashPassword(password string) (string, error) {
	return HashPasswordWithCost(password, DefaultCost)
}

func HashPasswordWithCost(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether password matches the stored hash. A
// malformed hash counts as a mismatch, not an error, so login failures stay
// indistinguishable to the caller.
func VerifyPassword(password, encodedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password)) == nil
}
