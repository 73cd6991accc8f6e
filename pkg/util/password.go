package util

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Work factor tuned for server-side login latency
const passwordHashCost = 12

var ErrPasswordTooLong = errors.New("password exceeds 72 bytes")

// HashPassword hashes a plain text password with bcrypt
func HashPassword(password string) (string, error) {
	if len(password) > 72 {
		// bcrypt silently truncates longer inputs
		return "", ErrPasswordTooLong
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// VerifyPassword checks a plain text password against its stored hash
func VerifyPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
