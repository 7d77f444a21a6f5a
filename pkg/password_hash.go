package pkg

import (
	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultPasswordHashCost = 12
	// MaxPasswordBytes is the bcrypt input limit, anything longer is rejected
	// instead of being silently truncated.
	MaxPasswordBytes = 72
)

func HashPassword(password string) (string, error) {
	return HashPasswordWithCost(password, DefaultPasswordHashCost)
}

func HashPasswordWithCost(password string, cost int) (string, error) {
	if len(password) > MaxPasswordBytes {
		return "", bcrypt.ErrPasswordTooLong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return BytesToString(hash), nil
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
