package crypto

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordTooLong is returned for passwords above bcrypt's 72-byte limit
var ErrPasswordTooLong = bcrypt.ErrPasswordTooLong

// HashPassword hashes password with bcrypt.
// Соль генерируется bcrypt и хранится внутри самого хеша.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hash), nil
}

// VerifyPassword reports whether password matches the stored bcrypt hash.
// Any mismatch, including a malformed or empty hash, yields false.
func VerifyPassword(password, hash string) bool {
	if hash == "" {
		return false
	}

	// Битый хеш в БД тоже считаем несовпадением
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
