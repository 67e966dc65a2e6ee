package models

import (
	"fmt"
	"time"

	"github.com/iudanet/gophtasks/internal/crypto"
)

// User is a registered account
type User struct {
	CreatedAt       time.Time // время регистрации (UTC)
	TokenExpiration time.Time // нулевое значение, если токен не выдавался
	FirstName       string
	LastName        string
	Username        string // уникальный username
	Email           string // уникальный email
	PasswordHash    string `json:"-"` // bcrypt хеш, наружу не отдается
	Token           string `json:"-"` // текущий bearer токен, пустой если не выдавался
	ID              int64
}

// SetPassword hashes plaintext and stores the result in PasswordHash.
// The plaintext itself is never kept on the struct.
func (u *User) SetPassword(plaintext string) error {
	hash, err := crypto.HashPassword(plaintext)
	if err != nil {
		return fmt.Errorf("failed to set password: %w", err)
	}
	u.PasswordHash = hash
	return nil
}

// CheckPassword reports whether plaintext matches the stored hash.
func (u *User) CheckPassword(plaintext string) bool {
	return crypto.VerifyPassword(plaintext, u.PasswordHash)
}

// HasToken reports whether the user holds a token that is still valid at now.
func (u *User) HasToken(now time.Time) bool {
	return u.Token != "" && u.TokenExpiration.After(now)
}
