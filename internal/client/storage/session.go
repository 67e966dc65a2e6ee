package storage

import (
	"context"
	"time"
)

// SessionStorage keeps the bearer token of the logged in user between runs
type SessionStorage interface {
	// SaveSession replaces the stored session
	SaveSession(ctx context.Context, session *Session) error

	// GetSession returns ErrSessionNotFound if nobody is logged in
	GetSession(ctx context.Context) (*Session, error)

	// DeleteSession removes the stored session (logout)
	DeleteSession(ctx context.Context) error
}

// Session is what the client remembers after login
type Session struct {
	ExpiresAt time.Time `json:"expires_at"`
	Server    string    `json:"server"`
	Username  string    `json:"username"`
	Token     string    `json:"token"`
	UserID    int64     `json:"user_id"`
}

// Valid reports whether the token is still usable at now
func (s *Session) Valid(now time.Time) bool {
	return s.Token != "" && now.Before(s.ExpiresAt)
}
