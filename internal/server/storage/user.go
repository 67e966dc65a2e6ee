package storage

import (
	"context"
	"time"

	"github.com/iudanet/gophtasks/internal/models"
)

// UserStorage defines interface for user data persistence
type UserStorage interface {
	// CreateUser checks username and email with a single combined query and
	// inserts the user in the same transaction. Sets user.ID on success.
	// Returns ErrUserAlreadyExists if either value is taken
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByID retrieves user by ID
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByID(ctx context.Context, userID int64) (*models.User, error)

	// GetUserByUsername retrieves user by username
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUserByToken retrieves the user currently holding token.
	// Expiry is not checked here.
	// Returns ErrUserNotFound if no user holds it
	GetUserByToken(ctx context.Context, token string) (*models.User, error)

	// UpdateToken stores a token and its expiration on the user row
	// Returns ErrUserNotFound if user doesn't exist
	UpdateToken(ctx context.Context, userID int64, token string, expiresAt time.Time) error

	// DeleteUser deletes user by ID together with the user's tasks
	// Returns ErrUserNotFound if user doesn't exist
	DeleteUser(ctx context.Context, userID int64) error
}
