package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/gophtasks/internal/models"
	"github.com/iudanet/gophtasks/internal/server/storage"
)

// UserFinder looks up users by username
type UserFinder interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// CheckCredentials resolves username and password to a user.
// Unknown usernames and wrong passwords both return ErrInvalidCredentials.
func CheckCredentials(ctx context.Context, users UserFinder, username, password string) (*models.User, error) {
	if username == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
