package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/gophtasks/internal/client/storage"
)

func (c *Cli) runLogout(ctx context.Context) error {
	c.io.Println("=== Logout ===")

	s, err := c.sessions.GetSession(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			c.io.Println("Not logged in.")
			return nil
		}
		return fmt.Errorf("failed to get session: %w", err)
	}

	// Истекший токен сервер уже не примет, просто забываем сессию
	if s.Valid(c.now()) {
		if err := c.apiClient.RevokeToken(ctx, s.Token); err != nil {
			c.io.Printf("Warning: failed to revoke token on server: %v\n", err)
		}
	}

	if err := c.sessions.DeleteSession(ctx); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}

	c.io.Println("✓ Logout successful!")
	c.io.Println("Your local session has been deleted.")

	return nil
}
