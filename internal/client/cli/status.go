package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/gophtasks/internal/client/storage"
)

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Authentication Status ===")
	c.io.Println()

	s, err := c.sessions.GetSession(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			c.io.Println("Status: Not authenticated")
			c.io.Println()
			c.io.Println("Run 'gophtasks login' to authenticate.")
			return nil
		}
		return fmt.Errorf("failed to get session: %w", err)
	}

	c.io.Println("Status: Authenticated")
	c.io.Printf("Username: %s\n", s.Username)
	if s.Server != "" {
		c.io.Printf("Server: %s\n", s.Server)
	}
	c.io.Printf("Token expires: %s\n", s.ExpiresAt.Format(time.RFC3339))

	if remaining := s.ExpiresAt.Sub(c.now()); remaining > 0 {
		c.io.Printf("Time remaining: %s\n", remaining.Round(time.Second))
	} else {
		c.io.Println("⚠️  Token has expired. Please login again.")
	}

	return nil
}

func (c *Cli) runMe(ctx context.Context) error {
	s, err := c.session(ctx)
	if err != nil {
		return err
	}

	user, err := c.apiClient.Me(ctx, s.Token)
	if err != nil {
		return err
	}

	c.io.Println("=== Current User ===")
	return c.printUser(user)
}
