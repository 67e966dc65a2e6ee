package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runUnregister(ctx context.Context) error {
	s, err := c.session(ctx)
	if err != nil {
		return err
	}

	c.io.Println("=== Delete Account ===")
	c.io.Printf("Account %s and all its tasks will be deleted.\n", s.Username)

	ok, err := c.confirm("Are you sure?")
	if err != nil {
		return err
	}
	if !ok {
		c.io.Println("Deletion cancelled.")
		return nil
	}

	msg, err := c.apiClient.DeleteUser(ctx, s.Token, s.UserID)
	if err != nil {
		return err
	}

	if err := c.sessions.DeleteSession(ctx); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	c.io.Printf("✓ %s\n", msg)
	return nil
}
