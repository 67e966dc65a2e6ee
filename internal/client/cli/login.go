package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/iudanet/gophtasks/internal/client/storage"
)

func (c *Cli) runLogin(ctx context.Context) error {
	c.io.Println("=== Login ===")
	c.io.Println()

	username, err := c.readRequired("Username: ", "username")
	if err != nil {
		return err
	}

	password, err := c.io.ReadPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	tok, err := c.apiClient.Token(ctx, username, password)
	if err != nil {
		return err
	}

	// ID пользователя нужен для unregister
	me, err := c.apiClient.Me(ctx, tok.Token)
	if err != nil {
		return err
	}

	session := &storage.Session{
		Username:  me.Username,
		UserID:    me.ID,
		Token:     tok.Token,
		Server:    c.serverURL,
		ExpiresAt: tok.TokenExpiration,
	}
	if err := c.sessions.SaveSession(ctx, session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	c.io.Println()
	c.io.Println("✓ Login successful!")
	c.io.Printf("Username: %s\n", me.Username)
	c.io.Printf("Token expires in: %s\n", tok.TokenExpiration.Sub(c.now()).Round(time.Second))

	return nil
}
