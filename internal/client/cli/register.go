package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/gophtasks/pkg/api"
)

func (c *Cli) runRegister(ctx context.Context) error {
	c.io.Println("=== Registration ===")
	c.io.Println()

	var req api.CreateUserRequest
	var err error

	if req.FirstName, err = c.readRequired("First name: ", "first name"); err != nil {
		return err
	}
	if req.LastName, err = c.readRequired("Last name: ", "last name"); err != nil {
		return err
	}
	if req.Username, err = c.readRequired("Username: ", "username"); err != nil {
		return err
	}
	if req.Email, err = c.readRequired("Email: ", "email"); err != nil {
		return err
	}

	password, err := c.io.ReadPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	confirmPassword, err := c.io.ReadPassword("Confirm password: ")
	if err != nil {
		return fmt.Errorf("failed to read confirmation: %w", err)
	}
	if password != confirmPassword {
		return fmt.Errorf("passwords do not match")
	}
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}
	req.Password = password

	user, err := c.apiClient.Register(ctx, req)
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ Registration successful!")
	c.io.Printf("User ID: %d\n", user.ID)
	c.io.Printf("Username: %s\n", user.Username)
	c.io.Println()
	c.io.Println("Please run 'gophtasks login' to start using the service.")

	return nil
}
