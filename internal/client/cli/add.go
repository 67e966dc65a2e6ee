package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/gophtasks/pkg/api"
)

func (c *Cli) runAdd(ctx context.Context) error {
	s, err := c.session(ctx)
	if err != nil {
		return err
	}

	c.io.Println("=== New Task ===")
	c.io.Println()

	var req api.CreateTaskRequest
	if req.Title, err = c.readRequired("Title: ", "title"); err != nil {
		return err
	}
	if req.Description, err = c.io.ReadInput("Description: "); err != nil {
		return fmt.Errorf("failed to read description: %w", err)
	}
	if req.DueDate, err = c.readRequired("Due date: ", "due date"); err != nil {
		return err
	}

	task, err := c.apiClient.CreateTask(ctx, s.Token, req)
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Printf("✓ Task #%d created\n", task.ID)
	return nil
}
