package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/gophtasks/pkg/api"
)

func (c *Cli) runEdit(ctx context.Context, args []string) error {
	id, err := parseID(args, "gophtasks edit <id>")
	if err != nil {
		return err
	}
	s, err := c.session(ctx)
	if err != nil {
		return err
	}

	task, err := c.apiClient.GetTask(ctx, id)
	if err != nil {
		return err
	}

	c.io.Printf("=== Edit Task #%d ===\n", task.ID)
	c.io.Println("Leave a field empty to keep its value.")
	c.io.Println()

	var req api.UpdateTaskRequest
	fields := []struct {
		dst    **string
		prompt string
		name   string
	}{
		{&req.Title, fmt.Sprintf("Title [%s]: ", task.Title), "title"},
		{&req.Description, fmt.Sprintf("Description [%s]: ", task.Description), "description"},
		{&req.DueDate, fmt.Sprintf("Due date [%s]: ", task.DueDate), "due date"},
	}
	for _, f := range fields {
		value, err := c.io.ReadInput(f.prompt)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", f.name, err)
		}
		if value != "" {
			*f.dst = &value
		}
	}

	if req.Title == nil && req.Description == nil && req.DueDate == nil {
		c.io.Println("Nothing to change.")
		return nil
	}

	updated, err := c.apiClient.UpdateTask(ctx, s.Token, id, req)
	if err != nil {
		return err
	}

	c.io.Printf("✓ Task #%d updated\n", updated.ID)
	return nil
}

func (c *Cli) runDone(ctx context.Context, args []string) error {
	id, err := parseID(args, "gophtasks done <id>")
	if err != nil {
		return err
	}
	s, err := c.session(ctx)
	if err != nil {
		return err
	}

	completed := true
	task, err := c.apiClient.UpdateTask(ctx, s.Token, id, api.UpdateTaskRequest{Completed: &completed})
	if err != nil {
		return err
	}

	c.io.Printf("✓ Task #%d %q marked as done\n", task.ID, task.Title)
	return nil
}
