package cli

import "context"

func (c *Cli) runDelete(ctx context.Context, args []string) error {
	id, err := parseID(args, "gophtasks delete <id>")
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

	c.io.Println("=== Delete Task ===")
	c.io.Println()
	c.io.Println("About to delete:")
	c.io.Printf("  #%d %s (due %s)\n", task.ID, task.Title, task.DueDate)
	c.io.Println()

	ok, err := c.confirm("Are you sure you want to delete this task?")
	if err != nil {
		return err
	}
	if !ok {
		c.io.Println("Deletion cancelled.")
		return nil
	}

	msg, err := c.apiClient.DeleteTask(ctx, s.Token, id)
	if err != nil {
		return err
	}

	c.io.Printf("✓ %s\n", msg)
	return nil
}
