package cli

import "context"

func (c *Cli) runGet(ctx context.Context, args []string) error {
	id, err := parseID(args, "gophtasks get <id>")
	if err != nil {
		return err
	}

	task, err := c.apiClient.GetTask(ctx, id)
	if err != nil {
		return err
	}

	return c.printTask(task)
}
