package cli

import (
	"context"
	"strings"
)

func (c *Cli) runList(ctx context.Context, args []string) error {
	search := strings.Join(args, " ")

	tasks, err := c.apiClient.ListTasks(ctx, search)
	if err != nil {
		return err
	}

	c.io.Println("=== Tasks ===")
	c.io.Println()

	if len(tasks) == 0 {
		if search != "" {
			c.io.Printf("No tasks matching %q.\n", search)
		} else {
			c.io.Println("No tasks found.")
		}
		return nil
	}

	for _, task := range tasks {
		author := ""
		if task.Author != nil {
			author = task.Author.Username
		}
		c.io.Printf("%s #%d %s (due %s, by %s)\n", statusMark(task.Completed), task.ID, task.Title, task.DueDate, author)
	}
	c.io.Println()
	c.io.Printf("Found %d task(s)\n", len(tasks))

	return nil
}
