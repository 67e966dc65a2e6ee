package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// parseID берет положительный числовой ID из первого аргумента
func parseID(args []string, usage string) (int64, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("missing task ID. Usage: %s", usage)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task ID: %s", args[0])
	}
	return id, nil
}

func (c *Cli) confirm(prompt string) (bool, error) {
	answer, err := c.io.ReadInput(prompt + " (yes/no): ")
	if err != nil {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}
	answer = strings.ToLower(answer)
	return answer == "yes" || answer == "y", nil
}

func (c *Cli) readRequired(prompt, field string) (string, error) {
	value, err := c.io.ReadInput(prompt)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", field, err)
	}
	if value == "" {
		return "", fmt.Errorf("%s cannot be empty", field)
	}
	return value, nil
}
