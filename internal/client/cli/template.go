package cli

import (
	"fmt"
	"text/template"

	"github.com/iudanet/gophtasks/pkg/api"
)

const taskTemplate = `
=== Task #{{.ID}} ===

Title:       {{.Title}}
Status:      {{if .Completed}}done{{else}}open{{end}}
Due:         {{.DueDate}}
Created:     {{.CreatedAt.Format "2006-01-02 15:04"}}
{{- if .Author }}
Author:      {{.Author.Username}}
{{- end}}

{{.Description}}
`

const userTemplate = `
ID:          {{.ID}}
Username:    {{.Username}}
Name:        {{.FirstName}} {{.LastName}}
Email:       {{.Email}}
Registered:  {{.DateCreated.Format "2006-01-02 15:04"}}
`

var (
	taskTmpl = template.Must(template.New("task").Parse(taskTemplate))
	userTmpl = template.Must(template.New("user").Parse(userTemplate))
)

func (c *Cli) printTask(task *api.Task) error {
	if err := taskTmpl.Execute(c.io, task); err != nil {
		return fmt.Errorf("failed to render task: %w", err)
	}
	return nil
}

func (c *Cli) printUser(user *api.User) error {
	if err := userTmpl.Execute(c.io, user); err != nil {
		return fmt.Errorf("failed to render user: %w", err)
	}
	return nil
}

func statusMark(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}
