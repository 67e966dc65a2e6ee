package api

import "time"

// CreateTaskRequest is the body of POST /tasks
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
}

// CreateTaskFields lists the keys POST /tasks requires, in reporting order.
var CreateTaskFields = []string{"title", "description", "dueDate"}

// UpdateTaskRequest is a partial update; absent fields keep their value.
type UpdateTaskRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	DueDate     *string `json:"dueDate,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

// Task is the public representation of a task with its author embedded.
type Task struct {
	CreatedAt   time.Time `json:"createdAt"`
	Author      *User     `json:"author"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     string    `json:"dueDate"`
	ID          int64     `json:"id"`
	Completed   bool      `json:"completed"`
}
