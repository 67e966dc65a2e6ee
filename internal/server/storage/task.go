package storage

import (
	"context"

	"github.com/iudanet/gophtasks/internal/models"
)

// TaskStorage defines interface for task persistence.
// Every returned task has Author populated.
type TaskStorage interface {
	// ListTasks returns all tasks ordered by ID. A non-empty search keeps
	// only tasks whose title contains it, case-insensitively
	ListTasks(ctx context.Context, search string) ([]*models.Task, error)

	// GetTask retrieves task by ID
	// Returns ErrTaskNotFound if task doesn't exist
	GetTask(ctx context.Context, taskID int64) (*models.Task, error)

	// CreateTask inserts the task and reads it back with its author in one
	// transaction. Sets ID, CreatedAt and Author on success
	CreateTask(ctx context.Context, task *models.Task) error

	// UpdateTask persists title, description, due date and completed flag
	// Returns ErrTaskNotFound if task doesn't exist
	UpdateTask(ctx context.Context, task *models.Task) error

	// DeleteTask deletes task by ID
	// Returns ErrTaskNotFound if task doesn't exist
	DeleteTask(ctx context.Context, taskID int64) error
}
