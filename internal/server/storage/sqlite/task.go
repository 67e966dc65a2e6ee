package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iudanet/gophtasks/internal/models"
	"github.com/iudanet/gophtasks/internal/server/storage"
)

// taskSelect loads the author with a JOIN
const taskSelect = `
	SELECT t.id, t.title, t.description, t.completed, t.due_date, t.created_at, t.user_id,
	       u.id, u.first_name, u.last_name, u.username, u.email, u.date_created
	FROM task t
	JOIN "user" u ON u.id = t.user_id
`

type rowScanner interface {
	Scan(dest ...any) error
}

// ListTasks returns all tasks, optionally filtered by title
func (s *Storage) ListTasks(ctx context.Context, search string) ([]*models.Task, error) {
	query := taskSelect
	var args []any
	if search != "" {
		query += ` WHERE ` + foldFunc + `(t.title) LIKE ? ESCAPE '\'`
		args = append(args, storage.LikePattern(search))
	}
	query += ` ORDER BY t.id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	tasks := make([]*models.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return tasks, nil
}

// GetTask retrieves task by ID
func (s *Storage) GetTask(ctx context.Context, taskID int64) (*models.Task, error) {
	return getTask(ctx, s.db, taskID)
}

// CreateTask inserts the task and reads it back with its author
func (s *Storage) CreateTask(ctx context.Context, task *models.Task) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollback(tx)

	query := `
		INSERT INTO task (title, description, completed, due_date, created_at, user_id)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := tx.ExecContext(ctx, query,
		task.Title,
		task.Description,
		task.Completed,
		task.DueDate,
		task.CreatedAt,
		task.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get task id: %w", err)
	}

	created, err := getTask(ctx, tx, id)
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit task: %w", err)
	}

	*task = *created
	return nil
}

// UpdateTask persists the mutable task fields
func (s *Storage) UpdateTask(ctx context.Context, task *models.Task) error {
	query := `
		UPDATE task
		SET title = ?, description = ?, due_date = ?, completed = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		task.Title,
		task.Description,
		task.DueDate,
		task.Completed,
		task.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrTaskNotFound
	}

	return nil
}

// DeleteTask deletes task by ID
func (s *Storage) DeleteTask(ctx context.Context, taskID int64) error {
	query := `DELETE FROM task WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query, taskID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrTaskNotFound
	}

	return nil
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getTask(ctx context.Context, q queryRower, taskID int64) (*models.Task, error) {
	task, err := scanTask(q.QueryRowContext(ctx, taskSelect+` WHERE t.id = ?`, taskID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

func scanTask(row rowScanner) (*models.Task, error) {
	task := &models.Task{Author: &models.User{}}

	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Completed,
		&task.DueDate,
		&task.CreatedAt,
		&task.UserID,
		&task.Author.ID,
		&task.Author.FirstName,
		&task.Author.LastName,
		&task.Author.Username,
		&task.Author.Email,
		&task.Author.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return task, nil
}
