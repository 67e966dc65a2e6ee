package models

import "time"

// Task is a to-do item owned by a user.
// Author заполняется хранилищем через JOIN при чтении.
type Task struct {
	CreatedAt   time.Time
	Author      *User
	Title       string
	Description string
	DueDate     string // хранится как передал клиент
	ID          int64
	UserID      int64 // владелец задачи
	Completed   bool
}

// OwnedBy reports whether the task belongs to the user with the given id.
func (t *Task) OwnedBy(userID int64) bool {
	return t.UserID == userID
}

// TaskPatch holds the fields of a partial task update.
// Nil fields are left untouched.
type TaskPatch struct {
	Title       *string
	Description *string
	DueDate     *string
	Completed   *bool
}

// Apply merges the non-nil fields of p into t.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
}
