package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that username and/or email is already taken
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrTaskNotFound indicates that task was not found in storage
	ErrTaskNotFound = errors.New("task not found")
)
