package handlers

import (
	"context"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/iudanet/gophtasks/internal/models"
	"github.com/iudanet/gophtasks/internal/server/storage"
)

// setupTestLogger creates a logger for testing
func setupTestLogger() *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelError, // Only show errors in tests
	}
	handler := slog.NewTextHandler(os.Stdout, opts)
	return slog.New(handler)
}

// mockUserStorage is a mock implementation of UserStorage for testing
type mockUserStorage struct {
	users       map[int64]*models.User
	nextID      int64
	createError error
	getError    error
	deleteError error
}

func newMockUserStorage(users ...*models.User) *mockUserStorage {
	m := &mockUserStorage{users: make(map[int64]*models.User)}
	for _, u := range users {
		m.users[u.ID] = u
		if u.ID > m.nextID {
			m.nextID = u.ID
		}
	}
	return m
}

func (m *mockUserStorage) CreateUser(_ context.Context, user *models.User) error {
	if m.createError != nil {
		return m.createError
	}
	for _, u := range m.users {
		if u.Username == user.Username || u.Email == user.Email {
			return storage.ErrUserAlreadyExists
		}
	}
	m.nextID++
	user.ID = m.nextID
	m.users[user.ID] = user
	return nil
}

func (m *mockUserStorage) GetUserByID(_ context.Context, userID int64) (*models.User, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	u, ok := m.users[userID]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *mockUserStorage) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (m *mockUserStorage) GetUserByToken(_ context.Context, token string) (*models.User, error) {
	for _, u := range m.users {
		if token != "" && u.Token == token {
			cp := *u
			return &cp, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (m *mockUserStorage) UpdateToken(_ context.Context, userID int64, token string, expiresAt time.Time) error {
	u, ok := m.users[userID]
	if !ok {
		return storage.ErrUserNotFound
	}
	u.Token = token
	u.TokenExpiration = expiresAt
	return nil
}

func (m *mockUserStorage) DeleteUser(_ context.Context, userID int64) error {
	if m.deleteError != nil {
		return m.deleteError
	}
	if _, ok := m.users[userID]; !ok {
		return storage.ErrUserNotFound
	}
	delete(m.users, userID)
	return nil
}

// mockTaskStorage is a mock implementation of TaskStorage for testing
type mockTaskStorage struct {
	tasks     map[int64]*models.Task
	authors   map[int64]*models.User
	nextID    int64
	listError error
	getError  error
	saveError error
}

func newMockTaskStorage(authors ...*models.User) *mockTaskStorage {
	m := &mockTaskStorage{
		tasks:   make(map[int64]*models.Task),
		authors: make(map[int64]*models.User),
	}
	for _, a := range authors {
		m.authors[a.ID] = a
	}
	return m
}

func (m *mockTaskStorage) add(task *models.Task) *models.Task {
	m.nextID++
	task.ID = m.nextID
	task.Author = m.authors[task.UserID]
	m.tasks[task.ID] = task
	return task
}

func (m *mockTaskStorage) ListTasks(_ context.Context, search string) ([]*models.Task, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	out := make([]*models.Task, 0, len(m.tasks))
	for _, t := range m.tasks {
		if search == "" || strings.Contains(strings.ToLower(t.Title), strings.ToLower(search)) {
			cp := *t
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockTaskStorage) GetTask(_ context.Context, taskID int64) (*models.Task, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	t, ok := m.tasks[taskID]
	if !ok {
		return nil, storage.ErrTaskNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *mockTaskStorage) CreateTask(_ context.Context, task *models.Task) error {
	if m.saveError != nil {
		return m.saveError
	}
	cp := *task
	m.add(&cp)
	*task = cp
	return nil
}

func (m *mockTaskStorage) UpdateTask(_ context.Context, task *models.Task) error {
	if m.saveError != nil {
		return m.saveError
	}
	if _, ok := m.tasks[task.ID]; !ok {
		return storage.ErrTaskNotFound
	}
	cp := *task
	m.tasks[task.ID] = &cp
	return nil
}

func (m *mockTaskStorage) DeleteTask(_ context.Context, taskID int64) error {
	if m.saveError != nil {
		return m.saveError
	}
	if _, ok := m.tasks[taskID]; !ok {
		return storage.ErrTaskNotFound
	}
	delete(m.tasks, taskID)
	return nil
}

// mockIssuer is a mock implementation of TokenIssuer for testing
type mockIssuer struct {
	token     string
	expiresAt time.Time
	err       error
	revoked   []int64
}

func (m *mockIssuer) GetOrIssue(_ context.Context, user *models.User) (string, time.Time, error) {
	if m.err != nil {
		return "", time.Time{}, m.err
	}
	user.Token = m.token
	user.TokenExpiration = m.expiresAt
	return m.token, m.expiresAt, nil
}

func (m *mockIssuer) Revoke(_ context.Context, user *models.User) error {
	if m.err != nil {
		return m.err
	}
	m.revoked = append(m.revoked, user.ID)
	return nil
}

// mockPinger is a mock implementation of Pinger for testing
type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(context.Context) error {
	return m.err
}
