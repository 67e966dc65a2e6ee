package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/gophtasks/internal/models"
	"github.com/iudanet/gophtasks/internal/server/storage"
)

func TestTaskStorage_CreateTask(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	alice := createTestUser(t, ctx, s, "alice")

	task := &models.Task{
		Title:       "t1",
		Description: "d",
		DueDate:     "2025-01-01",
		CreatedAt:   time.Now().UTC(),
		UserID:      alice.ID,
	}
	require.NoError(t, s.CreateTask(ctx, task))

	assert.NotZero(t, task.ID)
	assert.Equal(t, "t1", task.Title)
	assert.False(t, task.Completed)
	require.NotNil(t, task.Author)
	assert.Equal(t, alice.ID, task.Author.ID)
	assert.Equal(t, "alice", task.Author.Username)
	assert.Empty(t, task.Author.PasswordHash, "хеш автора не читается вместе с задачей")
}

func TestTaskStorage_CreateTask_UnknownOwner(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	task := &models.Task{
		Title:       "orphan",
		Description: "d",
		DueDate:     "2025-01-01",
		CreatedAt:   time.Now().UTC(),
		UserID:      404,
	}
	assert.Error(t, s.CreateTask(ctx, task))

	tasks, err := s.ListTasks(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestTaskStorage_GetTask(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	alice := createTestUser(t, ctx, s, "alice")
	created := createTestTask(t, ctx, s, alice, "find me")

	tests := []struct {
		wantError error
		name      string
		id        int64
	}{
		{name: "existing task", id: created.ID},
		{name: "unknown task", id: created.ID + 100, wantError: storage.ErrTaskNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, err := s.GetTask(ctx, tt.id)
			if tt.wantError != nil {
				assert.ErrorIs(t, err, tt.wantError)
				assert.Nil(t, task)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "find me", task.Title)
			assert.Equal(t, "description of find me", task.Description)
			assert.Equal(t, "2025-01-01", task.DueDate)
			assert.Equal(t, alice.ID, task.UserID)
			assert.Equal(t, "alice", task.Author.Username)
		})
	}
}

func TestTaskStorage_ListTasks(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	alice := createTestUser(t, ctx, s, "alice")
	bob := createTestUser(t, ctx, s, "bob")
	createTestTask(t, ctx, s, alice, "My Project plan")
	createTestTask(t, ctx, s, bob, "groceries")
	createTestTask(t, ctx, s, bob, "PROJECTOR repair")
	createTestTask(t, ctx, s, alice, "100% done")

	tests := []struct {
		name   string
		search string
		want   []string
	}{
		{
			name:   "no search returns all in id order",
			search: "",
			want:   []string{"My Project plan", "groceries", "PROJECTOR repair", "100% done"},
		},
		{
			name:   "case insensitive substring",
			search: "proj",
			want:   []string{"My Project plan", "PROJECTOR repair"},
		},
		{
			name:   "upper case search",
			search: "GROC",
			want:   []string{"groceries"},
		},
		{
			name:   "wildcard is literal",
			search: "%",
			want:   []string{"100% done"},
		},
		{
			name:   "no match",
			search: "zzz",
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks, err := s.ListTasks(ctx, tt.search)
			require.NoError(t, err)

			titles := make([]string, 0, len(tasks))
			for _, task := range tasks {
				titles = append(titles, task.Title)
				require.NotNil(t, task.Author)
			}
			assert.Equal(t, tt.want, titles)
		})
	}
}

func TestTaskStorage_ListTasks_NonASCII(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	alice := createTestUser(t, ctx, s, "alice")
	createTestTask(t, ctx, s, alice, "Äpfel kaufen")
	createTestTask(t, ctx, s, alice, "Проект Альфа")
	createTestTask(t, ctx, s, alice, "proj plan")

	tests := []struct {
		search string
		want   []string
	}{
		{search: "Äpfel", want: []string{"Äpfel kaufen"}},
		{search: "äPFEL", want: []string{"Äpfel kaufen"}},
		{search: "Проект", want: []string{"Проект Альфа"}},
		{search: "проект", want: []string{"Проект Альфа"}},
		{search: "АЛЬФА", want: []string{"Проект Альфа"}},
		{search: "PROJ", want: []string{"proj plan"}},
	}

	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			tasks, err := s.ListTasks(ctx, tt.search)
			require.NoError(t, err)

			titles := make([]string, 0, len(tasks))
			for _, task := range tasks {
				titles = append(titles, task.Title)
			}
			assert.Equal(t, tt.want, titles)
		})
	}
}

func TestTaskStorage_ListTasks_SearchIgnoresDescription(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	alice := createTestUser(t, ctx, s, "alice")
	task := &models.Task{
		Title:       "weekly review",
		Description: "project status",
		DueDate:     "2025-01-01",
		CreatedAt:   time.Now().UTC(),
		UserID:      alice.ID,
	}
	require.NoError(t, s.CreateTask(ctx, task))

	tasks, err := s.ListTasks(ctx, "proj")
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestTaskStorage_UpdateTask(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	alice := createTestUser(t, ctx, s, "alice")
	task := createTestTask(t, ctx, s, alice, "t1")

	task.Title = "t1 renamed"
	task.Completed = true
	task.DueDate = "2025-02-02"
	require.NoError(t, s.UpdateTask(ctx, task))

	updated, err := s.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "t1 renamed", updated.Title)
	assert.True(t, updated.Completed)
	assert.Equal(t, "2025-02-02", updated.DueDate)
	assert.Equal(t, alice.ID, updated.UserID, "владелец не меняется")
}

func TestTaskStorage_UpdateTask_NotFound(t *testing.T) {
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	err := s.UpdateTask(context.Background(), &models.Task{ID: 77, Title: "x"})
	assert.ErrorIs(t, err, storage.ErrTaskNotFound)
}

func TestTaskStorage_DeleteTask(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	alice := createTestUser(t, ctx, s, "alice")
	task := createTestTask(t, ctx, s, alice, "t1")

	require.NoError(t, s.DeleteTask(ctx, task.ID))

	_, err := s.GetTask(ctx, task.ID)
	assert.ErrorIs(t, err, storage.ErrTaskNotFound)

	err = s.DeleteTask(ctx, task.ID)
	assert.ErrorIs(t, err, storage.ErrTaskNotFound)
}
