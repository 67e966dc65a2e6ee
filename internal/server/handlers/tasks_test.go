package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/gophtasks/internal/models"
	"github.com/iudanet/gophtasks/pkg/api"
)

var (
	testAlice = &models.User{ID: 1, FirstName: "Alice", Username: "alice", Email: "a@x.com"}
	testBob   = &models.User{ID: 2, FirstName: "Bob", Username: "bob", Email: "b@x.com"}
)

// setupTaskHandler returns a handler over a storage holding one task per title, owned by alice
func setupTaskHandler(titles ...string) (*TaskHandler, *mockTaskStorage) {
	tasks := newMockTaskStorage(testAlice, testBob)
	for _, title := range titles {
		tasks.add(&models.Task{
			Title:       title,
			Description: "d",
			DueDate:     "2025-01-01",
			CreatedAt:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			UserID:      testAlice.ID,
		})
	}
	return NewTaskHandler(setupTestLogger(), tasks), tasks
}

func TestTaskHandler_List(t *testing.T) {
	handler, _ := setupTaskHandler("Write Project plan", "buy milk", "PROJECTOR repair")

	tests := []struct {
		name       string
		target     string
		wantTitles []string
	}{
		{name: "all", target: "/tasks", wantTitles: []string{"Write Project plan", "buy milk", "PROJECTOR repair"}},
		{name: "search", target: "/tasks?search=proj", wantTitles: []string{"Write Project plan", "PROJECTOR repair"}},
		{name: "empty search", target: "/tasks?search=", wantTitles: []string{"Write Project plan", "buy milk", "PROJECTOR repair"}},
		{name: "no match", target: "/tasks?search=zzz", wantTitles: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.List(w, httptest.NewRequest(http.MethodGet, tt.target, nil))

			require.Equal(t, http.StatusOK, w.Code)

			var resp []api.Task
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))

			titles := make([]string, 0, len(resp))
			for _, task := range resp {
				titles = append(titles, task.Title)
			}
			assert.Equal(t, tt.wantTitles, titles)
		})
	}
}

func TestTaskHandler_List_EmptyIsArray(t *testing.T) {
	handler, _ := setupTaskHandler()

	w := httptest.NewRecorder()
	handler.List(w, httptest.NewRequest(http.MethodGet, "/tasks", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestTaskHandler_List_StorageError(t *testing.T) {
	handler, tasks := setupTaskHandler()
	tasks.listError = errors.New("no such table: task")

	w := httptest.NewRecorder()
	handler.List(w, httptest.NewRequest(http.MethodGet, "/tasks", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "no such table")
}

func TestTaskHandler_Get(t *testing.T) {
	handler, _ := setupTaskHandler("t1")

	w := httptest.NewRecorder()
	handler.Get(w, withID(httptest.NewRequest(http.MethodGet, "/tasks/1", nil), "1"))

	require.Equal(t, http.StatusOK, w.Code)

	var resp api.Task
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "t1", resp.Title)
	assert.Equal(t, "2025-01-01", resp.DueDate)
	assert.False(t, resp.Completed)
	require.NotNil(t, resp.Author)
	assert.Equal(t, "alice", resp.Author.Username)

	w = httptest.NewRecorder()
	handler.Get(w, withID(httptest.NewRequest(http.MethodGet, "/tasks/7", nil), "7"))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "A task with the ID of 7 does not exist", decodeError(t, w))
}

func TestTaskHandler_Create(t *testing.T) {
	handler, tasks := setupTaskHandler()

	body := `{"title":"t1","description":"d","dueDate":"2025-01-01"}`
	req := withPrincipal(newJSONRequest(http.MethodPost, "/tasks", body), testAlice)
	w := httptest.NewRecorder()
	handler.Create(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp api.Task
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "t1", resp.Title)
	assert.False(t, resp.Completed)
	assert.False(t, resp.CreatedAt.IsZero())
	require.NotNil(t, resp.Author)
	assert.Equal(t, "alice", resp.Author.Username)

	require.Len(t, tasks.tasks, 1)
	assert.Equal(t, testAlice.ID, tasks.tasks[resp.ID].UserID)
}

func TestTaskHandler_Create_Validation(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		wantMessage string
	}{
		{
			name:        "wrong content type",
			contentType: "application/x-www-form-urlencoded",
			body:        `title=t1`,
			wantMessage: "Your content-type must be application/json",
		},
		{
			name:        "missing due date",
			contentType: "application/json",
			body:        `{"title":"t1","description":"d"}`,
			wantMessage: "dueDate must be in the request body",
		},
		{
			name:        "missing everything",
			contentType: "application/json; charset=utf-8",
			body:        `{"completed":true}`,
			wantMessage: "title, description, dueDate must be in the request body",
		},
		{
			name:        "malformed",
			contentType: "application/json",
			body:        `not json`,
			wantMessage: "invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, tasks := setupTaskHandler()

			req := httptest.NewRequest(http.MethodPost, "/tasks", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)
			w := httptest.NewRecorder()
			handler.Create(w, withPrincipal(req, testAlice))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.wantMessage, decodeError(t, w))
			assert.Empty(t, tasks.tasks)
		})
	}
}

func TestTaskHandler_Update(t *testing.T) {
	tests := []struct {
		name        string
		principal   *models.User
		id          string
		contentType string
		body        string
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "owner updates",
			principal:   testAlice,
			id:          "1",
			contentType: "application/json",
			body:        `{"completed":true,"title":"renamed"}`,
			wantStatus:  http.StatusOK,
		},
		{
			name:        "non owner forbidden",
			principal:   testBob,
			id:          "1",
			contentType: "application/json",
			body:        `{"completed":true}`,
			wantStatus:  http.StatusForbidden,
			wantMessage: "This is not your task. You do not have permission to edit",
		},
		{
			name:        "unknown task",
			principal:   testBob,
			id:          "9",
			contentType: "application/json",
			body:        `{"completed":true}`,
			wantStatus:  http.StatusNotFound,
			wantMessage: "Task with an ID of 9 does not exist",
		},
		{
			name:        "content type checked first",
			principal:   testBob,
			id:          "9",
			contentType: "text/plain",
			body:        `{"completed":true}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Your content-type must be application/json",
		},
		{
			name:        "malformed body from owner",
			principal:   testAlice,
			id:          "1",
			contentType: "application/json",
			body:        `{"completed":"yes"}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, tasks := setupTaskHandler("t1")

			req := httptest.NewRequest(http.MethodPut, "/tasks/"+tt.id, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)
			w := httptest.NewRecorder()
			handler.Update(w, withID(withPrincipal(req, tt.principal), tt.id))

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, decodeError(t, w))
				assert.False(t, tasks.tasks[1].Completed)
				assert.Equal(t, "t1", tasks.tasks[1].Title)
				return
			}

			var resp api.Task
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.True(t, resp.Completed)
			assert.Equal(t, "renamed", resp.Title)
			assert.Equal(t, "d", resp.Description, "fields absent from the body are kept")
			assert.Equal(t, "alice", resp.Author.Username)
			assert.True(t, tasks.tasks[1].Completed)
		})
	}
}

func TestTaskHandler_Delete(t *testing.T) {
	tests := []struct {
		name        string
		principal   *models.User
		id          string
		wantStatus  int
		wantMessage string
	}{
		{name: "owner", principal: testAlice, id: "1", wantStatus: http.StatusOK},
		{
			name:        "non owner",
			principal:   testBob,
			id:          "1",
			wantStatus:  http.StatusForbidden,
			wantMessage: "You do not have permission to delete this task",
		},
		{
			name:        "unknown as owner",
			principal:   testAlice,
			id:          "5",
			wantStatus:  http.StatusNotFound,
			wantMessage: "This task does not exist",
		},
		{
			name:        "unknown as other",
			principal:   testBob,
			id:          "5",
			wantStatus:  http.StatusNotFound,
			wantMessage: "This task does not exist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, tasks := setupTaskHandler("t1")

			req := httptest.NewRequest(http.MethodDelete, "/tasks/"+tt.id, nil)
			w := httptest.NewRecorder()
			handler.Delete(w, withID(withPrincipal(req, tt.principal), tt.id))

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, decodeError(t, w))
				assert.Contains(t, tasks.tasks, int64(1))
				return
			}

			var resp api.SuccessResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Equal(t, "t1 was deleted successfully", resp.Success)
			assert.Empty(t, tasks.tasks)
		})
	}
}

func TestTaskHandler_MutationStorageError(t *testing.T) {
	handler, tasks := setupTaskHandler("t1")
	tasks.saveError = errors.New("database is locked")

	req := withID(withPrincipal(newJSONRequest(http.MethodPut, "/tasks/1", `{"completed":true}`), testAlice), "1")
	w := httptest.NewRecorder()
	handler.Update(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	req = withID(withPrincipal(httptest.NewRequest(http.MethodDelete, "/tasks/1", nil), testAlice), "1")
	w = httptest.NewRecorder()
	handler.Delete(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal server error", decodeError(t, w))
}
