package cli

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/iudanet/gophtasks/internal/client/iocli"
	"github.com/iudanet/gophtasks/internal/client/storage"
	"github.com/iudanet/gophtasks/pkg/api"
)

var testNow = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

// fakeAPI хранит вызовы и отдает заданные ответы
type fakeAPI struct {
	err         error
	user        *api.User
	token       *api.TokenResponse
	tasks       []api.Task
	lastUpdate  api.UpdateTaskRequest
	lastCreate  api.CreateTaskRequest
	lastRegReq  api.CreateUserRequest
	lastSearch  string
	lastToken   string
	revoked     []string
	deletedTask []int64
	deletedUser []int64
}

func (f *fakeAPI) Register(ctx context.Context, req api.CreateUserRequest) (*api.User, error) {
	f.lastRegReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &api.User{ID: 1, Username: req.Username}, nil
}

func (f *fakeAPI) Token(ctx context.Context, username, password string) (*api.TokenResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.token, nil
}

func (f *fakeAPI) RevokeToken(ctx context.Context, token string) error {
	f.revoked = append(f.revoked, token)
	return f.err
}

func (f *fakeAPI) Me(ctx context.Context, token string) (*api.User, error) {
	f.lastToken = token
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func (f *fakeAPI) DeleteUser(ctx context.Context, token string, userID int64) (string, error) {
	f.lastToken = token
	if f.err != nil {
		return "", f.err
	}
	f.deletedUser = append(f.deletedUser, userID)
	return fmt.Sprintf("User '%s' was deleted successfully", f.user.FirstName), nil
}

func (f *fakeAPI) ListTasks(ctx context.Context, search string) ([]api.Task, error) {
	f.lastSearch = search
	return f.tasks, f.err
}

func (f *fakeAPI) GetTask(ctx context.Context, taskID int64) (*api.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.tasks {
		if f.tasks[i].ID == taskID {
			return &f.tasks[i], nil
		}
	}
	return nil, fmt.Errorf("server error (404): A task with the ID of %d does not exist", taskID)
}

func (f *fakeAPI) CreateTask(ctx context.Context, token string, req api.CreateTaskRequest) (*api.Task, error) {
	f.lastToken = token
	f.lastCreate = req
	if f.err != nil {
		return nil, f.err
	}
	return &api.Task{ID: int64(len(f.tasks) + 1), Title: req.Title}, nil
}

func (f *fakeAPI) UpdateTask(ctx context.Context, token string, taskID int64, req api.UpdateTaskRequest) (*api.Task, error) {
	f.lastToken = token
	f.lastUpdate = req
	if f.err != nil {
		return nil, f.err
	}
	task, err := f.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if req.Completed != nil {
		task.Completed = *req.Completed
	}
	return task, nil
}

func (f *fakeAPI) DeleteTask(ctx context.Context, token string, taskID int64) (string, error) {
	f.lastToken = token
	if f.err != nil {
		return "", f.err
	}
	f.deletedTask = append(f.deletedTask, taskID)
	return "deleted", nil
}

// memSessions хранит сессию в памяти
type memSessions struct {
	session *storage.Session
}

func (m *memSessions) SaveSession(ctx context.Context, s *storage.Session) error {
	cp := *s
	m.session = &cp
	return nil
}

func (m *memSessions) GetSession(ctx context.Context) (*storage.Session, error) {
	if m.session == nil {
		return nil, storage.ErrSessionNotFound
	}
	cp := *m.session
	return &cp, nil
}

func (m *memSessions) DeleteSession(ctx context.Context) error {
	if m.session == nil {
		return storage.ErrSessionNotFound
	}
	m.session = nil
	return nil
}

func activeSession() *storage.Session {
	return &storage.Session{
		Username:  "alice",
		UserID:    1,
		Token:     "tok",
		ExpiresAt: testNow.Add(time.Hour),
	}
}

// newScriptedIO отдает ответы из inputs по очереди и собирает вывод
func newScriptedIO(t *testing.T, inputs ...string) (*iocli.IOMock, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer

	next := func(prompt string) (string, error) {
		out.WriteString(prompt)
		if len(inputs) == 0 {
			t.Fatalf("unexpected prompt %q", prompt)
		}
		v := inputs[0]
		inputs = inputs[1:]
		return v, nil
	}

	mock := &iocli.IOMock{
		PrintlnFunc: func(a ...any) {
			fmt.Fprintln(&out, a...)
		},
		PrintfFunc: func(format string, a ...any) {
			fmt.Fprintf(&out, format, a...)
		},
		WriteFunc: func(p []byte) (int, error) {
			return out.Write(p)
		},
		ReadInputFunc:    next,
		ReadPasswordFunc: next,
	}
	return mock, &out
}

func newTestCli(t *testing.T, fake *fakeAPI, sessions *memSessions, inputs ...string) (*Cli, *iocli.IOMock, *bytes.Buffer) {
	t.Helper()
	io, out := newScriptedIO(t, inputs...)
	c := New(io, fake, sessions, "http://localhost:8080")
	c.now = func() time.Time { return testNow }
	return c, io, out
}
