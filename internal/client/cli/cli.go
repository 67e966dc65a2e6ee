package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/iudanet/gophtasks/internal/client/iocli"
	"github.com/iudanet/gophtasks/internal/client/storage"
	"github.com/iudanet/gophtasks/pkg/api"
)

var errNotLoggedIn = errors.New("not authenticated. Please run 'gophtasks login' first")

// APIClient is the subset of the HTTP client the commands use
type APIClient interface {
	Register(ctx context.Context, req api.CreateUserRequest) (*api.User, error)
	Token(ctx context.Context, username, password string) (*api.TokenResponse, error)
	RevokeToken(ctx context.Context, token string) error
	Me(ctx context.Context, token string) (*api.User, error)
	DeleteUser(ctx context.Context, token string, userID int64) (string, error)
	ListTasks(ctx context.Context, search string) ([]api.Task, error)
	GetTask(ctx context.Context, taskID int64) (*api.Task, error)
	CreateTask(ctx context.Context, token string, req api.CreateTaskRequest) (*api.Task, error)
	UpdateTask(ctx context.Context, token string, taskID int64, req api.UpdateTaskRequest) (*api.Task, error)
	DeleteTask(ctx context.Context, token string, taskID int64) (string, error)
}

// Cli runs client commands against the API and the local session store
type Cli struct {
	io        iocli.IO
	apiClient APIClient
	sessions  storage.SessionStorage
	now       func() time.Time
	serverURL string
}

// New creates a Cli that talks to the user through io
func New(io iocli.IO, apiClient APIClient, sessions storage.SessionStorage, serverURL string) *Cli {
	return &Cli{
		io:        io,
		apiClient: apiClient,
		sessions:  sessions,
		serverURL: serverURL,
		now:       time.Now,
	}
}

// session returns the stored session if it is still valid, errNotLoggedIn otherwise
func (c *Cli) session(ctx context.Context) (*storage.Session, error) {
	s, err := c.sessions.GetSession(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return nil, errNotLoggedIn
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if !s.Valid(c.now()) {
		return nil, fmt.Errorf("session expired. Please run 'gophtasks login' again")
	}
	return s, nil
}

// PrintUsage writes the command reference to w
func PrintUsage(w io.Writer) {
	_, _ = fmt.Fprint(w, `GophTasks Client

Usage:
  gophtasks [OPTIONS] COMMAND [ARGS]

Options:
  --version         Show version information
  --server URL      Server URL (default: http://localhost:8080)
  --db PATH         Path to local session database (default: gophtasks-client.db)

Commands:
  register          Create a new account
  login             Get a token and save the session
  logout            Revoke the token and delete the session
  status            Show authentication status
  me                Show the current user
  unregister        Delete the current account and all its tasks
  list [search]     List tasks, optionally filtered by title
  get <id>          Show a task
  add               Create a task
  edit <id>         Change a task
  done <id>         Mark a task as completed
  delete <id>       Delete a task

Examples:
  gophtasks register
  gophtasks login
  gophtasks list project
  gophtasks done 3
  gophtasks --server https://example.com login
`)
}
