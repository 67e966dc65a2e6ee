package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/iudanet/gophtasks/pkg/api"
)

// Error описывает ответ сервера с кодом вне 2xx
type Error struct {
	Message    string
	StatusCode int
}

func (e *Error) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
}

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient создает новый API клиент
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Учетные данные уходят только на тот же host:port,
				// net/http сравнивает хосты без порта
				if len(via) > 0 && req.URL.Host != via[0].URL.Host {
					req.Header.Del("Authorization")
				}
				return nil
			},
		},
	}
}

type authFunc func(*http.Request)

func bearer(token string) authFunc {
	return func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+token)
	}
}

func basic(username, password string) authFunc {
	return func(r *http.Request) {
		r.SetBasicAuth(username, password)
	}
}

// Register регистрирует нового пользователя
func (c *Client) Register(ctx context.Context, req api.CreateUserRequest) (*api.User, error) {
	var resp api.User
	if err := c.doRequest(ctx, http.MethodPost, "/users", nil, req, &resp); err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}
	return &resp, nil
}

// Token получает bearer токен по логину и паролю
func (c *Client) Token(ctx context.Context, username, password string) (*api.TokenResponse, error) {
	var resp api.TokenResponse
	if err := c.doRequest(ctx, http.MethodGet, "/token", basic(username, password), nil, &resp); err != nil {
		return nil, fmt.Errorf("token request failed: %w", err)
	}
	return &resp, nil
}

// RevokeToken отзывает текущий токен
func (c *Client) RevokeToken(ctx context.Context, token string) error {
	if err := c.doRequest(ctx, http.MethodDelete, "/token", bearer(token), nil, nil); err != nil {
		return fmt.Errorf("revoke token request failed: %w", err)
	}
	return nil
}

// Me возвращает владельца токена
func (c *Client) Me(ctx context.Context, token string) (*api.User, error) {
	var resp api.User
	if err := c.doRequest(ctx, http.MethodGet, "/users/me", bearer(token), nil, &resp); err != nil {
		return nil, fmt.Errorf("me request failed: %w", err)
	}
	return &resp, nil
}

// DeleteUser удаляет учетную запись вместе с задачами
func (c *Client) DeleteUser(ctx context.Context, token string, userID int64) (string, error) {
	var resp api.SuccessResponse
	path := "/users/" + strconv.FormatInt(userID, 10)
	if err := c.doRequest(ctx, http.MethodDelete, path, bearer(token), nil, &resp); err != nil {
		return "", fmt.Errorf("delete user request failed: %w", err)
	}
	return resp.Success, nil
}

// ListTasks получает список задач, с фильтром по названию если search не пуст
func (c *Client) ListTasks(ctx context.Context, search string) ([]api.Task, error) {
	path := "/tasks"
	if search != "" {
		path += "?" + url.Values{"search": {search}}.Encode()
	}

	var resp []api.Task
	if err := c.doRequest(ctx, http.MethodGet, path, nil, nil, &resp); err != nil {
		return nil, fmt.Errorf("list tasks request failed: %w", err)
	}
	return resp, nil
}

// GetTask получает задачу по ID
func (c *Client) GetTask(ctx context.Context, taskID int64) (*api.Task, error) {
	var resp api.Task
	if err := c.doRequest(ctx, http.MethodGet, taskPath(taskID), nil, nil, &resp); err != nil {
		return nil, fmt.Errorf("get task request failed: %w", err)
	}
	return &resp, nil
}

// CreateTask создает задачу от имени владельца токена
func (c *Client) CreateTask(ctx context.Context, token string, req api.CreateTaskRequest) (*api.Task, error) {
	var resp api.Task
	if err := c.doRequest(ctx, http.MethodPost, "/tasks", bearer(token), req, &resp); err != nil {
		return nil, fmt.Errorf("create task request failed: %w", err)
	}
	return &resp, nil
}

// UpdateTask применяет частичное обновление
func (c *Client) UpdateTask(ctx context.Context, token string, taskID int64, req api.UpdateTaskRequest) (*api.Task, error) {
	var resp api.Task
	if err := c.doRequest(ctx, http.MethodPut, taskPath(taskID), bearer(token), req, &resp); err != nil {
		return nil, fmt.Errorf("update task request failed: %w", err)
	}
	return &resp, nil
}

// DeleteTask удаляет задачу
func (c *Client) DeleteTask(ctx context.Context, token string, taskID int64) (string, error) {
	var resp api.SuccessResponse
	if err := c.doRequest(ctx, http.MethodDelete, taskPath(taskID), bearer(token), nil, &resp); err != nil {
		return "", fmt.Errorf("delete task request failed: %w", err)
	}
	return resp.Success, nil
}

func taskPath(taskID int64) string {
	return "/tasks/" + strconv.FormatInt(taskID, 10)
}

// doRequest выполняет HTTP запрос
func (c *Client) doRequest(ctx context.Context, method, path string, auth authFunc, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != nil {
		auth(req)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Читаем тело ответа
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	// Проверяем статус код
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != "" {
			return &Error{StatusCode: resp.StatusCode, Message: errResp.Error}
		}
		return &Error{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	// Декодируем успешный ответ
	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
