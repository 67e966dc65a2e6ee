package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/gophtasks/internal/models"
	"github.com/iudanet/gophtasks/internal/server/storage"
	"github.com/iudanet/gophtasks/pkg/api"
)

// TaskHandler обрабатывает запросы задач
type TaskHandler struct {
	responder
	tasks storage.TaskStorage
	now   func() time.Time
}

// NewTaskHandler создает новый handler для задач
func NewTaskHandler(logger *slog.Logger, tasks storage.TaskStorage) *TaskHandler {
	return &TaskHandler{
		responder: responder{logger: logger},
		tasks:     tasks,
		now:       time.Now,
	}
}

// List обрабатывает GET /tasks и GET /tasks?search=X
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")

	tasks, err := h.tasks.ListTasks(r.Context(), search)
	if err != nil {
		h.sendInternalError(w, r, "failed to list tasks", err)
		return
	}

	h.sendJSON(w, toAPITasks(tasks), http.StatusOK)
}

// Get обрабатывает GET /tasks/{id}
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	taskID, ok := pathID(r)
	if !ok {
		h.sendError(w, "invalid task id", http.StatusNotFound)
		return
	}

	task, err := h.tasks.GetTask(r.Context(), taskID)
	if err != nil {
		if errors.Is(err, storage.ErrTaskNotFound) {
			h.sendError(w, fmt.Sprintf("A task with the ID of %d does not exist", taskID), http.StatusNotFound)
			return
		}
		h.sendInternalError(w, r, "failed to get task", err)
		return
	}

	h.sendJSON(w, toAPITask(task), http.StatusOK)
}

// Create обрабатывает POST /tasks
// Задача создается от имени текущего пользователя
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := CurrentUser(ctx)
	if !ok {
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	if !isJSON(r) {
		h.sendError(w, msgContentType, http.StatusBadRequest)
		return
	}

	var req api.CreateTaskRequest
	if msg, ok := decodeRequired(w, r, api.CreateTaskFields, &req); !ok {
		h.logger.WarnContext(ctx, "invalid create task request", slog.String("reason", msg))
		h.sendError(w, msg, http.StatusBadRequest)
		return
	}

	task := &models.Task{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		CreatedAt:   h.now().UTC(),
		UserID:      user.ID,
	}

	if err := h.tasks.CreateTask(ctx, task); err != nil {
		h.sendInternalError(w, r, "failed to create task", err)
		return
	}

	h.logger.InfoContext(ctx, "task created",
		slog.Int64("task_id", task.ID),
		slog.Int64("user_id", user.ID))

	h.sendJSON(w, toAPITask(task), http.StatusCreated)
}

// Update обрабатывает PUT /tasks/{id}
// Порядок проверок: content-type, существование, владелец
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := CurrentUser(ctx)
	if !ok {
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	if !isJSON(r) {
		h.sendError(w, msgContentType, http.StatusBadRequest)
		return
	}

	taskID, ok := pathID(r)
	if !ok {
		h.sendError(w, "invalid task id", http.StatusNotFound)
		return
	}

	task, err := h.tasks.GetTask(ctx, taskID)
	if err != nil {
		if errors.Is(err, storage.ErrTaskNotFound) {
			h.sendError(w, fmt.Sprintf("Task with an ID of %d does not exist", taskID), http.StatusNotFound)
			return
		}
		h.sendInternalError(w, r, "failed to get task", err)
		return
	}

	if !task.OwnedBy(user.ID) {
		h.logger.WarnContext(ctx, "task update forbidden",
			slog.Int64("task_id", task.ID),
			slog.Int64("principal_id", user.ID))
		h.sendError(w, "This is not your task. You do not have permission to edit", http.StatusForbidden)
		return
	}

	data, err := readBody(w, r)
	if err != nil {
		h.sendError(w, msgInvalidBody, http.StatusBadRequest)
		return
	}

	var req api.UpdateTaskRequest
	if err := json.Unmarshal(data, &req); err != nil {
		h.sendError(w, msgInvalidBody, http.StatusBadRequest)
		return
	}

	models.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Completed:   req.Completed,
	}.Apply(task)

	if err := h.tasks.UpdateTask(ctx, task); err != nil {
		if errors.Is(err, storage.ErrTaskNotFound) {
			h.sendError(w, fmt.Sprintf("Task with an ID of %d does not exist", taskID), http.StatusNotFound)
			return
		}
		h.sendInternalError(w, r, "failed to update task", err)
		return
	}

	h.logger.InfoContext(ctx, "task updated", slog.Int64("task_id", task.ID))

	h.sendJSON(w, toAPITask(task), http.StatusOK)
}

// Delete обрабатывает DELETE /tasks/{id}
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := CurrentUser(ctx)
	if !ok {
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	taskID, ok := pathID(r)
	if !ok {
		h.sendError(w, "This task does not exist", http.StatusNotFound)
		return
	}

	task, err := h.tasks.GetTask(ctx, taskID)
	if err != nil {
		if errors.Is(err, storage.ErrTaskNotFound) {
			h.sendError(w, "This task does not exist", http.StatusNotFound)
			return
		}
		h.sendInternalError(w, r, "failed to get task", err)
		return
	}

	if !task.OwnedBy(user.ID) {
		h.logger.WarnContext(ctx, "task delete forbidden",
			slog.Int64("task_id", task.ID),
			slog.Int64("principal_id", user.ID))
		h.sendError(w, "You do not have permission to delete this task", http.StatusForbidden)
		return
	}

	if err := h.tasks.DeleteTask(ctx, task.ID); err != nil {
		if errors.Is(err, storage.ErrTaskNotFound) {
			h.sendError(w, "This task does not exist", http.StatusNotFound)
			return
		}
		h.sendInternalError(w, r, "failed to delete task", err)
		return
	}

	h.logger.InfoContext(ctx, "task deleted", slog.Int64("task_id", task.ID))

	h.sendJSON(w, api.SuccessResponse{
		Success: fmt.Sprintf("%s was deleted successfully", task.Title),
	}, http.StatusOK)
}
