package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/gophtasks/internal/crypto"
	"github.com/iudanet/gophtasks/internal/models"
	"github.com/iudanet/gophtasks/internal/server/storage"
	"github.com/iudanet/gophtasks/pkg/api"
)

// TokenIssuer выдает и отзывает bearer токены
type TokenIssuer interface {
	GetOrIssue(ctx context.Context, user *models.User) (string, time.Time, error)
	Revoke(ctx context.Context, user *models.User) error
}

// UserHandler обрабатывает запросы пользователей и токенов
type UserHandler struct {
	responder
	users  storage.UserStorage
	issuer TokenIssuer
	now    func() time.Time
}

// NewUserHandler создает новый handler для пользователей
func NewUserHandler(logger *slog.Logger, users storage.UserStorage, issuer TokenIssuer) *UserHandler {
	return &UserHandler{
		responder: responder{logger: logger},
		users:     users,
		issuer:    issuer,
		now:       time.Now,
	}
}

// Create обрабатывает POST /users
// Регистрация нового пользователя
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !isJSON(r) {
		h.sendError(w, msgContentType, http.StatusBadRequest)
		return
	}

	var req api.CreateUserRequest
	if msg, ok := decodeRequired(w, r, api.CreateUserFields, &req); !ok {
		h.logger.WarnContext(ctx, "invalid create user request", slog.String("reason", msg))
		h.sendError(w, msg, http.StatusBadRequest)
		return
	}

	user := &models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Email:     req.Email,
		CreatedAt: h.now().UTC(),
	}

	if err := user.SetPassword(req.Password); err != nil {
		if errors.Is(err, crypto.ErrPasswordTooLong) {
			h.sendError(w, "password must be at most 72 bytes", http.StatusBadRequest)
			return
		}
		h.sendInternalError(w, r, "failed to hash password", err)
		return
	}

	if err := h.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			h.logger.WarnContext(ctx, "user already exists", slog.String("username", req.Username))
			h.sendError(w, "A user with that username and/or email already exists", http.StatusBadRequest)
			return
		}
		h.sendInternalError(w, r, "failed to create user", err)
		return
	}

	h.logger.InfoContext(ctx, "user registered successfully",
		slog.String("username", user.Username),
		slog.Int64("user_id", user.ID))

	h.sendJSON(w, toAPIUser(user), http.StatusCreated)
}

// Delete обрабатывает DELETE /users/{id}
// Пользователь может удалить только себя, его задачи удаляются каскадно
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal, ok := CurrentUser(ctx)
	if !ok {
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	userID, ok := pathID(r)
	if !ok {
		h.sendError(w, "This user does not exist", http.StatusNotFound)
		return
	}

	user, err := h.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			h.sendError(w, "This user does not exist", http.StatusNotFound)
			return
		}
		h.sendInternalError(w, r, "failed to get user", err)
		return
	}

	if user.ID != principal.ID {
		h.logger.WarnContext(ctx, "user delete forbidden",
			slog.Int64("user_id", user.ID),
			slog.Int64("principal_id", principal.ID))
		h.sendError(w, "You do not have permission to delete this user", http.StatusForbidden)
		return
	}

	if err := h.users.DeleteUser(ctx, user.ID); err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			h.sendError(w, "This user does not exist", http.StatusNotFound)
			return
		}
		h.sendInternalError(w, r, "failed to delete user", err)
		return
	}

	h.logger.InfoContext(ctx, "user deleted", slog.Int64("user_id", user.ID))

	h.sendJSON(w, api.SuccessResponse{
		Success: fmt.Sprintf("User '%s' was deleted successfully", user.FirstName),
	}, http.StatusOK)
}

// Token обрабатывает GET /token
// Возвращает действующий токен или выпускает новый
func (h *UserHandler) Token(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := CurrentUser(ctx)
	if !ok {
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	token, expiresAt, err := h.issuer.GetOrIssue(ctx, user)
	if err != nil {
		h.sendInternalError(w, r, "failed to issue token", err)
		return
	}

	h.logger.InfoContext(ctx, "token issued",
		slog.Int64("user_id", user.ID),
		slog.Time("expires_at", expiresAt))

	h.sendJSON(w, api.TokenResponse{
		Token:           token,
		TokenExpiration: expiresAt.UTC(),
	}, http.StatusOK)
}

// RevokeToken обрабатывает DELETE /token
// Отзывает текущий токен пользователя
func (h *UserHandler) RevokeToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := CurrentUser(ctx)
	if !ok {
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.issuer.Revoke(ctx, user); err != nil {
		h.sendInternalError(w, r, "failed to revoke token", err)
		return
	}

	h.logger.InfoContext(ctx, "token revoked", slog.Int64("user_id", user.ID))

	h.sendJSON(w, api.SuccessResponse{Success: "Token was revoked successfully"}, http.StatusOK)
}

// Me обрабатывает GET /users/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r.Context())
	if !ok {
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	h.sendJSON(w, toAPIUser(user), http.StatusOK)
}
