package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/iudanet/gophtasks/internal/models"
	"github.com/iudanet/gophtasks/internal/server/auth"
	"github.com/iudanet/gophtasks/internal/server/handlers"
)

// Realm is sent in WWW-Authenticate challenges
const Realm = "gophtasks"

// TokenValidator resolves a bearer token to its user
type TokenValidator interface {
	Validate(ctx context.Context, token string) (*models.User, error)
}

// BasicAuth authenticates the request with HTTP Basic username and password
func BasicAuth(logger *slog.Logger, users auth.UserFinder) func(http.Handler) http.Handler {
	challenge := `Basic realm="` + Realm + `"`

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			username, password, ok := r.BasicAuth()
			if !ok {
				logger.WarnContext(ctx, "missing basic credentials")
				unauthorized(w, challenge, "Missing username or password")
				return
			}

			user, err := auth.CheckCredentials(ctx, users, username, password)
			if err != nil {
				if errors.Is(err, auth.ErrInvalidCredentials) {
					logger.WarnContext(ctx, "invalid credentials", slog.String("username", username))
					unauthorized(w, challenge, "Invalid username or password")
					return
				}
				logger.ErrorContext(ctx, "failed to check credentials", slog.Any("error", err))
				writeJSONError(w, http.StatusInternalServerError, "internal server error")
				return
			}

			logger.DebugContext(ctx, "user authenticated", slog.Int64("user_id", user.ID), slog.String("method", "basic"))

			next.ServeHTTP(w, r.WithContext(handlers.WithUser(ctx, user)))
		})
	}
}

// TokenAuth authenticates the request with a bearer token
func TokenAuth(logger *slog.Logger, tokens TokenValidator) func(http.Handler) http.Handler {
	const challenge = "Bearer"

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			// Ожидаем формат: "Bearer <token>"
			authHeader := r.Header.Get("Authorization")
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
				logger.WarnContext(ctx, "missing or malformed bearer token")
				unauthorized(w, challenge, "Missing or invalid token")
				return
			}

			user, err := tokens.Validate(ctx, strings.TrimSpace(parts[1]))
			if err != nil {
				if errors.Is(err, auth.ErrInvalidToken) {
					logger.WarnContext(ctx, "invalid access token")
					unauthorized(w, challenge+` error="invalid_token"`, "Missing or invalid token")
					return
				}
				logger.ErrorContext(ctx, "failed to validate token", slog.Any("error", err))
				writeJSONError(w, http.StatusInternalServerError, "internal server error")
				return
			}

			logger.DebugContext(ctx, "user authenticated", slog.Int64("user_id", user.ID), slog.String("method", "token"))

			next.ServeHTTP(w, r.WithContext(handlers.WithUser(ctx, user)))
		})
	}
}

func unauthorized(w http.ResponseWriter, challenge, message string) {
	w.Header().Set("WWW-Authenticate", challenge)
	writeJSONError(w, http.StatusUnauthorized, message)
}
