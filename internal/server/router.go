// Package server wires handlers, auth guards and middleware into the HTTP API.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/iudanet/gophtasks/internal/server/auth"
	"github.com/iudanet/gophtasks/internal/server/handlers"
	"github.com/iudanet/gophtasks/internal/server/middleware"
	"github.com/iudanet/gophtasks/internal/server/storage"
	"github.com/iudanet/gophtasks/pkg/api"
)

// Storage is everything the API needs from a backend
type Storage interface {
	storage.UserStorage
	storage.TaskStorage
	handlers.Pinger
}

// Deps holds the collaborators of the router
type Deps struct {
	Logger  *slog.Logger
	Storage Storage
	Issuer  *auth.Issuer
	Metrics *middleware.Metrics // nil disables instrumentation
	Version string
}

// NewRouter builds the API handler
func NewRouter(d Deps) http.Handler {
	home := handlers.NewHomeHandler(d.Logger)
	users := handlers.NewUserHandler(d.Logger, d.Storage, d.Issuer)
	tasks := handlers.NewTaskHandler(d.Logger, d.Storage)
	health := handlers.NewHealthHandler(d.Logger, d.Storage, d.Version)

	basicAuth := middleware.BasicAuth(d.Logger, d.Storage)
	tokenAuth := middleware.TokenAuth(d.Logger, d.Issuer)

	r := mux.NewRouter()
	r.NotFoundHandler = jsonError(http.StatusNotFound, "not found")
	r.MethodNotAllowedHandler = jsonError(http.StatusMethodNotAllowed, "method not allowed")

	if d.Metrics != nil {
		r.Use(middleware.HTTPMetricsMiddleware(d.Metrics))
	}

	r.HandleFunc("/", home.Index).Methods(http.MethodGet)
	r.HandleFunc("/healthz", health.Health).Methods(http.MethodGet)

	// Пользователи и токены
	r.HandleFunc("/users", users.Create).Methods(http.MethodPost)
	r.Handle("/users/me", tokenAuth(http.HandlerFunc(users.Me))).Methods(http.MethodGet)
	r.Handle("/users/{id:[0-9]+}", tokenAuth(http.HandlerFunc(users.Delete))).Methods(http.MethodDelete)
	r.Handle("/token", basicAuth(http.HandlerFunc(users.Token))).Methods(http.MethodGet)
	r.Handle("/token", tokenAuth(http.HandlerFunc(users.RevokeToken))).Methods(http.MethodDelete)

	// Задачи
	r.HandleFunc("/tasks", tasks.List).Methods(http.MethodGet)
	r.Handle("/tasks", tokenAuth(http.HandlerFunc(tasks.Create))).Methods(http.MethodPost)
	r.HandleFunc("/tasks/{id:[0-9]+}", tasks.Get).Methods(http.MethodGet)
	r.Handle("/tasks/{id:[0-9]+}", tokenAuth(http.HandlerFunc(tasks.Update))).Methods(http.MethodPut)
	r.Handle("/tasks/{id:[0-9]+}", tokenAuth(http.HandlerFunc(tasks.Delete))).Methods(http.MethodDelete)

	var h http.Handler = r
	h = middleware.LoggingWithSkip(d.Logger, []string{"/healthz"})(h)
	h = middleware.RequestIDMiddleware(h)
	h = middleware.RecoveryMiddleware(d.Logger)(h)

	return h
}

func jsonError(status int, message string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: message})
	})
}
