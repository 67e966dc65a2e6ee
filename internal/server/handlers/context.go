package handlers

import (
	"context"

	"github.com/iudanet/gophtasks/internal/models"
)

// contextKey is the type of context keys set by this package
type contextKey string

// principalKey stores the authenticated user
const principalKey contextKey = "principal"

// WithUser returns a copy of ctx carrying user as the request principal
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, principalKey, user)
}

// CurrentUser returns the principal resolved by the auth guard of the route
func CurrentUser(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(principalKey).(*models.User)
	return user, ok && user != nil
}
