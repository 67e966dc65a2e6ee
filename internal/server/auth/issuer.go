// Package auth issues and validates the opaque bearer tokens stored on the user row.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/gophtasks/internal/crypto"
	"github.com/iudanet/gophtasks/internal/models"
	"github.com/iudanet/gophtasks/internal/server/storage"
)

const (
	// DefaultTokenTTL is how long a freshly minted token stays valid
	DefaultTokenTTL = time.Hour
	// DefaultReuseMargin is the remaining lifetime below which a token is replaced
	DefaultReuseMargin = time.Minute
)

var (
	// ErrInvalidToken is returned for empty, unknown and expired tokens alike
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrInvalidCredentials is returned when username or password do not match
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// TokenStore is the part of the user storage the issuer needs
type TokenStore interface {
	GetUserByToken(ctx context.Context, token string) (*models.User, error)
	UpdateToken(ctx context.Context, userID int64, token string, expiresAt time.Time) error
}

// Issuer mints, reuses and validates bearer tokens
type Issuer struct {
	store       TokenStore
	now         func() time.Time
	generate    func() (string, error)
	ttl         time.Duration
	reuseMargin time.Duration
}

// Option configures an Issuer
type Option func(*Issuer)

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) {
		i.now = now
	}
}

// WithTTL sets token lifetime
func WithTTL(ttl time.Duration) Option {
	return func(i *Issuer) {
		if ttl > 0 {
			i.ttl = ttl
		}
	}
}

// WithReuseMargin sets the safety margin for token reuse
func WithReuseMargin(margin time.Duration) Option {
	return func(i *Issuer) {
		if margin >= 0 {
			i.reuseMargin = margin
		}
	}
}

// WithGenerator overrides the token generator
func WithGenerator(generate func() (string, error)) Option {
	return func(i *Issuer) {
		i.generate = generate
	}
}

// NewIssuer creates an issuer backed by the user storage
func NewIssuer(store TokenStore, opts ...Option) *Issuer {
	i := &Issuer{
		store:       store,
		now:         time.Now,
		generate:    crypto.GenerateToken,
		ttl:         DefaultTokenTTL,
		reuseMargin: DefaultReuseMargin,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// GetOrIssue returns the user's current token when it outlives the reuse
// margin, otherwise mints a new one and persists it on the user row.
// The user is updated in place.
func (i *Issuer) GetOrIssue(ctx context.Context, user *models.User) (string, time.Time, error) {
	now := i.now().UTC()

	if user.HasToken(now.Add(i.reuseMargin)) {
		return user.Token, user.TokenExpiration, nil
	}

	token, err := i.generate()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate token: %w", err)
	}
	expiresAt := now.Add(i.ttl)

	if err := i.store.UpdateToken(ctx, user.ID, token, expiresAt); err != nil {
		return "", time.Time{}, fmt.Errorf("failed to save token: %w", err)
	}

	user.Token = token
	user.TokenExpiration = expiresAt

	return token, expiresAt, nil
}

// Validate resolves token to its user. Missing, unknown and expired tokens
// all return ErrInvalidToken.
func (i *Issuer) Validate(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	user, err := i.store.GetUserByToken(ctx, token)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to look up token: %w", err)
	}

	if !user.HasToken(i.now()) {
		return nil, ErrInvalidToken
	}

	return user, nil
}

// Revoke expires the user's token immediately
func (i *Issuer) Revoke(ctx context.Context, user *models.User) error {
	expiresAt := i.now().UTC().Add(-time.Second)

	if err := i.store.UpdateToken(ctx, user.ID, user.Token, expiresAt); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	user.TokenExpiration = expiresAt
	return nil
}
