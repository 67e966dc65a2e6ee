package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/gophtasks/internal/models"
	"github.com/iudanet/gophtasks/internal/server/storage"
)

const userColumns = `id, first_name, last_name, username, email, password, date_created, token, token_expiration`

// CreateUser creates a new user in the storage
func (s *Storage) CreateUser(ctx context.Context, user *models.User) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollback(tx)

	var exists bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM "user" WHERE username = $1 OR email = $2)`,
		user.Username, user.Email,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check existing users: %w", err)
	}
	if exists {
		return storage.ErrUserAlreadyExists
	}

	query := `
		INSERT INTO "user" (first_name, last_name, username, email, password, date_created)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id int64
	err = tx.QueryRowContext(ctx, query,
		user.FirstName,
		user.LastName,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.CreatedAt,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit user: %w", err)
	}

	user.ID = id
	return nil
}

// GetUserByID retrieves user by ID
func (s *Storage) GetUserByID(ctx context.Context, userID int64) (*models.User, error) {
	return s.getUser(ctx, `SELECT `+userColumns+` FROM "user" WHERE id = $1`, userID)
}

// GetUserByUsername retrieves user by username
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getUser(ctx, `SELECT `+userColumns+` FROM "user" WHERE username = $1`, username)
}

// GetUserByToken retrieves the user holding token
func (s *Storage) GetUserByToken(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, storage.ErrUserNotFound
	}
	return s.getUser(ctx, `SELECT `+userColumns+` FROM "user" WHERE token = $1`, token)
}

// UpdateToken stores token and its expiration on the user row
func (s *Storage) UpdateToken(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	query := `UPDATE "user" SET token = $1, token_expiration = $2 WHERE id = $3`

	result, err := s.db.ExecContext(ctx, query,
		sql.NullString{String: token, Valid: token != ""},
		expiresAt,
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update token: %w", err)
	}

	return expectAffected(result, storage.ErrUserNotFound)
}

// DeleteUser deletes user by ID; tasks go with it via ON DELETE CASCADE
func (s *Storage) DeleteUser(ctx context.Context, userID int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM "user" WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return expectAffected(result, storage.ErrUserNotFound)
}

func (s *Storage) getUser(ctx context.Context, query string, arg any) (*models.User, error) {
	user := &models.User{}
	var token sql.NullString
	var tokenExpiration sql.NullTime

	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
		&token,
		&tokenExpiration,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user.Token = token.String
	if tokenExpiration.Valid {
		user.TokenExpiration = tokenExpiration.Time
	}

	return user, nil
}

// expectAffected returns notFound when the statement touched no rows
func expectAffected(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return notFound
	}

	return nil
}
