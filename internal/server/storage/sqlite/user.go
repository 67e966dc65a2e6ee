package sqlite

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

	// Один запрос на username и email; какое из полей совпало, не сообщаем
	var exists bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM "user" WHERE username = ? OR email = ?)`,
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
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := tx.ExecContext(ctx, query,
		user.FirstName,
		user.LastName,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get user id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit user: %w", err)
	}

	user.ID = id
	return nil
}

// GetUserByID retrieves user by ID
func (s *Storage) GetUserByID(ctx context.Context, userID int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM "user" WHERE id = ?`
	return s.getUser(ctx, query, userID)
}

// GetUserByUsername retrieves user by username
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM "user" WHERE username = ?`
	return s.getUser(ctx, query, username)
}

// GetUserByToken retrieves the user holding token
func (s *Storage) GetUserByToken(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, storage.ErrUserNotFound
	}
	query := `SELECT ` + userColumns + ` FROM "user" WHERE token = ?`
	return s.getUser(ctx, query, token)
}

// UpdateToken stores token and its expiration on the user row
func (s *Storage) UpdateToken(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	query := `UPDATE "user" SET token = ?, token_expiration = ? WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query,
		sql.NullString{String: token, Valid: token != ""},
		expiresAt,
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update token: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrUserNotFound
	}

	return nil
}

// DeleteUser deletes user by ID; tasks go with it via ON DELETE CASCADE
func (s *Storage) DeleteUser(ctx context.Context, userID int64) error {
	query := `DELETE FROM "user" WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrUserNotFound
	}

	return nil
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

	if token.Valid {
		user.Token = token.String
	}
	if tokenExpiration.Valid {
		user.TokenExpiration = tokenExpiration.Time
	}

	return user, nil
}
