package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/invotrack/invotrack/internal/models"
	"github.com/invotrack/invotrack/internal/storage"
)

// CreateUser inserts a new user inside a transaction.
// The duplicate-email check runs in the same transaction as the insert so
// two concurrent registrations cannot both succeed; the UNIQUE constraint
// backs it up.
func (s *SQLiteStore) CreateUser(ctx context.Context, email, passwordHash string) (*models.User, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM users WHERE email = ?", email,
	).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists > 0 {
		return nil, storage.ErrEmailTaken
	}

	res, err := tx.ExecContext(ctx,
		"INSERT INTO users (email, password_hash, is_active) VALUES (?, ?, 1)",
		email, passwordHash,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, storage.ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get user ID: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.User{
		ID:           id,
		Email:        email,
		PasswordHash: passwordHash,
		IsActive:     true,
	}, nil
}

// GetUserByEmail retrieves a user by their email address.
func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		"SELECT id, email, password_hash, is_active FROM users WHERE email = ?",
		email,
	))
}

// GetUserByID retrieves a user by their ID.
func (s *SQLiteStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		"SELECT id, email, password_hash, is_active FROM users WHERE id = ?",
		id,
	))
}

// DeleteUser removes a user; the foreign key cascade removes their invoices.
func (s *SQLiteStore) DeleteUser(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return user, nil
}
