package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mzp/fairshare/internal/models"
)

// CreateUser inserts a new user into the database.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, email, display_name, password_hash, profile_picture, birthdate, gender, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.DisplayName,
		user.PasswordHash,
		nullable(user.ProfilePicture),
		nullable(user.Birthdate),
		nullable(user.Gender),
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetUserByEmail retrieves a user by their email address.
// Returns (nil, nil) when no user matches.
func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.scanUser(s.db.QueryRowContext(ctx,
		userSelect+` WHERE email = ?`, email))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

// GetUserByID retrieves a user by their ID.
func (s *SQLiteStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.scanUser(s.db.QueryRowContext(ctx,
		userSelect+` WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, &models.NotFoundError{Resource: "user", Key: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// ListUsers returns all registered users.
func (s *SQLiteStore) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, userSelect+` ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		user, err := s.scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}
	return users, nil
}

// UpdateUser rewrites the user's mutable fields.
func (s *SQLiteStore) UpdateUser(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now().Unix()

	res, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET email = ?, display_name = ?, password_hash = ?, profile_picture = ?, birthdate = ?, gender = ?, updated_at = ?
		WHERE id = ?`,
		user.Email,
		user.DisplayName,
		user.PasswordHash,
		nullable(user.ProfilePicture),
		nullable(user.Birthdate),
		nullable(user.Gender),
		user.UpdatedAt,
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return &models.NotFoundError{Resource: "user", Key: user.ID}
	}
	return nil
}

const userSelect = `
	SELECT id, email, display_name, password_hash, profile_picture, birthdate, gender, created_at, updated_at
	FROM users`

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *SQLiteStore) scanUser(row rowScanner) (*models.User, error) {
	user := &models.User{}
	var picture, birthdate, gender sql.NullString
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.DisplayName,
		&user.PasswordHash,
		&picture,
		&birthdate,
		&gender,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	user.ProfilePicture = picture.String
	user.Birthdate = birthdate.String
	user.Gender = gender.String
	return user, nil
}

// nullable maps an empty string to SQL NULL.
func nullable(v string) any {
	if v == "" {
		return nil
	}
	return v
}
