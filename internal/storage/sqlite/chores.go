package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mzp/fairshare/internal/models"
)

// CreateChore persists a new chore to the database.
func (s *SQLiteStore) CreateChore(ctx context.Context, chore *models.Chore) error {
	if chore.ID == "" {
		chore.ID = uuid.New().String()
	}
	if chore.CreatedAt == 0 {
		chore.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO chores (id, group_id, title, description, due_date, status, assigned_to, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		chore.ID, chore.GroupID, chore.Title,
		nullable(chore.Description), nullable(chore.DueDate),
		chore.Status, nullable(chore.AssignedTo), chore.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert chore: %w", err)
	}
	return nil
}

// GetChore retrieves a chore by ID.
func (s *SQLiteStore) GetChore(ctx context.Context, choreID string) (*models.Chore, error) {
	chore := &models.Chore{}
	var description, dueDate, status, assignedTo sql.NullString

	err := s.db.QueryRowContext(ctx,
		`SELECT id, group_id, title, description, due_date, status, assigned_to, created_at
		 FROM chores WHERE id = ?`,
		choreID,
	).Scan(&chore.ID, &chore.GroupID, &chore.Title, &description, &dueDate, &status, &assignedTo, &chore.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, &models.NotFoundError{Resource: "chore", Key: choreID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get chore: %w", err)
	}

	chore.Description = description.String
	chore.DueDate = dueDate.String
	chore.Status = status.String
	chore.AssignedTo = assignedTo.String
	return chore, nil
}

// UpdateChore rewrites the chore's mutable fields.
func (s *SQLiteStore) UpdateChore(ctx context.Context, chore *models.Chore) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE chores SET title = ?, description = ?, due_date = ?, status = ?, assigned_to = ? WHERE id = ?`,
		chore.Title, nullable(chore.Description), nullable(chore.DueDate),
		chore.Status, nullable(chore.AssignedTo), chore.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update chore: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return &models.NotFoundError{Resource: "chore", Key: chore.ID}
	}
	return nil
}

// DeleteChore removes a chore by ID.
func (s *SQLiteStore) DeleteChore(ctx context.Context, choreID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM chores WHERE id = ?`, choreID)
	if err != nil {
		return fmt.Errorf("failed to delete chore: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return &models.NotFoundError{Resource: "chore", Key: choreID}
	}
	return nil
}

// ListGroupChores returns all chores belonging to the group.
func (s *SQLiteStore) ListGroupChores(ctx context.Context, groupID string) ([]models.Chore, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, group_id, title, description, due_date, status, assigned_to, created_at
		 FROM chores WHERE group_id = ? ORDER BY created_at`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list chores: %w", err)
	}
	defer rows.Close()

	var chores []models.Chore
	for rows.Next() {
		var chore models.Chore
		var description, dueDate, status, assignedTo sql.NullString
		if err := rows.Scan(&chore.ID, &chore.GroupID, &chore.Title, &description, &dueDate, &status, &assignedTo, &chore.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan chore: %w", err)
		}
		chore.Description = description.String
		chore.DueDate = dueDate.String
		chore.Status = status.String
		chore.AssignedTo = assignedTo.String
		chores = append(chores, chore)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate chores: %w", err)
	}
	return chores, nil
}
