package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mzp/fairshare/internal/models"
)

// CreateNotification persists a new notification to the database.
func (s *SQLiteStore) CreateNotification(ctx context.Context, n *models.Notification) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.CreatedAt == 0 {
		n.CreatedAt = time.Now().Unix()
	}
	if n.Status == "" {
		n.Status = models.NotificationPending
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO notifications (id, recipient_id, sender_id, group_id, type, status, is_read, message, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.RecipientID, n.SenderID, nullable(n.GroupID),
		string(n.Type), string(n.Status), n.Read, nullable(n.Message), n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	return nil
}

// GetNotification retrieves a notification by ID.
func (s *SQLiteStore) GetNotification(ctx context.Context, notificationID string) (*models.Notification, error) {
	row := s.db.QueryRowContext(ctx, notificationSelect+` WHERE id = ?`, notificationID)
	n, err := scanNotification(row)
	if err == sql.ErrNoRows {
		return nil, &models.NotFoundError{Resource: "notification", Key: notificationID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}
	return n, nil
}

// UpdateNotification rewrites the notification's status, read flag, and
// message.
func (s *SQLiteStore) UpdateNotification(ctx context.Context, n *models.Notification) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE notifications SET status = ?, is_read = ?, message = ? WHERE id = ?`,
		string(n.Status), n.Read, nullable(n.Message), n.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update notification: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return &models.NotFoundError{Resource: "notification", Key: n.ID}
	}
	return nil
}

// ListNotificationsForUser returns the user's notifications, newest first.
func (s *SQLiteStore) ListNotificationsForUser(ctx context.Context, userID string) ([]models.Notification, error) {
	return s.listNotifications(ctx,
		notificationSelect+` WHERE recipient_id = ? ORDER BY created_at DESC`, userID)
}

// ListPendingNotificationsForUser returns the user's PENDING
// notifications, newest first.
func (s *SQLiteStore) ListPendingNotificationsForUser(ctx context.Context, userID string) ([]models.Notification, error) {
	return s.listNotifications(ctx,
		notificationSelect+` WHERE recipient_id = ? AND status = ? ORDER BY created_at DESC`,
		userID, string(models.NotificationPending))
}

func (s *SQLiteStore) listNotifications(ctx context.Context, query string, args ...any) ([]models.Notification, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notifications: %w", err)
	}
	return notifications, nil
}

const notificationSelect = `
	SELECT id, recipient_id, sender_id, group_id, type, status, is_read, message, created_at
	FROM notifications`

func scanNotification(row rowScanner) (*models.Notification, error) {
	n := &models.Notification{}
	var groupID, message sql.NullString
	var typ, status string
	err := row.Scan(&n.ID, &n.RecipientID, &n.SenderID, &groupID, &typ, &status, &n.Read, &message, &n.CreatedAt)
	if err != nil {
		return nil, err
	}
	n.GroupID = groupID.String
	n.Message = message.String
	n.Type = models.NotificationType(typ)
	n.Status = models.NotificationStatus(status)
	return n, nil
}
