package service

import (
	"context"
	"log/slog"

	"github.com/mzp/fairshare/internal/models"
	"github.com/mzp/fairshare/internal/storage"
)

// NotificationService stores and delivers notifications: group invites
// with an accept/reject lifecycle, and fire-and-forget chore/expense
// events. It implements Notifier for the other services.
type NotificationService struct {
	store storage.Store
}

var _ Notifier = (*NotificationService)(nil)

// NewNotificationService creates a new NotificationService.
func NewNotificationService(store storage.Store) *NotificationService {
	return &NotificationService{store: store}
}

// SendInvite creates a PENDING group invite for the user behind the
// email address. Inviting an existing member is rejected.
func (s *NotificationService) SendInvite(ctx context.Context, groupID, email, senderID string) (*models.Notification, error) {
	recipient, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if recipient == nil {
		return nil, &models.NotFoundError{Resource: "user", Key: email}
	}

	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group.HasMember(recipient.ID) {
		return nil, &models.ValidationError{Reason: "User is already a member of this group"}
	}

	invite := &models.Notification{
		RecipientID: recipient.ID,
		SenderID:    senderID,
		GroupID:     group.ID,
		Type:        models.NotificationGroupInvite,
		Status:      models.NotificationPending,
	}
	if err := s.store.CreateNotification(ctx, invite); err != nil {
		return nil, err
	}

	slog.Info("Invite sent",
		"group_id", groupID, "recipient_id", recipient.ID, "sender_id", senderID)
	return invite, nil
}

// RespondToInvite answers a pending invite. Accepting joins the
// recipient to the group; either way the invite leaves PENDING and
// cannot be answered again.
func (s *NotificationService) RespondToInvite(ctx context.Context, notificationID string, accept bool) (*models.Notification, error) {
	invite, err := s.store.GetNotification(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	if invite.Status != models.NotificationPending {
		return nil, &models.ValidationError{Reason: "This invite has already been responded to"}
	}

	if accept {
		invite.Status = models.NotificationAccepted
		if err := s.store.AddGroupMember(ctx, invite.GroupID, invite.RecipientID); err != nil {
			return nil, err
		}
	} else {
		invite.Status = models.NotificationRejected
	}

	if err := s.store.UpdateNotification(ctx, invite); err != nil {
		return nil, err
	}

	slog.Info("Invite answered",
		"notification_id", invite.ID, "group_id", invite.GroupID, "accepted", accept)
	return invite, nil
}

// ForUser returns the user's notifications, newest first.
func (s *NotificationService) ForUser(ctx context.Context, userID string) ([]models.Notification, error) {
	return s.store.ListNotificationsForUser(ctx, userID)
}

// PendingForUser returns the user's unanswered notifications, newest
// first.
func (s *NotificationService) PendingForUser(ctx context.Context, userID string) ([]models.Notification, error) {
	return s.store.ListPendingNotificationsForUser(ctx, userID)
}

// MarkAllRead flags every unread notification of the user as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	notifications, err := s.store.ListNotificationsForUser(ctx, userID)
	if err != nil {
		return err
	}
	for i := range notifications {
		n := &notifications[i]
		if n.Read {
			continue
		}
		n.Read = true
		if err := s.store.UpdateNotification(ctx, n); err != nil {
			return err
		}
	}
	return nil
}

// ChoreAssigned notifies the assignee about a new chore. Unassigned
// chores and self-assignments produce nothing. Failures are logged,
// never propagated: notification delivery must not fail chore creation.
func (s *NotificationService) ChoreAssigned(ctx context.Context, chore *models.Chore, senderID string) {
	if chore.AssignedTo == "" || chore.AssignedTo == senderID {
		return
	}
	n := &models.Notification{
		RecipientID: chore.AssignedTo,
		SenderID:    senderID,
		GroupID:     chore.GroupID,
		Type:        models.NotificationChoreAssigned,
		Status:      models.NotificationPending,
		Message:     chore.Title,
	}
	if err := s.store.CreateNotification(ctx, n); err != nil {
		slog.Error("Failed to dispatch chore notification",
			"chore_id", chore.ID, "recipient_id", chore.AssignedTo, "error", err)
	}
}

// ExpenseAdded notifies every group member except the sender about a
// new expense. Failures are logged per recipient and never propagated.
func (s *NotificationService) ExpenseAdded(ctx context.Context, expense *models.Expense, senderID string) {
	group, err := s.store.GetGroup(ctx, expense.GroupID)
	if err != nil {
		slog.Error("Failed to resolve group for expense notification",
			"expense_id", expense.ID, "group_id", expense.GroupID, "error", err)
		return
	}

	for _, member := range group.Members {
		if member.UserID == senderID {
			continue
		}
		n := &models.Notification{
			RecipientID: member.UserID,
			SenderID:    senderID,
			GroupID:     group.ID,
			Type:        models.NotificationExpenseAdded,
			Status:      models.NotificationPending,
			Message:     expense.Title,
		}
		if err := s.store.CreateNotification(ctx, n); err != nil {
			slog.Error("Failed to dispatch expense notification",
				"expense_id", expense.ID, "recipient_id", member.UserID, "error", err)
		}
	}
}
