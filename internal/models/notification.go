package models

// NotificationType distinguishes the events a notification carries.
type NotificationType string

const (
	NotificationGroupInvite   NotificationType = "GROUP_INVITE"
	NotificationChoreAssigned NotificationType = "CHORE_ASSIGNED"
	NotificationExpenseAdded  NotificationType = "EXPENSE_ADDED"
)

// NotificationStatus tracks the response to an actionable notification.
// Only GROUP_INVITE notifications are ever answered; the rest stay
// PENDING until marked read.
type NotificationStatus string

const (
	NotificationPending  NotificationStatus = "PENDING"
	NotificationAccepted NotificationStatus = "ACCEPTED"
	NotificationRejected NotificationStatus = "REJECTED"
)

// Notification represents an event delivered to a user.
type Notification struct {
	// ID is the unique identifier for the notification (UUID format).
	ID string

	// RecipientID references the user this notification is for.
	RecipientID string

	// SenderID references the user whose action produced it.
	SenderID string

	// GroupID references the group the event concerns.
	GroupID string

	// Type is the event kind.
	Type NotificationType

	// Status is PENDING until an invite is answered.
	Status NotificationStatus

	// Read marks the notification as seen.
	Read bool

	// Message is optional display text.
	Message string

	// CreatedAt is the Unix timestamp when the notification was created.
	CreatedAt int64
}
