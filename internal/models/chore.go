package models

// StatusCompleted is the only chore status with scoring significance.
// Comparison is case-insensitive; every other value counts as pending.
const StatusCompleted = "completed"

// Chore represents a task owned by a group.
type Chore struct {
	// ID is the unique identifier for the chore (UUID format).
	ID string

	// GroupID is the owning group. Never empty.
	GroupID string

	// Title is the short task name.
	Title string

	// Description is optional detail text.
	Description string

	// DueDate is an opaque, client-formatted date string.
	DueDate string

	// Status is free-form, e.g. "pending" or "completed".
	Status string

	// AssignedTo references the assignee's user ID; empty when
	// unassigned.
	AssignedTo string

	// CreatedAt is the Unix timestamp when the chore was created.
	CreatedAt int64
}
