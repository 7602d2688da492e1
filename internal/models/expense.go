package models

// Expense represents a shared cost recorded against a group.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// GroupID is the owning group. Never empty.
	GroupID string

	// Title is the short expense name.
	Title string

	// Description is optional detail text.
	Description string

	// Amount is the expense amount.
	Amount float64

	// Date is an opaque, client-formatted date string.
	Date string

	// PaidBy references the user who paid; empty when unrecorded.
	PaidBy string

	// IsSplit marks the expense as shared across the whole group
	// rather than personal to the payer.
	IsSplit bool

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}
