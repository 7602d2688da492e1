package models

// Member is the slice of a user a group needs: identity and display
// name for scoring, join time for deterministic ownership promotion.
type Member struct {
	// UserID references the user (UUID format).
	UserID string

	// DisplayName is carried along so fairness results are readable
	// without another user lookup.
	DisplayName string

	// JoinedAt is the Unix timestamp when the user joined the group.
	JoinedAt int64
}

// Group represents a shared household.
//
// Invariants maintained by the service layer:
//   - Code is unique across all groups
//   - OwnerID always references a current member
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name (e.g. "Flat 3B").
	Name string

	// Code is the human-shareable join code: 3 uppercase letters
	// followed by 6 digits.
	Code string

	// OwnerID references the member who administers the group.
	OwnerID string

	// MonthlyBudget is the optional shared budget. Nil means unset.
	MonthlyBudget *float64

	// Members is the current member set, unique by UserID, unordered.
	Members []Member

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// HasMember reports whether the user is in the member set.
func (g *Group) HasMember(userID string) bool {
	for _, m := range g.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}
