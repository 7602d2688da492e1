// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/mzp/fairshare/internal/models"
)

// Store defines the persistence boundary for FairShare.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the service layer.
//
// Lookups by ID return *models.NotFoundError when the entity is absent.
// GetUserByEmail is the one exception: it returns (nil, nil) for an
// unmatched email, because invite flows need to distinguish "no such
// user" from a storage failure.
type Store interface {
	// Users

	// CreateUser persists a new user. The user must carry its ID.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// GetUserByEmail retrieves a user by email, nil if unmatched.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// ListUsers returns all registered users.
	ListUsers(ctx context.Context) ([]models.User, error)

	// UpdateUser rewrites the user's mutable profile fields.
	UpdateUser(ctx context.Context, user *models.User) error

	// Groups

	// CreateGroup persists a group together with its initial member
	// set. Generates ID and CreatedAt when unset.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group with its members loaded.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// GetGroupByCode retrieves a group by join code, members loaded.
	GetGroupByCode(ctx context.Context, code string) (*models.Group, error)

	// CodeExists reports whether any group holds the join code.
	CodeExists(ctx context.Context, code string) (bool, error)

	// ListGroupsForUser returns every group the user is a member of.
	ListGroupsForUser(ctx context.Context, userID string) ([]models.Group, error)

	// UpdateGroupName renames the group.
	UpdateGroupName(ctx context.Context, groupID, name string) error

	// UpdateGroupOwner changes the group's owner.
	UpdateGroupOwner(ctx context.Context, groupID, ownerID string) error

	// UpdateGroupBudget replaces the monthly budget; nil clears it.
	UpdateGroupBudget(ctx context.Context, groupID string, budget *float64) error

	// AddGroupMember adds a user to the member set. Adding an existing
	// member is a no-op.
	AddGroupMember(ctx context.Context, groupID, userID string) error

	// RemoveGroupMember removes a user from the member set.
	RemoveGroupMember(ctx context.Context, groupID, userID string) error

	// DeleteGroup removes the group and, in the same transaction, all
	// chores, expenses, and notifications referencing it.
	DeleteGroup(ctx context.Context, groupID string) error

	// Chores

	CreateChore(ctx context.Context, chore *models.Chore) error
	GetChore(ctx context.Context, choreID string) (*models.Chore, error)
	UpdateChore(ctx context.Context, chore *models.Chore) error
	DeleteChore(ctx context.Context, choreID string) error
	ListGroupChores(ctx context.Context, groupID string) ([]models.Chore, error)

	// Expenses

	CreateExpense(ctx context.Context, expense *models.Expense) error
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)
	UpdateExpense(ctx context.Context, expense *models.Expense) error
	DeleteExpense(ctx context.Context, expenseID string) error
	ListGroupExpenses(ctx context.Context, groupID string) ([]models.Expense, error)

	// ListGroupExpensesForUser returns the group's expenses the user is
	// involved in: paid by them or marked as split.
	ListGroupExpensesForUser(ctx context.Context, groupID, userID string) ([]models.Expense, error)

	// Notifications

	CreateNotification(ctx context.Context, n *models.Notification) error
	GetNotification(ctx context.Context, notificationID string) (*models.Notification, error)
	UpdateNotification(ctx context.Context, n *models.Notification) error

	// ListNotificationsForUser returns the user's notifications,
	// newest first.
	ListNotificationsForUser(ctx context.Context, userID string) ([]models.Notification, error)

	// ListPendingNotificationsForUser returns the user's PENDING
	// notifications, newest first.
	ListPendingNotificationsForUser(ctx context.Context, userID string) ([]models.Notification, error)

	// Close releases any resources held by the store.
	Close() error
}
