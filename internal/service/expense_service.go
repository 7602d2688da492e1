package service

import (
	"context"
	"log/slog"

	"github.com/mzp/fairshare/internal/models"
	"github.com/mzp/fairshare/internal/storage"
)

// ExpenseService manages shared expenses within a group.
type ExpenseService struct {
	store    storage.Store
	notifier Notifier
}

// NewExpenseService creates a new ExpenseService.
func NewExpenseService(store storage.Store, notifier Notifier) *ExpenseService {
	return &ExpenseService{store: store, notifier: notifier}
}

// Create persists a new expense in the group. The payer, when given,
// must exist.
func (s *ExpenseService) Create(ctx context.Context, expense *models.Expense, groupID, paidByID, creatorID string) (*models.Expense, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	expense.GroupID = group.ID

	if paidByID != "" {
		payer, err := s.store.GetUserByID(ctx, paidByID)
		if err != nil {
			return nil, err
		}
		expense.PaidBy = payer.ID
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return nil, err
	}

	slog.Info("Expense created",
		"expense_id", expense.ID, "group_id", groupID, "amount", expense.Amount)

	s.notifier.ExpenseAdded(ctx, expense, creatorID)
	return expense, nil
}

// GroupExpenses returns all expenses belonging to the group.
func (s *ExpenseService) GroupExpenses(ctx context.Context, groupID string) ([]models.Expense, error) {
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}
	return s.store.ListGroupExpenses(ctx, groupID)
}

// GroupExpensesForUser returns the group's expenses the user is
// involved in: paid by them or split across the group.
func (s *ExpenseService) GroupExpensesForUser(ctx context.Context, groupID, userID string) ([]models.Expense, error) {
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}
	return s.store.ListGroupExpensesForUser(ctx, groupID, userID)
}

// ExpenseUpdate carries the optional fields of a partial expense
// update; nil fields keep their stored value.
type ExpenseUpdate struct {
	Title       *string
	Description *string
	Amount      *float64
	Date        *string
	PaidBy      *string
	IsSplit     *bool
}

// Update applies the non-nil fields of the update to the expense.
func (s *ExpenseService) Update(ctx context.Context, expenseID string, update ExpenseUpdate) (*models.Expense, error) {
	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		expense.Title = *update.Title
	}
	if update.Description != nil {
		expense.Description = *update.Description
	}
	if update.Amount != nil {
		expense.Amount = *update.Amount
	}
	if update.Date != nil {
		expense.Date = *update.Date
	}
	if update.PaidBy != nil {
		if _, err := s.store.GetUserByID(ctx, *update.PaidBy); err != nil {
			return nil, err
		}
		expense.PaidBy = *update.PaidBy
	}
	if update.IsSplit != nil {
		expense.IsSplit = *update.IsSplit
	}

	if err := s.store.UpdateExpense(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// Delete removes an expense by ID.
func (s *ExpenseService) Delete(ctx context.Context, expenseID string) error {
	return s.store.DeleteExpense(ctx, expenseID)
}
