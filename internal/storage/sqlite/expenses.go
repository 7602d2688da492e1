package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mzp/fairshare/internal/models"
)

// CreateExpense persists a new expense to the database.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO expenses (id, group_id, title, description, amount, date, paid_by, is_split, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.GroupID, expense.Title,
		nullable(expense.Description), expense.Amount, nullable(expense.Date),
		nullable(expense.PaidBy), expense.IsSplit, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}
	return nil
}

// GetExpense retrieves an expense by ID.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	row := s.db.QueryRowContext(ctx, expenseSelect+` WHERE id = ?`, expenseID)
	expense, err := scanExpense(row)
	if err == sql.ErrNoRows {
		return nil, &models.NotFoundError{Resource: "expense", Key: expenseID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	return expense, nil
}

// UpdateExpense rewrites the expense's mutable fields.
func (s *SQLiteStore) UpdateExpense(ctx context.Context, expense *models.Expense) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE expenses SET title = ?, description = ?, amount = ?, date = ?, paid_by = ?, is_split = ? WHERE id = ?`,
		expense.Title, nullable(expense.Description), expense.Amount,
		nullable(expense.Date), nullable(expense.PaidBy), expense.IsSplit, expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return &models.NotFoundError{Resource: "expense", Key: expense.ID}
	}
	return nil
}

// DeleteExpense removes an expense by ID.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, expenseID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return &models.NotFoundError{Resource: "expense", Key: expenseID}
	}
	return nil
}

// ListGroupExpenses returns all expenses belonging to the group.
func (s *SQLiteStore) ListGroupExpenses(ctx context.Context, groupID string) ([]models.Expense, error) {
	return s.listExpenses(ctx,
		expenseSelect+` WHERE group_id = ? ORDER BY created_at`, groupID)
}

// ListGroupExpensesForUser returns the group's expenses the user is
// involved in: ones they paid for, or ones split across the group.
func (s *SQLiteStore) ListGroupExpensesForUser(ctx context.Context, groupID, userID string) ([]models.Expense, error) {
	return s.listExpenses(ctx,
		expenseSelect+` WHERE group_id = ? AND (paid_by = ? OR is_split = 1) ORDER BY created_at`,
		groupID, userID)
}

func (s *SQLiteStore) listExpenses(ctx context.Context, query string, args ...any) ([]models.Expense, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, *expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	return expenses, nil
}

const expenseSelect = `
	SELECT id, group_id, title, description, amount, date, paid_by, is_split, created_at
	FROM expenses`

func scanExpense(row rowScanner) (*models.Expense, error) {
	expense := &models.Expense{}
	var description, date, paidBy sql.NullString
	err := row.Scan(&expense.ID, &expense.GroupID, &expense.Title, &description,
		&expense.Amount, &date, &paidBy, &expense.IsSplit, &expense.CreatedAt)
	if err != nil {
		return nil, err
	}
	expense.Description = description.String
	expense.Date = date.String
	expense.PaidBy = paidBy.String
	return expense, nil
}
