package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mzp/fairshare/internal/models"
)

// CreateGroup persists a new group and its initial member set in one
// transaction.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.Group) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var budget any
	if group.MonthlyBudget != nil {
		budget = *group.MonthlyBudget
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO groups (id, name, code, owner_id, monthly_budget, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		group.ID, group.Name, group.Code, group.OwnerID, budget, group.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}

	for i := range group.Members {
		member := &group.Members[i]
		if member.JoinedAt == 0 {
			member.JoinedAt = group.CreatedAt
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO group_members (group_id, user_id, joined_at) VALUES (?, ?, ?)`,
			group.ID, member.UserID, member.JoinedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert group member: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetGroup retrieves a group by ID, including its member set.
func (s *SQLiteStore) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	return s.getGroupWhere(ctx, "id = ?", groupID, "group", groupID)
}

// GetGroupByCode retrieves a group by join code, including its member set.
func (s *SQLiteStore) GetGroupByCode(ctx context.Context, code string) (*models.Group, error) {
	return s.getGroupWhere(ctx, "code = ?", code, "group", code)
}

func (s *SQLiteStore) getGroupWhere(ctx context.Context, cond string, arg, resource, key string) (*models.Group, error) {
	group := &models.Group{}
	var budget sql.NullFloat64

	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, code, owner_id, monthly_budget, created_at FROM groups WHERE `+cond,
		arg,
	).Scan(&group.ID, &group.Name, &group.Code, &group.OwnerID, &budget, &group.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, &models.NotFoundError{Resource: resource, Key: key}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	if budget.Valid {
		group.MonthlyBudget = &budget.Float64
	}

	members, err := s.listMembers(ctx, group.ID)
	if err != nil {
		return nil, err
	}
	group.Members = members
	return group, nil
}

func (s *SQLiteStore) listMembers(ctx context.Context, groupID string) ([]models.Member, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT gm.user_id, u.display_name, gm.joined_at
		 FROM group_members gm
		 JOIN users u ON u.id = gm.user_id
		 WHERE gm.group_id = ?`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get group members: %w", err)
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.UserID, &m.DisplayName, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate group members: %w", err)
	}
	return members, nil
}

// CodeExists reports whether any group already holds the join code.
func (s *SQLiteStore) CodeExists(ctx context.Context, code string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM groups WHERE code = ?`, code,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check join code: %w", err)
	}
	return true, nil
}

// ListGroupsForUser returns all groups the user is a member of.
func (s *SQLiteStore) ListGroupsForUser(ctx context.Context, userID string) ([]models.Group, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT g.id FROM groups g
		 JOIN group_members gm ON gm.group_id = g.id
		 WHERE gm.user_id = ?
		 ORDER BY g.created_at`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan group id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	groups := make([]models.Group, 0, len(ids))
	for _, id := range ids {
		group, err := s.GetGroup(ctx, id)
		if err != nil {
			return nil, err
		}
		groups = append(groups, *group)
	}
	return groups, nil
}

// UpdateGroupName renames the group.
func (s *SQLiteStore) UpdateGroupName(ctx context.Context, groupID, name string) error {
	return s.updateGroupField(ctx, groupID, `UPDATE groups SET name = ? WHERE id = ?`, name)
}

// UpdateGroupOwner changes the group's owner.
func (s *SQLiteStore) UpdateGroupOwner(ctx context.Context, groupID, ownerID string) error {
	return s.updateGroupField(ctx, groupID, `UPDATE groups SET owner_id = ? WHERE id = ?`, ownerID)
}

// UpdateGroupBudget replaces the monthly budget; nil clears it.
func (s *SQLiteStore) UpdateGroupBudget(ctx context.Context, groupID string, budget *float64) error {
	var value any
	if budget != nil {
		value = *budget
	}
	return s.updateGroupField(ctx, groupID, `UPDATE groups SET monthly_budget = ? WHERE id = ?`, value)
}

func (s *SQLiteStore) updateGroupField(ctx context.Context, groupID, query string, value any) error {
	res, err := s.db.ExecContext(ctx, query, value, groupID)
	if err != nil {
		return fmt.Errorf("failed to update group: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return &models.NotFoundError{Resource: "group", Key: groupID}
	}
	return nil
}

// AddGroupMember adds a user to the member set. Re-adding an existing
// member is a no-op.
func (s *SQLiteStore) AddGroupMember(ctx context.Context, groupID, userID string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO group_members (group_id, user_id, joined_at) VALUES (?, ?, ?)`,
		groupID, userID, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to add group member: %w", err)
	}
	return nil
}

// RemoveGroupMember removes a user from the member set.
func (s *SQLiteStore) RemoveGroupMember(ctx context.Context, groupID, userID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM group_members WHERE group_id = ? AND user_id = ?`,
		groupID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove group member: %w", err)
	}
	return nil
}

// DeleteGroup removes the group and everything referencing it in a
// single transaction. Deletion order matters: chores, expenses, and
// notifications go first so foreign keys on the group row never fail,
// and a failure at any step rolls the whole cascade back.
func (s *SQLiteStore) DeleteGroup(ctx context.Context, groupID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, query := range []string{
		`DELETE FROM chores WHERE group_id = ?`,
		`DELETE FROM expenses WHERE group_id = ?`,
		`DELETE FROM notifications WHERE group_id = ?`,
		`DELETE FROM group_members WHERE group_id = ?`,
	} {
		if _, err := tx.ExecContext(ctx, query, groupID); err != nil {
			return fmt.Errorf("failed to cascade group delete: %w", err)
		}
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM groups WHERE id = ?`, groupID)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return &models.NotFoundError{Resource: "group", Key: groupID}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
