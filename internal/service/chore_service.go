package service

import (
	"context"
	"log/slog"

	"github.com/mzp/fairshare/internal/models"
	"github.com/mzp/fairshare/internal/storage"
)

// Notifier is the fire-and-forget dispatch boundary for domain events.
// Implementations must not fail the calling operation; they log and
// swallow their own errors.
type Notifier interface {
	// ChoreAssigned tells the assignee about a new chore. Skipped for
	// unassigned chores and self-assignment.
	ChoreAssigned(ctx context.Context, chore *models.Chore, senderID string)

	// ExpenseAdded tells every group member except the sender about a
	// new expense.
	ExpenseAdded(ctx context.Context, expense *models.Expense, senderID string)
}

// ChoreService manages chores and the fair-assignment flow.
type ChoreService struct {
	store    storage.Store
	fairness *FairnessService
	notifier Notifier
}

// NewChoreService creates a new ChoreService.
func NewChoreService(store storage.Store, fairness *FairnessService, notifier Notifier) *ChoreService {
	return &ChoreService{store: store, fairness: fairness, notifier: notifier}
}

// Create persists a new chore in the group. When useFairAssignment is
// set and no explicit assignee is given, the fairest member is picked;
// an explicit assignee always wins. Assignees must exist and must be
// members of the target group.
func (s *ChoreService) Create(ctx context.Context, chore *models.Chore, groupID, assignedToID string, useFairAssignment bool, creatorID string) (*models.Chore, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	chore.GroupID = group.ID

	if useFairAssignment && assignedToID == "" {
		fairest, ok, err := s.fairness.SelectFairestMember(ctx, groupID)
		if err != nil {
			return nil, err
		}
		if ok {
			assignedToID = fairest
			slog.Debug("Fair assignment selected member", "group_id", groupID, "member_id", fairest)
		}
	}

	if assignedToID != "" {
		assignee, err := s.store.GetUserByID(ctx, assignedToID)
		if err != nil {
			return nil, err
		}
		if !group.HasMember(assignee.ID) {
			return nil, &models.ValidationError{Reason: "Assignee must be a member of the group"}
		}
		chore.AssignedTo = assignee.ID
	}

	if err := s.store.CreateChore(ctx, chore); err != nil {
		return nil, err
	}

	slog.Info("Chore created",
		"chore_id", chore.ID, "group_id", groupID,
		"assigned_to", chore.AssignedTo, "fair_assignment", useFairAssignment)

	s.notifier.ChoreAssigned(ctx, chore, creatorID)
	return chore, nil
}

// GroupChores returns all chores belonging to the group.
func (s *ChoreService) GroupChores(ctx context.Context, groupID string) ([]models.Chore, error) {
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}
	return s.store.ListGroupChores(ctx, groupID)
}

// Update rewrites the chore's fields. The assignee is only replaced
// when the details carry one, so status updates don't unassign.
func (s *ChoreService) Update(ctx context.Context, choreID string, details *models.Chore) (*models.Chore, error) {
	chore, err := s.store.GetChore(ctx, choreID)
	if err != nil {
		return nil, err
	}

	chore.Title = details.Title
	chore.Description = details.Description
	chore.DueDate = details.DueDate
	chore.Status = details.Status
	if details.AssignedTo != "" {
		if _, err := s.store.GetUserByID(ctx, details.AssignedTo); err != nil {
			return nil, err
		}
		chore.AssignedTo = details.AssignedTo
	}

	if err := s.store.UpdateChore(ctx, chore); err != nil {
		return nil, err
	}
	return chore, nil
}

// Delete removes a chore by ID.
func (s *ChoreService) Delete(ctx context.Context, choreID string) error {
	return s.store.DeleteChore(ctx, choreID)
}
