package service

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"

	"github.com/mzp/fairshare/internal/joincode"
	"github.com/mzp/fairshare/internal/models"
	"github.com/mzp/fairshare/internal/storage"
)

// GroupService manages the group lifecycle: creation with a unique join
// code, membership changes, ownership, budget, and cascade deletion.
type GroupService struct {
	store storage.Store

	// rng feeds join-code generation. Injected so tests can seed it.
	mu  sync.Mutex
	rng *rand.Rand
}

// NewGroupService creates a new GroupService with the given storage
// backend and random source.
func NewGroupService(store storage.Store, rng *rand.Rand) *GroupService {
	return &GroupService{store: store, rng: rng}
}

// Create makes a new group with the creator as sole member and owner.
// The join code is generated until it collides with no existing group.
func (s *GroupService) Create(ctx context.Context, name, creatorID string) (*models.Group, error) {
	creator, err := s.store.GetUserByID(ctx, creatorID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	code, err := joincode.GenerateUnique(s.rng, func(code string) (bool, error) {
		return s.store.CodeExists(ctx, code)
	})
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	group := &models.Group{
		Name:    name,
		Code:    code,
		OwnerID: creator.ID,
		Members: []models.Member{{UserID: creator.ID, DisplayName: creator.DisplayName}},
	}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		return nil, err
	}

	slog.Info("Group created", "group_id", group.ID, "code", group.Code, "owner_id", creator.ID)
	return group, nil
}

// Join adds the user to the group identified by the join code. Joining
// a group the user already belongs to is a no-op.
func (s *GroupService) Join(ctx context.Context, code, userID string) (*models.Group, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	group, err := s.store.GetGroupByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if err := s.store.AddGroupMember(ctx, group.ID, user.ID); err != nil {
		return nil, err
	}

	slog.Info("User joined group", "group_id", group.ID, "user_id", user.ID)
	return s.store.GetGroup(ctx, group.ID)
}

// Get retrieves a group by ID.
func (s *GroupService) Get(ctx context.Context, groupID string) (*models.Group, error) {
	return s.store.GetGroup(ctx, groupID)
}

// GroupsForUser returns all groups the user belongs to.
func (s *GroupService) GroupsForUser(ctx context.Context, userID string) ([]models.Group, error) {
	if _, err := s.store.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.store.ListGroupsForUser(ctx, userID)
}

// RemoveMember removes targetUserID from the group. Self-removal is
// always permitted; removing anyone else requires the requester to be
// the group owner. When the owner removes themself and other members
// remain, ownership passes to the earliest-joined remaining member so
// the group is never left ownerless.
func (s *GroupService) RemoveMember(ctx context.Context, groupID, targetUserID, requesterID string) error {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return err
	}

	if targetUserID != requesterID && requesterID != group.OwnerID {
		return &models.AuthorizationError{Reason: "Only the group owner can remove members"}
	}

	if targetUserID == group.OwnerID {
		if heir, ok := promotionCandidate(group.Members, targetUserID); ok {
			if err := s.store.UpdateGroupOwner(ctx, groupID, heir); err != nil {
				return err
			}
			slog.Info("Ownership promoted on owner departure",
				"group_id", groupID, "old_owner", targetUserID, "new_owner", heir)
		}
	}

	if err := s.store.RemoveGroupMember(ctx, groupID, targetUserID); err != nil {
		return err
	}

	slog.Info("Member removed", "group_id", groupID, "user_id", targetUserID, "requester_id", requesterID)
	return nil
}

// promotionCandidate picks the earliest-joined member other than the
// departing one, breaking join-time ties by lowest user ID.
func promotionCandidate(members []models.Member, departing string) (string, bool) {
	best := ""
	var bestJoined int64
	for _, m := range members {
		if m.UserID == departing {
			continue
		}
		if best == "" || m.JoinedAt < bestJoined || (m.JoinedAt == bestJoined && m.UserID < best) {
			best = m.UserID
			bestJoined = m.JoinedAt
		}
	}
	return best, best != ""
}

// TransferOwnership makes newOwnerID the group owner. Only the current
// owner may transfer, and the new owner must already be a member.
func (s *GroupService) TransferOwnership(ctx context.Context, groupID, newOwnerID, requesterID string) (*models.Group, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	newOwner, err := s.store.GetUserByID(ctx, newOwnerID)
	if err != nil {
		return nil, err
	}

	if requesterID != group.OwnerID {
		return nil, &models.AuthorizationError{Reason: "Only the group owner can transfer ownership"}
	}
	if !group.HasMember(newOwner.ID) {
		return nil, &models.ValidationError{Reason: "New owner must be a member of the group"}
	}

	if err := s.store.UpdateGroupOwner(ctx, groupID, newOwner.ID); err != nil {
		return nil, err
	}

	slog.Info("Ownership transferred", "group_id", groupID, "old_owner", requesterID, "new_owner", newOwner.ID)
	return s.store.GetGroup(ctx, groupID)
}

// Rename updates the group's display name.
func (s *GroupService) Rename(ctx context.Context, groupID, name string) (*models.Group, error) {
	if err := s.store.UpdateGroupName(ctx, groupID, name); err != nil {
		return nil, err
	}
	return s.store.GetGroup(ctx, groupID)
}

// UpdateMonthlyBudget replaces the group's monthly budget. A nil budget
// clears it; a negative one is rejected.
func (s *GroupService) UpdateMonthlyBudget(ctx context.Context, groupID string, budget *float64) (*models.Group, error) {
	if budget != nil && *budget < 0 {
		return nil, &models.ValidationError{Reason: "Budget must not be negative"}
	}
	if err := s.store.UpdateGroupBudget(ctx, groupID, budget); err != nil {
		return nil, err
	}
	return s.store.GetGroup(ctx, groupID)
}

// Delete removes the group and everything referencing it. The store
// runs the cascade as one transaction: chores, expenses, notifications,
// then the group row.
func (s *GroupService) Delete(ctx context.Context, groupID string) error {
	if err := s.store.DeleteGroup(ctx, groupID); err != nil {
		return err
	}
	slog.Info("Group deleted", "group_id", groupID)
	return nil
}
