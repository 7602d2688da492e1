package service

import (
	"context"

	"github.com/mzp/fairshare/internal/fairness"
	"github.com/mzp/fairshare/internal/storage"
)

// FairnessService computes fairness scores over a group's live chore
// state. Scores are derived on every call and never cached.
type FairnessService struct {
	store storage.Store
}

// NewFairnessService creates a new FairnessService with the given
// storage backend.
func NewFairnessService(store storage.Store) *FairnessService {
	return &FairnessService{store: store}
}

// CalculateScores resolves the group and scores every current member
// from the group's chores.
func (s *FairnessService) CalculateScores(ctx context.Context, groupID string) (map[string]*fairness.Score, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	chores, err := s.store.ListGroupChores(ctx, groupID)
	if err != nil {
		return nil, err
	}

	return fairness.CalculateScores(group.Members, chores), nil
}

// SelectFairestMember returns the member who should receive the next
// chore: the one with the highest score, lowest member ID on ties.
// ok is false when the group has no members.
func (s *FairnessService) SelectFairestMember(ctx context.Context, groupID string) (memberID string, ok bool, err error) {
	scores, err := s.CalculateScores(ctx, groupID)
	if err != nil {
		return "", false, err
	}
	memberID, ok = fairness.SelectFairest(scores)
	return memberID, ok, nil
}
