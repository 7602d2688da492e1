// Package fairness computes per-member fairness scores and selects the
// fairest candidate for the next chore assignment.
//
// The score rewards finished work and penalizes open work:
//
//	score = 100 + 10*completed - 20*pending
//
// A member with no chores scores exactly 100. The formula is not
// clamped; scores can exceed 100 or go negative.
package fairness

import (
	"strings"

	"github.com/mzp/fairshare/internal/models"
)

// Score holds the fairness computation result for one member.
type Score struct {
	MemberID    string
	DisplayName string
	Pending     int
	Completed   int
	Score       int
}

// CalculateScores computes a score for every member from the group's
// current chores. Chores without an assignee, or assigned to someone no
// longer in the member set, are silently skipped. Results are keyed by
// member ID; every member appears exactly once.
func CalculateScores(members []models.Member, chores []models.Chore) map[string]*Score {
	scores := make(map[string]*Score, len(members))
	for _, m := range members {
		scores[m.UserID] = &Score{
			MemberID:    m.UserID,
			DisplayName: m.DisplayName,
			Score:       100,
		}
	}

	for _, chore := range chores {
		if chore.AssignedTo == "" {
			continue
		}
		score, ok := scores[chore.AssignedTo]
		if !ok {
			continue
		}
		if strings.EqualFold(chore.Status, models.StatusCompleted) {
			score.Completed++
		} else {
			score.Pending++
		}
	}

	for _, score := range scores {
		score.Score = 100 + 10*score.Completed - 20*score.Pending
	}

	return scores
}

// SelectFairest returns the member ID with the highest score. Ties are
// broken by the lowest member ID so repeated calls over the same state
// pick the same member. Returns false when there are no scores.
func SelectFairest(scores map[string]*Score) (string, bool) {
	best := ""
	for id, score := range scores {
		if best == "" {
			best = id
			continue
		}
		top := scores[best]
		if score.Score > top.Score || (score.Score == top.Score && id < best) {
			best = id
		}
	}
	return best, best != ""
}
