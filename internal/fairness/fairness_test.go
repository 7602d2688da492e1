package fairness

import (
	"testing"

	"github.com/mzp/fairshare/internal/models"
)

func members(ids ...string) []models.Member {
	out := make([]models.Member, len(ids))
	for i, id := range ids {
		out[i] = models.Member{UserID: id, DisplayName: "User " + id}
	}
	return out
}

func TestCalculateScores(t *testing.T) {
	tests := []struct {
		name       string
		members    []models.Member
		chores     []models.Chore
		wantScores map[string]int
	}{
		{
			name:       "no chores - everyone at 100",
			members:    members("a", "b"),
			wantScores: map[string]int{"a": 100, "b": 100},
		},
		{
			name:    "completed and pending counted",
			members: members("a", "b", "c"),
			chores: []models.Chore{
				{AssignedTo: "b", Status: "completed"},
				{AssignedTo: "c", Status: "pending"},
				{AssignedTo: "c", Status: "pending"},
			},
			// a untouched, b = 100+10, c = 100-40
			wantScores: map[string]int{"a": 100, "b": 110, "c": 60},
		},
		{
			name:    "completed is case-insensitive",
			members: members("a"),
			chores: []models.Chore{
				{AssignedTo: "a", Status: "Completed"},
				{AssignedTo: "a", Status: "COMPLETED"},
			},
			wantScores: map[string]int{"a": 120},
		},
		{
			name:    "empty status counts as pending",
			members: members("a"),
			chores: []models.Chore{
				{AssignedTo: "a", Status: ""},
			},
			wantScores: map[string]int{"a": 80},
		},
		{
			name:    "chores assigned to removed users are skipped",
			members: members("a"),
			chores: []models.Chore{
				{AssignedTo: "gone", Status: "pending"},
				{AssignedTo: "gone", Status: "completed"},
				{AssignedTo: "", Status: "pending"},
			},
			wantScores: map[string]int{"a": 100},
		},
		{
			name:    "no cap above 100",
			members: members("a"),
			chores: []models.Chore{
				{AssignedTo: "a", Status: "completed"},
				{AssignedTo: "a", Status: "completed"},
				{AssignedTo: "a", Status: "completed"},
			},
			wantScores: map[string]int{"a": 130},
		},
		{
			name:    "no floor below zero",
			members: members("a"),
			chores: []models.Chore{
				{AssignedTo: "a", Status: "open"},
				{AssignedTo: "a", Status: "open"},
				{AssignedTo: "a", Status: "open"},
				{AssignedTo: "a", Status: "open"},
				{AssignedTo: "a", Status: "open"},
				{AssignedTo: "a", Status: "open"},
			},
			wantScores: map[string]int{"a": -20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scores := CalculateScores(tt.members, tt.chores)
			if len(scores) != len(tt.wantScores) {
				t.Fatalf("got %d scores, want %d", len(scores), len(tt.wantScores))
			}
			for id, want := range tt.wantScores {
				got, ok := scores[id]
				if !ok {
					t.Fatalf("missing score for member %s", id)
				}
				if got.Score != want {
					t.Errorf("member %s score = %d, want %d", id, got.Score, want)
				}
			}
		})
	}
}

func TestCalculateScoresCounts(t *testing.T) {
	scores := CalculateScores(members("a"), []models.Chore{
		{AssignedTo: "a", Status: "completed"},
		{AssignedTo: "a", Status: "pending"},
		{AssignedTo: "a", Status: "in progress"},
	})

	got := scores["a"]
	if got.Completed != 1 {
		t.Errorf("completed = %d, want 1", got.Completed)
	}
	if got.Pending != 2 {
		t.Errorf("pending = %d, want 2", got.Pending)
	}
	if got.DisplayName != "User a" {
		t.Errorf("display name = %q, want %q", got.DisplayName, "User a")
	}
}

func TestSelectFairest(t *testing.T) {
	t.Run("no members", func(t *testing.T) {
		if id, ok := SelectFairest(CalculateScores(nil, nil)); ok {
			t.Errorf("expected no selection, got %s", id)
		}
	})

	t.Run("single member regardless of score", func(t *testing.T) {
		scores := CalculateScores(members("a"), []models.Chore{
			{AssignedTo: "a", Status: "pending"},
			{AssignedTo: "a", Status: "pending"},
		})
		id, ok := SelectFairest(scores)
		if !ok || id != "a" {
			t.Errorf("got (%s, %v), want (a, true)", id, ok)
		}
	})

	t.Run("strictly highest score wins", func(t *testing.T) {
		// b has done the most, c is buried in pending work
		scores := CalculateScores(members("a", "b", "c"), []models.Chore{
			{AssignedTo: "b", Status: "completed"},
			{AssignedTo: "c", Status: "pending"},
			{AssignedTo: "c", Status: "pending"},
		})
		id, ok := SelectFairest(scores)
		if !ok || id != "b" {
			t.Errorf("got (%s, %v), want (b, true)", id, ok)
		}
	})

	t.Run("ties break to the lowest member id", func(t *testing.T) {
		for i := 0; i < 20; i++ {
			id, ok := SelectFairest(CalculateScores(members("c", "a", "b"), nil))
			if !ok || id != "a" {
				t.Fatalf("got (%s, %v), want (a, true)", id, ok)
			}
		}
	})
}
