package service

import (
	"context"
	"errors"
	"testing"

	"github.com/mzp/fairshare/internal/models"
)

func TestChoreServiceFairAssignment(t *testing.T) {
	store := newTestStore(t)
	chores := NewChoreService(store, NewFairnessService(store), NewNotificationService(store))
	ctx := context.Background()

	alice := mustCreateUser(t, store, "alice@example.com", "Alice")
	bob := mustCreateUser(t, store, "bob@example.com", "Bob")
	carol := mustCreateUser(t, store, "carol@example.com", "Carol")
	group := mustCreateGroup(t, store, "Flat 3B", alice, bob, carol)

	// Bob has the most completions and the fewest pending chores, so
	// fair assignment must pick him over Alice (no history) and Carol
	// (backlog of two).
	mustCreateChore(t, store, group.ID, bob.ID, "completed")
	mustCreateChore(t, store, group.ID, carol.ID, "pending")
	mustCreateChore(t, store, group.ID, carol.ID, "pending")

	chore, err := chores.Create(ctx, &models.Chore{Title: "Take out trash"}, group.ID, "", true, alice.ID)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if chore.AssignedTo != bob.ID {
		t.Errorf("Expected fair assignment to pick Bob (%s), got %s", bob.ID, chore.AssignedTo)
	}

	notifications, err := store.ListNotificationsForUser(ctx, bob.ID)
	if err != nil {
		t.Fatalf("ListNotificationsForUser failed: %v", err)
	}
	var assigned int
	for _, n := range notifications {
		if n.Type == models.NotificationChoreAssigned {
			assigned++
		}
	}
	if assigned != 1 {
		t.Errorf("Expected 1 chore-assigned notification for Bob, got %d", assigned)
	}
}

func TestChoreServiceExplicitAssigneeWins(t *testing.T) {
	store := newTestStore(t)
	chores := NewChoreService(store, NewFairnessService(store), NewNotificationService(store))
	ctx := context.Background()

	alice := mustCreateUser(t, store, "alice@example.com", "Alice")
	bob := mustCreateUser(t, store, "bob@example.com", "Bob")
	group := mustCreateGroup(t, store, "Flat 3B", alice, bob)
	mustCreateChore(t, store, group.ID, alice.ID, "pending")

	chore, err := chores.Create(ctx, &models.Chore{Title: "Vacuum"}, group.ID, alice.ID, true, bob.ID)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if chore.AssignedTo != alice.ID {
		t.Errorf("Expected explicit assignee %s to win, got %s", alice.ID, chore.AssignedTo)
	}
}

func TestChoreServiceAssigneeMustBeMember(t *testing.T) {
	store := newTestStore(t)
	chores := NewChoreService(store, NewFairnessService(store), NewNotificationService(store))
	ctx := context.Background()

	alice := mustCreateUser(t, store, "alice@example.com", "Alice")
	mallory := mustCreateUser(t, store, "mallory@example.com", "Mallory")
	group := mustCreateGroup(t, store, "Flat 3B", alice)

	_, err := chores.Create(ctx, &models.Chore{Title: "Vacuum"}, group.ID, mallory.ID, false, alice.ID)
	var valErr *models.ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("Expected ValidationError for non-member assignee, got %v", err)
	}

	_, err = chores.Create(ctx, &models.Chore{Title: "Vacuum"}, group.ID, "no-such-user", false, alice.ID)
	var notFound *models.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Expected NotFoundError for unknown assignee, got %v", err)
	}
}

func TestChoreServiceUpdateAndDelete(t *testing.T) {
	store := newTestStore(t)
	chores := NewChoreService(store, NewFairnessService(store), NewNotificationService(store))
	ctx := context.Background()

	alice := mustCreateUser(t, store, "alice@example.com", "Alice")
	group := mustCreateGroup(t, store, "Flat 3B", alice)

	chore, err := chores.Create(ctx, &models.Chore{Title: "Vacuum"}, group.ID, alice.ID, false, alice.ID)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := chores.Update(ctx, chore.ID, &models.Chore{Title: "Vacuum", Status: "completed"})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Status != "completed" {
		t.Errorf("Expected status completed, got %s", updated.Status)
	}
	if updated.AssignedTo != alice.ID {
		t.Error("Update without an assignee must keep the existing one")
	}

	if err := chores.Delete(ctx, chore.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	list, err := chores.GroupChores(ctx, group.ID)
	if err != nil {
		t.Fatalf("GroupChores failed: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("Expected no chores after delete, got %d", len(list))
	}
}
