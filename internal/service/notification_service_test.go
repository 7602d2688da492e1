package service

import (
	"context"
	"errors"
	"testing"

	"github.com/mzp/fairshare/internal/models"
)

func TestNotificationServiceInviteFlow(t *testing.T) {
	store := newTestStore(t)
	notifications := NewNotificationService(store)
	ctx := context.Background()

	alice := mustCreateUser(t, store, "alice@example.com", "Alice")
	bob := mustCreateUser(t, store, "bob@example.com", "Bob")
	group := mustCreateGroup(t, store, "Flat 3B", alice)

	invite, err := notifications.SendInvite(ctx, group.ID, bob.Email, alice.ID)
	if err != nil {
		t.Fatalf("SendInvite failed: %v", err)
	}
	if invite.Type != models.NotificationGroupInvite {
		t.Errorf("Expected GROUP_INVITE, got %s", invite.Type)
	}
	if invite.Status != models.NotificationPending {
		t.Errorf("Expected PENDING invite, got %s", invite.Status)
	}

	pending, err := notifications.PendingForUser(ctx, bob.ID)
	if err != nil {
		t.Fatalf("PendingForUser failed: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("Expected 1 pending notification for Bob, got %d", len(pending))
	}

	answered, err := notifications.RespondToInvite(ctx, invite.ID, true)
	if err != nil {
		t.Fatalf("RespondToInvite failed: %v", err)
	}
	if answered.Status != models.NotificationAccepted {
		t.Errorf("Expected ACCEPTED, got %s", answered.Status)
	}

	got, err := store.GetGroup(ctx, group.ID)
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	if !got.HasMember(bob.ID) {
		t.Error("Expected Bob to join the group on accept")
	}

	// Answering twice is rejected.
	_, err = notifications.RespondToInvite(ctx, invite.ID, false)
	var valErr *models.ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("Expected ValidationError on double response, got %v", err)
	}
}

func TestNotificationServiceInviteValidation(t *testing.T) {
	store := newTestStore(t)
	notifications := NewNotificationService(store)
	ctx := context.Background()

	alice := mustCreateUser(t, store, "alice@example.com", "Alice")
	group := mustCreateGroup(t, store, "Flat 3B", alice)

	t.Run("unknown email", func(t *testing.T) {
		_, err := notifications.SendInvite(ctx, group.ID, "nobody@example.com", alice.ID)
		var notFound *models.NotFoundError
		if !errors.As(err, &notFound) {
			t.Fatalf("Expected NotFoundError, got %v", err)
		}
	})

	t.Run("already a member", func(t *testing.T) {
		_, err := notifications.SendInvite(ctx, group.ID, alice.Email, alice.ID)
		var valErr *models.ValidationError
		if !errors.As(err, &valErr) {
			t.Fatalf("Expected ValidationError, got %v", err)
		}
	})
}

func TestNotificationServiceRejectedInviteDoesNotJoin(t *testing.T) {
	store := newTestStore(t)
	notifications := NewNotificationService(store)
	ctx := context.Background()

	alice := mustCreateUser(t, store, "alice@example.com", "Alice")
	bob := mustCreateUser(t, store, "bob@example.com", "Bob")
	group := mustCreateGroup(t, store, "Flat 3B", alice)

	invite, err := notifications.SendInvite(ctx, group.ID, bob.Email, alice.ID)
	if err != nil {
		t.Fatalf("SendInvite failed: %v", err)
	}
	answered, err := notifications.RespondToInvite(ctx, invite.ID, false)
	if err != nil {
		t.Fatalf("RespondToInvite failed: %v", err)
	}
	if answered.Status != models.NotificationRejected {
		t.Errorf("Expected REJECTED, got %s", answered.Status)
	}

	got, err := store.GetGroup(ctx, group.ID)
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	if got.HasMember(bob.ID) {
		t.Error("Rejecting an invite must not join the group")
	}
}

func TestNotificationServiceExpenseFanOut(t *testing.T) {
	store := newTestStore(t)
	notifications := NewNotificationService(store)
	ctx := context.Background()

	alice := mustCreateUser(t, store, "alice@example.com", "Alice")
	bob := mustCreateUser(t, store, "bob@example.com", "Bob")
	carol := mustCreateUser(t, store, "carol@example.com", "Carol")
	group := mustCreateGroup(t, store, "Flat 3B", alice, bob, carol)

	expense := &models.Expense{GroupID: group.ID, Title: "Groceries", Amount: 42.50, PaidBy: alice.ID}
	if err := store.CreateExpense(ctx, expense); err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}

	notifications.ExpenseAdded(ctx, expense, alice.ID)

	for _, tc := range []struct {
		name   string
		userID string
		want   int
	}{
		{"sender gets nothing", alice.ID, 0},
		{"bob notified", bob.ID, 1},
		{"carol notified", carol.ID, 1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			list, err := notifications.ForUser(ctx, tc.userID)
			if err != nil {
				t.Fatalf("ForUser failed: %v", err)
			}
			var got int
			for _, n := range list {
				if n.Type == models.NotificationExpenseAdded {
					got++
				}
			}
			if got != tc.want {
				t.Errorf("Expected %d expense notifications, got %d", tc.want, got)
			}
		})
	}
}

func TestNotificationServiceMarkAllRead(t *testing.T) {
	store := newTestStore(t)
	notifications := NewNotificationService(store)
	ctx := context.Background()

	alice := mustCreateUser(t, store, "alice@example.com", "Alice")
	bob := mustCreateUser(t, store, "bob@example.com", "Bob")
	group := mustCreateGroup(t, store, "Flat 3B", alice)

	if _, err := notifications.SendInvite(ctx, group.ID, bob.Email, alice.ID); err != nil {
		t.Fatalf("SendInvite failed: %v", err)
	}

	if err := notifications.MarkAllRead(ctx, bob.ID); err != nil {
		t.Fatalf("MarkAllRead failed: %v", err)
	}
	list, err := notifications.ForUser(ctx, bob.ID)
	if err != nil {
		t.Fatalf("ForUser failed: %v", err)
	}
	for _, n := range list {
		if !n.Read {
			t.Errorf("Expected notification %s to be read", n.ID)
		}
	}
}
