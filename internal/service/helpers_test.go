package service

import (
	"context"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/mzp/fairshare/internal/models"
	"github.com/mzp/fairshare/internal/storage"
	"github.com/mzp/fairshare/internal/storage/sqlite"
)

func newTestStore(t *testing.T) storage.Store {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "fairshare-service-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func mustCreateUser(t *testing.T, store storage.Store, email, name string) *models.User {
	t.Helper()
	user := models.NewUser(email, name, "hash")
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	return user
}

func newTestGroupService(store storage.Store) *GroupService {
	return NewGroupService(store, rand.New(rand.NewSource(1)))
}

// mustCreateGroup creates a group owned by the first user with every
// listed user as a member.
func mustCreateGroup(t *testing.T, store storage.Store, name string, users ...*models.User) *models.Group {
	t.Helper()
	ctx := context.Background()

	groups := newTestGroupService(store)
	group, err := groups.Create(ctx, name, users[0].ID)
	if err != nil {
		t.Fatalf("Create group failed: %v", err)
	}
	for _, u := range users[1:] {
		if _, err := groups.Join(ctx, group.Code, u.ID); err != nil {
			t.Fatalf("Join failed for %s: %v", u.Email, err)
		}
	}
	group, err = groups.Get(ctx, group.ID)
	if err != nil {
		t.Fatalf("Get group failed: %v", err)
	}
	return group
}

func mustCreateChore(t *testing.T, store storage.Store, groupID, assignedTo, status string) *models.Chore {
	t.Helper()
	chore := &models.Chore{
		GroupID:    groupID,
		Title:      "Dishes",
		Status:     status,
		AssignedTo: assignedTo,
	}
	if err := store.CreateChore(context.Background(), chore); err != nil {
		t.Fatalf("CreateChore failed: %v", err)
	}
	return chore
}
