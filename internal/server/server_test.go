package server

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mzp/fairshare/internal/auth"
	"github.com/mzp/fairshare/internal/service"
	"github.com/mzp/fairshare/internal/storage/sqlite"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "fairshare-server-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	authenticator := auth.NewPasswordAuthenticator(store)
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	groups := service.NewGroupService(store, rand.New(rand.NewSource(1)))
	fairness := service.NewFairnessService(store)
	notifications := service.NewNotificationService(store)
	chores := service.NewChoreService(store, fairness, notifications)
	expenses := service.NewExpenseService(store, notifications)

	srv := New(authenticator, jwtManager, groups, fairness, chores, expenses, notifications)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

// doJSON performs a request with an optional bearer token and decodes
// the JSON response into out (skipped when out is nil).
func doJSON(t *testing.T, ts *httptest.Server, method, path, token string, body, out any) int {
	t.Helper()

	var payload bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&payload).Encode(body); err != nil {
			t.Fatalf("Failed to encode request body: %v", err)
		}
	}
	req, err := http.NewRequest(method, ts.URL+path, &payload)
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
	}
	return resp.StatusCode
}

func registerUser(t *testing.T, ts *httptest.Server, email, name string) sessionResponse {
	t.Helper()
	var session sessionResponse
	status := doJSON(t, ts, http.MethodPost, "/api/users", "", registerRequest{
		Email:       email,
		DisplayName: name,
		Password:    "password123",
	}, &session)
	if status != http.StatusCreated {
		t.Fatalf("Register returned status %d", status)
	}
	return session
}

func TestServerGroupFlow(t *testing.T) {
	ts := newTestServer(t)

	alice := registerUser(t, ts, "alice@example.com", "Alice")
	bob := registerUser(t, ts, "bob@example.com", "Bob")

	var group groupResponse
	status := doJSON(t, ts, http.MethodPost, "/api/groups", alice.Token,
		createGroupRequest{Name: "Flat 3B"}, &group)
	if status != http.StatusCreated {
		t.Fatalf("Create group returned status %d", status)
	}
	if group.OwnerID != alice.User.ID {
		t.Errorf("Expected Alice as owner, got %s", group.OwnerID)
	}
	if len(group.Code) != 9 {
		t.Errorf("Expected 9-character join code, got %q", group.Code)
	}

	var joined groupResponse
	status = doJSON(t, ts, http.MethodPost, "/api/groups/join", bob.Token,
		joinGroupRequest{Code: group.Code}, &joined)
	if status != http.StatusOK {
		t.Fatalf("Join returned status %d", status)
	}
	if len(joined.Members) != 2 {
		t.Errorf("Expected 2 members after join, got %d", len(joined.Members))
	}

	var groups []groupResponse
	status = doJSON(t, ts, http.MethodGet, "/api/groups/user/"+bob.User.ID, bob.Token, nil, &groups)
	if status != http.StatusOK {
		t.Fatalf("GroupsForUser returned status %d", status)
	}
	if len(groups) != 1 || groups[0].ID != group.ID {
		t.Errorf("Expected Bob's group list to contain the group, got %v", groups)
	}

	var scores []fairnessScoreResponse
	status = doJSON(t, ts, http.MethodGet, "/api/groups/"+group.ID+"/fairness", alice.Token, nil, &scores)
	if status != http.StatusOK {
		t.Fatalf("Fairness returned status %d", status)
	}
	if len(scores) != 2 {
		t.Fatalf("Expected 2 fairness entries, got %d", len(scores))
	}
	for _, sc := range scores {
		if sc.Score != 100 {
			t.Errorf("Expected baseline score 100 for %s, got %d", sc.MemberID, sc.Score)
		}
	}
}

func TestServerChoreFairAssignment(t *testing.T) {
	ts := newTestServer(t)

	alice := registerUser(t, ts, "alice@example.com", "Alice")
	bob := registerUser(t, ts, "bob@example.com", "Bob")

	var group groupResponse
	doJSON(t, ts, http.MethodPost, "/api/groups", alice.Token, createGroupRequest{Name: "Flat 3B"}, &group)
	doJSON(t, ts, http.MethodPost, "/api/groups/join", bob.Token, joinGroupRequest{Code: group.Code}, nil)

	// Give Alice a pending chore so fair assignment picks Bob.
	var first choreResponse
	status := doJSON(t, ts, http.MethodPost, "/api/chores", alice.Token, createChoreRequest{
		GroupID:    group.ID,
		Title:      "Dishes",
		Status:     "pending",
		AssignedTo: alice.User.ID,
	}, &first)
	if status != http.StatusCreated {
		t.Fatalf("Create chore returned status %d", status)
	}

	var second choreResponse
	status = doJSON(t, ts, http.MethodPost, "/api/chores", alice.Token, createChoreRequest{
		GroupID:           group.ID,
		Title:             "Take out trash",
		UseFairAssignment: true,
	}, &second)
	if status != http.StatusCreated {
		t.Fatalf("Create chore returned status %d", status)
	}
	if second.AssignedTo != bob.User.ID {
		t.Errorf("Expected fair assignment to pick Bob, got %s", second.AssignedTo)
	}

	// Bob got a chore-assigned notification.
	var notifications []notificationResponse
	status = doJSON(t, ts, http.MethodGet, "/api/notifications/user/"+bob.User.ID, bob.Token, nil, &notifications)
	if status != http.StatusOK {
		t.Fatalf("Notifications returned status %d", status)
	}
	if len(notifications) != 1 || notifications[0].Type != "CHORE_ASSIGNED" {
		t.Errorf("Expected one CHORE_ASSIGNED notification, got %v", notifications)
	}
}

func TestServerErrorMapping(t *testing.T) {
	ts := newTestServer(t)
	alice := registerUser(t, ts, "alice@example.com", "Alice")

	t.Run("missing token", func(t *testing.T) {
		status := doJSON(t, ts, http.MethodPost, "/api/groups", "", createGroupRequest{Name: "X"}, nil)
		if status != http.StatusUnauthorized {
			t.Errorf("Expected 401 without token, got %d", status)
		}
	})

	t.Run("unknown group", func(t *testing.T) {
		status := doJSON(t, ts, http.MethodGet, "/api/groups/no-such-group", alice.Token, nil, nil)
		if status != http.StatusNotFound {
			t.Errorf("Expected 404 for unknown group, got %d", status)
		}
	})

	t.Run("negative budget", func(t *testing.T) {
		var group groupResponse
		doJSON(t, ts, http.MethodPost, "/api/groups", alice.Token, createGroupRequest{Name: "Flat 3B"}, &group)

		budget := -5.0
		status := doJSON(t, ts, http.MethodPut, "/api/groups/"+group.ID+"/budget", alice.Token,
			budgetRequest{MonthlyBudget: &budget}, nil)
		if status != http.StatusBadRequest {
			t.Errorf("Expected 400 for negative budget, got %d", status)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		status := doJSON(t, ts, http.MethodPost, "/api/users/login", "",
			loginRequest{Email: "alice@example.com", Password: "wrong-password"}, nil)
		if status != http.StatusUnauthorized {
			t.Errorf("Expected 401 for wrong password, got %d", status)
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		status := doJSON(t, ts, http.MethodPost, "/api/users", "", registerRequest{
			Email:       "alice@example.com",
			DisplayName: "Alice Again",
			Password:    "password123",
		}, nil)
		if status != http.StatusBadRequest {
			t.Errorf("Expected 400 for duplicate email, got %d", status)
		}
	})
}

func TestServerInviteFlow(t *testing.T) {
	ts := newTestServer(t)

	alice := registerUser(t, ts, "alice@example.com", "Alice")
	bob := registerUser(t, ts, "bob@example.com", "Bob")

	var group groupResponse
	doJSON(t, ts, http.MethodPost, "/api/groups", alice.Token, createGroupRequest{Name: "Flat 3B"}, &group)

	var invite notificationResponse
	status := doJSON(t, ts, http.MethodPost, "/api/notifications/invite", alice.Token,
		inviteRequest{GroupID: group.ID, Email: "bob@example.com"}, &invite)
	if status != http.StatusCreated {
		t.Fatalf("Invite returned status %d", status)
	}

	var pending []notificationResponse
	status = doJSON(t, ts, http.MethodGet, "/api/notifications/user/"+bob.User.ID+"/pending", bob.Token, nil, &pending)
	if status != http.StatusOK || len(pending) != 1 {
		t.Fatalf("Expected 1 pending invite, got status %d, %d invites", status, len(pending))
	}

	var answered notificationResponse
	status = doJSON(t, ts, http.MethodPost, "/api/notifications/"+invite.ID+"/respond", bob.Token,
		respondRequest{Accept: true}, &answered)
	if status != http.StatusOK {
		t.Fatalf("Respond returned status %d", status)
	}
	if answered.Status != "ACCEPTED" {
		t.Errorf("Expected ACCEPTED, got %s", answered.Status)
	}

	var got groupResponse
	doJSON(t, ts, http.MethodGet, "/api/groups/"+group.ID, bob.Token, nil, &got)
	if len(got.Members) != 2 {
		t.Errorf("Expected Bob to be a member after accepting, got %d members", len(got.Members))
	}
}
