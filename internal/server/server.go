// Package server exposes the REST API over chi.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mzp/fairshare/internal/auth"
	"github.com/mzp/fairshare/internal/metrics"
	"github.com/mzp/fairshare/internal/middleware"
	"github.com/mzp/fairshare/internal/models"
	"github.com/mzp/fairshare/internal/service"
)

// Server bundles the services behind the HTTP API.
type Server struct {
	authenticator *auth.PasswordAuthenticator
	jwtManager    *auth.JWTManager
	groups        *service.GroupService
	fairness      *service.FairnessService
	chores        *service.ChoreService
	expenses      *service.ExpenseService
	notifications *service.NotificationService
}

// New creates a Server over the given services.
func New(
	authenticator *auth.PasswordAuthenticator,
	jwtManager *auth.JWTManager,
	groups *service.GroupService,
	fairness *service.FairnessService,
	chores *service.ChoreService,
	expenses *service.ExpenseService,
	notifications *service.NotificationService,
) *Server {
	return &Server{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		groups:        groups,
		fairness:      fairness,
		chores:        chores,
		expenses:      expenses,
		notifications: notifications,
	}
}

// Router builds the HTTP handler with middleware and all routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.CORS)
	r.Use(middleware.Logging)
	r.Use(metrics.Instrument(func(req *http.Request) string {
		if rc := chi.RouteContext(req.Context()); rc != nil {
			return rc.RoutePattern()
		}
		return ""
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Post("/api/users", s.handleRegister)
	r.Post("/api/users/login", s.handleLogin)

	r.Group(func(authed chi.Router) {
		authed.Use(middleware.RequireAuth(s.jwtManager))

		authed.Get("/api/users", s.handleListUsers)
		authed.Put("/api/users/{id}", s.handleUpdateUser)

		authed.Post("/api/groups", s.handleCreateGroup)
		authed.Post("/api/groups/join", s.handleJoinGroup)
		authed.Get("/api/groups/user/{userID}", s.handleGroupsForUser)
		authed.Get("/api/groups/{id}", s.handleGetGroup)
		authed.Put("/api/groups/{id}", s.handleRenameGroup)
		authed.Delete("/api/groups/{id}", s.handleDeleteGroup)
		authed.Put("/api/groups/{id}/budget", s.handleUpdateBudget)
		authed.Post("/api/groups/{id}/members/remove", s.handleRemoveMember)
		authed.Post("/api/groups/{id}/transfer-ownership", s.handleTransferOwnership)
		authed.Get("/api/groups/{id}/fairness", s.handleFairnessScores)

		authed.Post("/api/chores", s.handleCreateChore)
		authed.Get("/api/chores/group/{groupID}", s.handleGroupChores)
		authed.Put("/api/chores/{id}", s.handleUpdateChore)
		authed.Delete("/api/chores/{id}", s.handleDeleteChore)

		authed.Post("/api/expenses", s.handleCreateExpense)
		authed.Get("/api/expenses/group/{groupID}", s.handleGroupExpenses)
		authed.Get("/api/expenses/group/{groupID}/user/{userID}", s.handleGroupExpensesForUser)
		authed.Put("/api/expenses/{id}", s.handleUpdateExpense)
		authed.Delete("/api/expenses/{id}", s.handleDeleteExpense)

		authed.Post("/api/notifications/invite", s.handleSendInvite)
		authed.Post("/api/notifications/{id}/respond", s.handleRespondToInvite)
		authed.Get("/api/notifications/user/{userID}", s.handleNotificationsForUser)
		authed.Get("/api/notifications/user/{userID}/pending", s.handlePendingNotifications)
		authed.Post("/api/notifications/user/{userID}/read-all", s.handleMarkAllRead)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeDomainError maps service errors onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	var notFound *models.NotFoundError
	var authErr *models.AuthorizationError
	var valErr *models.ValidationError
	switch {
	case errors.As(err, &notFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &authErr):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.As(err, &valErr):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("Unhandled service error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return false
	}
	return true
}
