package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mzp/fairshare/internal/middleware"
	"github.com/mzp/fairshare/internal/models"
)

type inviteRequest struct {
	GroupID string `json:"groupId"`
	Email   string `json:"email"`
}

type respondRequest struct {
	Accept bool `json:"accept"`
}

type notificationResponse struct {
	ID          string `json:"id"`
	RecipientID string `json:"recipientId"`
	SenderID    string `json:"senderId"`
	GroupID     string `json:"groupId"`
	Type        string `json:"type"`
	Status      string `json:"status"`
	Read        bool   `json:"read"`
	Message     string `json:"message,omitempty"`
	CreatedAt   int64  `json:"createdAt"`
}

func toNotificationResponse(n *models.Notification) notificationResponse {
	return notificationResponse{
		ID:          n.ID,
		RecipientID: n.RecipientID,
		SenderID:    n.SenderID,
		GroupID:     n.GroupID,
		Type:        string(n.Type),
		Status:      string(n.Status),
		Read:        n.Read,
		Message:     n.Message,
		CreatedAt:   n.CreatedAt,
	}
}

func toNotificationResponses(notifications []models.Notification) []notificationResponse {
	resp := make([]notificationResponse, 0, len(notifications))
	for i := range notifications {
		resp = append(resp, toNotificationResponse(&notifications[i]))
	}
	return resp
}

func (s *Server) handleSendInvite(w http.ResponseWriter, r *http.Request) {
	var req inviteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	invite, err := s.notifications.SendInvite(r.Context(), req.GroupID, req.Email,
		middleware.GetUserID(r.Context()))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toNotificationResponse(invite))
}

func (s *Server) handleRespondToInvite(w http.ResponseWriter, r *http.Request) {
	var req respondRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	answered, err := s.notifications.RespondToInvite(r.Context(), chi.URLParam(r, "id"), req.Accept)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toNotificationResponse(answered))
}

func (s *Server) handleNotificationsForUser(w http.ResponseWriter, r *http.Request) {
	notifications, err := s.notifications.ForUser(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toNotificationResponses(notifications))
}

func (s *Server) handlePendingNotifications(w http.ResponseWriter, r *http.Request) {
	notifications, err := s.notifications.PendingForUser(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toNotificationResponses(notifications))
}

func (s *Server) handleMarkAllRead(w http.ResponseWriter, r *http.Request) {
	if err := s.notifications.MarkAllRead(r.Context(), chi.URLParam(r, "userID")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
