package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mzp/fairshare/internal/middleware"
	"github.com/mzp/fairshare/internal/models"
)

type createChoreRequest struct {
	GroupID           string `json:"groupId"`
	Title             string `json:"title"`
	Description       string `json:"description"`
	DueDate           string `json:"dueDate"`
	Status            string `json:"status"`
	AssignedTo        string `json:"assignedTo"`
	UseFairAssignment bool   `json:"useFairAssignment"`
}

type updateChoreRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
	Status      string `json:"status"`
	AssignedTo  string `json:"assignedTo"`
}

type choreResponse struct {
	ID          string `json:"id"`
	GroupID     string `json:"groupId"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	DueDate     string `json:"dueDate,omitempty"`
	Status      string `json:"status"`
	AssignedTo  string `json:"assignedTo,omitempty"`
	CreatedAt   int64  `json:"createdAt"`
}

func toChoreResponse(c *models.Chore) choreResponse {
	return choreResponse{
		ID:          c.ID,
		GroupID:     c.GroupID,
		Title:       c.Title,
		Description: c.Description,
		DueDate:     c.DueDate,
		Status:      c.Status,
		AssignedTo:  c.AssignedTo,
		CreatedAt:   c.CreatedAt,
	}
}

func (s *Server) handleCreateChore(w http.ResponseWriter, r *http.Request) {
	var req createChoreRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "chore title is required")
		return
	}

	chore := &models.Chore{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Status:      req.Status,
	}
	created, err := s.chores.Create(r.Context(), chore, req.GroupID, req.AssignedTo,
		req.UseFairAssignment, middleware.GetUserID(r.Context()))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toChoreResponse(created))
}

func (s *Server) handleGroupChores(w http.ResponseWriter, r *http.Request) {
	chores, err := s.chores.GroupChores(r.Context(), chi.URLParam(r, "groupID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resp := make([]choreResponse, 0, len(chores))
	for i := range chores {
		resp = append(resp, toChoreResponse(&chores[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateChore(w http.ResponseWriter, r *http.Request) {
	var req updateChoreRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	updated, err := s.chores.Update(r.Context(), chi.URLParam(r, "id"), &models.Chore{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Status:      req.Status,
		AssignedTo:  req.AssignedTo,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toChoreResponse(updated))
}

func (s *Server) handleDeleteChore(w http.ResponseWriter, r *http.Request) {
	if err := s.chores.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
