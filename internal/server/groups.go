package server

import (
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	"github.com/mzp/fairshare/internal/fairness"
	"github.com/mzp/fairshare/internal/middleware"
	"github.com/mzp/fairshare/internal/models"
)

type createGroupRequest struct {
	Name string `json:"name"`
}

type joinGroupRequest struct {
	Code string `json:"code"`
}

type renameGroupRequest struct {
	Name string `json:"name"`
}

type budgetRequest struct {
	// MonthlyBudget clears the budget when null.
	MonthlyBudget *float64 `json:"monthlyBudget"`
}

type removeMemberRequest struct {
	UserID string `json:"userId"`
}

type transferOwnershipRequest struct {
	NewOwnerID string `json:"newOwnerId"`
}

type memberResponse struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	JoinedAt    int64  `json:"joinedAt"`
}

type groupResponse struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Code          string           `json:"code"`
	OwnerID       string           `json:"ownerId"`
	MonthlyBudget *float64         `json:"monthlyBudget,omitempty"`
	Members       []memberResponse `json:"members"`
	CreatedAt     int64            `json:"createdAt"`
}

type fairnessScoreResponse struct {
	MemberID    string `json:"memberId"`
	DisplayName string `json:"displayName"`
	Pending     int    `json:"pending"`
	Completed   int    `json:"completed"`
	Score       int    `json:"score"`
}

func toGroupResponse(g *models.Group) groupResponse {
	members := make([]memberResponse, 0, len(g.Members))
	for _, m := range g.Members {
		members = append(members, memberResponse{
			UserID:      m.UserID,
			DisplayName: m.DisplayName,
			JoinedAt:    m.JoinedAt,
		})
	}
	return groupResponse{
		ID:            g.ID,
		Name:          g.Name,
		Code:          g.Code,
		OwnerID:       g.OwnerID,
		MonthlyBudget: g.MonthlyBudget,
		Members:       members,
		CreatedAt:     g.CreatedAt,
	}
}

func (s *Server) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "group name is required")
		return
	}

	group, err := s.groups.Create(r.Context(), req.Name, middleware.GetUserID(r.Context()))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toGroupResponse(group))
}

func (s *Server) handleJoinGroup(w http.ResponseWriter, r *http.Request) {
	var req joinGroupRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	group, err := s.groups.Join(r.Context(), req.Code, middleware.GetUserID(r.Context()))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGroupResponse(group))
}

func (s *Server) handleGetGroup(w http.ResponseWriter, r *http.Request) {
	group, err := s.groups.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGroupResponse(group))
}

func (s *Server) handleGroupsForUser(w http.ResponseWriter, r *http.Request) {
	groups, err := s.groups.GroupsForUser(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resp := make([]groupResponse, 0, len(groups))
	for i := range groups {
		resp = append(resp, toGroupResponse(&groups[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRenameGroup(w http.ResponseWriter, r *http.Request) {
	var req renameGroupRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "group name is required")
		return
	}

	group, err := s.groups.Rename(r.Context(), chi.URLParam(r, "id"), req.Name)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGroupResponse(group))
}

func (s *Server) handleUpdateBudget(w http.ResponseWriter, r *http.Request) {
	var req budgetRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	group, err := s.groups.UpdateMonthlyBudget(r.Context(), chi.URLParam(r, "id"), req.MonthlyBudget)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGroupResponse(group))
}

func (s *Server) handleRemoveMember(w http.ResponseWriter, r *http.Request) {
	var req removeMemberRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := s.groups.RemoveMember(r.Context(), chi.URLParam(r, "id"), req.UserID, middleware.GetUserID(r.Context()))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleTransferOwnership(w http.ResponseWriter, r *http.Request) {
	var req transferOwnershipRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	group, err := s.groups.TransferOwnership(r.Context(), chi.URLParam(r, "id"), req.NewOwnerID, middleware.GetUserID(r.Context()))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGroupResponse(group))
}

func (s *Server) handleDeleteGroup(w http.ResponseWriter, r *http.Request) {
	if err := s.groups.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleFairnessScores(w http.ResponseWriter, r *http.Request) {
	scores, err := s.fairness.CalculateScores(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toFairnessResponse(scores))
}

func toFairnessResponse(scores map[string]*fairness.Score) []fairnessScoreResponse {
	resp := make([]fairnessScoreResponse, 0, len(scores))
	for _, sc := range scores {
		resp = append(resp, fairnessScoreResponse{
			MemberID:    sc.MemberID,
			DisplayName: sc.DisplayName,
			Pending:     sc.Pending,
			Completed:   sc.Completed,
			Score:       sc.Score,
		})
	}
	sort.Slice(resp, func(i, j int) bool { return resp[i].MemberID < resp[j].MemberID })
	return resp
}
