package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mzp/fairshare/internal/middleware"
	"github.com/mzp/fairshare/internal/models"
	"github.com/mzp/fairshare/internal/service"
)

type createExpenseRequest struct {
	GroupID     string  `json:"groupId"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	PaidBy      string  `json:"paidBy"`
	IsSplit     bool    `json:"isSplit"`
}

// updateExpenseRequest uses pointers so absent fields keep their
// current value.
type updateExpenseRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Amount      *float64 `json:"amount"`
	Date        *string  `json:"date"`
	PaidBy      *string  `json:"paidBy"`
	IsSplit     *bool    `json:"isSplit"`
}

type expenseResponse struct {
	ID          string  `json:"id"`
	GroupID     string  `json:"groupId"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date,omitempty"`
	PaidBy      string  `json:"paidBy,omitempty"`
	IsSplit     bool    `json:"isSplit"`
	CreatedAt   int64   `json:"createdAt"`
}

func toExpenseResponse(e *models.Expense) expenseResponse {
	return expenseResponse{
		ID:          e.ID,
		GroupID:     e.GroupID,
		Title:       e.Title,
		Description: e.Description,
		Amount:      e.Amount,
		Date:        e.Date,
		PaidBy:      e.PaidBy,
		IsSplit:     e.IsSplit,
		CreatedAt:   e.CreatedAt,
	}
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "expense title is required")
		return
	}

	expense := &models.Expense{
		Title:       req.Title,
		Description: req.Description,
		Amount:      req.Amount,
		Date:        req.Date,
		IsSplit:     req.IsSplit,
	}
	created, err := s.expenses.Create(r.Context(), expense, req.GroupID, req.PaidBy,
		middleware.GetUserID(r.Context()))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toExpenseResponse(created))
}

func (s *Server) handleGroupExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.expenses.GroupExpenses(r.Context(), chi.URLParam(r, "groupID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toExpenseResponses(expenses))
}

func (s *Server) handleGroupExpensesForUser(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.expenses.GroupExpensesForUser(r.Context(),
		chi.URLParam(r, "groupID"), chi.URLParam(r, "userID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toExpenseResponses(expenses))
}

func toExpenseResponses(expenses []models.Expense) []expenseResponse {
	resp := make([]expenseResponse, 0, len(expenses))
	for i := range expenses {
		resp = append(resp, toExpenseResponse(&expenses[i]))
	}
	return resp
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	var req updateExpenseRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	updated, err := s.expenses.Update(r.Context(), chi.URLParam(r, "id"), service.ExpenseUpdate{
		Title:       req.Title,
		Description: req.Description,
		Amount:      req.Amount,
		Date:        req.Date,
		PaidBy:      req.PaidBy,
		IsSplit:     req.IsSplit,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toExpenseResponse(updated))
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := s.expenses.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
