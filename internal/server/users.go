package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mzp/fairshare/internal/auth"
	"github.com/mzp/fairshare/internal/middleware"
	"github.com/mzp/fairshare/internal/models"
)

type registerRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateUserRequest struct {
	DisplayName    string `json:"displayName"`
	ProfilePicture string `json:"profilePicture"`
	Birthdate      string `json:"birthdate"`
	Gender         string `json:"gender"`
}

type userResponse struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	DisplayName    string `json:"displayName"`
	ProfilePicture string `json:"profilePicture,omitempty"`
	Birthdate      string `json:"birthdate,omitempty"`
	Gender         string `json:"gender,omitempty"`
	CreatedAt      int64  `json:"createdAt"`
}

type sessionResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:             u.ID,
		Email:          u.Email,
		DisplayName:    u.DisplayName,
		ProfilePicture: u.ProfilePicture,
		Birthdate:      u.Birthdate,
		Gender:         u.Gender,
		CreatedAt:      u.CreatedAt,
	}
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := s.authenticator.Register(r.Context(), req.Email, req.DisplayName, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrWeakPassword), errors.Is(err, auth.ErrEmailExists):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeDomainError(w, err)
		}
		return
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sessionResponse{Token: token, User: toUserResponse(user)})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := s.authenticator.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		writeDomainError(w, err)
		return
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{Token: token, User: toUserResponse(user)})
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.authenticator.ListUsers(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resp := make([]userResponse, 0, len(users))
	for i := range users {
		resp = append(resp, toUserResponse(&users[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if userID != middleware.GetUserID(r.Context()) {
		writeError(w, http.StatusUnauthorized, "cannot update another user's profile")
		return
	}

	var req updateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := s.authenticator.UpdateProfile(r.Context(), userID, auth.ProfileUpdate{
		DisplayName:    req.DisplayName,
		ProfilePicture: req.ProfilePicture,
		Birthdate:      req.Birthdate,
		Gender:         req.Gender,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(user))
}
