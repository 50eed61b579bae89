package api

import (
	"encoding/json"
	"net/http"

	"stayspot/internal/auth"
	"stayspot/internal/entities"
	"stayspot/internal/service"
)

type AuthHandler struct {
	Service service.AuthService
}

func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{Service: svc}
}

// POST /api/users
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var input entities.SignupInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondJSON(w, http.StatusBadRequest, errorEnvelope{Message: "Invalid request body"})
		return
	}
	session, err := h.Service.Signup(input)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, session)
}

// POST /api/session
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input entities.LoginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondJSON(w, http.StatusBadRequest, errorEnvelope{Message: "Invalid request body"})
		return
	}
	session, err := h.Service.Login(input.Email, input.Password)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, session)
}

// GET /api/session
func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorEnvelope{Message: "Authentication required"})
		return
	}
	user, err := h.Service.GetUser(userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"user": user})
}
