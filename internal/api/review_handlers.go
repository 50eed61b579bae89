package api

import (
	"encoding/json"
	"net/http"

	"stayspot/internal/auth"
	"stayspot/internal/entities"
	"stayspot/internal/service"
)

type ReviewHandler struct {
	Service *service.ReviewService
}

func NewReviewHandler(svc *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{Service: svc}
}

// GET /api/spots/{id}/reviews
func (h *ReviewHandler) ListSpotReviews(w http.ResponseWriter, r *http.Request) {
	spotID, err := spotIDVar(r)
	if err != nil {
		respondError(w, err)
		return
	}
	reviews, err := h.Service.ListForSpot(spotID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, reviews)
}

// POST /api/spots/{id}/reviews
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r)
	spotID, err := spotIDVar(r)
	if err != nil {
		respondError(w, err)
		return
	}
	var input entities.ReviewInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondJSON(w, http.StatusBadRequest, errorEnvelope{Message: "Invalid request body"})
		return
	}
	review, err := h.Service.Create(userID, spotID, input)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, review)
}
