package api

import (
	"encoding/json"
	"net/http"

	"stayspot/internal/auth"
	"stayspot/internal/entities"
	"stayspot/internal/service"
)

type BookingHandler struct {
	Service *service.BookingService
}

func NewBookingHandler(svc *service.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

// GET /api/spots/{id}/bookings
func (h *BookingHandler) ListSpotBookings(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r)
	spotID, err := spotIDVar(r)
	if err != nil {
		respondError(w, err)
		return
	}
	feed, err := h.Service.ListForSpot(userID, spotID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, feed)
}

// POST /api/spots/{id}/bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r)
	spotID, err := spotIDVar(r)
	if err != nil {
		respondError(w, err)
		return
	}
	var input entities.BookingInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondJSON(w, http.StatusBadRequest, errorEnvelope{Message: "Invalid request body"})
		return
	}
	booking, err := h.Service.Create(userID, spotID, input)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, booking)
}
