package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"stayspot/internal/apperr"
	"stayspot/internal/auth"
	"stayspot/internal/entities"
	"stayspot/internal/service"
)

type SpotHandler struct {
	Service *service.SpotService
}

func NewSpotHandler(svc *service.SpotService) *SpotHandler {
	return &SpotHandler{Service: svc}
}

// GET /api/spots
func (h *SpotHandler) ListSpots(w http.ResponseWriter, r *http.Request) {
	filter, err := parseSpotFilter(r)
	if err != nil {
		respondError(w, err)
		return
	}
	resp, err := h.Service.List(filter)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// GET /api/spots/current
func (h *SpotHandler) ListOwnSpots(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r)
	resp, err := h.Service.ListByOwner(userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// GET /api/spots/{id}
func (h *SpotHandler) GetSpot(w http.ResponseWriter, r *http.Request) {
	raw := mux.Vars(r)["id"]
	spotID, err := strconv.Atoi(raw)
	if err != nil {
		msg := fmt.Sprintf("%s is not a valid integer", raw)
		respondJSON(w, http.StatusBadRequest, errorEnvelope{
			Message: msg,
			Errors:  map[string]string{"id": msg},
		})
		return
	}
	detail, err := h.Service.Get(spotID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, detail)
}

// POST /api/spots
func (h *SpotHandler) CreateSpot(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r)
	var input entities.SpotInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondJSON(w, http.StatusBadRequest, errorEnvelope{Message: "Invalid request body"})
		return
	}
	spot, err := h.Service.Create(userID, input)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, spot)
}

// PUT /api/spots/{id}
func (h *SpotHandler) UpdateSpot(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r)
	spotID, err := spotIDVar(r)
	if err != nil {
		respondError(w, err)
		return
	}
	var input entities.SpotInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondJSON(w, http.StatusBadRequest, errorEnvelope{Message: "Invalid request body"})
		return
	}
	spot, err := h.Service.Update(userID, spotID, input)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, spot)
}

// DELETE /api/spots/{id}
func (h *SpotHandler) DeleteSpot(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r)
	spotID, err := spotIDVar(r)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.Service.Delete(userID, spotID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Successfully deleted"})
}

// POST /api/spots/{id}/images
func (h *SpotHandler) AddSpotImage(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r)
	spotID, err := spotIDVar(r)
	if err != nil {
		respondError(w, err)
		return
	}
	var input entities.SpotImageInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondJSON(w, http.StatusBadRequest, errorEnvelope{Message: "Invalid request body"})
		return
	}
	image, err := h.Service.AddImage(userID, spotID, input)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, image)
}

// spotIDVar resolves the {id} path variable. A non-numeric id cannot
// name any spot, so it reports the standard 404.
func spotIDVar(r *http.Request) (int, error) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		return 0, apperr.NotFound("Spot")
	}
	return id, nil
}

func parseSpotFilter(r *http.Request) (entities.SpotFilter, error) {
	q := r.URL.Query()
	filter := entities.SpotFilter{Page: 1, Size: defaultListSize}
	fields := map[string]string{}

	if v := q.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil {
			fields["page"] = "Page must be greater than or equal to 1"
		} else {
			filter.Page = page
		}
	}
	if v := q.Get("size"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil {
			fields["size"] = "Size must be between 1 and 20"
		} else {
			filter.Size = size
		}
	}

	filter.MinLat = parseFloatParam(q.Get("minLat"), "minLat", "Minimum latitude is invalid", fields)
	filter.MaxLat = parseFloatParam(q.Get("maxLat"), "maxLat", "Maximum latitude is invalid", fields)
	filter.MinLng = parseFloatParam(q.Get("minLng"), "minLng", "Minimum longitude is invalid", fields)
	filter.MaxLng = parseFloatParam(q.Get("maxLng"), "maxLng", "Maximum longitude is invalid", fields)
	filter.MinPrice = parseFloatParam(q.Get("minPrice"), "minPrice", "Minimum price must be greater than or equal to 0", fields)
	filter.MaxPrice = parseFloatParam(q.Get("maxPrice"), "maxPrice", "Maximum price must be greater than or equal to 0", fields)

	if filter.MinPrice != nil && *filter.MinPrice < 0 {
		fields["minPrice"] = "Minimum price must be greater than or equal to 0"
	}
	if filter.MaxPrice != nil && *filter.MaxPrice < 0 {
		fields["maxPrice"] = "Maximum price must be greater than or equal to 0"
	}

	if len(fields) > 0 {
		return filter, apperr.Validation(fields)
	}
	return filter, nil
}

const defaultListSize = 20

func parseFloatParam(raw, key, message string, fields map[string]string) *float64 {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		fields[key] = message
		return nil
	}
	return &v
}
