package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"stayspot/internal/apperr"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			log.Printf("Error encoding response: %v", err)
		}
	}
}

type errorEnvelope struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func respondError(w http.ResponseWriter, err error) {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		respondJSON(w, appErr.Status, errorEnvelope{Message: appErr.Message, Errors: appErr.Errors})
		return
	}
	log.Printf("Unhandled error: %v", err)
	respondJSON(w, http.StatusInternalServerError, errorEnvelope{Message: "Internal Server Error"})
}
