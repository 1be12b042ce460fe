package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"learnloop/internal/service"
	"learnloop/internal/utils"
)

// respondJSON writes a JSON response with the given status
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			log.Printf("failed to encode response: %v", err)
		}
	}
}

// respondError writes a JSON error body. Internal detail goes to the log,
// never to the client.
func respondError(w http.ResponseWriter, status int, userMsg string, err error) {
	if err != nil {
		log.Printf("%s: %v", userMsg, err)
	}
	respondJSON(w, status, map[string]string{"error": userMsg})
}

// respondServiceError maps service-layer errors onto HTTP statuses
func respondServiceError(w http.ResponseWriter, err error) {
	var validation utils.ValidationError
	switch {
	case errors.As(err, &validation):
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": validation.Message, "field": validation.Field})
	case errors.Is(err, service.ErrEmailTaken):
		respondError(w, http.StatusConflict, "email already registered", nil)
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInvalidKidPin):
		respondError(w, http.StatusUnauthorized, "invalid credentials", nil)
	case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, service.ErrSessionExpired):
		respondError(w, http.StatusUnauthorized, "session expired", nil)
	case errors.Is(err, service.ErrChildNotFound), errors.Is(err, service.ErrModuleNotFound):
		respondError(w, http.StatusNotFound, "not found", nil)
	case errors.Is(err, service.ErrNotChildParent):
		respondError(w, http.StatusForbidden, "not allowed", nil)
	default:
		respondError(w, http.StatusInternalServerError, "Something went wrong. Please try again.", err)
	}
}

// decodeJSON parses a request body into dst
func decodeJSON(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}
