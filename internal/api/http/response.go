package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"promoplace-backend/internal/domain"
	"promoplace-backend/internal/logger"
	"promoplace-backend/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

// writeError maps the core error taxonomy onto HTTP status codes: absent
// records are 404, state conflicts 409, bad input 400.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, domain.ErrAlreadyHasBadge),
		errors.Is(err, domain.ErrBadgeNotHeld),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrRequestAlreadyPending),
		errors.Is(err, domain.ErrNoPendingRequest),
		errors.Is(err, domain.ErrNoActiveConfig):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case domain.IsValidation(err):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
	default:
		logger.Error("Request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}
