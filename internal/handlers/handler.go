package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Varun5711/wecare/internal/logger"
	"github.com/Varun5711/wecare/internal/models"
	"github.com/Varun5711/wecare/internal/service"
)

type dataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, models.ErrorResponse{Message: message})
}

// respondServiceError maps a service error kind onto its HTTP status. Internal
// errors are logged and replaced by a generic message.
func respondServiceError(w http.ResponseWriter, log *logger.Logger, err error) {
	var svcErr *service.Error
	if !errors.As(err, &svcErr) {
		log.Error("Unexpected error: %v", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	switch {
	case errors.Is(err, service.ErrInvalidArgument):
		respondError(w, http.StatusBadRequest, svcErr.Message)
	case errors.Is(err, service.ErrUnauthenticated):
		respondError(w, http.StatusUnauthorized, svcErr.Message)
	case errors.Is(err, service.ErrNotFound):
		respondError(w, http.StatusNotFound, svcErr.Message)
	case errors.Is(err, service.ErrAlreadyExists), errors.Is(err, service.ErrConflict):
		respondError(w, http.StatusConflict, svcErr.Message)
	default:
		log.Error("Internal error: %v", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
