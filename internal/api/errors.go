package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/marcelofalero/swse-architech/internal/domain"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// respondError maps a domain error to its HTTP status. Expected outcomes
// (not found, denied, conflict, validation) pass their message through;
// anything else — including an unavailable store — is logged and
// converted to a generic failure so no internal state leaks.
func respondError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.As(err, new(*domain.NotFoundError)):
		writeJSON(w, http.StatusNotFound, errorBody{Code: http.StatusNotFound, Message: err.Error()})
	case errors.As(err, new(*domain.AccessDeniedError)):
		writeJSON(w, http.StatusForbidden, errorBody{Code: http.StatusForbidden, Message: err.Error()})
	case errors.As(err, new(*domain.UnauthorizedError)):
		writeJSON(w, http.StatusUnauthorized, errorBody{Code: http.StatusUnauthorized, Message: err.Error()})
	case errors.As(err, new(*domain.ValidationError)):
		writeJSON(w, http.StatusBadRequest, errorBody{Code: http.StatusBadRequest, Message: err.Error()})
	case errors.As(err, new(*domain.ConflictError)):
		writeJSON(w, http.StatusConflict, errorBody{Code: http.StatusConflict, Message: err.Error()})
	case errors.As(err, new(*domain.UnavailableError)):
		logger.Error("dependency unavailable", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, errorBody{Code: http.StatusServiceUnavailable, Message: "service unavailable"})
	default:
		logger.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Code: http.StatusInternalServerError, Message: "internal error"})
	}
}
