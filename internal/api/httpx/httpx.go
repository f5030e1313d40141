package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/baharkarakas/onboarding-backend/internal/api/validate"
	"github.com/baharkarakas/onboarding-backend/internal/services"
)

type APIError struct {
	Message string      `json:"message"`
	Code    string      `json:"code,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, code, msg string, details interface{}) {
	WriteJSON(w, status, APIError{
		Message: msg,
		Code:    code,
		Details: details,
	})
}

// WriteServiceError maps the service error taxonomy onto status codes.
// Unknown errors become a generic 500; their text is logged, never sent.
func WriteServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verrs validate.Errs
	switch {
	case errors.As(err, &verrs):
		WriteError(w, http.StatusBadRequest, "validation_error", "Validation failed", verrs)
	case errors.Is(err, services.ErrNotFound):
		WriteError(w, http.StatusNotFound, "not_found", "Requirement not found", nil)
	case errors.Is(err, services.ErrLocked):
		WriteError(w, http.StatusForbidden, "locked", "Requirement is locked and cannot be modified", nil)
	case errors.Is(err, services.ErrForbidden):
		WriteError(w, http.StatusForbidden, "forbidden", "Admin access required", nil)
	case errors.Is(err, services.ErrEmailTaken):
		WriteError(w, http.StatusBadRequest, "email_taken", "User already exists", nil)
	case errors.Is(err, services.ErrInvalidCredentials):
		WriteError(w, http.StatusBadRequest, "invalid_credentials", "Invalid credentials", nil)
	case errors.Is(err, services.ErrUserNotFound):
		WriteError(w, http.StatusNotFound, "not_found", "User not found", nil)
	default:
		slog.ErrorContext(r.Context(), "request failed", "err", err, "method", r.Method, "path", r.URL.Path)
		WriteError(w, http.StatusInternalServerError, "internal_error", "Server error", nil)
	}
}

// DecodeJSON reads a single JSON object from the body.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4<<20))
	return dec.Decode(v)
}
