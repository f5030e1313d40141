package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/baharkarakas/onboarding-backend/internal/api/httpx"
	"github.com/baharkarakas/onboarding-backend/internal/middleware"
	"github.com/baharkarakas/onboarding-backend/internal/policy"
)

// decode writes a 400 and reports false when the body is not a JSON object.
func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := httpx.DecodeJSON(w, r, v); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "Invalid request body", nil)
		return false
	}
	return true
}

// requirementID parses {id}; a non-numeric id cannot name a record, so it is a 404.
func requirementID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.WriteError(w, http.StatusNotFound, "not_found", "Requirement not found", nil)
		return 0, false
	}
	return id, true
}

func actor(w http.ResponseWriter, r *http.Request) (policy.Actor, bool) {
	uc, ok := middleware.FromCtx(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "Access token required", nil)
		return policy.Actor{}, false
	}
	return uc.Actor(), true
}
