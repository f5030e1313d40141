package handlers

import (
	"mime"
	"net/http"
	"strconv"

	"github.com/baharkarakas/onboarding-backend/internal/api/httpx"
	"github.com/baharkarakas/onboarding-backend/internal/services"
)

// RequirementHandler serves the owner-facing /requirements routes.
type RequirementHandler struct {
	Svc *services.RequirementService
}

func NewRequirementHandler(s *services.RequirementService) *RequirementHandler {
	return &RequirementHandler{Svc: s}
}

func (h *RequirementHandler) Create(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}
	var in services.CreateRequirementInput
	if !decode(w, r, &in) {
		return
	}
	req, err := h.Svc.Create(r.Context(), a, in)
	if err != nil {
		httpx.WriteServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, req)
}

func (h *RequirementHandler) List(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}
	out, err := h.Svc.ListMine(r.Context(), a)
	if err != nil {
		httpx.WriteServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *RequirementHandler) Get(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := requirementID(w, r)
	if !ok {
		return
	}
	req, err := h.Svc.Get(r.Context(), a, id)
	if err != nil {
		httpx.WriteServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, req)
}

// Update is shared by /requirements/{id} and /admin/requirements/{id}; the
// service decides between ownership and admin rules from the actor.
func (h *RequirementHandler) Update(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := requirementID(w, r)
	if !ok {
		return
	}
	var in services.UpdateRequirementInput
	if !decode(w, r, &in) {
		return
	}
	req, err := h.Svc.Update(r.Context(), a, id, in)
	if err != nil {
		httpx.WriteServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, req)
}

func (h *RequirementHandler) Delete(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := requirementID(w, r)
	if !ok {
		return
	}
	if err := h.Svc.Delete(r.Context(), a, id); err != nil {
		httpx.WriteServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "Requirement deleted"})
}

func (h *RequirementHandler) Download(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := requirementID(w, r)
	if !ok {
		return
	}
	name, body, err := h.Svc.Download(r.Context(), a, id)
	if err != nil {
		httpx.WriteServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
