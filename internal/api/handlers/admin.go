package handlers

import (
	"net/http"

	"github.com/baharkarakas/onboarding-backend/internal/api/httpx"
	"github.com/baharkarakas/onboarding-backend/internal/models"
	"github.com/baharkarakas/onboarding-backend/internal/services"
)

// AdminHandler serves /admin/requirements. The role gate runs in the router;
// the service checks the role again.
type AdminHandler struct {
	Svc *services.RequirementService
}

func NewAdminHandler(s *services.RequirementService) *AdminHandler {
	return &AdminHandler{Svc: s}
}

type statusReq struct {
	Status models.RequirementStatus `json:"status"`
}

func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}
	out, err := h.Svc.ListAll(r.Context(), a)
	if err != nil {
		httpx.WriteServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *AdminHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := requirementID(w, r)
	if !ok {
		return
	}
	var req statusReq
	if !decode(w, r, &req) {
		return
	}
	out, err := h.Svc.ChangeStatus(r.Context(), a, id, req.Status)
	if err != nil {
		httpx.WriteServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *AdminHandler) Lock(w http.ResponseWriter, r *http.Request) {
	h.setLocked(w, r, true)
}

func (h *AdminHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	h.setLocked(w, r, false)
}

func (h *AdminHandler) setLocked(w http.ResponseWriter, r *http.Request, locked bool) {
	a, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := requirementID(w, r)
	if !ok {
		return
	}
	var (
		out models.Requirement
		err error
	)
	if locked {
		out, err = h.Svc.Lock(r.Context(), a, id)
	} else {
		out, err = h.Svc.Unlock(r.Context(), a, id)
	}
	if err != nil {
		httpx.WriteServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *AdminHandler) Audit(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := requirementID(w, r)
	if !ok {
		return
	}
	out, err := h.Svc.AuditHistory(r.Context(), a, id)
	if err != nil {
		httpx.WriteServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}
