package handlers

import (
	"net/http"
	"time"

	"github.com/baharkarakas/onboarding-backend/internal/api/httpx"
	"github.com/baharkarakas/onboarding-backend/internal/middleware"
	"github.com/baharkarakas/onboarding-backend/internal/models"
	"github.com/baharkarakas/onboarding-backend/internal/services"
)

type AuthHandler struct {
	Users *services.UserService
}

func NewAuthHandler(us *services.UserService) *AuthHandler {
	return &AuthHandler{Users: us}
}

type registerReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshReq struct {
	RefreshToken string `json:"refreshToken"`
}

type userDTO struct {
	ID       int64       `json:"id"`
	Email    string      `json:"email"`
	FullName string      `json:"fullName"`
	Role     models.Role `json:"role"`
}

type authResp struct {
	Success      bool      `json:"success"`
	Message      string    `json:"message"`
	Token        string    `json:"token"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
	User         userDTO   `json:"user"`
}

func toUserDTO(u models.User) userDTO {
	return userDTO{ID: u.ID, Email: u.Email, FullName: u.FullName, Role: u.Role}
}

func sessionResp(s services.Session, msg string) authResp {
	return authResp{
		Success:      true,
		Message:      msg,
		Token:        s.Tokens.Access,
		RefreshToken: s.Tokens.Refresh,
		ExpiresAt:    s.Tokens.AccessExp,
		User:         toUserDTO(s.User),
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if !decode(w, r, &req) {
		return
	}
	s, err := h.Users.Register(r.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		httpx.WriteServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, sessionResp(s, "Registration successful"))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if !decode(w, r, &req) {
		return
	}
	s, err := h.Users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		httpx.WriteServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, sessionResp(s, "Login successful"))
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshReq
	if !decode(w, r, &req) {
		return
	}
	if req.RefreshToken == "" {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "Refresh token required", nil)
		return
	}
	s, err := h.Users.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		httpx.WriteServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, sessionResp(s, "Token refreshed"))
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	uc, ok := middleware.FromCtx(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "Access token required", nil)
		return
	}
	u, err := h.Users.Me(r.Context(), uc.UserID)
	if err != nil {
		httpx.WriteServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserDTO(u))
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	uc, ok := middleware.FromCtx(r.Context())
	if !ok || uc.Claims == nil {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "Access token required", nil)
		return
	}
	if err := h.Users.Logout(r.Context(), uc.Claims); err != nil {
		httpx.WriteServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
