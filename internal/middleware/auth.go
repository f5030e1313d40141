package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/baharkarakas/onboarding-backend/internal/api/httpx"
	"github.com/baharkarakas/onboarding-backend/internal/auth"
)

type AuthMiddleware struct {
	TM  *auth.TokenManager
	Rev auth.Revocations
}

func NewAuthMiddleware(tm *auth.TokenManager, rev auth.Revocations) *AuthMiddleware {
	return &AuthMiddleware{TM: tm, Rev: rev}
}

// Auth requires "Authorization: Bearer <access JWT>" and puts the caller into the context.
func (m *AuthMiddleware) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ah := r.Header.Get("Authorization")
		if len(ah) < len("bearer ") || !strings.EqualFold(ah[:len("bearer ")], "bearer ") {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "Access token required", nil)
			return
		}
		token := strings.TrimSpace(ah[len("bearer "):])

		claims, err := m.TM.ParseAccess(token)
		if err != nil {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired token", nil)
			return
		}
		revoked, err := m.Rev.IsRevoked(r.Context(), claims.ID)
		if err != nil {
			slog.ErrorContext(r.Context(), "revocation check", "err", err, "request_id", RequestIDFrom(r.Context()))
			httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "Server error", nil)
			return
		}
		if revoked {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired token", nil)
			return
		}

		ctx := WithUser(r.Context(), UserCtx{UserID: claims.UserID, Role: claims.Role, Claims: claims})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
