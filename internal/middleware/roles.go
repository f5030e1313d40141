package middleware

import (
	"net/http"

	"github.com/baharkarakas/onboarding-backend/internal/models"
)

// RequireRole wraps a handler and allows only the given role.
func RequireRole(need models.Role) func(http.Handler) http.Handler {
	return RBAC(need)
}
