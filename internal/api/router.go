package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/baharkarakas/onboarding-backend/internal/api/handlers"
	"github.com/baharkarakas/onboarding-backend/internal/auth"
	"github.com/baharkarakas/onboarding-backend/internal/config"
	"github.com/baharkarakas/onboarding-backend/internal/metrics"
	"github.com/baharkarakas/onboarding-backend/internal/middleware"
	"github.com/baharkarakas/onboarding-backend/internal/models"
	"github.com/baharkarakas/onboarding-backend/internal/services"
)

type RouterDeps struct {
	Cfg            config.Config
	TM             *auth.TokenManager
	Revocations    auth.Revocations
	UserSvc        *services.UserService
	RequirementSvc *services.RequirementService
}

func NewRouter(d RouterDeps) http.Handler {
	authH := handlers.NewAuthHandler(d.UserSvc)
	reqH := handlers.NewRequirementHandler(d.RequirementSvc)
	adminH := handlers.NewAdminHandler(d.RequirementSvc)
	authMW := middleware.NewAuthMiddleware(d.TM, d.Revocations)

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.RateLimit(d.Cfg.RateRPS), middleware.HTTPMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.Cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Content-Disposition", "X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// health & metrics
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		// ---------- auth ----------
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authH.Register)
			r.Post("/login", authH.Login)
			r.Post("/refresh", authH.Refresh)
			r.Group(func(r chi.Router) {
				r.Use(authMW.Auth)
				r.Get("/me", authH.Me)
				r.Post("/logout", authH.Logout)
			})
		})

		// ---------- requirements (owner scoped) ----------
		r.Route("/requirements", func(r chi.Router) {
			r.Use(authMW.Auth)
			r.Post("/", reqH.Create)
			r.Get("/", reqH.List)
			r.Get("/download/{id}", reqH.Download)
			r.Get("/{id}", reqH.Get)
			r.Put("/{id}", reqH.Update)
			r.Delete("/{id}", reqH.Delete)
		})

		// ---------- admin ----------
		r.Route("/admin/requirements", func(r chi.Router) {
			r.Use(authMW.Auth, middleware.RequireRole(models.RoleAdmin))
			r.Get("/", adminH.List)
			r.Get("/{id}", reqH.Get)
			r.Put("/{id}", reqH.Update)
			r.Put("/{id}/status", adminH.ChangeStatus)
			r.Put("/{id}/lock", adminH.Lock)
			r.Put("/{id}/unlock", adminH.Unlock)
			r.Get("/{id}/audit", adminH.Audit)
		})
	})

	return r
}
