package service

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mmynk/habitual/internal/auth"
	"github.com/mmynk/habitual/internal/middleware"
	"github.com/mmynk/habitual/pkg/metrics"
)

// NewRouter assembles the HTTP API.
//
// Routes:
//
//	POST /api/auth/register        → AuthService.Register
//	POST /api/auth/login           → AuthService.Login
//	GET    /api/habits             → HabitService.List        (bearer token)
//	POST   /api/habits             → HabitService.Create      (bearer token)
//	PUT    /api/habits/{id}        → HabitService.Update      (bearer token)
//	DELETE /api/habits/{id}        → HabitService.Delete      (bearer token)
//	POST   /api/habits/{id}/checkin→ HabitService.CheckIn     (bearer token)
//	GET    /api/habits/{id}/checkin→ HabitService.ListCheckIns (bearer token)
//	GET  /health                   → liveness probe
//	GET  /metrics                  → Prometheus metrics
func NewRouter(authSvc *AuthService, habitSvc *HabitService, jwtManager *auth.JWTManager) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestLogger())

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authSvc.Register)
			r.Post("/login", authSvc.Login)
		})

		r.Route("/habits", func(r chi.Router) {
			r.Use(middleware.RequireAuth(jwtManager))
			r.Get("/", habitSvc.List)
			r.Post("/", habitSvc.Create)
			r.Put("/{id}", habitSvc.Update)
			r.Delete("/{id}", habitSvc.Delete)
			r.Post("/{id}/checkin", habitSvc.CheckIn)
			r.Get("/{id}/checkin", habitSvc.ListCheckIns)
		})
	})

	return r
}
