package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/keerthiramGR/college-event/app"
	"github.com/keerthiramGR/college-event/utils"
)

// SetupRoutes configures all application routes and middleware
func SetupRoutes(deps *app.Dependencies) http.Handler {
	r := chi.NewRouter()

	// Core middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Service banner and health probes
	r.Get("/", deps.HealthHandler.HandleRoot)
	r.Get("/healthz", deps.HealthHandler.HandleHealth)
	r.Get("/readyz", deps.HealthHandler.HandleReadiness)

	// API routes. Every data endpoint needs the store, so the whole subtree
	// is rejected when the database is not configured.
	r.Route("/api", func(r chi.Router) {
		r.Use(requireStore(deps))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/google-login", deps.AuthHandler.HandleGoogleLogin)

			r.Group(func(r chi.Router) {
				r.Use(deps.AuthMiddleware.RequireAuth)
				r.Get("/me", deps.AuthHandler.HandleMe)
				r.Post("/logout", deps.AuthHandler.HandleLogout)
			})

			r.Group(func(r chi.Router) {
				r.Use(deps.AuthMiddleware.RequireAuth)
				r.Use(deps.AuthMiddleware.RequireAdmin)
				r.Put("/make-admin/{user_id}", deps.AuthHandler.HandleMakeAdmin)
			})
		})

		r.Route("/events", func(r chi.Router) {
			r.Get("/", deps.EventHandler.HandleList)
			r.Get("/{id}", deps.EventHandler.HandleGet)

			r.Group(func(r chi.Router) {
				r.Use(deps.AuthMiddleware.RequireAuth)
				r.Use(deps.AuthMiddleware.RequireAdmin)
				r.Post("/", deps.EventHandler.HandleCreate)
				r.Put("/{id}", deps.EventHandler.HandleUpdate)
				r.Delete("/{id}", deps.EventHandler.HandleDelete)
			})
		})

		r.Route("/clubs", func(r chi.Router) {
			r.Get("/", deps.ClubHandler.HandleList)
			r.Get("/{id}", deps.ClubHandler.HandleGet)
			r.Get("/{id}/members", deps.ClubHandler.HandleListMembers)
			r.Get("/{id}/announcements", deps.ClubHandler.HandleListAnnouncements)

			r.Group(func(r chi.Router) {
				r.Use(deps.AuthMiddleware.RequireAuth)
				r.Use(deps.AuthMiddleware.RequireAdmin)
				r.Post("/", deps.ClubHandler.HandleCreate)
				r.Put("/{id}", deps.ClubHandler.HandleUpdate)
				r.Delete("/{id}", deps.ClubHandler.HandleDelete)
				r.Post("/{id}/announcements", deps.ClubHandler.HandleCreateAnnouncement)
				r.Delete("/{id}/announcements/{announcement_id}", deps.ClubHandler.HandleDeleteAnnouncement)
			})
		})

		r.Route("/registrations", func(r chi.Router) {
			r.Use(deps.AuthMiddleware.RequireAuth)

			r.Get("/events/my", deps.RegistrationHandler.HandleMyEvents)
			r.Post("/events/{event_id}", deps.RegistrationHandler.HandleRegister)
			r.Delete("/events/{event_id}", deps.RegistrationHandler.HandleUnregister)

			r.Get("/clubs/my", deps.RegistrationHandler.HandleMyClubs)
			r.Post("/clubs/{club_id}", deps.RegistrationHandler.HandleJoinClub)
			r.Delete("/clubs/{club_id}", deps.RegistrationHandler.HandleLeaveClub)

			r.Group(func(r chi.Router) {
				r.Use(deps.AuthMiddleware.RequireAdmin)
				r.Get("/events/{event_id}/users", deps.RegistrationHandler.HandleEventRegistrants)
				r.Get("/admin/all-users", deps.AuthHandler.HandleListUsers)
			})
		})
	})

	// 404 handler
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"endpoint not found"}`))
	})

	return r
}

// requireStore rejects data requests when the API booted without a database
func requireStore(deps *app.Dependencies) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !deps.StoreConfigured() {
				_ = utils.WriteJSON(w, http.StatusServiceUnavailable, utils.ErrorResponse{
					Error:   "service_unavailable",
					Message: "database not configured",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
