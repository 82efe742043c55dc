package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes wires the public catalog surface and the session-guarded
// account surface.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	// Public routes
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/health", handlers.statsHandler.health())
		r.Get("/stats", handlers.statsHandler.getStats())

		// Category endpoints
		r.Get("/categories", handlers.categoryHandler.getCategories())
		r.Post("/categories", handlers.categoryHandler.createCategory())

		// Catalog endpoints
		r.Get("/projects", handlers.projectHandler.getCatalog())
		r.Get("/projects/{username}/{slug}", handlers.projectHandler.getProjectDetail())

		// Sign-in flow
		r.Get("/auth/google", handlers.authHandler.login())
		r.Get("/auth/google/callback", handlers.authHandler.callback())
	})

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.authenticate)
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Post("/projects", handlers.projectHandler.createProject())
		r.Post("/projects/{username}/{slug}/reviews", handlers.projectHandler.createReview())
		r.Get("/dashboard", handlers.dashboardHandler.getDashboard())
		r.Get("/me", handlers.userHandler.getMe())
		r.Put("/me", handlers.userHandler.updateMe())
	})
}
