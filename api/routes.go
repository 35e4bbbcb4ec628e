package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// setupRoutes wires every page route; the project-management routes sit
// behind the session guard.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/", handlers.siteHandler.home())
		r.Get("/about", handlers.siteHandler.about())
		r.Get("/resume", handlers.siteHandler.resume())
		r.Get("/download", handlers.siteHandler.download())

		r.Get("/projects", handlers.projectHandler.listProjects())
		r.Get("/project-{projectID}", handlers.projectHandler.showProject())

		r.Get("/contact", handlers.contactHandler.showContactForm())
		r.Post("/contact", handlers.contactHandler.submitContact())

		r.Get("/login", handlers.authHandler.showLogin())
		r.Post("/login", handlers.authHandler.handleLogin())

		// Guarded routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.requireLogin)

			r.Get("/add-project", handlers.projectHandler.newProjectForm())
			r.Post("/add-project", handlers.projectHandler.createProject())
			r.Get("/edit-project-{projectID}", handlers.projectHandler.editProjectForm())
			r.Post("/edit-project-{projectID}", handlers.projectHandler.updateProject())
		})

		// Static assets (stylesheets, images, the resume file)
		fileServer := http.FileServer(http.Dir("static"))
		r.Handle("/static/*", http.StripPrefix("/static/", fileServer))
	})
}
