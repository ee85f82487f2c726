package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes mounts every endpoint under /api/v1. Reads of the public
// catalog and enquiry submission are open; everything else sits behind the
// bearer-token gate and the administrative role.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Get("/healthz", handlers.healthHandler.health())

	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Group(func(r chi.Router) {
			r.Get("/projects", handlers.projectHandler.listProjects())
			r.Get("/projects/{code}", handlers.projectHandler.getProjectByCode())
			r.Get("/services", handlers.serviceHandler.listServices())
			r.Get("/services/{name}", handlers.serviceHandler.getServiceByName())
			r.Post("/enquiries", handlers.enquiryHandler.createEnquiry())
		})

		// Administrative routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.authenticate)
			r.Use(authMiddleware.requireRole(roleAdmin))

			// Project Handler endpoints
			r.Post("/projects", handlers.projectHandler.createProject())
			r.Put("/projects/{projectID}", handlers.projectHandler.updateProject())
			r.Delete("/projects/{projectID}", handlers.projectHandler.deleteProject())

			// Gallery endpoints
			r.Post("/projects/{projectID}/images/upload-url", handlers.projectHandler.createUploadURL())
			r.Post("/projects/{projectID}/images/confirm", handlers.projectHandler.confirmImage())
			r.Post("/projects/{projectID}/images/upload", handlers.projectHandler.uploadImage())
			r.Post("/projects/{projectID}/images/upload-multiple", handlers.projectHandler.uploadMultipleImages())
			r.Put("/projects/{projectID}/images/{imageID}/hero", handlers.projectHandler.setHeroImage())
			r.Delete("/projects/{projectID}/images/{imageID}", handlers.projectHandler.deleteImage())

			// Service Handler endpoints
			r.Post("/services", handlers.serviceHandler.createService())
			r.Put("/services/{serviceID}", handlers.serviceHandler.updateService())
			r.Delete("/services/{serviceID}", handlers.serviceHandler.deleteService())

			// Enquiry Handler endpoints
			r.Get("/enquiries", handlers.enquiryHandler.listEnquiries())
			r.Put("/enquiries/{enquiryID}", handlers.enquiryHandler.updateEnquiry())

			// User Handler endpoints
			r.Get("/users", handlers.userHandler.listUsers())
			r.Get("/users/{userID}", handlers.userHandler.getUser())
			r.Post("/users", handlers.userHandler.createUser())
			r.Put("/users/{userID}", handlers.userHandler.updateUser())
			r.Delete("/users/{userID}", handlers.userHandler.deleteUser())
			r.Post("/users/{userID}/reset-password", handlers.userHandler.resetPassword())
		})
	})
}
