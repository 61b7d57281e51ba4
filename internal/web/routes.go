package web

import (
	"github.com/go-chi/chi/v5"

	"github.com/memoprint/memoprint/internal/web/handlers"
)

func (s *Server) setupRoutes() {
	projectsHandler := handlers.NewProjectsHandler(s.store)
	imagesHandler := handlers.NewImagesHandler(s.store)
	exportHandler := handlers.NewExportHandler(s.store)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", handlers.HealthCheck)
		r.Get("/templates", handlers.Templates)

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", projectsHandler.List)
			r.Post("/", projectsHandler.Create)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", projectsHandler.Get)
				r.Put("/", projectsHandler.Update)
				r.Delete("/", projectsHandler.Delete)

				r.Post("/export", exportHandler.Export)

				r.Route("/images", func(r chi.Router) {
					r.Post("/", imagesHandler.Upload)
					r.Delete("/{imageID}", imagesHandler.Delete)
					r.Put("/{imageID}/crop", imagesHandler.UpdateCrop)
					r.Get("/{imageID}/thumb/{size}", imagesHandler.Thumbnail)
				})
			})
		})
	})
}
