package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/memoprint/memoprint/internal/export"
	"github.com/memoprint/memoprint/internal/project"
	"github.com/memoprint/memoprint/internal/render"
)

// ExportHandler runs the PDF pipeline for a project.
type ExportHandler struct {
	store project.Store
}

// NewExportHandler creates a new export handler.
func NewExportHandler(store project.Store) *ExportHandler {
	return &ExportHandler{store: store}
}

// Export renders the project and streams the finished PDF as an
// attachment. Any pipeline failure aborts with a single terminal error;
// no partial document is ever sent.
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "id")

	p, err := h.store.GetProject(r.Context(), projectID)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	pdf, err := export.Export(r.Context(), p, export.Options{})
	if err != nil {
		switch {
		case errors.Is(err, export.ErrNoImages):
			respondError(w, http.StatusUnprocessableEntity, "project has no images to export")
		case errors.Is(err, render.ErrImageDecode),
			errors.Is(err, render.ErrImageEncode),
			errors.Is(err, export.ErrEmbedding):
			log.Printf("export of project %s failed: %v", projectID, err)
			respondError(w, http.StatusInternalServerError, "export failed: "+err.Error())
		default:
			respondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	filename := export.DownloadFilename(p.Name)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(pdf)))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}
