package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/memoprint/memoprint/internal/layout"
	"github.com/memoprint/memoprint/internal/project"
)

// ProjectsHandler handles project CRUD endpoints.
type ProjectsHandler struct {
	store project.Store
}

// NewProjectsHandler creates a new projects handler.
func NewProjectsHandler(store project.Store) *ProjectsHandler {
	return &ProjectsHandler{store: store}
}

type projectRequest struct {
	Name       string `json:"name"`
	TemplateID string `json:"template_id"`
}

// projectResponse is the API shape of a project; image bytes stay out.
type projectResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	TemplateID string          `json:"template_id"`
	Images     []imageResponse `json:"images"`
}

type imageResponse struct {
	ID       string            `json:"id"`
	Filename string            `json:"filename"`
	Width    int               `json:"width"`
	Height   int               `json:"height"`
	Crop     project.CropState `json:"crop"`
}

func toProjectResponse(p *project.Project) projectResponse {
	resp := projectResponse{
		ID:         p.ID,
		Name:       p.Name,
		TemplateID: p.TemplateID,
		Images:     make([]imageResponse, 0, len(p.Images)),
	}
	for _, img := range p.Images {
		resp.Images = append(resp.Images, imageResponse{
			ID:       img.ID,
			Filename: img.Filename,
			Width:    img.Width,
			Height:   img.Height,
			Crop:     img.Crop,
		})
	}
	return resp
}

// List returns summaries of all projects plus the last-opened id.
func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.store.ListProjects(r.Context())
	if err != nil {
		respondStoreError(w, err)
		return
	}
	lastOpened, err := h.store.LastOpened(r.Context())
	if err != nil {
		respondStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"projects":    projects,
		"last_opened": lastOpened,
	})
}

// Create creates a new empty project.
func (h *ProjectsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "project name is required")
		return
	}
	if req.TemplateID == "" {
		req.TemplateID = layout.DefaultTemplateID
	}
	if _, err := layout.TemplateByID(req.TemplateID); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := h.store.CreateProject(r.Context(), req.Name, req.TemplateID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toProjectResponse(p))
}

// Get returns one project and marks it as last opened.
func (h *ProjectsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := h.store.GetProject(r.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if err := h.store.TouchOpened(r.Context(), id); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toProjectResponse(p))
}

// Update renames a project or switches its template.
func (h *ProjectsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}
	if req.TemplateID != "" {
		if _, err := layout.TemplateByID(req.TemplateID); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	p, err := h.store.UpdateProject(r.Context(), id, req.Name, req.TemplateID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toProjectResponse(p))
}

// Delete removes a project and its images.
func (h *ProjectsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.store.DeleteProject(r.Context(), id); err != nil {
		respondStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
