package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/memoprint/memoprint/internal/project"
	"github.com/memoprint/memoprint/internal/render"
)

const (
	// maxUploadSize caps one multipart upload request (64 MB).
	maxUploadSize = 64 << 20

	// maxThumbSize caps requested thumbnail dimensions.
	maxThumbSize = 2048
)

// ImagesHandler handles per-project image endpoints.
type ImagesHandler struct {
	store project.Store
}

// NewImagesHandler creates a new images handler.
func NewImagesHandler(store project.Store) *ImagesHandler {
	return &ImagesHandler{store: store}
}

// Upload appends one or more photos to the project. Each file gets a
// default centered-square crop state.
func (h *ImagesHandler) Upload(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "id")

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}

	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		respondError(w, http.StatusBadRequest, "no images in request")
		return
	}

	var added []imageResponse
	for _, fileHeader := range files {
		file, err := fileHeader.Open()
		if err != nil {
			respondError(w, http.StatusBadRequest, "failed to open uploaded file")
			return
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			respondError(w, http.StatusBadRequest, "failed to read uploaded file")
			return
		}

		img, err := h.store.AddImage(r.Context(), projectID, fileHeader.Filename, data)
		if err != nil {
			if errors.Is(err, project.ErrProjectNotFound) {
				respondStoreError(w, err)
			} else {
				respondError(w, http.StatusUnprocessableEntity, err.Error())
			}
			return
		}
		added = append(added, imageResponse{
			ID:       img.ID,
			Filename: img.Filename,
			Width:    img.Width,
			Height:   img.Height,
			Crop:     img.Crop,
		})
	}

	respondJSON(w, http.StatusCreated, map[string]any{"images": added})
}

// Delete removes one image from the project.
func (h *ImagesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "id")
	imageID := chi.URLParam(r, "imageID")

	if err := h.store.RemoveImage(r.Context(), projectID, imageID); err != nil {
		respondStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateCrop merges a partial crop patch reported by the interactive
// widget onto the stored state and returns the fully populated result.
func (h *ImagesHandler) UpdateCrop(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "id")
	imageID := chi.URLParam(r, "imageID")

	var patch project.CropPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}

	crop, err := h.store.UpdateCrop(r.Context(), projectID, imageID, patch)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, crop)
}

// Thumbnail serves a JPEG preview scaled to fit the requested size.
func (h *ImagesHandler) Thumbnail(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "id")
	imageID := chi.URLParam(r, "imageID")

	size, err := strconv.Atoi(chi.URLParam(r, "size"))
	if err != nil || size < 1 || size > maxThumbSize {
		respondError(w, http.StatusBadRequest, "invalid thumbnail size")
		return
	}

	p, err := h.store.GetProject(r.Context(), projectID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	img := p.Image(imageID)
	if img == nil {
		respondStoreError(w, project.ErrImageNotFound)
		return
	}

	thumb, err := render.Thumbnail(img.Data, size)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "private, max-age=60")
	w.WriteHeader(http.StatusOK)
	w.Write(thumb)
}
