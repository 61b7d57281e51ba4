package project

import (
	"context"
	"errors"
)

// Store errors shared by all backends.
var (
	ErrProjectNotFound = errors.New("project not found")
	ErrImageNotFound   = errors.New("image not found")
)

// Store is the persistence contract for projects. The export pipeline
// never touches a Store directly; it consumes a *Project snapshot.
type Store interface {
	// CreateProject creates an empty project using the given template.
	CreateProject(ctx context.Context, name, templateID string) (*Project, error)

	// GetProject loads a full project including image bytes.
	GetProject(ctx context.Context, id string) (*Project, error)

	// ListProjects returns summaries ordered by last update, newest first.
	ListProjects(ctx context.Context) ([]Summary, error)

	// UpdateProject persists name and template changes.
	UpdateProject(ctx context.Context, id, name, templateID string) (*Project, error)

	// DeleteProject removes the project and all of its images.
	DeleteProject(ctx context.Context, id string) error

	// AddImage appends an image to the project's ordered list with a
	// default crop state.
	AddImage(ctx context.Context, projectID, filename string, data []byte) (*SourceImage, error)

	// RemoveImage deletes one image from the project.
	RemoveImage(ctx context.Context, projectID, imageID string) error

	// UpdateCrop merges a partial crop patch onto the stored state and
	// returns the fully populated result.
	UpdateCrop(ctx context.Context, projectID, imageID string, patch CropPatch) (*CropState, error)

	// LastOpened returns the id of the most recently opened project, or
	// empty when none exists.
	LastOpened(ctx context.Context) (string, error)

	// TouchOpened records the project as the most recently opened one.
	TouchOpened(ctx context.Context, id string) error

	// Close releases backend resources.
	Close() error
}
