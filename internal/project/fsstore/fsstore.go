// Package fsstore persists projects as plain directories: one directory
// per project holding a project.yaml with metadata and crop state, plus
// the original image files. It is the default backend when no database
// is configured.
package fsstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/memoprint/memoprint/internal/project"
)

const (
	metadataFile   = "project.yaml"
	imagesDir      = "images"
	lastOpenedFile = "last_opened"
)

// Store is a filesystem-backed project.Store rooted at one directory.
type Store struct {
	root string
}

var _ project.Store = (*Store)(nil)

// New creates the root directory if needed and returns the store.
func New(root string) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(root, "projects"), 0o750); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &Store{root: root}, nil
}

func (s *Store) projectDir(id string) string {
	return filepath.Join(s.root, "projects", id)
}

// writeMetadata atomically rewrites project.yaml for the project.
func (s *Store) writeMetadata(p *project.Project) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshaling project metadata: %w", err)
	}

	dir := s.projectDir(p.ID)
	tmp := filepath.Join(dir, metadataFile+".tmp")
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing project metadata: %w", err)
	}
	if err := os.Rename(tmp, filepath.Join(dir, metadataFile)); err != nil {
		return fmt.Errorf("replacing project metadata: %w", err)
	}
	return nil
}

// readMetadata loads project.yaml without image bytes.
func (s *Store) readMetadata(id string) (*project.Project, error) {
	data, err := os.ReadFile(filepath.Join(s.projectDir(id), metadataFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, project.ErrProjectNotFound
		}
		return nil, fmt.Errorf("reading project metadata: %w", err)
	}

	var p project.Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing project metadata: %w", err)
	}
	return &p, nil
}

func (s *Store) imagePath(projectID string, img *project.SourceImage) string {
	ext := strings.ToLower(filepath.Ext(img.Filename))
	if ext == "" {
		ext = ".img"
	}
	return filepath.Join(s.projectDir(projectID), imagesDir, img.ID+ext)
}

func (s *Store) CreateProject(ctx context.Context, name, templateID string) (*project.Project, error) {
	now := time.Now().UTC()
	p := &project.Project{
		ID:         uuid.NewString(),
		Name:       name,
		TemplateID: templateID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := os.MkdirAll(filepath.Join(s.projectDir(p.ID), imagesDir), 0o750); err != nil {
		return nil, fmt.Errorf("creating project directory: %w", err)
	}
	if err := s.writeMetadata(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Store) GetProject(ctx context.Context, id string) (*project.Project, error) {
	p, err := s.readMetadata(id)
	if err != nil {
		return nil, err
	}

	for _, img := range p.Images {
		data, err := os.ReadFile(s.imagePath(id, img))
		if err != nil {
			return nil, fmt.Errorf("reading image %s: %w", img.ID, err)
		}
		img.Data = data
	}
	return p, nil
}

func (s *Store) ListProjects(ctx context.Context) ([]project.Summary, error) {
	entries, err := os.ReadDir(filepath.Join(s.root, "projects"))
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}

	var out []project.Summary
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		p, err := s.readMetadata(e.Name())
		if err != nil {
			// Skip directories that are not projects.
			continue
		}
		out = append(out, project.Summary{
			ID:         p.ID,
			Name:       p.Name,
			TemplateID: p.TemplateID,
			ImageCount: len(p.Images),
			UpdatedAt:  p.UpdatedAt,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (s *Store) UpdateProject(ctx context.Context, id, name, templateID string) (*project.Project, error) {
	p, err := s.readMetadata(id)
	if err != nil {
		return nil, err
	}

	if name != "" {
		p.Name = name
	}
	if templateID != "" {
		p.TemplateID = templateID
	}
	p.UpdatedAt = time.Now().UTC()

	if err := s.writeMetadata(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Store) DeleteProject(ctx context.Context, id string) error {
	if _, err := s.readMetadata(id); err != nil {
		return err
	}
	if err := os.RemoveAll(s.projectDir(id)); err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return nil
}

func (s *Store) AddImage(ctx context.Context, projectID, filename string, data []byte) (*project.SourceImage, error) {
	p, err := s.readMetadata(projectID)
	if err != nil {
		return nil, err
	}

	img, err := project.NewSourceImage(filepath.Base(filename), data)
	if err != nil {
		return nil, err
	}

	path := s.imagePath(projectID, img)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return nil, fmt.Errorf("writing image file: %w", err)
	}

	p.Images = append(p.Images, img)
	p.UpdatedAt = time.Now().UTC()
	if err := s.writeMetadata(p); err != nil {
		// The blob has no reference without the metadata entry.
		os.Remove(path)
		return nil, err
	}
	return img, nil
}

func (s *Store) RemoveImage(ctx context.Context, projectID, imageID string) error {
	p, err := s.readMetadata(projectID)
	if err != nil {
		return err
	}

	idx := -1
	for i, img := range p.Images {
		if img.ID == imageID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return project.ErrImageNotFound
	}

	if err := os.Remove(s.imagePath(projectID, p.Images[idx])); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing image file: %w", err)
	}

	p.Images = append(p.Images[:idx], p.Images[idx+1:]...)
	p.UpdatedAt = time.Now().UTC()
	return s.writeMetadata(p)
}

func (s *Store) UpdateCrop(ctx context.Context, projectID, imageID string, patch project.CropPatch) (*project.CropState, error) {
	p, err := s.readMetadata(projectID)
	if err != nil {
		return nil, err
	}

	img := p.Image(imageID)
	if img == nil {
		return nil, project.ErrImageNotFound
	}

	img.Crop = img.Crop.Merge(patch)
	p.UpdatedAt = time.Now().UTC()
	if err := s.writeMetadata(p); err != nil {
		return nil, err
	}
	crop := img.Crop
	return &crop, nil
}

func (s *Store) LastOpened(ctx context.Context) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.root, lastOpenedFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("reading last opened marker: %w", err)
	}

	id := strings.TrimSpace(string(data))
	if _, err := s.readMetadata(id); err != nil {
		// The marked project was deleted.
		return "", nil
	}
	return id, nil
}

func (s *Store) TouchOpened(ctx context.Context, id string) error {
	if _, err := s.readMetadata(id); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(s.root, lastOpenedFile), []byte(id+"\n"), 0o600); err != nil {
		return fmt.Errorf("writing last opened marker: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return nil
}
