package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/memoprint/memoprint/internal/project"
)

// lastOpenedKey is the app_state row recording the most recent project.
const lastOpenedKey = "last_opened_project"

// ProjectRepository provides PostgreSQL-backed project storage.
type ProjectRepository struct {
	pool *Pool
}

var _ project.Store = (*ProjectRepository)(nil)

// NewProjectRepository creates a new ProjectRepository.
func NewProjectRepository(pool *Pool) *ProjectRepository {
	return &ProjectRepository{pool: pool}
}

func (r *ProjectRepository) CreateProject(ctx context.Context, name, templateID string) (*project.Project, error) {
	now := time.Now().UTC()
	p := &project.Project{
		ID:         uuid.NewString(),
		Name:       name,
		TemplateID: templateID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err := r.pool.Exec(ctx,
		`INSERT INTO projects (id, name, template_id, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		p.ID, p.Name, p.TemplateID, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return p, nil
}

func (r *ProjectRepository) GetProject(ctx context.Context, id string) (*project.Project, error) {
	var p project.Project
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, template_id, created_at, updated_at FROM projects WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.TemplateID, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, project.ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}

	images, err := r.loadImages(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Images = images
	return &p, nil
}

// loadImages reads a project's images in display order, bytes included.
func (r *ProjectRepository) loadImages(ctx context.Context, projectID string) ([]*project.SourceImage, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, filename, width, height, data,
		        crop_offset_x, crop_offset_y, crop_zoom, crop_rotation,
		        crop_rect_x, crop_rect_y, crop_rect_w, crop_rect_h
		 FROM project_images WHERE project_id = $1 ORDER BY position`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	defer rows.Close()

	var images []*project.SourceImage
	for rows.Next() {
		var img project.SourceImage
		var rx, ry, rw, rh sql.NullFloat64
		err := rows.Scan(&img.ID, &img.Filename, &img.Width, &img.Height, &img.Data,
			&img.Crop.OffsetX, &img.Crop.OffsetY, &img.Crop.Zoom, &img.Crop.RotationDegrees,
			&rx, &ry, &rw, &rh)
		if err != nil {
			return nil, fmt.Errorf("scan image: %w", err)
		}
		if rx.Valid && ry.Valid && rw.Valid && rh.Valid {
			img.Crop.CropRect = &project.CropRect{
				X: rx.Float64, Y: ry.Float64, Width: rw.Float64, Height: rh.Float64,
			}
		}
		images = append(images, &img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate images: %w", err)
	}
	return images, nil
}

func (r *ProjectRepository) ListProjects(ctx context.Context) ([]project.Summary, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT p.id, p.name, p.template_id, p.updated_at,
		        (SELECT COUNT(*) FROM project_images WHERE project_id = p.id) AS image_count
		 FROM projects p ORDER BY p.updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var out []project.Summary
	for rows.Next() {
		var s project.Summary
		if err := rows.Scan(&s.ID, &s.Name, &s.TemplateID, &s.UpdatedAt, &s.ImageCount); err != nil {
			return nil, fmt.Errorf("scan project summary: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}
	return out, nil
}

func (r *ProjectRepository) UpdateProject(ctx context.Context, id, name, templateID string) (*project.Project, error) {
	result, err := r.pool.Exec(ctx,
		`UPDATE projects SET
			name = CASE WHEN $2 <> '' THEN $2 ELSE name END,
			template_id = CASE WHEN $3 <> '' THEN $3 ELSE template_id END,
			updated_at = NOW()
		 WHERE id = $1`, id, name, templateID)
	if err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return nil, project.ErrProjectNotFound
	}
	return r.GetProject(ctx, id)
}

func (r *ProjectRepository) DeleteProject(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return project.ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepository) AddImage(ctx context.Context, projectID, filename string, data []byte) (*project.SourceImage, error) {
	img, err := project.NewSourceImage(filename, data)
	if err != nil {
		return nil, err
	}

	tx, err := r.pool.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM projects WHERE id = $1)`, projectID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check project: %w", err)
	}
	if !exists {
		return nil, project.ErrProjectNotFound
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO project_images (id, project_id, position, filename, width, height, data)
		 VALUES ($1, $2,
		         (SELECT COALESCE(MAX(position), -1) + 1 FROM project_images WHERE project_id = $2),
		         $3, $4, $5, $6)`,
		img.ID, projectID, img.Filename, img.Width, img.Height, img.Data)
	if err != nil {
		return nil, fmt.Errorf("insert image: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `UPDATE projects SET updated_at = NOW() WHERE id = $1`, projectID); err != nil {
		return nil, fmt.Errorf("touch project: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit image insert: %w", err)
	}
	return img, nil
}

func (r *ProjectRepository) RemoveImage(ctx context.Context, projectID, imageID string) error {
	result, err := r.pool.Exec(ctx,
		`DELETE FROM project_images WHERE id = $1 AND project_id = $2`, imageID, projectID)
	if err != nil {
		return fmt.Errorf("remove image: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return project.ErrImageNotFound
	}
	if _, err := r.pool.Exec(ctx, `UPDATE projects SET updated_at = NOW() WHERE id = $1`, projectID); err != nil {
		return fmt.Errorf("touch project: %w", err)
	}
	return nil
}

func (r *ProjectRepository) UpdateCrop(ctx context.Context, projectID, imageID string, patch project.CropPatch) (*project.CropState, error) {
	// Read-merge-write; the row lock keeps concurrent patches from
	// overwriting each other's fields.
	tx, err := r.pool.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var crop project.CropState
	var rx, ry, rw, rh sql.NullFloat64
	err = tx.QueryRowContext(ctx,
		`SELECT crop_offset_x, crop_offset_y, crop_zoom, crop_rotation,
		        crop_rect_x, crop_rect_y, crop_rect_w, crop_rect_h
		 FROM project_images WHERE id = $1 AND project_id = $2
		 FOR UPDATE`, imageID, projectID).
		Scan(&crop.OffsetX, &crop.OffsetY, &crop.Zoom, &crop.RotationDegrees, &rx, &ry, &rw, &rh)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, project.ErrImageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get crop state: %w", err)
	}
	if rx.Valid && ry.Valid && rw.Valid && rh.Valid {
		crop.CropRect = &project.CropRect{X: rx.Float64, Y: ry.Float64, Width: rw.Float64, Height: rh.Float64}
	}

	merged := crop.Merge(patch)

	var nrx, nry, nrw, nrh sql.NullFloat64
	if merged.CropRect != nil {
		nrx = sql.NullFloat64{Float64: merged.CropRect.X, Valid: true}
		nry = sql.NullFloat64{Float64: merged.CropRect.Y, Valid: true}
		nrw = sql.NullFloat64{Float64: merged.CropRect.Width, Valid: true}
		nrh = sql.NullFloat64{Float64: merged.CropRect.Height, Valid: true}
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE project_images SET
			crop_offset_x = $3, crop_offset_y = $4, crop_zoom = $5, crop_rotation = $6,
			crop_rect_x = $7, crop_rect_y = $8, crop_rect_w = $9, crop_rect_h = $10
		 WHERE id = $1 AND project_id = $2`,
		imageID, projectID,
		merged.OffsetX, merged.OffsetY, merged.Zoom, merged.RotationDegrees,
		nrx, nry, nrw, nrh)
	if err != nil {
		return nil, fmt.Errorf("update crop state: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `UPDATE projects SET updated_at = NOW() WHERE id = $1`, projectID); err != nil {
		return nil, fmt.Errorf("touch project: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit crop update: %w", err)
	}
	return &merged, nil
}

func (r *ProjectRepository) LastOpened(ctx context.Context) (string, error) {
	var id string
	err := r.pool.QueryRow(ctx,
		`SELECT s.value FROM app_state s JOIN projects p ON p.id::text = s.value WHERE s.key = $1`,
		lastOpenedKey).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get last opened: %w", err)
	}
	return id, nil
}

func (r *ProjectRepository) TouchOpened(ctx context.Context, id string) error {
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM projects WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("check project: %w", err)
	}
	if !exists {
		return project.ErrProjectNotFound
	}

	_, err := r.pool.Exec(ctx,
		`INSERT INTO app_state (key, value, updated_at) VALUES ($1, $2, NOW())
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
		lastOpenedKey, id)
	if err != nil {
		return fmt.Errorf("set last opened: %w", err)
	}
	return nil
}

func (r *ProjectRepository) Close() error {
	return r.pool.Close()
}
