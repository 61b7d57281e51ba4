// Package export runs the full project-to-PDF pipeline: pagination,
// per-tile rasterization and document assembly. One call, one complete
// document; there is no partial or resumable export.
package export

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/memoprint/memoprint/internal/layout"
	"github.com/memoprint/memoprint/internal/project"
	"github.com/memoprint/memoprint/internal/render"
	"github.com/memoprint/memoprint/internal/units"
)

// ErrNoImages marks an export request for a project without images.
var ErrNoImages = errors.New("project has no images")

// renderConcurrency bounds parallel tile rasterization. Tiles share no
// mutable state, so rendering fans out; assembly stays sequential.
const renderConcurrency = 4

// Options tune one export call.
type Options struct {
	// Density in samples per inch; defaults to units.DensityDPI.
	Density int

	// OnProgress, when set, is called after each source image has been
	// rasterized, with the number done and the total.
	OnProgress func(done, total int)
}

// Export renders the project to a complete PDF. Both occurrences of an
// image share one raster: crop state and output size are fixed within
// an export, so the twin is byte-identical by construction. Cancelling
// the context between tiles discards all partial work.
func Export(ctx context.Context, p *project.Project, opts Options) ([]byte, error) {
	tpl, err := layout.TemplateByID(p.TemplateID)
	if err != nil {
		return nil, err
	}
	if len(p.Images) == 0 {
		return nil, ErrNoImages
	}

	density := opts.Density
	if density <= 0 {
		density = units.DensityDPI
	}
	outPx := units.ToPixels(tpl.CardSize, density)

	tiles, err := renderAll(ctx, p.Images, outPx, opts.OnProgress)
	if err != nil {
		return nil, err
	}

	imageIDs := make([]string, len(p.Images))
	for i, img := range p.Images {
		imageIDs[i] = img.ID
	}
	plan := layout.Plan(tpl, imageIDs)

	return BuildDocument(plan, func(cell layout.CellAssignment) ([]byte, error) {
		raster, ok := tiles[cell.ImageID]
		if !ok {
			return nil, fmt.Errorf("no raster for image %s", cell.ImageID)
		}
		return raster, nil
	})
}

// renderAll rasterizes every source image once, in parallel up to
// renderConcurrency. The first failure cancels the remaining work and
// is returned; nothing rendered so far survives.
func renderAll(ctx context.Context, images []*project.SourceImage, outPx int, onProgress func(done, total int)) (map[string][]byte, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		mu       sync.Mutex
		firstErr error
		done     int
	)
	tiles := make(map[string][]byte, len(images))
	sem := make(chan struct{}, renderConcurrency)
	var wg sync.WaitGroup

	for _, img := range images {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(img *project.SourceImage) {
			defer wg.Done()
			defer func() { <-sem }()

			if ctx.Err() != nil {
				return
			}

			geometry := render.ResolveGeometry(img.Width, img.Height, &img.Crop)
			raster, err := render.RenderTile(img.Data, geometry, outPx)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = fmt.Errorf("image %s (%s): %w", img.ID, img.Filename, err)
					cancel()
				}
				return
			}
			tiles[img.ID] = raster
			done++
			if onProgress != nil {
				onProgress(done, len(images))
			}
		}(img)
	}

	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return tiles, nil
}
