package export

import (
	"errors"
	"fmt"

	"github.com/signintech/gopdf"

	"github.com/memoprint/memoprint/internal/layout"
	"github.com/memoprint/memoprint/internal/units"
)

// ErrEmbedding marks a raster the output document could not accept.
var ErrEmbedding = errors.New("embedding raster into document failed")

// TileFunc supplies the encoded raster for one cell assignment.
type TileFunc func(cell layout.CellAssignment) ([]byte, error)

// BuildDocument assembles the final PDF from a page plan. Pages are
// created in plan order and tiles embedded in cell order; the output
// byte layout depends on that insertion order, so assembly is strictly
// sequential. Any tile or embedding failure aborts the whole document.
func BuildDocument(plan layout.PagePlan, tileFor TileFunc) ([]byte, error) {
	tpl := plan.Template
	pageSize := gopdf.Rect{
		W: units.ToDocumentUnits(tpl.PageW),
		H: units.ToDocumentUnits(tpl.PageH),
	}

	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: pageSize, Unit: gopdf.UnitPT})

	for pageIdx, page := range plan.Pages {
		pdf.AddPage()
		for _, cell := range page.Cells {
			raster, err := tileFor(cell)
			if err != nil {
				return nil, fmt.Errorf("page %d cell (%d,%d): %w", pageIdx+1, cell.Row, cell.Col, err)
			}

			holder, err := gopdf.ImageHolderByBytes(raster)
			if err != nil {
				return nil, fmt.Errorf("%w: page %d cell (%d,%d): %v", ErrEmbedding, pageIdx+1, cell.Row, cell.Col, err)
			}

			size := units.ToDocumentUnits(cell.Size)
			err = pdf.ImageByHolder(holder, units.ToDocumentUnits(cell.X), units.ToDocumentUnits(cell.Y), &gopdf.Rect{W: size, H: size})
			if err != nil {
				return nil, fmt.Errorf("%w: page %d cell (%d,%d): %v", ErrEmbedding, pageIdx+1, cell.Row, cell.Col, err)
			}
		}
	}

	out, err := pdf.GetBytesPdfReturnErr()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbedding, err)
	}
	return out, nil
}
