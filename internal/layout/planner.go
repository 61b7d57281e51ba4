package layout

// CellAssignment places one card occurrence at one grid cell. X/Y are
// the physical top-left of the card in millimetres measured from the
// page's top-left corner; converting to the output document's coordinate
// origin is the assembler's concern, not the planner's.
type CellAssignment struct {
	ImageID    string
	Occurrence int // 0 for the first copy, 1 for its twin
	Row        int
	Col        int
	X          float64
	Y          float64
	Size       float64
}

// PageSlot is one output page worth of ordered cell assignments.
type PageSlot struct {
	Cells []CellAssignment
}

// PagePlan is the complete pagination of a project: the template used
// and every page in export order. It is a pure function of (image ids,
// template) and never touches pixel data.
type PagePlan struct {
	Template Template
	Pages    []PageSlot
}

// TileCount returns the total number of placed cards across all pages.
func (p PagePlan) TileCount() int {
	n := 0
	for _, pg := range p.Pages {
		n += len(pg.Cells)
	}
	return n
}

// Plan paginates the given images onto the template. Every image is
// placed exactly twice, with its twin immediately after it, so matching
// pairs land on the same or adjacent pages in row-major order. Pages are
// filled in chunks of rows*cols; the last page may be partial. An empty
// image list yields a zero-page plan.
func Plan(tpl Template, imageIDs []string) PagePlan {
	plan := PagePlan{Template: tpl}
	if len(imageIDs) == 0 {
		return plan
	}

	type entry struct {
		id         string
		occurrence int
	}
	seq := make([]entry, 0, 2*len(imageIDs))
	for _, id := range imageIDs {
		seq = append(seq, entry{id, 0}, entry{id, 1})
	}

	perPage := tpl.CardsPerPage()
	for start := 0; start < len(seq); start += perPage {
		end := min(start+perPage, len(seq))
		page := PageSlot{Cells: make([]CellAssignment, 0, end-start)}
		for i, e := range seq[start:end] {
			row := i / tpl.Cols
			col := i % tpl.Cols
			x, y := tpl.CellOrigin(row, col)
			page.Cells = append(page.Cells, CellAssignment{
				ImageID:    e.id,
				Occurrence: e.occurrence,
				Row:        row,
				Col:        col,
				X:          x,
				Y:          y,
				Size:       tpl.CardSize,
			})
		}
		plan.Pages = append(plan.Pages, page)
	}
	return plan
}
