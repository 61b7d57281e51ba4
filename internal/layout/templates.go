// Package layout holds the printable sheet templates and the page
// planner that decides how many pages an export produces and which card
// lands in which grid cell.
package layout

import "fmt"

// Template is an immutable named page configuration. All lengths are in
// millimetres; cards are always square.
type Template struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	PageW    float64 `json:"page_width_mm"`
	PageH    float64 `json:"page_height_mm"`
	CardSize float64 `json:"card_size_mm"`
	Rows     int     `json:"rows"`
	Cols     int     `json:"cols"`

	// Margin and Gutter shape the cell grid of margined templates.
	// Borderless templates leave both at zero so cards touch and share
	// cut lines.
	Margin float64 `json:"margin_mm"`
	Gutter float64 `json:"gutter_mm"`

	// StripWidth reserves a decorative strip on the left page edge. It
	// shifts the grid right, never changes the card count.
	StripWidth float64 `json:"strip_width_mm"`
}

// Templates is the closed set of selectable layouts, enumerated once.
// Adding a variant here is a compile-time-checked change; there is no
// runtime registration.
var Templates = []Template{
	{
		ID:       "a4-classic",
		Name:     "A4 classic (2×3, 60mm cards)",
		PageW:    210, PageH: 297,
		CardSize: 60,
		Rows:     3, Cols: 2,
		Margin: 15, Gutter: 10,
	},
	{
		ID:       "a4-compact",
		Name:     "A4 compact (3×3, 60mm borderless)",
		PageW:    210, PageH: 297,
		CardSize: 60,
		Rows:     3, Cols: 3,
		StripWidth: 6,
	},
	{
		ID:       "a5-mini",
		Name:     "A5 mini (2×3, 45mm cards)",
		PageW:    148, PageH: 210,
		CardSize: 45,
		Rows:     3, Cols: 2,
		Margin: 10, Gutter: 8,
	},
}

// DefaultTemplateID is the template assigned to new projects.
const DefaultTemplateID = "a4-classic"

// TemplateByID resolves a template id against the closed set.
func TemplateByID(id string) (Template, error) {
	for _, t := range Templates {
		if t.ID == id {
			return t, nil
		}
	}
	return Template{}, fmt.Errorf("unknown layout template %q", id)
}

// CardsPerPage returns the grid capacity of one page.
func (t Template) CardsPerPage() int {
	return t.Rows * t.Cols
}

// Borderless reports whether cards are packed edge to edge.
func (t Template) Borderless() bool {
	return t.Margin == 0 && t.Gutter == 0
}

// CellWidth returns the width of one grid cell. Margined templates
// divide the content area (page minus margins and gutters) into equal
// cells; borderless ones use the card size itself.
func (t Template) CellWidth() float64 {
	if t.Borderless() {
		return t.CardSize
	}
	return (t.PageW - t.StripWidth - 2*t.Margin - float64(t.Cols-1)*t.Gutter) / float64(t.Cols)
}

// CellHeight returns the height of one grid cell.
func (t Template) CellHeight() float64 {
	if t.Borderless() {
		return t.CardSize
	}
	return (t.PageH - 2*t.Margin - float64(t.Rows-1)*t.Gutter) / float64(t.Rows)
}

// gridOrigin returns the top-left of the card grid. Borderless grids are
// centered in the space right of the strip; margined grids start at the
// margin.
func (t Template) gridOrigin() (x, y float64) {
	if t.Borderless() {
		usableW := t.PageW - t.StripWidth
		x = t.StripWidth + (usableW-float64(t.Cols)*t.CardSize)/2
		y = (t.PageH - float64(t.Rows)*t.CardSize) / 2
		return x, y
	}
	return t.StripWidth + t.Margin, t.Margin
}

// CellOrigin returns the physical top-left of the card placed at the
// given grid position. Margined templates center the card inside its
// cell, leaving a residual gap when the card is smaller than the cell.
func (t Template) CellOrigin(row, col int) (x, y float64) {
	ox, oy := t.gridOrigin()
	if t.Borderless() {
		return ox + float64(col)*t.CardSize, oy + float64(row)*t.CardSize
	}
	cw, ch := t.CellWidth(), t.CellHeight()
	x = ox + float64(col)*(cw+t.Gutter) + (cw-t.CardSize)/2
	y = oy + float64(row)*(ch+t.Gutter) + (ch-t.CardSize)/2
	return x, y
}
