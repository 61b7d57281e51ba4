package layout

import "testing"

func TestTemplateByID(t *testing.T) {
	for _, tpl := range Templates {
		got, err := TemplateByID(tpl.ID)
		if err != nil {
			t.Errorf("TemplateByID(%s): %v", tpl.ID, err)
		}
		if got.ID != tpl.ID {
			t.Errorf("got %s, want %s", got.ID, tpl.ID)
		}
	}

	if _, err := TemplateByID("letter-huge"); err == nil {
		t.Error("expected error for unknown template id")
	}
}

// Authoring invariant: the full card grid, including margins, gutters
// and the decorative strip, must fit inside the page.
func TestTemplatesFitPage(t *testing.T) {
	for _, tpl := range Templates {
		t.Run(tpl.ID, func(t *testing.T) {
			if tpl.Rows < 1 || tpl.Cols < 1 {
				t.Fatalf("degenerate grid %dx%d", tpl.Rows, tpl.Cols)
			}
			lastX, lastY := tpl.CellOrigin(tpl.Rows-1, tpl.Cols-1)
			if right := lastX + tpl.CardSize; right > tpl.PageW+1e-9 {
				t.Errorf("grid right edge %vmm exceeds page width %vmm", right, tpl.PageW)
			}
			if bottom := lastY + tpl.CardSize; bottom > tpl.PageH+1e-9 {
				t.Errorf("grid bottom edge %vmm exceeds page height %vmm", bottom, tpl.PageH)
			}
			firstX, firstY := tpl.CellOrigin(0, 0)
			if firstX < tpl.StripWidth-1e-9 || firstY < -1e-9 {
				t.Errorf("grid origin (%v, %v) overlaps strip or page edge", firstX, firstY)
			}
		})
	}
}

func TestBorderlessCellsTouch(t *testing.T) {
	tpl := mustTemplate(t, "a4-compact")
	if !tpl.Borderless() {
		t.Fatal("a4-compact should be borderless")
	}

	x0, y0 := tpl.CellOrigin(0, 0)
	x1, _ := tpl.CellOrigin(0, 1)
	_, y1 := tpl.CellOrigin(1, 0)

	if got := x1 - x0; got != tpl.CardSize {
		t.Errorf("horizontal pitch %v, want card size %v", got, tpl.CardSize)
	}
	if got := y1 - y0; got != tpl.CardSize {
		t.Errorf("vertical pitch %v, want card size %v", got, tpl.CardSize)
	}
}

func TestMarginedCardCenteredInCell(t *testing.T) {
	tpl := mustTemplate(t, "a4-classic")

	cw := tpl.CellWidth()
	if cw < tpl.CardSize {
		t.Fatalf("cell width %v smaller than card %v", cw, tpl.CardSize)
	}

	x, _ := tpl.CellOrigin(0, 0)
	wantX := tpl.Margin + (cw-tpl.CardSize)/2
	if diff := x - wantX; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("first card x = %v, want %v", x, wantX)
	}
}
