package render

import (
	"math"
	"testing"

	"github.com/memoprint/memoprint/internal/project"
)

func TestResolveGeometryDefaultCenteredSquare(t *testing.T) {
	tests := []struct {
		name     string
		w, h     int
		wantRect Rect
	}{
		{"landscape 400x300", 400, 300, Rect{X: 50, Y: 0, Width: 300, Height: 300}},
		{"portrait 300x400", 300, 400, Rect{X: 0, Y: 50, Width: 300, Height: 300}},
		{"already square", 200, 200, Rect{X: 0, Y: 0, Width: 200, Height: 200}},
		{"one pixel", 1, 1, Rect{X: 0, Y: 0, Width: 1, Height: 1}},
		{"degenerate zero height", 100, 0, Rect{X: 50, Y: 0, Width: 0, Height: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := ResolveGeometry(tt.w, tt.h, nil)

			if g.RotationDegrees != 0 {
				t.Errorf("default rotation = %v, want 0", g.RotationDegrees)
			}
			if g.CropRect != tt.wantRect {
				t.Errorf("crop rect = %+v, want %+v", g.CropRect, tt.wantRect)
			}
			if g.BoundingBox.Width != float64(tt.w) || g.BoundingBox.Height != float64(tt.h) {
				t.Errorf("bounding box = %+v, want %dx%d", g.BoundingBox, tt.w, tt.h)
			}
		})
	}
}

func TestResolveGeometryDefaultIgnoresPartialState(t *testing.T) {
	// A crop state without a resolved rect means the widget gesture
	// never completed; the default path applies with zero rotation.
	crop := &project.CropState{Zoom: 2, RotationDegrees: 45}
	g := ResolveGeometry(400, 300, crop)

	if g.RotationDegrees != 0 {
		t.Errorf("rotation = %v, want 0 on default path", g.RotationDegrees)
	}
	want := Rect{X: 50, Y: 0, Width: 300, Height: 300}
	if g.CropRect != want {
		t.Errorf("crop rect = %+v, want %+v", g.CropRect, want)
	}
}

func TestResolveGeometryRotationBoundingBox(t *testing.T) {
	crop := &project.CropState{
		Zoom:            1,
		RotationDegrees: 90,
		CropRect:        &project.CropRect{X: 0, Y: 0, Width: 100, Height: 100},
	}
	g := ResolveGeometry(100, 200, crop)

	if math.Abs(g.BoundingBox.Width-200) > 1e-9 || math.Abs(g.BoundingBox.Height-100) > 1e-9 {
		t.Errorf("bounding box = %+v, want 200x100", g.BoundingBox)
	}
	if g.RotationDegrees != 90 {
		t.Errorf("rotation = %v, want 90", g.RotationDegrees)
	}
}

func TestResolveGeometryBoundingBox45Degrees(t *testing.T) {
	crop := &project.CropState{
		Zoom:            1,
		RotationDegrees: 45,
		CropRect:        &project.CropRect{X: 0, Y: 0, Width: 50, Height: 50},
	}
	g := ResolveGeometry(100, 100, crop)

	want := 100 * math.Sqrt2
	if math.Abs(g.BoundingBox.Width-want) > 1e-9 || math.Abs(g.BoundingBox.Height-want) > 1e-9 {
		t.Errorf("bounding box = %+v, want %vx%v", g.BoundingBox, want, want)
	}
}

func TestResolveGeometryTrustsExternalRect(t *testing.T) {
	// Malformed rects are passed through untouched; the rasterizer
	// clamps at sampling time.
	crop := &project.CropState{
		Zoom:     1,
		CropRect: &project.CropRect{X: -50, Y: 9000, Width: 10000, Height: 10000},
	}
	g := ResolveGeometry(400, 300, crop)

	want := Rect{X: -50, Y: 9000, Width: 10000, Height: 10000}
	if g.CropRect != want {
		t.Errorf("crop rect = %+v, want untouched %+v", g.CropRect, want)
	}
}

func TestDefaultCropContainedInBoundingBox(t *testing.T) {
	for _, dims := range [][2]int{{400, 300}, {300, 400}, {1, 1}, {4032, 3024}} {
		g := ResolveGeometry(dims[0], dims[1], nil)
		if g.CropRect.X < 0 || g.CropRect.Y < 0 ||
			g.CropRect.X+g.CropRect.Width > g.BoundingBox.Width+1e-9 ||
			g.CropRect.Y+g.CropRect.Height > g.BoundingBox.Height+1e-9 {
			t.Errorf("%dx%d: default crop %+v escapes bounding box %+v",
				dims[0], dims[1], g.CropRect, g.BoundingBox)
		}
	}
}
