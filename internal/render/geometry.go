// Package render turns one source image plus its crop state into a
// square raster tile. Geometry resolution and pixel sampling are split
// so the former stays testable without any image data.
package render

import (
	"math"

	"github.com/memoprint/memoprint/internal/project"
)

// Size is a width/height pair in source pixel space.
type Size struct {
	Width  float64
	Height float64
}

// Rect is an axis-aligned rectangle in source pixel space.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Geometry describes how to sample a source image: the canvas the image
// occupies after rotation, and the sub-rectangle of that canvas to cut.
type Geometry struct {
	// BoundingBox is the axis-aligned extent of the source rectangle
	// rotated by RotationDegrees. Cropping happens on the rotated
	// image, so this is the canvas the rasterizer must allocate.
	BoundingBox Size

	// CropRect is the region of the rotated canvas to sample. When
	// supplied by the interactive widget it is trusted as-is; the
	// rasterizer clamps out-of-bounds rects instead of failing.
	CropRect Rect

	RotationDegrees float64
}

// ResolveGeometry computes the sampling geometry for an image of w by h
// pixels. A nil crop state, or one without a resolved rectangle, falls
// back to the largest centered square of the unrotated image with zero
// rotation. The default never fails, even for degenerate 1x1 or zero
// sized inputs; a zero-area result renders as a blank tile downstream.
func ResolveGeometry(w, h int, crop *project.CropState) Geometry {
	rotation := 0.0
	if crop != nil && crop.CropRect != nil {
		rotation = crop.RotationDegrees
	}

	bw, bh := rotatedBounds(float64(w), float64(h), rotation)
	g := Geometry{
		BoundingBox:     Size{Width: bw, Height: bh},
		RotationDegrees: rotation,
	}

	if crop != nil && crop.CropRect != nil {
		r := crop.CropRect
		g.CropRect = Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
		return g
	}

	size := float64(min(w, h))
	g.CropRect = Rect{
		X:      (float64(w) - size) / 2,
		Y:      (float64(h) - size) / 2,
		Width:  size,
		Height: size,
	}
	return g
}

// rotatedBounds returns the axis-aligned bounding box of a w by h
// rectangle rotated by deg degrees.
func rotatedBounds(w, h, deg float64) (bw, bh float64) {
	theta := deg * math.Pi / 180
	sin, cos := math.Abs(math.Sin(theta)), math.Abs(math.Cos(theta))
	return cos*w + sin*h, sin*w + cos*h
}
