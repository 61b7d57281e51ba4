// Package project defines the memoprint data model: projects, their
// source images and per-image crop state, plus the Store interface that
// persistence backends implement.
package project

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"time"

	"github.com/google/uuid"
	_ "golang.org/x/image/bmp"
)

// MinZoom is the lower bound for the crop zoom factor.
const MinZoom = 1.0

// CropRect is a resolved crop rectangle in source pixel space. When a
// rotation is active the coordinates refer to the rotated bounding-box
// canvas, which is where the interactive widget reports its gesture.
type CropRect struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// CropState holds the user's pan/zoom/rotation for one image. A value is
// always fully populated; absence of a resolved CropRect means "use the
// default centered square crop".
type CropState struct {
	OffsetX         float64   `json:"offset_x" yaml:"offset_x"`
	OffsetY         float64   `json:"offset_y" yaml:"offset_y"`
	Zoom            float64   `json:"zoom" yaml:"zoom"`
	RotationDegrees float64   `json:"rotation_degrees" yaml:"rotation_degrees"`
	CropRect        *CropRect `json:"crop_rect,omitempty" yaml:"crop_rect,omitempty"`
}

// DefaultCropState returns the fully populated initial crop state for a
// freshly added image.
func DefaultCropState() CropState {
	return CropState{Zoom: MinZoom}
}

// CropPatch is a partial crop-state update as reported by the interactive
// widget. Nil fields leave the existing value untouched.
type CropPatch struct {
	OffsetX         *float64  `json:"offset_x,omitempty"`
	OffsetY         *float64  `json:"offset_y,omitempty"`
	Zoom            *float64  `json:"zoom,omitempty"`
	RotationDegrees *float64  `json:"rotation_degrees,omitempty"`
	CropRect        *CropRect `json:"crop_rect,omitempty"`
}

// Merge applies a patch onto the state and returns the merged copy. Zoom
// is clamped to MinZoom and rotation is normalized into [-180, 180].
func (c CropState) Merge(patch CropPatch) CropState {
	if patch.OffsetX != nil {
		c.OffsetX = *patch.OffsetX
	}
	if patch.OffsetY != nil {
		c.OffsetY = *patch.OffsetY
	}
	if patch.Zoom != nil {
		c.Zoom = *patch.Zoom
	}
	if c.Zoom < MinZoom {
		c.Zoom = MinZoom
	}
	if patch.RotationDegrees != nil {
		c.RotationDegrees = normalizeRotation(*patch.RotationDegrees)
	}
	if patch.CropRect != nil {
		r := *patch.CropRect
		c.CropRect = &r
	}
	return c
}

// normalizeRotation wraps an angle into the [-180, 180] range. Values
// arrive from untrusted JSON, so non-finite inputs reset to zero and
// arbitrarily large magnitudes are folded without iteration.
func normalizeRotation(deg float64) float64 {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return 0
	}
	deg = math.Mod(deg, 360)
	if deg > 180 {
		deg -= 360
	} else if deg < -180 {
		deg += 360
	}
	return deg
}

// SourceImage is one photograph in a project: owned pixel bytes, natural
// dimensions and the crop state the user has applied to it. Immutable
// once loaded except for its crop state.
type SourceImage struct {
	ID       string    `json:"id" yaml:"id"`
	Filename string    `json:"filename" yaml:"filename"`
	Width    int       `json:"width" yaml:"width"`
	Height   int       `json:"height" yaml:"height"`
	Crop     CropState `json:"crop" yaml:"crop"`

	// Data holds the original encoded bytes. Stores may load it lazily;
	// it is always populated on projects returned by GetProject.
	Data []byte `json:"-" yaml:"-"`
}

// NewSourceImage probes the encoded bytes for their natural dimensions
// and wraps them with a fresh id and default crop state.
func NewSourceImage(filename string, data []byte) (*SourceImage, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unsupported image %q: %w", filename, err)
	}
	return &SourceImage{
		ID:       uuid.NewString(),
		Filename: filename,
		Width:    cfg.Width,
		Height:   cfg.Height,
		Crop:     DefaultCropState(),
		Data:     data,
	}, nil
}

// Project is a named set of images plus the selected layout template.
type Project struct {
	ID         string         `json:"id" yaml:"id"`
	Name       string         `json:"name" yaml:"name"`
	TemplateID string         `json:"template_id" yaml:"template_id"`
	Images     []*SourceImage `json:"images" yaml:"images"`
	CreatedAt  time.Time      `json:"created_at" yaml:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at" yaml:"updated_at"`
}

// Image returns the image with the given id, or nil.
func (p *Project) Image(imageID string) *SourceImage {
	for _, img := range p.Images {
		if img.ID == imageID {
			return img
		}
	}
	return nil
}

// Summary is a lightweight project listing entry (no image bytes).
type Summary struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	TemplateID string    `json:"template_id"`
	ImageCount int       `json:"image_count"`
	UpdatedAt  time.Time `json:"updated_at"`
}
