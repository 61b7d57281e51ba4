package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"

	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"
)

// Render samples the source image through the given geometry into a
// square, opaque tile of outPx by outPx pixels. The source is rotated
// about its own center onto a bounding-box-sized canvas, the crop rect
// is cut from that canvas (clamped, never rejected), and the cut is
// scaled with Catmull-Rom resampling. A degenerate crop yields a blank
// white tile of the requested size.
func Render(src image.Image, g Geometry, outPx int) *image.NRGBA {
	dst := imaging.New(outPx, outPx, color.White)

	canvas := src
	if g.RotationDegrees != 0 {
		// The widget reports clockwise-positive angles; imaging
		// rotates counter-clockwise.
		canvas = imaging.Rotate(src, -g.RotationDegrees, color.White)
	}

	crop := image.Rect(
		int(math.Floor(g.CropRect.X)),
		int(math.Floor(g.CropRect.Y)),
		int(math.Ceil(g.CropRect.X+g.CropRect.Width)),
		int(math.Ceil(g.CropRect.Y+g.CropRect.Height)),
	).Intersect(canvas.Bounds())
	if crop.Empty() || outPx <= 0 {
		return dst
	}

	xdraw.CatmullRom.Scale(dst, dst.Bounds(), canvas, crop, xdraw.Over, nil)
	return dst
}

// RenderTile decodes the source bytes, renders them through the
// geometry, and returns the tile encoded as PNG so it can be embedded
// losslessly. Identical inputs produce byte-identical output.
func RenderTile(data []byte, g Geometry, outPx int) ([]byte, error) {
	src, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageDecode, err)
	}

	tile := Render(src, g, outPx)

	var buf bytes.Buffer
	if err := png.Encode(&buf, tile); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageEncode, err)
	}
	return buf.Bytes(), nil
}
