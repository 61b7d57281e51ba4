// Package units converts physical lengths to raster pixels and PDF
// document points. Every place a millimetre becomes a pixel must go
// through ToPixels so that all tiles in a layout come out bit-identical
// in size.
package units

import "math"

const (
	// MillimetersPerInch is the metric/imperial bridge for all conversions.
	MillimetersPerInch = 25.4

	// PointsPerInch is the PDF document unit density (1pt = 1/72 inch).
	PointsPerInch = 72.0

	// DensityDPI is the fixed rasterization density for the whole export
	// pipeline. It is configuration, never derived from a source image.
	DensityDPI = 300
)

// ToPixels converts a physical length in millimetres to whole pixels at
// the given sampling density, rounding to the nearest integer.
func ToPixels(lengthMM float64, density int) int {
	return int(math.Round(lengthMM / MillimetersPerInch * float64(density)))
}

// ToDocumentUnits converts a physical length in millimetres to PDF points.
// No rounding; sub-pixel placement is allowed in document space.
func ToDocumentUnits(lengthMM float64) float64 {
	return lengthMM / MillimetersPerInch * PointsPerInch
}
