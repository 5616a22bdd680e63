/*
Package glyph defines the geometry contract between fonts and measurements.

Measurement algorithms do not know about font files. They ask a Provider for
the bounding box, the outline extents or the pixel coverage of a single
character at a given scale, and consume the result before asking for the next
glyph.

Coordinates are in image space: y grows downward, and the baseline of a glyph
is at y = 0. Pixel coverage samples are relative to the top-left corner of the
glyph's pixel bounding box.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package glyph

import (
	"fmt"
	"iter"

	"github.com/npillmayer/fontmetrics/core"
)

// BBox is an axis-aligned bounding box in a glyph-local coordinate frame.
type BBox struct {
	MinX, MinY, MaxX, MaxY int
}

// Dx returns the width of a bounding box.
func (b BBox) Dx() int {
	return b.MaxX - b.MinX
}

// Dy returns the height of a bounding box.
func (b BBox) Dy() int {
	return b.MaxY - b.MinY
}

// Empty is true for a box with zero (or negative) area, e.g. for a space.
func (b BBox) Empty() bool {
	return b.Dx() <= 0 || b.Dy() <= 0
}

// Check returns core.ErrMalformedGeometry for a box with inverted coordinates.
// Zero extents are fine: they denote a glyph without visible marks.
func (b BBox) Check(r rune) error {
	if b.Dx() < 0 || b.Dy() < 0 {
		return core.WrapError(core.ErrMalformedGeometry, core.EINVALID,
			"bounding box %s of glyph %#U is inverted", b, r)
	}
	return nil
}

func (b BBox) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", b.MinX, b.MinY, b.MaxX, b.MaxY)
}

// Sample is the coverage of a single pixel of a rasterized glyph.
// Coverage is in [0…1].
type Sample struct {
	X, Y     int
	Coverage float32
}

// Provider yields glyph geometry for single characters.
//
// Scale is the size of the em square in pixels, applied to both axes.
// Implementations return an error wrapping core.ErrGlyphNotFound for characters
// missing in the font, and core.ErrInvalidScale for a scale ≤ 0.
type Provider interface {
	// BBox returns the pixel bounding box of a glyph.
	BBox(r rune, scale float64) (BBox, error)
	// Extents returns the bounding box of a glyph's outline, in 1/64 pixels.
	Extents(r rune, scale float64) (BBox, error)
	// Rasterize returns the pixel coverage of a glyph as a single-use sequence.
	// Pixels without any coverage may be left out.
	Rasterize(r rune, scale float64) (iter.Seq[Sample], error)
}

// CheckScale is a helper for providers and calculators to validate a scale
// parameter.
func CheckScale(scale float64) error {
	if !(scale > 0) {
		return core.WrapError(core.ErrInvalidScale, core.EINVALID,
			"scale must be positive, is %g", scale)
	}
	return nil
}

// Once wraps a sequence so that it may be iterated only once. Further
// iterations yield nothing.
func Once(seq iter.Seq[Sample]) iter.Seq[Sample] {
	used := false
	return func(yield func(Sample) bool) {
		if used {
			tracer().Errorf("pixel coverage sequence consumed twice")
			return
		}
		used = true
		seq(yield)
	}
}

// IsInked is the binarization policy for anti-aliased coverage values.
// A pixel counts as inked if its coverage is above InkThreshold.
func IsInked(s Sample) bool {
	return s.Coverage > InkThreshold
}

// InkThreshold is the fixed coverage threshold for inked pixels.
const InkThreshold = 0.5
