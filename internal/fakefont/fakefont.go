// Package fakefont provides synthetic glyph geometry for tests.
package fakefont

import (
	"iter"

	"github.com/npillmayer/fontmetrics/core"
	"github.com/npillmayer/fontmetrics/core/glyph"
)

// Glyph is the geometry of a synthetic glyph. Coverage, if non-nil, is
// indexed [y][x] relative to the glyph's bounding box.
type Glyph struct {
	Box      glyph.BBox
	Extents  glyph.BBox
	Coverage [][]float32
}

// Font is a map from characters to synthetic glyphs. It ignores the scale
// parameter, apart from validating it.
type Font map[rune]Glyph

// Counting is a Font which counts rasterization requests per character.
type Counting struct {
	Font
	Requests map[rune]int
}

func (f Font) lookup(r rune, scale float64) (Glyph, error) {
	if err := glyph.CheckScale(scale); err != nil {
		return Glyph{}, err
	}
	g, ok := f[r]
	if !ok {
		return Glyph{}, core.WrapError(core.ErrGlyphNotFound, core.EMISSING,
			"fake font has no glyph for %#U", r)
	}
	return g, nil
}

// BBox is part of interface glyph.Provider.
func (f Font) BBox(r rune, scale float64) (glyph.BBox, error) {
	g, err := f.lookup(r, scale)
	return g.Box, err
}

// Extents is part of interface glyph.Provider.
func (f Font) Extents(r rune, scale float64) (glyph.BBox, error) {
	g, err := f.lookup(r, scale)
	return g.Extents, err
}

// Rasterize is part of interface glyph.Provider.
func (f Font) Rasterize(r rune, scale float64) (iter.Seq[glyph.Sample], error) {
	g, err := f.lookup(r, scale)
	if err != nil {
		return nil, err
	}
	return glyph.Once(func(yield func(glyph.Sample) bool) {
		for y, row := range g.Coverage {
			for x, c := range row {
				if !yield(glyph.Sample{X: x, Y: y, Coverage: c}) {
					return
				}
			}
		}
	}), nil
}

var _ glyph.Provider = Font{}

// Rasterize is part of interface glyph.Provider and counts requests.
func (c *Counting) Rasterize(r rune, scale float64) (iter.Seq[glyph.Sample], error) {
	if c.Requests == nil {
		c.Requests = make(map[rune]int)
	}
	c.Requests[r]++
	return c.Font.Rasterize(r, scale)
}

var _ glyph.Provider = &Counting{}

// Grid creates a coverage grid of w×h pixels, where the first n pixels (row by
// row) have full coverage and all others have none.
func Grid(w, h, n int) [][]float32 {
	grid := make([][]float32, h)
	for y := range grid {
		grid[y] = make([]float32, w)
		for x := range grid[y] {
			if y*w+x < n {
				grid[y][x] = 1
			}
		}
	}
	return grid
}

// Box creates a w×h bounding box with its top-left corner at (x, y).
func Box(x, y, w, h int) glyph.BBox {
	return glyph.BBox{MinX: x, MinY: y, MaxX: x + w, MaxY: y + h}
}
