/*
Package darkness estimates how dark a font looks.

Darkness is the fraction of inked pixels of lowercase glyphs. Every glyph is
measured within a frame which is as high as the reference glyph 'x' and as wide
as the glyph itself. Using the same vertical frame for every glyph makes glyphs
with ascenders and descenders comparable: pixels above or below the frame do
not count.

Coverage values of the rasterizer are binarized with glyph.InkThreshold. This
is a simplification; callers needing sub-pixel fidelity should sum up raw
coverage values.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package darkness

import (
	"errors"
	"math"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/fontmetrics/core"
	"github.com/npillmayer/fontmetrics/core/glyph"
	"github.com/npillmayer/fontmetrics/core/ratio"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fontmetrics.engine'
func tracer() tracing.Trace {
	return tracing.Select("fontmetrics.engine")
}

// DefaultAlphabet is the lowercase Latin alphabet.
const DefaultAlphabet = "abcdefghijklmnopqrstuvwxyz"

// DefaultResolution is the default em size for rasterization, in pixels.
const DefaultResolution = 256

// Config collects the parameters of a darkness measurement.
type Config struct {
	Scale     float64 // em size in pixels
	Alphabet  string  // glyphs to measure, each character once
	Reference rune    // glyph defining the vertical frame
}

// DefaultConfig returns the configuration for measuring a–z against 'x' at
// DefaultResolution.
func DefaultConfig() Config {
	return Config{
		Scale:     DefaultResolution,
		Alphabet:  DefaultAlphabet,
		Reference: 'x',
	}
}

// GlyphDensity measures the density of the glyph for r within a frame.
// frame is the pixel bounding box of the reference glyph.
//
// The result is inked pixels / frame area. It is undefined (zero denominator)
// for glyphs without extent, e.g. a space, and for an empty frame.
func GlyphDensity(p glyph.Provider, r rune, frame glyph.BBox, scale float64) (ratio.Ratio, error) {
	box, err := p.BBox(r, scale)
	if err != nil {
		return ratio.Ratio{}, err
	}
	if err = box.Check(r); err != nil {
		return ratio.Ratio{}, err
	}
	pixels, err := p.Rasterize(r, scale)
	if err != nil {
		return ratio.Ratio{}, err
	}
	height := frame.Dy()
	// move samples from the glyph's coordinates into the frame
	yAdjust := box.MinY - frame.MinY
	var inked int64
	for s := range pixels {
		y := s.Y + yAdjust
		if y < 0 || y >= height {
			continue
		}
		if glyph.IsInked(s) {
			inked++
		}
	}
	area := int64(height) * int64(box.Dx())
	if area <= 0 {
		tracer().Debugf("glyph %#U is degenerate: frame %s, box %s", r, frame, box)
		return ratio.New(inked, 0), nil
	}
	return ratio.New(inked, area), nil
}

// Result is the outcome of a darkness measurement.
type Result struct {
	Density float64 // mean density of all measurable glyphs, NaN if there are none
	Skipped []rune  // glyphs missing in the font or without extent
	glyphs  *treemap.Map
}

// Len returns the number of glyphs contributing to the mean density.
func (res *Result) Len() int {
	return res.glyphs.Size()
}

// Glyph returns the density of a single measured glyph.
func (res *Result) Glyph(r rune) (ratio.Ratio, bool) {
	d, found := res.glyphs.Get(r)
	if !found {
		return ratio.Ratio{}, false
	}
	return d.(ratio.Ratio), true
}

// Defined is false if no glyph could be measured.
func (res *Result) Defined() bool {
	return res.Len() > 0
}

// Each calls f for every measured glyph, in code-point order.
func (res *Result) Each(f func(r rune, density ratio.Ratio)) {
	res.glyphs.Each(func(key, value interface{}) {
		f(key.(rune), value.(ratio.Ratio))
	})
}

// Measure measures the mean density of the glyphs of conf.Alphabet.
//
// Glyphs missing in the font or without extent are skipped. If no glyph can be
// measured, an error wrapping core.ErrNoMeasurableGlyphs is returned. If the
// reference glyph is missing, measuring is impossible as well and an error
// wrapping core.ErrGlyphNotFound is returned.
func Measure(p glyph.Provider, conf Config) (*Result, error) {
	if err := glyph.CheckScale(conf.Scale); err != nil {
		return nil, err
	}
	frame, err := p.BBox(conf.Reference, conf.Scale)
	if err != nil {
		return nil, err
	}
	if err = frame.Check(conf.Reference); err != nil {
		return nil, err
	}
	tracer().Debugf("measuring within frame %s of %#U", frame, conf.Reference)
	res := &Result{glyphs: treemap.NewWith(utils.RuneComparator)}
	var sum float64
	seen := make(map[rune]bool, len(conf.Alphabet))
	for _, r := range conf.Alphabet {
		if seen[r] {
			continue
		}
		seen[r] = true
		d, err := GlyphDensity(p, r, frame, conf.Scale)
		if errors.Is(err, core.ErrGlyphNotFound) {
			tracer().Infof("glyph %#U missing, skipped", r)
			res.Skipped = append(res.Skipped, r)
			continue
		} else if err != nil {
			return nil, err
		}
		f, ok := d.Float64()
		if !ok {
			res.Skipped = append(res.Skipped, r)
			continue
		}
		res.glyphs.Put(r, d)
		sum += f
	}
	if res.Len() == 0 {
		res.Density = math.NaN()
		return res, core.WrapError(core.ErrNoMeasurableGlyphs, core.EUNDEFINED,
			"none of the glyphs %q can be measured", conf.Alphabet)
	}
	res.Density = sum / float64(res.Len())
	tracer().Debugf("darkness of %d glyphs = %.4f", res.Len(), res.Density)
	return res, nil
}
