/*
Package xheight measures the ratio of x-height to cap-height of a font.

The heights are taken from the outline extents of "vxz" and "HIT". These
letters tend to stay close to the actual x-height and cap-height, without
overshooting like round letters do.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package xheight

import (
	"errors"

	"github.com/npillmayer/fontmetrics/core"
	"github.com/npillmayer/fontmetrics/core/glyph"
	"github.com/npillmayer/fontmetrics/core/ratio"
	"github.com/npillmayer/schuko/tracing"
	xfont "golang.org/x/image/font"
)

// tracer traces with key 'fontmetrics.engine'
func tracer() tracing.Trace {
	return tracing.Select("fontmetrics.engine")
}

// Test glyphs for x-height and cap-height.
const (
	XHeightGlyphs   = "vxz"
	CapHeightGlyphs = "HIT"
)

// Measure returns x-height / cap-height of the glyphs of p, measured at scale.
//
// The ratio is the sum of the heights of XHeightGlyphs over the sum of the
// heights of CapHeightGlyphs, not reduced. Glyphs missing in the font add a
// height of 0. If either sum is 0, the ratio is returned together with an error
// wrapping core.ErrUndefinedRatio.
func Measure(p glyph.Provider, scale float64) (ratio.Ratio, error) {
	if err := glyph.CheckScale(scale); err != nil {
		return ratio.Ratio{}, err
	}
	xsum, err := sumHeights(p, XHeightGlyphs, scale)
	if err != nil {
		return ratio.Ratio{}, err
	}
	capsum, err := sumHeights(p, CapHeightGlyphs, scale)
	if err != nil {
		return ratio.Ratio{}, err
	}
	r := ratio.New(xsum, capsum)
	tracer().Debugf("x-height ratio at scale %g = %s", scale, r)
	if xsum == 0 {
		return r, core.WrapError(core.ErrUndefinedRatio, core.EUNDEFINED,
			"glyphs %s all have zero height", XHeightGlyphs)
	}
	if capsum == 0 {
		return r, core.WrapError(core.ErrUndefinedRatio, core.EUNDEFINED,
			"glyphs %s all have zero height", CapHeightGlyphs)
	}
	return r, nil
}

func sumHeights(p glyph.Provider, glyphs string, scale float64) (int64, error) {
	var sum int64
	for _, r := range glyphs {
		box, err := p.Extents(r, scale)
		if errors.Is(err, core.ErrGlyphNotFound) {
			tracer().Infof("glyph %#U missing, counts as height 0", r)
			continue
		} else if err != nil {
			return 0, err
		}
		if err = box.Check(r); err != nil {
			return 0, err
		}
		sum += int64(box.Dy())
	}
	return sum, nil
}

// Declared returns the x-height / cap-height ratio a font declares in its
// metrics (OS/2 table), for comparison with a measured ratio.
// Units are 1/64 pixels, the ratio is not reduced.
func Declared(m xfont.Metrics) (ratio.Ratio, error) {
	r := ratio.New(int64(m.XHeight), int64(m.CapHeight))
	if m.XHeight <= 0 || m.CapHeight <= 0 {
		return r, core.WrapError(core.ErrUndefinedRatio, core.EUNDEFINED,
			"font does not declare x-height and cap-height")
	}
	return r, nil
}
