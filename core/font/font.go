/*
Package font is for typeface and font handling.

There is a certain confusion in the nomenclature of typesetting. We will
stick to the following definitions:

* A "typeface" is a family of fonts. An example is "Helvetica".
This corresponds to a TrueType "collection" (*.ttc).

* A "scalable font" is a font, i.e. a variant of a typeface with a
certain weight, slant, etc.  An example is "Helvetica regular".

* A "typecase" is a scaled font, i.e. a font in a certain size.
The name is reminiscend on the wooden boxes of typesetters in the aera
of metal type. An example is "Helvetica regular 11pt".

Please note that Go (Golang) does use the terms "font" and "face"
differently–actually more or less in an opposite manner.

A ScalableFont implements glyph.Provider: glyph outlines are loaded with
package sfnt and rasterized with package vector of golang.org/x/image.

No font collections nor variable fonts are supported.

----------------------------------------------------------------------

BSD License

Copyright (c) 2017-21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE. */
package font

import (
	"image"
	"image/draw"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/npillmayer/fontmetrics/core"
	"github.com/npillmayer/fontmetrics/core/glyph"
	"github.com/npillmayer/schuko/tracing"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// tracer traces with key 'fontmetrics.fonts'
func tracer() tracing.Trace {
	return tracing.Select("fontmetrics.fonts")
}

// ScalableFont is an outline font of type TTF or OTF.
//
// ScalableFont implements glyph.Provider. Every call uses its own sfnt.Buffer,
// so a ScalableFont may be shared between measurements.
type ScalableFont struct {
	Fontname string
	Filepath string     // file path, empty for in-memory fonts
	Binary   []byte     // raw data
	SFNT     *sfnt.Font // the font's container
}

// LoadOpenTypeFont loads an OpenType font (TTF or OTF) from a file.
func LoadOpenTypeFont(fontfile string) (*ScalableFont, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot read font file %s", fontfile)
	}
	f, err := ParseOpenTypeFont(bytez)
	if err != nil {
		return nil, err
	}
	f.Filepath = fontfile
	return f, nil
}

// ParseOpenTypeFont loads an OpenType font (TTF or OTF) from memory.
func ParseOpenTypeFont(fbytes []byte) (f *ScalableFont, err error) {
	f = &ScalableFont{Binary: fbytes}
	f.SFNT, err = sfnt.Parse(f.Binary)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot parse font as OpenType")
	}
	if f.Fontname, err = f.SFNT.Name(nil, sfnt.NameIDFull); err != nil {
		tracer().Infof("font has no full name: %v", err)
		f.Fontname, err = "", nil
	}
	tracer().Debugf("loaded and parsed SFNT %s", f.Fontname)
	return
}

// UnitsPerEm returns the size of the em square in font design units.
// Measuring at this scale yields extents in design units (times 64).
func (sf *ScalableFont) UnitsPerEm() int {
	return int(sf.SFNT.UnitsPerEm())
}

// Stem returns the file name of a font without directory and extension, the way
// fontspec wants to see it. For fonts not loaded from a file, the font name is
// returned.
func (sf *ScalableFont) Stem() string {
	if sf.Filepath == "" {
		return sf.Fontname
	}
	base := filepath.Base(sf.Filepath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// --- glyph.Provider --------------------------------------------------------

// BBox returns the pixel bounding box of the glyph for r, scaled to an em size of
// scale pixels. Fractional outline extents are rounded outwards.
func (sf *ScalableFont) BBox(r rune, scale float64) (glyph.BBox, error) {
	_, b, err := sf.loadGlyph(r, scale)
	if err != nil {
		return glyph.BBox{}, err
	}
	return pixelBounds(b), nil
}

// Extents returns the bounding box of the outline of the glyph for r, in 1/64
// pixels at an em size of scale pixels.
func (sf *ScalableFont) Extents(r rune, scale float64) (glyph.BBox, error) {
	_, b, err := sf.loadGlyph(r, scale)
	if err != nil {
		return glyph.BBox{}, err
	}
	return glyph.BBox{
		MinX: int(b.Min.X),
		MinY: int(b.Min.Y),
		MaxX: int(b.Max.X),
		MaxY: int(b.Max.Y),
	}, nil
}

// Rasterize renders the glyph for r into an alpha mask the size of its pixel
// bounding box and returns the non-zero coverage values, row by row.
// Rendering happens when the sequence is iterated; the sequence is single-use.
func (sf *ScalableFont) Rasterize(r rune, scale float64) (iter.Seq[glyph.Sample], error) {
	segs, b, err := sf.loadGlyph(r, scale)
	if err != nil {
		return nil, err
	}
	box := pixelBounds(b)
	return glyph.Once(func(yield func(glyph.Sample) bool) {
		if box.Empty() {
			return
		}
		mask := rasterize(segs, box)
		w, h := box.Dx(), box.Dy()
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				a := mask.AlphaAt(x, y).A
				if a == 0 {
					continue
				}
				if !yield(glyph.Sample{X: x, Y: y, Coverage: float32(a) / 0xff}) {
					return
				}
			}
		}
	}), nil
}

var _ glyph.Provider = (*ScalableFont)(nil)

// loadGlyph returns the outline of a glyph for r, scaled to scale pixels per em.
// The segments are a copy and stay valid after the buffer is gone.
func (sf *ScalableFont) loadGlyph(r rune, scale float64) (sfnt.Segments, fixed.Rectangle26_6, error) {
	if err := glyph.CheckScale(scale); err != nil {
		return nil, fixed.Rectangle26_6{}, err
	}
	var buf sfnt.Buffer
	gid, err := sf.SFNT.GlyphIndex(&buf, r)
	if err != nil {
		return nil, fixed.Rectangle26_6{}, core.WrapError(err, core.EINVALID,
			"cannot look up glyph %#U in font %s", r, sf.Fontname)
	}
	// character codes without a glyph are mapped to .notdef
	if gid == 0 {
		return nil, fixed.Rectangle26_6{}, core.WrapError(core.ErrGlyphNotFound, core.EMISSING,
			"font %s has no glyph for %#U", sf.Fontname, r)
	}
	ppem := fixed.Int26_6(scale*64 + 0.5)
	segs, err := sf.SFNT.LoadGlyph(&buf, gid, ppem, nil)
	if err != nil {
		return nil, fixed.Rectangle26_6{}, core.WrapError(err, core.EINVALID,
			"cannot load glyph %#U from font %s", r, sf.Fontname)
	}
	// sfnt.LoadGlyph results become invalid once the buffer is re-used.
	segs = append(sfnt.Segments(nil), segs...)
	return segs, segs.Bounds(), nil
}

func pixelBounds(b fixed.Rectangle26_6) glyph.BBox {
	return glyph.BBox{
		MinX: b.Min.X.Floor(),
		MinY: b.Min.Y.Floor(),
		MaxX: b.Max.X.Ceil(),
		MaxY: b.Max.Y.Ceil(),
	}
}

// rasterize draws the outline segs into an alpha mask covering box.
func rasterize(segs sfnt.Segments, box glyph.BBox) *image.Alpha {
	w, h := box.Dx(), box.Dy()
	tx, ty := -float32(box.MinX), -float32(box.MinY)
	pt := func(p fixed.Point26_6) (float32, float32) {
		return tx + float32(p.X)/64, ty + float32(p.Y)/64
	}
	rast := vector.NewRasterizer(w, h)
	rast.DrawOp = draw.Src
	open := false
	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				rast.ClosePath()
			}
			rast.MoveTo(pt(seg.Args[0]))
			open = true
		case sfnt.SegmentOpLineTo:
			rast.LineTo(pt(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			x1, y1 := pt(seg.Args[0])
			x2, y2 := pt(seg.Args[1])
			rast.QuadTo(x1, y1, x2, y2)
		case sfnt.SegmentOpCubeTo:
			x1, y1 := pt(seg.Args[0])
			x2, y2 := pt(seg.Args[1])
			x3, y3 := pt(seg.Args[2])
			rast.CubeTo(x1, y1, x2, y2, x3, y3)
		}
	}
	if open {
		rast.ClosePath()
	}
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	rast.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}

// --- Type cases -------------------------------------------------------------

// TypeCase is a scalable font at a given point size.
type TypeCase struct {
	scalableFontParent *ScalableFont
	face               xfont.Face // Go uses 'face' and 'font' in an inverse manner
	size               float64
}

// PrepareCase creates a type case for a font at a given point size.
// Sizes outside of 5pt…500pt are rejected.
func (sf *ScalableFont) PrepareCase(fontsize float64) (*TypeCase, error) {
	if fontsize < 5.0 || fontsize > 500.0 {
		return nil, core.WrapError(core.ErrInvalidScale, core.EINVALID,
			"font size must be 5pt < size < 500pt, is %g", fontsize)
	}
	options := &opentype.FaceOptions{
		Size:    fontsize,
		DPI:     72,
		Hinting: xfont.HintingNone,
	}
	f, err := opentype.NewFace(sf.SFNT, options)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot create face for %s", sf.Fontname)
	}
	return &TypeCase{
		scalableFontParent: sf,
		face:               f,
		size:               fontsize,
	}, nil
}

// ScalableFontParent returns the unscaled font of a type case.
func (tc *TypeCase) ScalableFontParent() *ScalableFont {
	return tc.scalableFontParent
}

// PtSize returns the point size of a type case.
func (tc *TypeCase) PtSize() float64 {
	return tc.size
}

// Metrics returns the metrics the font declares for this size, including
// x-height and cap-height from the OS/2 table.
func (tc *TypeCase) Metrics() xfont.Metrics {
	return tc.face.Metrics()
}

// --- Fallback font ---------------------------------------------------------

// FallbackFont returns a font to be used if everything else failes. It is
// always present. Currently we use Go Sans.
func FallbackFont() *ScalableFont {
	fallbackFontLoading.Do(func() {
		fallbackFont = loadFallbackFont()
	})
	return fallbackFont
}

var fallbackFontLoading sync.Once

// fallbackFont is a font that is used if everything else failes.
// Currently we use Go Sans.
var fallbackFont *ScalableFont

func loadFallbackFont() *ScalableFont {
	var err error
	gofont := &ScalableFont{
		Fontname: "Go Sans",
		Binary:   goregular.TTF,
	}
	gofont.SFNT, err = sfnt.Parse(gofont.Binary)
	if err != nil {
		panic("cannot load default font") // this cannot happen
	}
	return gofont
}

// NormalizeFontname normalizes a font name or font file name for comparison.
// Directories are stripped, as is the extension of the file name.
func NormalizeFontname(fname string) string {
	fname = filepath.Base(filepath.FromSlash(strings.TrimSpace(fname)))
	if ext := filepath.Ext(fname); ext != fname {
		fname = strings.TrimSuffix(fname, ext)
	}
	fname = strings.ReplaceAll(fname, " ", "_")
	return strings.ToLower(fname)
}
