package xheight

import (
	"errors"
	"testing"

	"github.com/npillmayer/fontmetrics/core"
	"github.com/npillmayer/fontmetrics/core/font"
	"github.com/npillmayer/fontmetrics/core/ratio"
	"github.com/npillmayer/fontmetrics/internal/fakefont"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

func heights(x, cap int) fakefont.Font {
	f := fakefont.Font{}
	for _, r := range XHeightGlyphs {
		f[r] = fakefont.Glyph{Extents: fakefont.Box(0, -x, 50, x)}
	}
	for _, r := range CapHeightGlyphs {
		f[r] = fakefont.Glyph{Extents: fakefont.Box(0, -cap, 50, cap)}
	}
	return f
}

func TestSyntheticRatio(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontmetrics.engine")
	defer teardown()
	//
	r, err := Measure(heights(100, 200), 1000)
	assert.NoError(t, err)
	assert.True(t, r.Identical(ratio.New(300, 600)), "expected 300/600, got %s", r)
	f, ok := r.Float64()
	assert.True(t, ok)
	assert.Equal(t, 0.5, f)
	//
	again, _ := Measure(heights(100, 200), 1000)
	assert.True(t, again.Identical(r), "expected measurement to be repeatable")
}

func TestMissingGlyphsCountZero(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontmetrics.engine")
	defer teardown()
	//
	f := heights(100, 200)
	delete(f, 'z')
	r, err := Measure(f, 1000)
	assert.NoError(t, err)
	assert.True(t, r.Identical(ratio.New(200, 600)), "got %s", r)
}

func TestUndefinedRatio(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontmetrics.engine")
	defer teardown()
	//
	f := heights(100, 200)
	for _, r := range XHeightGlyphs {
		delete(f, r)
	}
	r, err := Measure(f, 1000)
	assert.True(t, errors.Is(err, core.ErrUndefinedRatio))
	assert.True(t, r.Identical(ratio.New(0, 600)))
	//
	r, err = Measure(fakefont.Font{}, 1000)
	assert.True(t, errors.Is(err, core.ErrUndefinedRatio))
	assert.True(t, r.IsUndefined())
}

func TestMalformedGeometry(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontmetrics.engine")
	defer teardown()
	//
	f := heights(100, 200)
	f['I'] = fakefont.Glyph{Extents: fakefont.Box(0, 0, 10, -5)}
	_, err := Measure(f, 1000)
	assert.True(t, errors.Is(err, core.ErrMalformedGeometry))
	assert.Equal(t, core.EINVALID, core.Code(err))
	//
	_, err = Measure(heights(1, 2), 0)
	assert.True(t, errors.Is(err, core.ErrInvalidScale))
}

func TestGoSans(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontmetrics.engine")
	defer teardown()
	//
	f := font.FallbackFont()
	r, err := Measure(f, float64(f.UnitsPerEm()))
	if err != nil {
		t.Fatal(err)
	}
	x, _ := r.Float64()
	t.Logf("x-height ratio of %s = %s (~%.3f)", f.Fontname, r, x)
	assert.Greater(t, x, 0.4)
	assert.Less(t, x, 0.9)
}

func TestDeclared(t *testing.T) {
	r, err := Declared(xfont.Metrics{XHeight: fixed.I(5), CapHeight: fixed.I(7)})
	assert.NoError(t, err)
	assert.True(t, r.Equal(ratio.New(5, 7)))
	_, err = Declared(xfont.Metrics{})
	assert.True(t, errors.Is(err, core.ErrUndefinedRatio))
}
