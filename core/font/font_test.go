package font

import (
	"errors"
	"testing"

	"github.com/npillmayer/fontmetrics/core"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestFallbackGlyphBounds(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontmetrics.fonts")
	defer teardown()
	//
	f := FallbackFont()
	x, err := f.BBox('x', 256)
	if err != nil {
		t.Fatal(err)
	}
	t.Logf("bbox of 'x' at 256px = %s", x)
	assert.False(t, x.Empty())
	assert.LessOrEqual(t, x.MaxY, 1, "expected 'x' to sit on the baseline")
	assert.Less(t, x.MinY, 0, "expected 'x' to extend above the baseline")
	//
	p, err := f.BBox('p', 256)
	assert.NoError(t, err)
	assert.Greater(t, p.MaxY, x.MaxY, "expected 'p' to have a descender")
	//
	H, err := f.Extents('H', 256)
	assert.NoError(t, err)
	xe, err := f.Extents('x', 256)
	assert.NoError(t, err)
	assert.Greater(t, H.Dy(), xe.Dy(), "expected cap-height to exceed x-height")
}

func TestSpaceIsDegenerate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontmetrics.fonts")
	defer teardown()
	//
	b, err := FallbackFont().BBox(' ', 64)
	assert.NoError(t, err)
	assert.True(t, b.Empty())
	seq, err := FallbackFont().Rasterize(' ', 64)
	assert.NoError(t, err)
	n := 0
	for range seq {
		n++
	}
	assert.Equal(t, 0, n, "expected no coverage for a space")
}

func TestRasterizeStaysInsideBBox(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontmetrics.fonts")
	defer teardown()
	//
	f := FallbackFont()
	b, err := f.BBox('o', 128)
	if err != nil {
		t.Fatal(err)
	}
	seq, err := f.Rasterize('o', 128)
	if err != nil {
		t.Fatal(err)
	}
	covered, inked := 0, 0
	for s := range seq {
		covered++
		assert.True(t, s.X >= 0 && s.X < b.Dx() && s.Y >= 0 && s.Y < b.Dy(),
			"sample (%d,%d) outside of %s", s.X, s.Y, b)
		assert.True(t, s.Coverage > 0 && s.Coverage <= 1)
		if s.Coverage > 0.5 {
			inked++
		}
	}
	assert.Greater(t, inked, 0)
	assert.Less(t, inked, b.Dx()*b.Dy(), "expected the counter of 'o' to stay blank")
	t.Logf("'o' at 128px: %d covered, %d inked pixels in %s", covered, inked, b)
}

func TestMissingGlyph(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontmetrics.fonts")
	defer teardown()
	//
	_, err := FallbackFont().BBox('一', 64)
	assert.True(t, errors.Is(err, core.ErrGlyphNotFound), "expected CJK glyph to be missing in Go Sans")
	assert.Equal(t, core.EMISSING, core.Code(err))
	_, err = FallbackFont().Rasterize('一', 64)
	assert.True(t, errors.Is(err, core.ErrGlyphNotFound))
}

func TestInvalidScale(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontmetrics.fonts")
	defer teardown()
	//
	_, err := FallbackFont().Extents('x', 0)
	assert.True(t, errors.Is(err, core.ErrInvalidScale))
	_, err = FallbackFont().Rasterize('x', -3)
	assert.True(t, errors.Is(err, core.ErrInvalidScale))
}

func TestTypeCaseMetrics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontmetrics.fonts")
	defer teardown()
	//
	tc, err := FallbackFont().PrepareCase(12.0)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 12.0, tc.PtSize())
	m := tc.Metrics()
	t.Logf("metrics of %s@%.1fpt: x-height=%s cap-height=%s", tc.ScalableFontParent().Fontname,
		tc.PtSize(), m.XHeight, m.CapHeight)
	assert.Greater(t, int(m.CapHeight), int(m.XHeight))
	//
	_, err = FallbackFont().PrepareCase(1.0)
	assert.Equal(t, core.EINVALID, core.Code(err))
}

func TestNormalizeFontname(t *testing.T) {
	assert.Equal(t, "gill_sans_mt", NormalizeFontname(" Gill Sans MT.ttf"))
	assert.Equal(t, "foo", NormalizeFontname("/home/u/.fonts/Foo"))
	assert.Equal(t, ".fonts", NormalizeFontname(".fonts"))
	assert.Equal(t, "Go Sans", FallbackFont().Stem())
	f := &ScalableFont{Fontname: "Constantia", Filepath: "/usr/share/fonts/Constan.ttf"}
	assert.Equal(t, "Constan", f.Stem())
}
