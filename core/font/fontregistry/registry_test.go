package fontregistry

import (
	"testing"

	"github.com/npillmayer/fontmetrics/core"
	"github.com/npillmayer/fontmetrics/core/font"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryStoresFontOnce(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontmetrics.fonts")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelDebug)
	//
	fr := NewRegistry()
	f := font.FallbackFont()
	fr.StoreFont("Go Sans", f)
	fr.StoreFont("go sans", &font.ScalableFont{Fontname: "other"})
	g, ok := fr.Font("GO SANS")
	require.True(t, ok)
	assert.Same(t, f, g, "expected first stored font to survive")
	fr.LogFontList()
}

func TestRegistryCachesTypeCases(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontmetrics.fonts")
	defer teardown()
	//
	fr := NewRegistry()
	fr.StoreFont("fallback", font.FallbackFont())
	tc1, err := fr.TypeCase("fallback", 12)
	require.NoError(t, err)
	tc2, err := fr.TypeCase("fallback", 12)
	require.NoError(t, err)
	assert.Same(t, tc1, tc2)
	tc3, err := fr.TypeCase("fallback", 10)
	require.NoError(t, err)
	assert.NotSame(t, tc1, tc3)
}

func TestRegistryMissingFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontmetrics.fonts")
	defer teardown()
	//
	fr := NewRegistry()
	_, err := fr.TypeCase("nonesuch", 12)
	assert.Equal(t, core.EMISSING, core.Code(err))
	_, err = GlobalRegistry().TypeCase("nonesuch", 12)
	assert.Error(t, err)
}

func TestRegistryKeysFilesByPath(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontmetrics.fonts")
	defer teardown()
	//
	assert.Equal(t, "go_sans", Key(" Go Sans "))
	assert.NotEqual(t, Key("A.ttf"), Key("A.otf"))
	assert.NotEqual(t, Key("/fonts/A.ttf"), Key("/fonts/A.otf"))
	assert.NotEqual(t, Key("/home/u/.fonts/Foo"), Key("/home/u/.fonts/Bar"))
	assert.Equal(t, Key("/fonts/A.ttf"), Key("/fonts/sub/../A.ttf"))
	//
	fr := NewRegistry()
	a, b := font.FallbackFont(), &font.ScalableFont{Fontname: "other"}
	fr.StoreFont("/fonts/A.ttf", a)
	fr.StoreFont("/fonts/A.otf", b)
	f, ok := fr.Font("/fonts/A.otf")
	require.True(t, ok)
	assert.Same(t, b, f)
}
