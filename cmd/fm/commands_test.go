package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/fontmetrics/core"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDarknessCommand(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, traceKeys...)
	defer teardown()
	//
	out := &bytes.Buffer{}
	err := runDarkness([]string{"-r", "64", "-glyphs", "fallback"}, out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "darkness: 0.")
	assert.Contains(t, out.String(), "density")
}

func TestXHeightCommand(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, traceKeys...)
	defer teardown()
	//
	out := &bytes.Buffer{}
	err := runXHeight([]string{"fallback"}, out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "x-height ratio: ")
	assert.Contains(t, out.String(), "declared ratio: ")
}

func TestFitCommand(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, traceKeys...)
	defer teardown()
	//
	name := filepath.Join(t.TempDir(), "page.txt")
	require.NoError(t, os.WriteFile(name, []byte("abcdefghij\nabcde\nxyz"), 0o644))
	out := &bytes.Buffer{}
	require.NoError(t, runFit([]string{"-w", "10pc", "-ratio", name}, out))
	assert.Equal(t, "15/20\n", out.String())
	out.Reset()
	require.NoError(t, runFit([]string{"-w", "10pc", name}, out))
	assert.Equal(t, "characters per pica: 0.75\n", out.String())
}

func TestFitCommandErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, traceKeys...)
	defer teardown()
	//
	out := &bytes.Buffer{}
	err := runFit([]string{"-w", "10pt", "nonesuch.txt"}, out)
	assert.Equal(t, core.EINVALID, core.Code(err), "10pt is not a whole number of picas")
	assert.ErrorIs(t, err, core.ErrInvalidDimension, "width must be rejected before reading the text")
	err = runFit([]string{"nonesuch.txt"}, out)
	assert.Equal(t, core.EMISSING, core.Code(err))
	assert.Equal(t, 3, exitCode(err))
}

func TestPageCommand(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, traceKeys...)
	defer teardown()
	//
	out := &bytes.Buffer{}
	require.NoError(t, runPage([]string{"-l", "de", "-w", "30pc", "Libertinus Serif"}, out))
	assert.Contains(t, out.String(), `\setmainfont{Libertinus Serif}`)
	assert.Contains(t, out.String(), `\setdefaultlanguage{german}`)
	assert.Contains(t, out.String(), `\setlength{\textwidth}{30pc}`)
}
