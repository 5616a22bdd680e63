/*
Package fit measures how many characters of a font fit into a line.

The measure is "characters per pica": the average number of characters per
line of a typeset sample page, divided by the width of the lines in picas.
Typesetting the page and extracting its text is left to LuaLaTeX and a PDF text
extractor; this package generates the LaTeX test page and analyzes the
extracted plain text.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package fit

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/npillmayer/fontmetrics/core"
	"github.com/npillmayer/fontmetrics/core/dimen"
	"github.com/npillmayer/fontmetrics/core/ratio"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/uax11"
	"golang.org/x/text/language"
)

// tracer traces with key 'fontmetrics.engine'
func tracer() tracing.Trace {
	return tracing.Select("fontmetrics.engine")
}

// CountMode selects what counts as a character.
type CountMode int

// Counting modes. CountRunes is the standard measure. The other modes give
// different results for text with combining marks or East Asian wide
// characters and are therefore not comparable to CountRunes measurements.
const (
	CountRunes     CountMode = iota // Unicode scalar values
	CountGraphemes                  // user-perceived characters (UAX #29)
	CountCells                      // fixed-pitch cells, wide characters count 2 (UAX #11)
)

// ParseCountMode returns the count mode for "runes", "graphemes" or "cells".
func ParseCountMode(s string) (CountMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "runes", "":
		return CountRunes, nil
	case "graphemes":
		return CountGraphemes, nil
	case "cells":
		return CountCells, nil
	}
	return CountRunes, core.Error(core.EINVALID, "unknown count mode %q", s)
}

func (mode CountMode) String() string {
	switch mode {
	case CountGraphemes:
		return "graphemes"
	case CountCells:
		return "cells"
	}
	return "runes"
}

var graphemeSetup sync.Once

// count returns the number of characters of a line.
func (mode CountMode) count(line string) int64 {
	switch mode {
	case CountGraphemes, CountCells:
		graphemeSetup.Do(grapheme.SetupGraphemeClasses)
		gstr := grapheme.StringFromString(line)
		if mode == CountGraphemes {
			return int64(gstr.Len())
		}
		var cells int64
		for i := 0; i < gstr.Len(); i++ {
			cells += int64(uax11.Width([]byte(gstr.Nth(i)), uax11.LatinContext))
		}
		return cells
	}
	return int64(utf8.RuneCountInString(line))
}

// Lines splits the text of a page into lines, after trimming white space at the
// start and end of the page. Carriage returns before line breaks are removed.
func Lines(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// AverageCharsPerLine returns the average number of characters per line
// of the text of a page, as total characters / number of lines.
//
// The last line of the page is ignored, as the last line of a paragraph usually
// is not full. A page must therefore have at least two lines, otherwise an
// error wrapping core.ErrInsufficientContent is returned.
func AverageCharsPerLine(text string, mode CountMode) (ratio.Ratio, error) {
	lines := Lines(text)
	if len(lines) < 2 {
		return ratio.Ratio{}, core.WrapError(core.ErrInsufficientContent, core.EINSUFFICIENT,
			"need at least 2 lines of text, have %d", len(lines))
	}
	lines = lines[:len(lines)-1]
	var total int64
	for _, l := range lines {
		total += mode.count(l)
	}
	avg := ratio.New(total, int64(len(lines)))
	tracer().Debugf("%d lines with %d %s, average = %s", len(lines), total, mode, avg)
	return avg, nil
}

// CharsPerPica returns the average number of characters per line of text, divided
// by the width of the lines in picas.
func CharsPerPica(text string, picas int64, mode CountMode) (ratio.Ratio, error) {
	avg, err := AverageCharsPerLine(text, mode)
	if err != nil {
		return avg, err
	}
	return avg.Divide(picas)
}

// --- Configuration ---------------------------------------------------------

// Config collects the parameters of a fit test.
type Config struct {
	Font     string       // font file path or name, as fontspec wants it
	Size     dimen.Dimen  // font size
	Width    dimen.Dimen  // text width, a whole number of picas
	Sample   string       // LaTeX source of the sample text, or empty
	Language language.Tag // language of the sample text
	Count    CountMode    // what counts as a character
}

// DefaultConfig returns a configuration for font at 12pt on a 32pc line.
func DefaultConfig(font string) Config {
	return Config{
		Font:     font,
		Size:     12 * dimen.PT,
		Width:    32 * dimen.PC,
		Language: language.English,
		Count:    CountRunes,
	}
}

// Measure returns the characters per pica of the extracted text of a test page
// typeset with conf.
func (conf Config) Measure(text string) (ratio.Ratio, error) {
	picas, err := conf.Width.WholePicas()
	if err != nil {
		return ratio.Ratio{}, err
	}
	return CharsPerPica(text, picas, conf.Count)
}
