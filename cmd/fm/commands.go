package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/npillmayer/fontmetrics/core"
	"github.com/npillmayer/fontmetrics/core/dimen"
	"github.com/npillmayer/fontmetrics/core/font"
	"github.com/npillmayer/fontmetrics/core/font/fontregistry"
	"github.com/npillmayer/fontmetrics/core/locate/resources"
	"github.com/npillmayer/fontmetrics/core/ratio"
	"github.com/npillmayer/fontmetrics/engine/darkness"
	"github.com/npillmayer/fontmetrics/engine/fit"
	"github.com/npillmayer/fontmetrics/engine/xheight"
	"github.com/pterm/pterm"
	"golang.org/x/text/language"
)

func runDarkness(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("darkness", flag.ContinueOnError)
	resolution := fs.Int("r", darkness.DefaultResolution, "em size of test glyphs, in pixels")
	showGlyphs := fs.Bool("glyphs", false, "show the density of every glyph")
	if err := fs.Parse(args); err != nil {
		return err
	}
	f, err := loadFont(fs)
	if err != nil {
		return err
	}
	conf := darkness.DefaultConfig()
	conf.Scale = float64(*resolution)
	res, err := darkness.Measure(f, conf)
	if err != nil {
		return err
	}
	if *showGlyphs {
		data := pterm.TableData{{"glyph", "inked/area", "density"}}
		res.Each(func(r rune, d ratio.Ratio) {
			data = append(data, []string{string(r), d.String(), d.Format(3)})
		})
		table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
		if err != nil {
			return core.WrapError(err, core.EINTERNAL, "cannot render table")
		}
		fmt.Fprintln(out, table)
		if len(res.Skipped) > 0 {
			fmt.Fprintf(out, "skipped: %q\n", string(res.Skipped))
		}
	}
	fmt.Fprintf(out, "darkness: %.3f\n", res.Density)
	return nil
}

func runXHeight(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("xheight", flag.ContinueOnError)
	scale := fs.Float64("scale", 0, "em size for measuring extents (default: font units per em)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	f, err := loadFont(fs)
	if err != nil {
		return err
	}
	if *scale == 0 {
		*scale = float64(f.UnitsPerEm())
	}
	r, err := xheight.Measure(f, *scale)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "x-height ratio: %s (~%s)\n", r, r.Format(3))
	if tc, err := fontregistry.GlobalRegistry().TypeCase(fs.Arg(0), 500); err == nil {
		if declared, err := xheight.Declared(tc.Metrics()); err == nil {
			fmt.Fprintf(out, "declared ratio: ~%s\n", declared.Format(3))
		} else {
			tracer().Infof("%v", err)
		}
	}
	return nil
}

func runFit(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("fit", flag.ContinueOnError)
	width := fs.String("w", "32pc", "line width of the test page")
	asRatio := fs.Bool("ratio", false, "display result as ratio instead of floating-point number")
	count := fs.String("count", "runes", "count characters as runes, graphemes or cells")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return core.Error(core.EINVALID, "fit needs a text file, or - for stdin")
	}
	conf := fit.DefaultConfig("")
	var err error
	if conf.Width, err = parseDimen(*width); err != nil {
		return err
	}
	if _, err = conf.Width.WholePicas(); err != nil {
		return err
	}
	if conf.Count, err = fit.ParseCountMode(*count); err != nil {
		return err
	}
	text, err := readText(fs.Arg(0))
	if err != nil {
		return err
	}
	cpp, err := conf.Measure(text)
	if err != nil {
		return err
	}
	if *asRatio {
		fmt.Fprintln(out, cpp)
	} else {
		fmt.Fprintf(out, "characters per pica: %s\n", cpp.Format(2))
	}
	return nil
}

func runPage(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("page", flag.ContinueOnError)
	size := fs.String("s", "12pt", "font size")
	width := fs.String("w", "32pc", "line width of the test page")
	lang := fs.String("l", "en", "language of the sample text (BCP 47)")
	sample := fs.String("sample", "", "file containing the LaTeX source of a sample text")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return core.Error(core.EINVALID, "page needs a font")
	}
	conf := fit.DefaultConfig(fs.Arg(0))
	var err error
	if conf.Size, err = parseDimen(*size); err != nil {
		return err
	}
	if conf.Width, err = parseDimen(*width); err != nil {
		return err
	}
	if conf.Language, err = language.Parse(*lang); err != nil {
		return core.WrapError(err, core.EINVALID, "unknown language %q", *lang)
	}
	if *sample != "" {
		if conf.Sample, err = readText(*sample); err != nil {
			return err
		}
	}
	page, err := conf.TestPage()
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, page)
	return err
}

// --- Helpers ---------------------------------------------------------------

func loadFont(fs *flag.FlagSet) (*font.ScalableFont, error) {
	if fs.NArg() != 1 {
		fs.Usage()
		return nil, core.Error(core.EINVALID, "%s needs exactly one font", fs.Name())
	}
	f, err := resources.ResolveFont(fs.Arg(0)).Font()
	if err != nil {
		return nil, err
	}
	tracer().Infof("measuring font %s", f.Fontname)
	return f, nil
}

func parseDimen(s string) (dimen.Dimen, error) {
	d, ispcnt, err := dimen.ParseDimen(s)
	if err != nil {
		return 0, err
	}
	if ispcnt {
		return 0, core.WrapError(core.ErrInvalidDimension, core.EINVALID,
			"percentage %s not allowed here", s)
	}
	return d, nil
}

func readText(name string) (string, error) {
	var b []byte
	var err error
	if name == "-" {
		b, err = io.ReadAll(os.Stdin)
	} else {
		b, err = os.ReadFile(name)
	}
	if err != nil {
		return "", core.WrapError(err, core.EMISSING, "cannot read %s", name)
	}
	return string(b), nil
}
