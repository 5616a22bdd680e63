package fit

import (
	"path/filepath"
	"strconv"
	"strings"
	"text/template"

	"github.com/npillmayer/fontmetrics/core"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// The test page is set ragged-right free, in a single paragraph without indent.
// Without a sample text, \blindtext provides one.
var testPage = template.Must(template.New("page").Delims("<<", ">>").Parse(`\documentclass{article}
\usepackage{fontspec, microtype, polyglossia<< if not .Sample >>, blindtext<< end >>}
\pagestyle{empty}
\setmainfont{<< .FontName >>}<< if .FontDir >>[OpticalSize = 0, Path = << .FontDir >>/]<< else >>[OpticalSize = 0]<< end >>
\setdefaultlanguage{<< .Language >>}
\setlength{\textwidth}{<< .Picas >>pc}
\begin{document}
\fontsize{<< .Size >>pt}{<< .Size >>pt}\selectfont
\noindent
<< if .Sample >><< .Sample >><< else >>\blindtext<< end >>
\end{document}
`))

type pageParams struct {
	FontName, FontDir string
	Language          string
	Picas             int64
	Size              string
	Sample            string
}

// TestPage returns the LaTeX source of a test page for conf, to be typeset
// with LuaLaTeX. The extracted text of the resulting PDF is the input for
// Config.Measure.
func (conf Config) TestPage() (string, error) {
	picas, err := conf.Width.WholePicas()
	if err != nil {
		return "", err
	}
	if conf.Size <= 0 {
		return "", core.WrapError(core.ErrInvalidDimension, core.EINVALID,
			"font size must be positive, is %s", conf.Size)
	}
	if strings.TrimSpace(conf.Font) == "" {
		return "", core.Error(core.EINVALID, "test page needs a font")
	}
	params := pageParams{
		Language: PolyglossiaName(conf.Language),
		Picas:    picas,
		Size:     strconv.FormatFloat(conf.Size.PrintersPoints(), 'f', -1, 64),
		Sample:   strings.TrimSpace(conf.Sample),
	}
	params.FontName, params.FontDir = fontspecName(conf.Font)
	var sb strings.Builder
	if err = testPage.Execute(&sb, params); err != nil {
		return "", core.WrapError(err, core.EINTERNAL, "cannot generate test page")
	}
	tracer().Debugf("generated test page for %s at %spt on %dpc", params.FontName, params.Size, picas)
	return sb.String(), nil
}

// fontspecName splits a font file path into file stem and directory. fontspec
// wants forward slashes in paths, even on Windows. Names without a directory
// denote installed fonts and are returned as they are.
func fontspecName(font string) (name, dir string) {
	font = strings.ReplaceAll(strings.TrimSpace(font), `\`, "/")
	dir, file := filepath.Split(filepath.FromSlash(font))
	if dir == "" {
		return font, ""
	}
	name = strings.TrimSuffix(file, filepath.Ext(file))
	dir = filepath.ToSlash(filepath.Clean(dir))
	return name, dir
}

// polyglossiaNames holds languages whose CLDR English name is not a polyglossia
// gloss. Variants (e.g. Bokmål vs. Nynorsk) are not selected.
var polyglossiaNames = map[string]string{
	"nb":  "norwegian",
	"nn":  "norwegian",
	"no":  "norwegian",
	"ga":  "gaelic",
	"gd":  "gaelic",
	"grc": "greek",
	"se":  "sami",
	"dsb": "sorbian",
	"hsb": "sorbian",
	"ckb": "kurdish",
	"kmr": "kurdish",
}

// PolyglossiaName returns the name polyglossia uses for the base language of
// tag, e.g. "english" for en-US or "russian" for ru. Languages without a
// usable name fall back to "english".
func PolyglossiaName(tag language.Tag) string {
	base, _ := tag.Base()
	if base.String() == "und" {
		return "english"
	}
	if name, ok := polyglossiaNames[base.String()]; ok {
		return name
	}
	name := strings.ToLower(display.English.Languages().Name(language.Make(base.String())))
	if !isGlossName(name) {
		tracer().Infof("no polyglossia name for %s (%q), using english", tag, name)
		return "english"
	}
	return name
}

// isGlossName is true for non-empty names consisting of ASCII letters only.
func isGlossName(name string) bool {
	if name == "" {
		return false
	}
	for _, c := range name {
		if c < 'a' || c > 'z' {
			return false
		}
	}
	return true
}
