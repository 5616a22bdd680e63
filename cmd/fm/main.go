/*
Command fm measures typographic properties of fonts.

	fm [-trace level] darkness [-r px] [-glyphs] FONT
	fm [-trace level] xheight [-scale s] FONT
	fm [-trace level] fit [-w 32pc] [-ratio] [-count runes|graphemes|cells] TEXTFILE|-
	fm [-trace level] page [-s 12pt] [-w 32pc] [-l en] [-sample file.tex] FONT

FONT is the path of a TrueType/OpenType font, the name of an installed font or
"fallback" for Go Sans.

Measuring the fit of a font takes three steps: generate a test page with
'fm page', typeset it with LuaLaTeX and extract the text of the PDF with a tool
of your choice (e.g. pdftotext), then feed the text to 'fm fit'.
*/
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/fontmetrics/core"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// tracer traces with key 'fontmetrics.cli'
func tracer() tracing.Trace {
	return tracing.Select("fontmetrics.cli")
}

// traceKeys are the tracers of this module, all set to the level of the
// -trace flag.
var traceKeys = []string{
	"fontmetrics.cli",
	"fontmetrics.core",
	"fontmetrics.fonts",
	"fontmetrics.engine",
	"fontmetrics.resources",
}

type command struct {
	name  string
	usage string
	run   func(args []string, out io.Writer) error
}

var commands = []command{
	{"darkness", "measure the darkness of a font", runDarkness},
	{"xheight", "measure the x-height/cap-height ratio of a font", runXHeight},
	{"fit", "measure characters per pica from the text of a test page", runFit},
	{"page", "generate a LuaLaTeX test page for 'fit'", runPage},
}

func main() {
	initDisplay()
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	flag.Usage = usage
	flag.Parse()
	if err := setupTracing(*tlevel); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}
	name, args := flag.Arg(0), flag.Args()[1:]
	for _, cmd := range commands {
		if cmd.name == name {
			if err := cmd.run(args, os.Stdout); err != nil {
				if errors.Is(err, flag.ErrHelp) {
					os.Exit(2)
				}
				core.UserError(err)
				os.Exit(exitCode(err))
			}
			return
		}
	}
	pterm.Error.Printf("unknown command %q\n", name)
	usage()
	os.Exit(2)
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [-trace level] <command> [flags] args\n\nCommands:\n", os.Args[0])
	for _, cmd := range commands {
		fmt.Fprintf(flag.CommandLine.Output(), "  %-10s %s\n", cmd.name, cmd.usage)
	}
	fmt.Fprintln(flag.CommandLine.Output())
	flag.PrintDefaults()
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func setupTracing(level string) error {
	level = cases.Title(language.English).String(strings.ToLower(strings.TrimSpace(level)))
	switch level {
	case "Debug", "Info", "Error":
	default:
		return fmt.Errorf("unknown trace level %q", level)
	}
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter": "go",
	}
	for _, key := range traceKeys {
		conf["trace."+key] = level
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		return fmt.Errorf("error configuring tracing: %w", err)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	return nil
}

// exitCode maps the error codes of package core to process exit codes.
func exitCode(err error) int {
	switch core.Code(err) {
	case core.EMISSING:
		return 3
	case core.EINVALID:
		return 4
	case core.EUNDEFINED:
		return 5
	case core.EINSUFFICIENT:
		return 6
	}
	return 1
}
