package glyph

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'fontmetrics.fonts'
func tracer() tracing.Trace {
	return tracing.Select("fontmetrics.fonts")
}
