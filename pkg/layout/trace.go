package layout

import "github.com/npillmayer/schuko/tracing"

// tracer traces to 'noddy.layout'.
func tracer() tracing.Trace {
	return tracing.Select("noddy.layout")
}
