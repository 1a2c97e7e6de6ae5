package render

import "github.com/npillmayer/schuko/tracing"

// tracer traces to 'noddy.render'.
func tracer() tracing.Trace {
	return tracing.Select("noddy.render")
}
