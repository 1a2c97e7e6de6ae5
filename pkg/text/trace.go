package text

import "github.com/npillmayer/schuko/tracing"

// tracer traces to 'noddy.text'.
func tracer() tracing.Trace {
	return tracing.Select("noddy.text")
}
