package html

import "github.com/npillmayer/schuko/tracing"

// tracer traces to 'noddy.html'.
func tracer() tracing.Trace {
	return tracing.Select("noddy.html")
}
