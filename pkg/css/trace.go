package css

import "github.com/npillmayer/schuko/tracing"

// tracer traces to 'noddy.css'.
func tracer() tracing.Trace {
	return tracing.Select("noddy.css")
}
