package engine

import "github.com/npillmayer/schuko/tracing"

// tracer traces to 'noddy.engine'.
func tracer() tracing.Trace {
	return tracing.Select("noddy.engine")
}
