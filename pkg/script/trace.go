package script

import "github.com/npillmayer/schuko/tracing"

// tracer traces to 'noddy.script'.
func tracer() tracing.Trace {
	return tracing.Select("noddy.script")
}
