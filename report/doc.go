// Package report writes classified and rendered lines to an output sink.
//
// Each input line becomes one Record. TextSink writes only the rendered
// output, which is what a template driver prints. JSONSink and YAMLSink
// write the full classification so it can be inspected or consumed by
// other tools; Schema describes that record as JSON Schema.
package report
