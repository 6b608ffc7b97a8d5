// Package stage defines the shared vocabulary of the library pipeline: stage
// names, context helpers, and the error taxonomy every stage reports through.
//
// Errors are tagged with one of the exported sentinel markers via Wrap so
// callers can classify them with errors.Is. MissingDirectory and EmptyInput
// end a stage gracefully (Graceful reports true); collisions are deliberate
// no-ops; filesystem failures are recorded per item as ItemError values and
// never abort the run.
package stage
