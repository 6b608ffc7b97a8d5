// Package pipeline runs the stages of a console library clean-up in order:
// dedupe, strip, overrides, rename, art, quarantine.
//
// Each stage is gated by a decision source so an operator can skip it. A
// stage that finds a missing or empty input folder ends with an empty
// report; other stage failures are recorded on that stage's report and the
// run moves on. Only cancellation and a missing terminal stop the run.
package pipeline
