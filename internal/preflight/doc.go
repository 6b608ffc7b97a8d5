// Package preflight provides readiness checks for the filesystem paths a
// console run depends on.
//
// The CLI runs them before the pipeline starts and prints them on their own
// with "romdat check". Missing input folders are reported as failures here
// even though the pipeline itself ends such a stage gracefully, so an
// operator sees the problem before anything moves.
package preflight
