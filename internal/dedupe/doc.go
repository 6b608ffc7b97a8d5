// Package dedupe groups library items that share a normalized key and moves
// the members an operator does not keep into the archive directory.
//
// FindDuplicates is a pure read of a directory snapshot. Resolution is
// delegated to a Policy so the same code path serves unattended runs and
// interactive sessions; Archive performs the moves with the no-overwrite
// rule and reports collisions and per-file failures without aborting.
package dedupe
