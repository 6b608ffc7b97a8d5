// Package rename applies collision-safe renames to a ROM directory.
//
// The Orchestrator matches every unresolved file against a reference title
// list and repeats the sweep until a pass produces no renames, re-listing the
// directory each time so a pass sees what the previous one committed.
// StripTags is the simpler single pass that removes release tags while
// keeping protected disc and side markers.
package rename
