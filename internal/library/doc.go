// Package library models the files a console library is made of and lists
// them from disk.
//
// Items are ROM files in the games directory, References are canonical titles
// (one per file in the reference directory, or one per line of a manifest),
// and Assets are cover-art images discovered recursively. Listing functions
// report a missing directory as stage.ErrMissingDirectory and a directory with
// nothing eligible as stage.ErrEmptyInput.
package library
