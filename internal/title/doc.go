// Package title derives comparison keys from raw ROM filenames.
//
// A Normalizer strips the extension, removes bracketed release annotations
// such as "(USA)" or "[!]", and keeps the protected annotations its profile
// names (disc and side markers) as a single suffix. The resulting Result
// carries both the strict key used for duplicate grouping and the fuzzy-clean
// string used for similarity scoring. Normalization is a pure function of its
// input.
package title
