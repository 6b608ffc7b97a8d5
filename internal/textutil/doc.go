// Package textutil provides filename sanitization for names that come from
// user-authored data, such as override tables and reference manifests.
package textutil
