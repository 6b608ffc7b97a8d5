// Package match picks the best reference name for a source name.
//
// Names are reduced to their fuzzy-clean form, an exact cleaned match
// short-circuits, and otherwise candidates are scored with a token-set
// Ratcliff/Obershelp ratio. A candidate must score strictly above the
// threshold (0.85 by default) and strictly above every earlier candidate to
// win, so the first of several equally scored candidates is kept.
package match
