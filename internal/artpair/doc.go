// Package artpair pairs cover-art images with ROM titles and copies each
// image under the name the frontend expects: the ROM file name followed by
// ".png", as in "Pitfall.nes.png".
//
// Pairing runs the fuzzy matcher in either direction. A title carrying disc
// tags fans out to one copy per disc from 1 to the highest disc seen, since a
// single box image usually stands for the whole release.
package artpair
