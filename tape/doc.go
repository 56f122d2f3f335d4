// Package tape implements a stereo tape echo: a circular tape loop
// recorded through a saturating signal path with hiss, crackle, flutter
// and dropout artifacts.
//
// The Engine processes stereo blocks in place in one of two modes:
//
//   - Echo mode records input plus saturated feedback onto the tape loop
//     and mixes the flutter-modulated playback with the dry signal. The
//     stereo width control skews the read heads apart, decorrelates
//     their wobble and spreads the head filter cutoffs.
//   - Tape-only mode runs the same saturation and artifact chain on the
//     direct signal without touching the loop.
//
// Control changes cross the thread boundary through the cells on Params
// and the SetTempo/SetDisplayOpen methods; Process itself never
// allocates, locks or blocks.
package tape
