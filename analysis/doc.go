// Package analysis provides offline measurement helpers for rendered
// audio: single-sided magnitude spectra for inspecting hiss and flutter
// sidebands, and echo detection on impulse responses.
//
// Everything here is verification tooling. Nothing in this package is
// real-time safe.
package analysis
