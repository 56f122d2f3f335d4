// Package tone provides the saturation and head-filter voicing of the
// tape engine: a one-pole low-pass with per-call cutoff, a tanh soft
// clipper, and the drive-tracking loudness compensation for the artifact
// generators.
package tone
