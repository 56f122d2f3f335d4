// Package modulation provides the transport instabilities of the tape
// engine.
//
// Included components:
//   - Flutter: sine LFO wobbling the read heads, phase-continuous for
//     the whole session.
//   - Dropout: rare micro-dropouts that duck signal health when the tape
//     is broken.
//   - Stereo spread helpers: LFO phase lead, Haas head skew, and tone
//     cutoff separation derived from the width control.
package modulation
