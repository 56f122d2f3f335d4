// Package noise provides the deterministic artifact generators of the tape
// engine.
//
// Included components:
//   - Source: 32-bit linear congruential generator behind all artifact
//     randomness. Identical seeds and draw order reproduce streams
//     bit-exactly across runs and platforms.
//   - Shaper: leaky integrator plus DC-blocking high-pass that rounds raw
//     crackle impulses into vinyl-style pops.
package noise
