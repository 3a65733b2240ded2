// SPDX-License-Identifier: MIT

// Package pairing is the engine facade of pairmatch.
//
// It selects one of three engines for a complete affinity graph:
//
//   - MaxWeight: maximum-weight perfect matching (package mwmatch) for even
//     N, joint trio search (package trio) for odd N.
//   - StableRoommates: Irving's algorithm (package roommates). Fails when no
//     stable matching exists or N is odd.
//   - StableWithFallback: StableRoommates first; on odd N, strict ties or an
//     instance without a stable matching it falls back to MaxWeight and
//     records why in Result.FallbackReason.
//
// Options follow the functional style: Solve(g, WithEngine(...), ...).
// Option constructors panic on meaningless values; solving never panics.
//
// pairing does not log. Callers get every decision back in Result.
package pairing
