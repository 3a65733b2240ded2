// SPDX-License-Identifier: MIT

// Package roommates solves the stable-roommates problem with Irving's
// algorithm.
//
// Preferences come either from an affinity.Graph (each participant ranks the
// others by descending weight) or from a directed rating matrix (each rater
// ranks by their own scores). Equal weights need a tie policy: TieStrict
// refuses them, TieLowerIndex ranks the lower index first, TieSeeded uses a
// seeded permutation as priority.
//
// SolvePreferences runs the two phases:
//
//  1. Proposals. Free participants, taken from a FIFO queue, propose to the
//     head of their list; the receiver keeps the proposal and drops everyone
//     it likes less (symmetrically). Afterwards first(x) = y iff last(y) = x.
//  2. Rotations. While some list has two or more entries, the rotation
//     reachable from the lowest such participant is found and eliminated.
//
// An empty list at any point means no stable matching exists; the error
// names the phase and the participant. Odd participant counts are rejected
// with affinity.ErrSolver; package pairing falls back to the weighted engine.
//
// Complexity: O(N²) time and memory for both phases.
package roommates
