// SPDX-License-Identifier: MIT

// Package mwmatch computes maximum-weight perfect matchings on the complete
// affinity graph.
//
// It includes two algorithms:
//
//   - Blossom — Edmonds' primal–dual method with blossom contraction, in the
//     O(n³) formulation of Galil. Weights are quantized to Options.Resolution
//     and shifted to be strictly positive; since every perfect matching of a
//     complete graph with even n has n/2 edges, the shift leaves the optimum
//     unchanged and forces the result to be perfect. Integer duals make the
//     run exact and reproducible.
//
//   - ExactDP — bitmask dynamic program over vertex subsets, O(n·2ⁿ) time
//     and O(2ⁿ) memory. Used as a cross-check and for tiny instances
//     (n ≤ MaxExactN).
//
// Determinism: both algorithms scan pairs in (i<j) lexicographic order and
// never consult map iteration or randomness, so identical input yields the
// identical Matching.
//
// Odd participant counts are not handled here; see package trio.
package mwmatch
