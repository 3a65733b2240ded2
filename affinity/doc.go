// SPDX-License-Identifier: MIT

// Package affinity is the shared foundation of the pair-research engine:
// an immutable, complete, symmetric weighted Graph over participants, the
// Matching type every solver returns, and the sentinel errors callers
// branch on.
//
// What & Why:
//
//	Two rounds of human input (a help request, then peer ratings of those
//	requests) collapse into one affinity weight per unordered pair of
//	participants. The solvers (mwmatch, trio, roommates) never see raw
//	ratings; they receive a *Graph whose every pair has a defined weight.
//	Absent data must be resolved by the caller (WithMissingWeight), never
//	guessed by the engine.
//
// Construction:
//
//	NewGraph(n, []Edge{...})   — (a, b, weight) triples; duplicates must agree
//	FromMatrix([][]float64)    — symmetric square matrix
//	FromRatings(Ratings, fn)   — directed ratings combined per pair
//
// Invariants of Matching (checked by Validate):
//   - every participant 0..N-1 appears in exactly one Group;
//   - groups have size 2, except exactly one trio when N is odd.
//
// Errors:
//
//	ErrMalformedGraph — bad input triples (*GraphError carries ids and cause)
//	ErrSolver         — solver precondition violated (*SolverError)
//	ErrInputTooLarge  — defensive size cap exceeded (*SizeError)
//
// Complexity: construction O(n²); Weight O(1).
package affinity
