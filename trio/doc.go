// SPDX-License-Identifier: MIT

// Package trio extends maximum-weight matching to an odd number of
// participants: exactly one group of three, everyone else in pairs.
//
// The objective is joint. For every candidate trio T = {a, b, c} the value is
//
//	w(a,b) + w(a,c) + w(b,c) + MWM(V \ T)
//
// and Solve returns the trio (and remainder matching) maximising it. Fixing a
// matching first and attaching the leftover afterwards can miss the optimum;
// that approach survives only as the Greedy strategy, for comparison.
//
// Joint search is a best-first branch and bound. Each trio gets an O(1) upper
// bound
//
//	trioWeight(T) + (S − best(a) − best(b) − best(c)) / 2
//
// where best(v) is v's heaviest incident weight and S = Σ best(v). Candidates
// leave a priority heap in bound order; a remainder matching is solved only
// while the bound can still beat the incumbent.
//
// Determinism: among trios with equal total the lexicographically smallest
// trio wins, independent of heap internals.
//
// Package trio does not log; errors carry the context.
package trio
