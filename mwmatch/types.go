// SPDX-License-Identifier: MIT

// Package mwmatch defines configuration options for maximum-weight matching.
// It supports selecting between the blossom algorithm and an exact subset DP
// via Options.Algo.
package mwmatch

import (
	"fmt"

	"github.com/katalvlaran/pairmatch/affinity"
)

// Algorithm selects the matching strategy.
type Algorithm int

const (
	// Blossom runs the primal–dual blossom algorithm, O(n³).
	Blossom Algorithm = iota

	// ExactDP runs an O(2ⁿ·n) bitmask dynamic program; n ≤ MaxExactN.
	ExactDP
)

// String implements fmt.Stringer.
func (a Algorithm) String() string {
	switch a {
	case Blossom:
		return "blossom"
	case ExactDP:
		return "exact"
	default:
		return "unknown"
	}
}

// ParseAlgorithm is the inverse of Algorithm.String.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch s {
	case "blossom":
		return Blossom, nil
	case "exact":
		return ExactDP, nil
	default:
		return 0, fmt.Errorf("mwmatch: unknown algorithm %q", s)
	}
}

// MaxExactN bounds the vertex count accepted by ExactDP (2^22 table cells).
const MaxExactN = 22

// DefaultResolution is the weight quantum used by Blossom. Weights are
// rounded to integer multiples of it so that all dual arithmetic is exact.
const DefaultResolution = 1e-6

// maxQuantized bounds |weight/Resolution| so that dual variables stay far
// inside int64.
const maxQuantized = 1e15

// DefaultMaxParticipants is the default defensive cap on N.
const DefaultMaxParticipants = 512

// Options configures Solve and SolveSubset.
//
// Fields:
//
//	Algo            — Blossom (default) or ExactDP.
//	Resolution      — weight quantum for Blossom; must be > 0.
//	MaxParticipants — cap on the solved vertex count; ≤ 0 disables it.
type Options struct {
	Algo            Algorithm
	Resolution      float64
	MaxParticipants int
}

// DefaultOptions returns Options for Blossom at DefaultResolution with
// DefaultMaxParticipants.
// Complexity: O(1).
func DefaultOptions() Options {
	return Options{
		Algo:            Blossom,
		Resolution:      DefaultResolution,
		MaxParticipants: DefaultMaxParticipants,
	}
}

// Result is a pair matching over some vertex subset and its total weight
// measured on the original (unquantized) weights.
type Result struct {
	Matching affinity.Matching
	Total    float64
}
