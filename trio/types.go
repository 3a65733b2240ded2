// SPDX-License-Identifier: MIT

package trio

import (
	"fmt"

	"github.com/katalvlaran/pairmatch/affinity"
	"github.com/katalvlaran/pairmatch/mwmatch"
)

// Strategy selects how the trio is chosen.
type Strategy int

const (
	// Joint maximises trio weight plus remainder matching over all trios.
	Joint Strategy = iota

	// Greedy leaves one participant out of a maximum-weight matching of the
	// others, then attaches it to the pair it likes best. Not optimal.
	Greedy
)

// String implements fmt.Stringer.
func (s Strategy) String() string {
	switch s {
	case Joint:
		return "joint"
	case Greedy:
		return "greedy"
	default:
		return "unknown"
	}
}

// ParseStrategy is the inverse of Strategy.String.
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "joint":
		return Joint, nil
	case "greedy":
		return Greedy, nil
	default:
		return 0, fmt.Errorf("trio: unknown strategy %q", s)
	}
}

// DefaultMaxParticipants caps N for the joint search.
const DefaultMaxParticipants = 201

// Options configures Solve.
//
//	Strategy        — Joint (default) or Greedy.
//	MaxParticipants — cap on N; ≤ 0 disables it.
//	MaxEvaluations  — cap on remainder matchings solved; 0 means unlimited.
//	Matching        — options forwarded to every mwmatch call.
//
// Joint trio totals within a tie band of the best total count as equal and
// the lexicographically smallest trio wins. With Blossom the band is at least
// (N/2)·Matching.Resolution, the rounding error of one remainder matching;
// ExactDP keeps only a float tolerance.
type Options struct {
	Strategy        Strategy
	MaxParticipants int
	MaxEvaluations  int
	Matching        mwmatch.Options
}

// DefaultOptions returns the joint strategy with default caps.
func DefaultOptions() Options {
	return Options{
		Strategy:        Joint,
		MaxParticipants: DefaultMaxParticipants,
		Matching:        mwmatch.DefaultOptions(),
	}
}

// Result is the outcome of Search.
type Result struct {
	// Matching holds the trio and all pairs, normalized.
	Matching affinity.Matching

	// Trio is the chosen group of three (ascending).
	Trio affinity.Group

	// Total is Matching.Total on the original weights.
	Total float64

	// Evaluations counts remainder matchings solved.
	Evaluations int
}
