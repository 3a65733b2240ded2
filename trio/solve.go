// SPDX-License-Identifier: MIT

package trio

import (
	"github.com/katalvlaran/pairmatch/affinity"
)

// Solve partitions an odd number of participants into pairs plus exactly one
// trio, maximising the total weight (see package doc for the objective).
//
// Contracts:
//   - g non-nil, N odd and N ≥ 3.
//   - N ≤ opts.MaxParticipants when the cap is enabled.
//
// Errors: *affinity.SolverError (ErrSolver), *affinity.SizeError
// (ErrInputTooLarge) for the participant cap or MaxEvaluations.
//
// Complexity: worst case O(N³) candidates × O(N³) per remainder matching;
// pruning keeps the evaluated set small on real inputs.
func Solve(g *affinity.Graph, opts Options) (affinity.Matching, error) {
	res, err := Search(g, opts)
	if err != nil {
		return affinity.Matching{}, err
	}

	return res.Matching, nil
}

// Search is Solve with search statistics.
func Search(g *affinity.Graph, opts Options) (Result, error) {
	const op = "trio.Search"
	if g == nil {
		return Result{}, &affinity.SolverError{Op: op, Reason: "nil graph"}
	}
	n := g.N()
	if n < 3 || n%2 == 0 {
		return Result{}, &affinity.SolverError{Op: op, N: n, Reason: "trio needs an odd participant count of at least 3"}
	}
	if err := affinity.CheckSize(op, n, opts.MaxParticipants); err != nil {
		return Result{}, err
	}
	if opts.MaxEvaluations < 0 {
		return Result{}, &affinity.SolverError{Op: op, N: n, Reason: "negative MaxEvaluations"}
	}

	if n == 3 {
		m := affinity.NewMatching(affinity.Group{0, 1, 2})
		return Result{Matching: m, Trio: m.Groups[0], Total: m.Total(g)}, nil
	}

	switch opts.Strategy {
	case Joint:
		return newJointEngine(g, opts).run(op)
	case Greedy:
		return greedy(op, g, opts)
	default:
		return Result{}, &affinity.SolverError{Op: op, N: n, Reason: "unsupported strategy " + opts.Strategy.String()}
	}
}
