// SPDX-License-Identifier: MIT

package trio

import (
	"github.com/katalvlaran/pairmatch/affinity"
	"github.com/katalvlaran/pairmatch/mwmatch"
)

// greedy matches N-1 participants optimally and attaches the one left out
// to the pair whose members it has the highest combined weight with.
//
// The leftover is chosen by the matching itself: a zero-weight dummy vertex
// is appended, and whoever pairs with the dummy is left out. Any constant
// dummy weight gives the same answer since exactly one edge touches it.
//
// Ties between pairs go to the pair with the smallest members.
// Complexity: O(N³).
func greedy(op string, g *affinity.Graph, opts Options) (Result, error) {
	n := g.N()
	aug, err := withDummy(g)
	if err != nil {
		return Result{}, err
	}

	mopts := opts.Matching
	if mopts.MaxParticipants > 0 {
		mopts.MaxParticipants++
	}
	m, err := mwmatch.Solve(aug, mopts)
	if err != nil {
		return Result{}, err
	}

	var (
		left  = -1
		pairs = make([]affinity.Group, 0, n/2)
	)
	for _, grp := range m.Groups {
		if grp[1] == n {
			left = grp[0]
			continue
		}
		pairs = append(pairs, grp)
	}
	if left < 0 || len(pairs) == 0 {
		return Result{}, &affinity.SolverError{Op: op, N: n, Reason: "dummy vertex left unmatched"}
	}

	var (
		at       = -1
		bestGain float64
		gain     float64
	)
	for i, p := range pairs {
		gain = g.Weight(left, p[0]) + g.Weight(left, p[1])
		if at < 0 || gain > bestGain {
			at, bestGain = i, gain
		}
	}

	groups := make([]affinity.Group, 0, len(pairs))
	groups = append(groups, pairs[:at]...)
	groups = append(groups, pairs[at+1:]...)
	groups = append(groups, affinity.Group{pairs[at][0], pairs[at][1], left})

	out := affinity.NewMatching(groups...)
	trio, _ := out.Trio()

	return Result{Matching: out, Trio: trio, Total: out.Total(g), Evaluations: 1}, nil
}

// withDummy returns g plus one vertex N joined to everyone at weight zero.
func withDummy(g *affinity.Graph) (*affinity.Graph, error) {
	n := g.N()
	edges := g.Edges()
	for v := 0; v < n; v++ {
		edges = append(edges, affinity.Edge{A: v, B: n, Weight: 0})
	}

	return affinity.NewGraph(n+1, edges)
}
