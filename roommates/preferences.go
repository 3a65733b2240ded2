// SPDX-License-Identifier: MIT

package roommates

import (
	"cmp"
	"math/rand"
	"slices"

	"github.com/katalvlaran/pairmatch/affinity"
)

// DerivePreferences ranks, for every participant, all others by descending
// weight in g. Equal weights are ordered by opts.Ties.
//
// Errors: *TieError (ErrTiePolicy) under TieStrict, *affinity.SizeError,
// *affinity.SolverError for a nil graph or unknown policy.
// Complexity: O(N² log N).
func DerivePreferences(g *affinity.Graph, opts Options) (Preferences, error) {
	const op = "roommates.DerivePreferences"
	if g == nil {
		return nil, &affinity.SolverError{Op: op, Reason: "nil graph"}
	}

	return rank(op, g.N(), g.Weight, opts)
}

// FromRatings ranks, for every rater i, all others by r[i][j] descending.
// Unlike DerivePreferences the lists need not be mutually consistent: i may
// rate j highly while j rates i poorly.
//
// Errors: as DerivePreferences, plus *affinity.GraphError for a malformed
// matrix.
// Complexity: O(N² log N).
func FromRatings(r affinity.Ratings, opts Options) (Preferences, error) {
	const op = "roommates.FromRatings"
	n, err := r.Validate()
	if err != nil {
		return nil, err
	}

	return rank(op, n, func(i, j int) float64 { return r[i][j] }, opts)
}

func rank(op string, n int, score func(i, j int) float64, opts Options) (Preferences, error) {
	if err := affinity.CheckSize(op, n, opts.MaxParticipants); err != nil {
		return nil, err
	}

	// Stage 1: tie-break priority per participant; lower wins.
	priority := make([]int, n)
	switch opts.Ties {
	case TieStrict, TieLowerIndex:
		for i := range priority {
			priority[i] = i
		}
	case TieSeeded:
		priority = rand.New(rand.NewSource(opts.Seed)).Perm(n)
	default:
		return nil, &affinity.SolverError{Op: op, N: n, Reason: "unsupported tie policy " + opts.Ties.String()}
	}

	// Stage 2: sort each row.
	p := make(Preferences, n)
	var i, k int
	for i = 0; i < n; i++ {
		row := make([]int, 0, n-1)
		for k = 0; k < n; k++ {
			if k != i {
				row = append(row, k)
			}
		}
		slices.SortFunc(row, func(a, b int) int {
			if c := cmp.Compare(score(i, b), score(i, a)); c != 0 {
				return c
			}
			return cmp.Compare(priority[a], priority[b])
		})

		// Stage 3: strict policy rejects adjacent equal scores.
		if opts.Ties == TieStrict {
			for k = 1; k < len(row); k++ {
				if score(i, row[k-1]) == score(i, row[k]) {
					a, b := row[k-1], row[k]
					return nil, &TieError{Op: op, Participant: i, A: a, B: b, Weight: score(i, a)}
				}
			}
		}
		p[i] = row
	}

	return p, nil
}

// Validate checks that p is a complete preference table: row i lists every
// participant except i exactly once. It returns N.
// Complexity: O(N²).
func (p Preferences) Validate() (int, error) {
	const op = "Preferences.Validate"
	n := len(p)
	seen := make([]int, n)
	for i := range seen {
		seen[i] = -1
	}
	for i, row := range p {
		if len(row) != n-1 {
			return 0, &affinity.SolverError{Op: op, N: n, Reason: "preference list must rank every other participant", Participants: []int{i}}
		}
		for _, j := range row {
			if j < 0 || j >= n || j == i || seen[j] == i {
				return 0, &affinity.SolverError{Op: op, N: n, Reason: "invalid or repeated entry in preference list", Participants: []int{i, j}}
			}
			seen[j] = i
		}
	}

	return n, nil
}

// ranks returns rank[i][j], the position of j in i's list (-1 on the diagonal).
func (p Preferences) ranks() [][]int {
	n := len(p)
	r := make([][]int, n)
	for i, row := range p {
		r[i] = make([]int, n)
		r[i][i] = -1
		for pos, j := range row {
			r[i][j] = pos
		}
	}

	return r
}
