// SPDX-License-Identifier: MIT

package roommates

import (
	"errors"
	"slices"

	"github.com/katalvlaran/pairmatch/affinity"
)

// Partial is the outcome of SolvePartial.
type Partial struct {
	// Matching holds the stable pairs found among the participants that
	// were kept. It is not a full partition unless Unmatched is empty.
	Matching affinity.Matching

	// SetAside lists, in removal order, the participants whose list
	// emptied and who were dropped before the next attempt.
	SetAside []int

	// Unmatched lists every participant outside Matching, ascending.
	Unmatched []int
}

// SolvePartial pairs as many participants as Irving's algorithm can.
//
// Each attempt solves the table restricted to the kept participants. An odd
// count gets a placeholder ranked last by everyone, and its partner ends up
// unmatched. On *NoStableError the participant named by the error is set
// aside and the rest is solved again. If the placeholder itself is named,
// the odd table is run once more without it and the participant that run
// names is set aside. The loop stops at the first success or when fewer
// than two participants remain.
//
// Errors: Preferences.Validate failures, *affinity.SolverError for N < 2.
// Complexity: O(N³) in the worst case (one O(N²) attempt per removal).
func SolvePartial(p Preferences) (Partial, error) {
	const op = "roommates.SolvePartial"
	n, err := p.Validate()
	if err != nil {
		return Partial{}, err
	}
	if n < 2 {
		return Partial{}, &affinity.SolverError{Op: op, N: n, Reason: "need at least 2 participants"}
	}

	kept := make([]int, n)
	for i := range kept {
		kept[i] = i
	}

	var (
		out  Partial
		ns   *NoStableError
		m    affinity.Matching
		pair affinity.Group
	)
	for len(kept) >= 2 {
		q := p.Restrict(kept)
		placeholder := -1
		if len(kept)%2 != 0 {
			placeholder = len(kept)
			m, err = irving(op, q.pad())
		} else {
			m, err = irving(op, q)
		}
		if err == nil {
			pairs := make([]affinity.Group, 0, len(m.Groups))
			for _, pair = range m.Groups {
				if pair[1] == placeholder {
					continue // the placeholder is always the larger index
				}
				pairs = append(pairs, affinity.Group{kept[pair[0]], kept[pair[1]]})
			}
			out.Matching = affinity.NewMatching(pairs...)
			kept = kept[:0]
			break
		}
		if !errors.As(err, &ns) {
			return Partial{}, err
		}

		drop := ns.Participant
		if drop == placeholder {
			if _, err = irving(op, q); !errors.As(err, &ns) {
				return Partial{}, &affinity.SolverError{Op: op, N: n, Reason: "odd table did not fail", Participants: slices.Clone(kept)}
			}
			drop = ns.Participant
		}
		out.SetAside = append(out.SetAside, kept[drop])
		kept = slices.Delete(kept, drop, drop+1)
	}

	placed := make([]bool, n)
	for _, grp := range out.Matching.Groups {
		for _, v := range grp {
			placed[v] = true
		}
	}
	for v, ok := range placed {
		if !ok {
			out.Unmatched = append(out.Unmatched, v)
		}
	}
	if out.Matching.Groups == nil {
		out.Matching.Groups = []affinity.Group{}
	}

	return out, nil
}

// Restrict returns the table of the given participants only, relabelled
// 0..len(members)-1 in the order of members. Each list keeps its relative
// order. members must be distinct valid ids.
// Complexity: O(N·len(members)).
func (p Preferences) Restrict(members []int) Preferences {
	local := make([]int, len(p))
	for i := range local {
		local[i] = -1
	}
	for k, v := range members {
		local[v] = k
	}

	out := make(Preferences, len(members))
	for k, v := range members {
		row := make([]int, 0, len(members)-1)
		for _, j := range p[v] {
			if local[j] >= 0 {
				row = append(row, local[j])
			}
		}
		out[k] = row
	}

	return out
}

// pad appends a placeholder participant that everyone ranks last and that
// ranks everyone by index.
func (p Preferences) pad() Preferences {
	n := len(p)
	out := make(Preferences, n+1)
	for i, row := range p {
		out[i] = append(slices.Clone(row), n)
	}
	out[n] = make([]int, n)
	for i := range out[n] {
		out[n][i] = i
	}

	return out
}
