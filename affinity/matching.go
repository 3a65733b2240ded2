// SPDX-License-Identifier: MIT

package affinity

import (
	"slices"
)

// NewMatching normalizes groups into a Matching: members ascending inside
// each group, groups ordered by their smallest member. The input slices are
// copied.
// Complexity: O(n log n).
func NewMatching(groups ...Group) Matching {
	out := make([]Group, len(groups))
	for i, g := range groups {
		c := slices.Clone(g)
		slices.Sort(c)
		out[i] = c
	}
	slices.SortFunc(out, func(x, y Group) int {
		return slices.Compare(x, y)
	})

	return Matching{Groups: out}
}

// FromMates converts a mate vector (mate[v] = partner, or -1) into a
// Matching of pairs. Unmatched vertices are dropped; Validate reports them.
// Complexity: O(n log n).
func FromMates(mate []int) Matching {
	groups := make([]Group, 0, len(mate)/2)
	for v, w := range mate {
		if w > v {
			groups = append(groups, Group{v, w})
		}
	}

	return NewMatching(groups...)
}

// Validate enforces the partition invariants for n participants:
// every id in 0..n-1 appears exactly once, groups have 2 or 3 members,
// no trio when n is even and exactly one trio when n is odd.
//
// Errors: *SolverError wrapping ErrSolver naming the offending ids.
// Complexity: O(n).
func (m Matching) Validate(n int) error {
	const op = "Matching.Validate"
	seen := make([]bool, n)
	trios := 0
	for _, g := range m.Groups {
		switch len(g) {
		case 2:
		case 3:
			trios++
		default:
			return &SolverError{Op: op, N: n, Reason: "group size must be 2 or 3", Participants: slices.Clone(g)}
		}
		for _, v := range g {
			if v < 0 || v >= n {
				return &SolverError{Op: op, N: n, Reason: "participant out of range", Participants: []int{v}}
			}
			if seen[v] {
				return &SolverError{Op: op, N: n, Reason: "participant appears twice", Participants: []int{v}}
			}
			seen[v] = true
		}
	}

	var missing []int
	for v, ok := range seen {
		if !ok {
			missing = append(missing, v)
		}
	}
	if len(missing) > 0 {
		return &SolverError{Op: op, N: n, Reason: "participants left unmatched", Participants: missing}
	}

	want := n % 2
	if trios != want {
		return &SolverError{Op: op, N: n, Reason: "wrong number of trios for parity"}
	}

	return nil
}

// Total sums the weights of every pair plus the three internal weights of
// a trio.
// Complexity: O(n).
func (m Matching) Total(g *Graph) float64 {
	var total float64
	for _, grp := range m.Groups {
		total += GroupWeight(g, grp)
	}

	return total
}

// GroupWeight sums all pairwise weights inside grp.
func GroupWeight(g *Graph, grp Group) float64 {
	var (
		w    float64
		i, j int
	)
	for i = 0; i < len(grp); i++ {
		for j = i + 1; j < len(grp); j++ {
			w += g.Weight(grp[i], grp[j])
		}
	}

	return w
}

// Trio returns the single trio, if any.
func (m Matching) Trio() (Group, bool) {
	for _, g := range m.Groups {
		if g.IsTrio() {
			return g, true
		}
	}

	return nil, false
}

// Pairs returns the groups of size two, in Matching order.
func (m Matching) Pairs() []Group {
	out := make([]Group, 0, len(m.Groups))
	for _, g := range m.Groups {
		if len(g) == 2 {
			out = append(out, g)
		}
	}

	return out
}

// GroupOf returns, for every participant, the index of its group in
// m.Groups (or -1 if absent). n is the participant count.
func (m Matching) GroupOf(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = -1
	}
	for gi, g := range m.Groups {
		for _, v := range g {
			if v >= 0 && v < n {
				out[v] = gi
			}
		}
	}

	return out
}

// Equal reports whether both matchings have identical groups in identical
// order. Normalized matchings compare equal iff they are the same partition.
func (m Matching) Equal(o Matching) bool {
	return slices.EqualFunc(m.Groups, o.Groups, func(x, y Group) bool {
		return slices.Equal(x, y)
	})
}
