// SPDX-License-Identifier: MIT

package roommates

import (
	"github.com/katalvlaran/pairmatch/affinity"
)

// BlockingPairs lists every pair {x, y} in different groups of m where x
// prefers y to all of x's group mates and y prefers x to all of y's.
// Groups may be pairs or a trio, so weighted results can be checked too.
// Pairs are returned as ascending Groups in lexicographic order.
//
// Errors: Preferences.Validate and Matching.Validate failures.
// Complexity: O(N²).
func BlockingPairs(p Preferences, m affinity.Matching) ([]affinity.Group, error) {
	n, err := p.Validate()
	if err != nil {
		return nil, err
	}
	if err = m.Validate(n); err != nil {
		return nil, err
	}

	r := p.ranks()
	groupOf := m.GroupOf(n)

	// held[x] = best rank x gives to a member of its own group.
	held := make([]int, n)
	for _, grp := range m.Groups {
		for _, x := range grp {
			held[x] = n
			for _, y := range grp {
				if y != x && r[x][y] < held[x] {
					held[x] = r[x][y]
				}
			}
		}
	}

	var (
		out  []affinity.Group
		x, y int
	)
	for x = 0; x < n; x++ {
		for y = x + 1; y < n; y++ {
			if groupOf[x] == groupOf[y] {
				continue
			}
			if r[x][y] < held[x] && r[y][x] < held[y] {
				out = append(out, affinity.Group{x, y})
			}
		}
	}

	return out, nil
}

// IsStable reports whether m has no blocking pair under p.
func IsStable(p Preferences, m affinity.Matching) (bool, error) {
	b, err := BlockingPairs(p, m)
	if err != nil {
		return false, err
	}

	return len(b) == 0, nil
}
