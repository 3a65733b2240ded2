// SPDX-License-Identifier: MIT

package mwmatch

import (
	"math"
	"math/bits"
)

// exactMatching solves maximum-weight perfect matching on n ≤ MaxExactN
// vertices (n even) by dynamic programming over vertex subsets.
//
// dp[mask] = best total for perfectly matching exactly the vertices in mask.
// The lowest set bit i of mask is always paired first, so each matching is
// enumerated once; among equal totals the smallest partner j wins, which
// keeps the result deterministic.
//
// Returns mate[v] for every vertex.
//
// Time complexity:  O(n · 2ⁿ)
// Memory complexity: O(2ⁿ)
func exactMatching(n int, w func(i, j int) float64) []int {
	mate := make([]int, n)
	for i := range mate {
		mate[i] = -1
	}
	if n == 0 {
		return mate
	}

	full := (1 << n) - 1
	dp := make([]float64, full+1)
	choice := make([]int8, full+1)

	var (
		mask, i, j int
		rest       int
		cand       float64
	)
	for mask = 1; mask <= full; mask++ {
		if bits.OnesCount(uint(mask))&1 == 1 {
			continue // odd subsets have no perfect matching
		}
		dp[mask] = math.Inf(-1)
		i = bits.TrailingZeros(uint(mask))
		for j = i + 1; j < n; j++ {
			if mask&(1<<j) == 0 {
				continue
			}
			rest = mask &^ (1 << i) &^ (1 << j)
			cand = w(i, j) + dp[rest]
			if cand > dp[mask] {
				dp[mask] = cand
				choice[mask] = int8(j)
			}
		}
	}

	// Reconstruct pairs by replaying choices from the full set.
	for mask = full; mask != 0; {
		i = bits.TrailingZeros(uint(mask))
		j = int(choice[mask])
		mate[i], mate[j] = j, i
		mask = mask &^ (1 << i) &^ (1 << j)
	}

	return mate
}
