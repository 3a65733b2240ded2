// SPDX-License-Identifier: MIT

package affinity

import "math"

// Combine merges the two directed ratings of one pair into a single
// symmetric weight. It must be symmetric in its arguments.
type Combine func(ab, ba float64) float64

// CombineSum adds both ratings. This is how the paper-form sessions have
// always been scored.
func CombineSum(ab, ba float64) float64 { return ab + ba }

// CombineMean averages both ratings.
func CombineMean(ab, ba float64) float64 { return (ab + ba) / 2 }

// CombineMin keeps the weaker of both ratings, so a pair is only as good as
// its least interested member.
func CombineMin(ab, ba float64) float64 { return math.Min(ab, ba) }

// FromRatings aggregates a directed rating matrix into a symmetric Graph.
// A nil combine defaults to CombineSum.
//
// Errors: *GraphError (CauseNotSquare, CauseNonFinite).
// Complexity: O(n²).
func FromRatings(r Ratings, combine Combine, opts ...Option) (*Graph, error) {
	const op = "FromRatings"
	if combine == nil {
		combine = CombineSum
	}
	n, err := r.validate(op)
	if err != nil {
		return nil, err
	}

	edges := make([]Edge, 0, n*(n-1)/2)
	var i, j int
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			edges = append(edges, Edge{A: i, B: j, Weight: combine(r[i][j], r[j][i])})
		}
	}

	return NewGraph(n, edges, opts...)
}

// Validate checks that r is square with finite off-diagonal entries and
// returns its order.
// Complexity: O(n²).
func (r Ratings) Validate() (int, error) { return r.validate("Ratings.Validate") }

func (r Ratings) validate(op string) (int, error) {
	n := len(r)
	var i, j int
	for i = 0; i < n; i++ {
		if len(r[i]) != n {
			return 0, malformed(op, CauseNotSquare, i, -1)
		}
		for j = 0; j < n; j++ {
			if i == j {
				continue
			}
			if math.IsNaN(r[i][j]) || math.IsInf(r[i][j], 0) {
				return 0, malformed(op, CauseNonFinite, i, j)
			}
		}
	}

	return n, nil
}
