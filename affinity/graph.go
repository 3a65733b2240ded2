// SPDX-License-Identifier: MIT

// Package affinity: the immutable complete weighted Graph.
//
// Storage is a flat row-major n×n slice (both triangles filled) so that
// Weight(a,b) is a single index computation. A Graph is never mutated after
// NewGraph returns, so it may be shared freely between solver calls.
package affinity

import (
	"math"
	"strconv"
)

// symTol is the tolerance used when checking matrix symmetry in FromMatrix.
const symTol = 1e-9

// Graph is a complete, symmetric, weighted graph over participants 0..N-1.
type Graph struct {
	n            int
	data         []float64 // row-major, len == n*n, diagonal is zero
	participants []Participant
}

// Option configures NewGraph.
type Option func(*graphConfig)

type graphConfig struct {
	missing      *float64
	participants []Participant
}

// WithMissingWeight resolves every pair absent from the input to w instead of
// failing with CauseMissingPair. Panics if w is NaN or Inf.
func WithMissingWeight(w float64) Option {
	if math.IsNaN(w) || math.IsInf(w, 0) {
		panic("affinity: WithMissingWeight(non-finite)")
	}
	return func(c *graphConfig) {
		c.missing = &w
	}
}

// WithParticipants attaches display data. The slice length must equal n;
// Participant.ID is overwritten with the index.
func WithParticipants(ps []Participant) Option {
	return func(c *graphConfig) {
		c.participants = ps
	}
}

// NewGraph builds a Graph over n participants from (a, b, weight) triples.
//
// Stage 1 (Validate): n ≥ 0, ids in range, no self-pairs, finite weights,
// duplicates (in either orientation) must agree exactly.
// Stage 2 (Complete): every unordered pair must be present unless
// WithMissingWeight was supplied.
// Stage 3 (Finalize): attach participants.
//
// Errors: *GraphError wrapping ErrMalformedGraph; the first offending pair in
// input order (stage 1) or lexicographic order (stage 2) is reported.
//
// Complexity: O(n² + len(edges)) time, O(n²) memory.
func NewGraph(n int, edges []Edge, opts ...Option) (*Graph, error) {
	const op = "NewGraph"
	var cfg graphConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if n < 0 {
		return nil, malformed(op, CauseBadSize, -1, -1)
	}

	g := &Graph{n: n, data: make([]float64, n*n)}
	seen := make([]bool, n*n)

	var (
		e    Edge
		a, b int
	)
	for _, e = range edges {
		a, b = e.A, e.B
		if a < 0 || a >= n || b < 0 || b >= n {
			return nil, malformed(op, CauseOutOfRange, a, b)
		}
		if a == b {
			return nil, malformed(op, CauseSelfPair, a, b)
		}
		if math.IsNaN(e.Weight) || math.IsInf(e.Weight, 0) {
			return nil, malformed(op, CauseNonFinite, a, b)
		}
		if a > b {
			a, b = b, a
		}
		if seen[a*n+b] {
			if g.data[a*n+b] != e.Weight {
				return nil, malformed(op, CauseConflict, a, b)
			}
			continue
		}
		seen[a*n+b] = true
		g.data[a*n+b] = e.Weight
		g.data[b*n+a] = e.Weight
	}

	// Completeness over the upper triangle.
	for a = 0; a < n; a++ {
		for b = a + 1; b < n; b++ {
			if seen[a*n+b] {
				continue
			}
			if cfg.missing == nil {
				return nil, malformed(op, CauseMissingPair, a, b)
			}
			g.data[a*n+b] = *cfg.missing
			g.data[b*n+a] = *cfg.missing
		}
	}

	if err := g.attach(op, cfg.participants); err != nil {
		return nil, err
	}

	return g, nil
}

// FromMatrix builds a Graph from a square symmetric matrix. The diagonal is
// ignored. Asymmetry beyond 1e-9 is rejected with CauseAsymmetric.
// Complexity: O(n²).
func FromMatrix(m [][]float64, opts ...Option) (*Graph, error) {
	const op = "FromMatrix"
	n := len(m)
	for i := range m {
		if len(m[i]) != n {
			return nil, malformed(op, CauseNotSquare, i, -1)
		}
	}

	edges := make([]Edge, 0, n*(n-1)/2)
	var i, j int
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			if math.Abs(m[i][j]-m[j][i]) > symTol {
				return nil, malformed(op, CauseAsymmetric, i, j)
			}
			edges = append(edges, Edge{A: i, B: j, Weight: m[i][j]})
		}
	}

	return NewGraph(n, edges, opts...)
}

func (g *Graph) attach(op string, ps []Participant) error {
	g.participants = make([]Participant, g.n)
	if ps == nil {
		for i := range g.participants {
			g.participants[i] = Participant{ID: i, Name: strconv.Itoa(i)}
		}
		return nil
	}
	if len(ps) != g.n {
		return &GraphError{Op: op, Cause: CauseParticipants, A: len(ps), B: g.n}
	}
	copy(g.participants, ps)
	for i := range g.participants {
		g.participants[i].ID = i
	}

	return nil
}

// N returns the number of participants.
// Complexity: O(1).
func (g *Graph) N() int { return g.n }

// Weight returns the weight of the unordered pair {a, b}; zero when a == b.
// Indices must be in range; use At for a bounds-checked read.
// Complexity: O(1).
func (g *Graph) Weight(a, b int) float64 {
	return g.data[a*g.n+b]
}

// At is the bounds-checked form of Weight.
// Complexity: O(1).
func (g *Graph) At(a, b int) (float64, error) {
	if a < 0 || a >= g.n || b < 0 || b >= g.n {
		return 0, malformed("Graph.At", CauseOutOfRange, a, b)
	}

	return g.data[a*g.n+b], nil
}

// IDs returns 0..N-1.
// Complexity: O(n).
func (g *Graph) IDs() []int {
	ids := make([]int, g.n)
	for i := range ids {
		ids[i] = i
	}

	return ids
}

// Participants returns a copy of the participant display data.
// Complexity: O(n).
func (g *Graph) Participants() []Participant {
	out := make([]Participant, g.n)
	copy(out, g.participants)

	return out
}

// Participant returns the display data of id i.
func (g *Graph) Participant(i int) Participant { return g.participants[i] }

// Edges returns every unordered pair as a triple with A < B, in
// lexicographic order.
// Complexity: O(n²).
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, g.n*(g.n-1)/2)
	var a, b int
	for a = 0; a < g.n; a++ {
		for b = a + 1; b < g.n; b++ {
			out = append(out, Edge{A: a, B: b, Weight: g.data[a*g.n+b]})
		}
	}

	return out
}

// Row returns a copy of participant a's weights to everyone (diagonal zero).
// Complexity: O(n).
func (g *Graph) Row(a int) []float64 {
	out := make([]float64, g.n)
	copy(out, g.data[a*g.n:(a+1)*g.n])

	return out
}
