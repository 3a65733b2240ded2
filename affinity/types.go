// SPDX-License-Identifier: MIT

// Package affinity: domain types shared by the graph and the solvers.
// This file holds ONLY plain data types; construction lives in graph.go and
// matching invariants in matching.go.
package affinity

// Participant carries the display data owned by the caller. The engine never
// reads Name or Request; they are passed through for reporting.
type Participant struct {
	// ID is the dense index 0..N-1 used by every solver.
	ID int `json:"id" yaml:"id"`

	// Name is the human-readable label printed in reports.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Request is the free-text help request of this round.
	Request string `json:"request,omitempty" yaml:"request,omitempty"`
}

// Edge is one (a, b, weight) triple of caller input.
// Orientation is irrelevant: (a,b) and (b,a) name the same unordered pair.
type Edge struct {
	A      int     `json:"a" yaml:"a"`
	B      int     `json:"b" yaml:"b"`
	Weight float64 `json:"weight" yaml:"weight"`
}

// Group is one element of a Matching: a pair or, at most once, a trio.
// Members are kept in ascending order.
type Group []int

// Size returns the number of members (2 or 3 in a valid Matching).
func (g Group) Size() int { return len(g) }

// IsTrio reports whether this group has three members.
func (g Group) IsTrio() bool { return len(g) == 3 }

// Matching is a partition of participants into groups, ordered by each
// group's smallest member.
type Matching struct {
	Groups []Group `json:"groups" yaml:"groups"`
}

// Ratings is a directed rating matrix: Ratings[i][j] is how participant i
// rated participant j's help request. The diagonal is ignored.
type Ratings [][]float64
