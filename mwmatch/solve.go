// SPDX-License-Identifier: MIT

// Package mwmatch - entry points and input validation.
//
// Solve matches every participant of a Graph; SolveSubset matches a chosen
// vertex subset (the trio solver uses it for "everyone except the trio").
// Both validate first, then route by Options.Algo.
package mwmatch

import (
	"math"

	"github.com/katalvlaran/pairmatch/affinity"
)

// Solve returns a maximum-weight perfect matching over all participants of g.
//
// Contracts:
//   - g must be non-nil with N ≥ 2 and N even (odd N belongs to package trio).
//   - N ≤ opts.MaxParticipants when the cap is enabled.
//
// Errors: *affinity.SolverError (ErrSolver), *affinity.SizeError
// (ErrInputTooLarge).
//
// Complexity: O(N³) for Blossom, O(N·2ᴺ) for ExactDP.
func Solve(g *affinity.Graph, opts Options) (affinity.Matching, error) {
	const op = "mwmatch.Solve"
	if g == nil {
		return affinity.Matching{}, &affinity.SolverError{Op: op, Reason: "nil graph"}
	}
	n := g.N()
	if n < 2 {
		return affinity.Matching{}, &affinity.SolverError{Op: op, N: n, Reason: "need at least two participants"}
	}

	res, err := SolveSubset(g, g.IDs(), opts)
	if err != nil {
		return affinity.Matching{}, err
	}

	return res.Matching, nil
}

// SolveSubset returns a maximum-weight perfect matching of the given
// vertices of g. An empty subset yields an empty Result.
//
// Contracts:
//   - vertices are distinct ids of g, and their count is even.
//
// Errors: *affinity.SolverError, *affinity.SizeError.
//
// Complexity: O(m³) for Blossom with m = len(vertices).
func SolveSubset(g *affinity.Graph, vertices []int, opts Options) (Result, error) {
	const op = "mwmatch.SolveSubset"
	if g == nil {
		return Result{}, &affinity.SolverError{Op: op, Reason: "nil graph"}
	}
	m := len(vertices)

	// Stage 1: options and size.
	if err := validateOptions(op, opts, m); err != nil {
		return Result{}, err
	}

	// Stage 2: subset shape.
	if err := validateSubset(op, g.N(), vertices); err != nil {
		return Result{}, err
	}
	if m == 0 {
		return Result{Matching: affinity.Matching{Groups: []affinity.Group{}}}, nil
	}

	// Stage 3: route by algorithm.
	var local []int
	switch opts.Algo {
	case Blossom:
		qw, err := quantize(op, g, vertices, opts.Resolution)
		if err != nil {
			return Result{}, err
		}
		local = maxWeightMatching(m, func(i, j int) int64 { return qw[i*m+j] })
	case ExactDP:
		local = exactMatching(m, func(i, j int) float64 {
			return g.Weight(vertices[i], vertices[j])
		})
	}

	// Stage 4: map local indices back to participant ids.
	groups := make([]affinity.Group, 0, m/2)
	var total float64
	for i, j := range local {
		if j < 0 {
			return Result{}, &affinity.SolverError{Op: op, N: m, Reason: "vertex left unmatched", Participants: []int{vertices[i]}}
		}
		if i < j {
			groups = append(groups, affinity.Group{vertices[i], vertices[j]})
			total += g.Weight(vertices[i], vertices[j])
		}
	}

	return Result{Matching: affinity.NewMatching(groups...), Total: total}, nil
}

func validateOptions(op string, opts Options, m int) error {
	switch opts.Algo {
	case Blossom:
		if !(opts.Resolution > 0) || math.IsInf(opts.Resolution, 0) {
			return &affinity.SolverError{Op: op, N: m, Reason: "resolution must be a positive finite number"}
		}
	case ExactDP:
		if m > MaxExactN {
			return &affinity.SizeError{Op: op, What: "exact-dp vertices", Got: m, Limit: MaxExactN}
		}
	default:
		return &affinity.SolverError{Op: op, N: m, Reason: "unsupported algorithm " + opts.Algo.String()}
	}

	return affinity.CheckSize(op, m, opts.MaxParticipants)
}

// validateSubset enforces distinct in-range ids and an even count.
// Complexity: O(n).
func validateSubset(op string, n int, vertices []int) error {
	seen := make([]bool, n)
	for _, v := range vertices {
		if v < 0 || v >= n {
			return &affinity.SolverError{Op: op, N: n, Reason: "vertex out of range", Participants: []int{v}}
		}
		if seen[v] {
			return &affinity.SolverError{Op: op, N: n, Reason: "duplicate vertex", Participants: []int{v}}
		}
		seen[v] = true
	}
	if len(vertices)%2 != 0 {
		return &affinity.SolverError{Op: op, N: len(vertices), Reason: "odd vertex count has no perfect matching"}
	}

	return nil
}

// quantize returns the m×m integer weight table of the subset, rounded to
// res and shifted so the smallest off-diagonal entry is 1.
// Complexity: O(m²).
func quantize(op string, g *affinity.Graph, vertices []int, res float64) ([]int64, error) {
	m := len(vertices)
	qw := make([]int64, m*m)
	var (
		i, j int
		q    float64
		minQ int64 = math.MaxInt64
	)
	for i = 0; i < m; i++ {
		for j = i + 1; j < m; j++ {
			q = math.Round(g.Weight(vertices[i], vertices[j]) / res)
			if math.Abs(q) > maxQuantized {
				return nil, &affinity.SizeError{Op: op, What: "weight/resolution", Got: int(math.Min(math.Abs(q), 1<<62)), Limit: int(maxQuantized)}
			}
			qw[i*m+j] = int64(q)
			if qw[i*m+j] < minQ {
				minQ = qw[i*m+j]
			}
		}
	}
	for i = 0; i < m; i++ {
		for j = i + 1; j < m; j++ {
			qw[i*m+j] = qw[i*m+j] - minQ + 1
			qw[j*m+i] = qw[i*m+j]
		}
	}

	return qw, nil
}
