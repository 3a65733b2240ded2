// SPDX-License-Identifier: MIT

package pairing

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/pairmatch/affinity"
	"github.com/katalvlaran/pairmatch/mwmatch"
	"github.com/katalvlaran/pairmatch/roommates"
	"github.com/katalvlaran/pairmatch/trio"
)

// Result is a partition of all participants plus how it was obtained.
type Result struct {
	// Matching is the normalized partition.
	Matching affinity.Matching

	// Engine is the engine that produced Matching. After a fallback it is
	// MaxWeight even when StableWithFallback was requested.
	Engine Engine

	// Total is Matching.Total on the graph weights.
	Total float64

	// Stable reports whether Matching has no blocking pair under the
	// preferences of the run. It is false when preferences could not be
	// derived (strict ties).
	Stable bool

	// FallbackReason is set when StableWithFallback fell back.
	FallbackReason string

	// TrioEvaluations counts remainder matchings of the trio search.
	TrioEvaluations int

	// Leftover lists, for StableMerge, the participants the stable pass
	// could not pair; they were placed by maximum weight.
	Leftover []int

	// Baseline is the pure MaxWeight partition, set by StableMerge for
	// comparison, with BaselineTotal its total.
	Baseline      affinity.Matching
	BaselineTotal float64
}

// Solve partitions the participants of g with the configured engine.
//
// Stable engines derive preferences from g (descending weight, tie policy
// from the options).
//
// Errors: every error of the selected engine; affinity.ErrSolver,
// affinity.ErrInputTooLarge, roommates.ErrTiePolicy and
// roommates.ErrNoStableMatching match with errors.Is.
func Solve(g *affinity.Graph, opts ...Option) (Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return SolveWith(g, o)
}

// SolveWith is Solve with an explicit Options value.
func SolveWith(g *affinity.Graph, o Options) (Result, error) {
	return run(g, &prefSource{}, o)
}

// SolveRatings builds the graph from a directed rating matrix with combine
// (nil means affinity.CombineSum) and solves it. Preferences, for the stable
// engines and for Result.Stable, rank by each rater's own scores instead of
// the combined weights.
func SolveRatings(r affinity.Ratings, combine affinity.Combine, opts ...Option) (Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	g, err := affinity.FromRatings(r, combine)
	if err != nil {
		return Result{}, err
	}
	p, err := roommates.FromRatings(r, o.Roommates)

	return run(g, &prefSource{p: p, err: err}, o)
}

// prefSource yields the preferences of a run, derived from the graph on
// first use unless supplied up front.
type prefSource struct {
	p   roommates.Preferences
	err error
}

func (s *prefSource) get(g *affinity.Graph, o Options) (roommates.Preferences, error) {
	if s.p == nil && s.err == nil {
		s.p, s.err = roommates.DerivePreferences(g, o.Roommates)
	}

	return s.p, s.err
}

func run(g *affinity.Graph, src *prefSource, o Options) (Result, error) {
	const op = "pairing.Solve"
	if g == nil {
		return Result{}, &affinity.SolverError{Op: op, Reason: "nil graph"}
	}

	switch o.Engine {
	case MaxWeight:
		return maxWeight(g, src, o)
	case StableRoommates:
		return stable(g, src, o)
	case StableWithFallback:
		if g.N()%2 != 0 {
			return fallback(g, src, o, "odd participant count")
		}
		res, err := stable(g, src, o)
		switch {
		case err == nil:
			return res, nil
		case errors.Is(err, roommates.ErrNoStableMatching), errors.Is(err, roommates.ErrTiePolicy):
			return fallback(g, src, o, err.Error())
		default:
			return Result{}, err
		}
	case StableMerge:
		return merge(g, src, o)
	default:
		return Result{}, &affinity.SolverError{Op: op, N: g.N(), Reason: "unsupported engine " + o.Engine.String()}
	}
}

func fallback(g *affinity.Graph, src *prefSource, o Options, reason string) (Result, error) {
	res, err := maxWeight(g, src, o)
	if err != nil {
		return Result{}, err
	}
	res.FallbackReason = reason

	return res, nil
}

// maxWeight routes even N to mwmatch and odd N to trio.
func maxWeight(g *affinity.Graph, src *prefSource, o Options) (Result, error) {
	var res Result
	if g.N()%2 == 0 {
		m, err := mwmatch.Solve(g, o.Matching)
		if err != nil {
			return Result{}, err
		}
		res.Matching = m
	} else {
		tr, err := trio.Search(g, o.Trio)
		if err != nil {
			return Result{}, err
		}
		res.Matching, res.TrioEvaluations = tr.Matching, tr.Evaluations
	}
	res.Engine = MaxWeight
	res.Total = res.Matching.Total(g)

	// Preferences that cannot be derived leave Stable false.
	if p, err := src.get(g, o); err == nil {
		if res.Stable, err = roommates.IsStable(p, res.Matching); err != nil {
			return Result{}, err
		}
	}

	return res, nil
}

func stable(g *affinity.Graph, src *prefSource, o Options) (Result, error) {
	p, err := src.get(g, o)
	if err != nil {
		return Result{}, err
	}
	m, err := roommates.SolvePreferences(p)
	if err != nil {
		return Result{}, err
	}
	ok, err := roommates.IsStable(p, m)
	if err != nil {
		return Result{}, err
	}
	if !ok {
		return Result{}, &affinity.SolverError{Op: "pairing.Solve", N: g.N(), Reason: "stable engine returned an unstable matching"}
	}

	return Result{Matching: m, Engine: StableRoommates, Total: m.Total(g), Stable: true}, nil
}

// merge keeps the pairs of a partial stable pass and places the leftover
// participants by maximum weight: one leftover joins the stable pair it adds
// the most weight to, an even leftover is matched, an odd one gets the trio.
// Preferences that cannot be derived make it a MaxWeight fallback.
func merge(g *affinity.Graph, src *prefSource, o Options) (Result, error) {
	const op = "pairing.Solve"
	p, err := src.get(g, o)
	if errors.Is(err, roommates.ErrTiePolicy) {
		return fallback(g, src, o, err.Error())
	}
	if err != nil {
		return Result{}, err
	}
	part, err := roommates.SolvePartial(p)
	if err != nil {
		return Result{}, err
	}

	var (
		groups = append([]affinity.Group(nil), part.Matching.Groups...)
		left   = part.Unmatched
		evals  int
	)
	switch {
	case len(left) == 1:
		at := -1
		var best, w float64
		for i, pair := range groups {
			w = g.Weight(left[0], pair[0]) + g.Weight(left[0], pair[1])
			if at < 0 || w > best {
				at, best = i, w
			}
		}
		if at < 0 {
			return Result{}, &affinity.SolverError{Op: op, N: g.N(), Reason: "no stable pair to join", Participants: left}
		}
		groups[at] = append(affinity.Group{left[0]}, groups[at]...)
	case len(left)%2 == 0 && len(left) > 0:
		res, err := mwmatch.SolveSubset(g, left, o.Matching)
		if err != nil {
			return Result{}, err
		}
		groups = append(groups, res.Matching.Groups...)
	case len(left) > 0:
		sub, err := induced(g, left)
		if err != nil {
			return Result{}, err
		}
		tr, err := trio.Search(sub, o.Trio)
		if err != nil {
			return Result{}, err
		}
		evals = tr.Evaluations
		for _, grp := range tr.Matching.Groups {
			mapped := make(affinity.Group, len(grp))
			for i, v := range grp {
				mapped[i] = left[v]
			}
			groups = append(groups, mapped)
		}
	}

	m := affinity.NewMatching(groups...)
	if err = m.Validate(g.N()); err != nil {
		return Result{}, err
	}
	stable, err := roommates.IsStable(p, m)
	if err != nil {
		return Result{}, err
	}
	base, err := maxWeight(g, src, o)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Matching:        m,
		Engine:          StableMerge,
		Total:           m.Total(g),
		Stable:          stable,
		TrioEvaluations: evals,
		Leftover:        left,
		Baseline:        base.Matching,
		BaselineTotal:   base.Total,
	}
	if len(left) > 0 {
		res.FallbackReason = fmt.Sprintf("stable pass paired %d of %d participants", g.N()-len(left), g.N())
	}

	return res, nil
}

// induced returns the complete graph over vs, relabelled 0..len(vs)-1.
func induced(g *affinity.Graph, vs []int) (*affinity.Graph, error) {
	edges := make([]affinity.Edge, 0, len(vs)*(len(vs)-1)/2)
	for i := range vs {
		for j := i + 1; j < len(vs); j++ {
			edges = append(edges, affinity.Edge{A: i, B: j, Weight: g.Weight(vs[i], vs[j])})
		}
	}

	return affinity.NewGraph(len(vs), edges)
}
