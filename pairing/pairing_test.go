package pairing_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pairmatch/affinity"
	"github.com/katalvlaran/pairmatch/mwmatch"
	"github.com/katalvlaran/pairmatch/pairing"
	"github.com/katalvlaran/pairmatch/roommates"
	"github.com/katalvlaran/pairmatch/trio"
)

var workedEdges = []affinity.Edge{
	{A: 0, B: 1, Weight: 93},
	{A: 0, B: 2, Weight: -20},
	{A: 0, B: 3, Weight: 2},
	{A: 1, B: 2, Weight: -13},
	{A: 1, B: 3, Weight: 10},
	{A: 2, B: 3, Weight: 80},
}

func worked(t *testing.T) *affinity.Graph {
	t.Helper()
	g, err := affinity.NewGraph(4, workedEdges)
	require.NoError(t, err)

	return g
}

func odd(t *testing.T) *affinity.Graph {
	t.Helper()
	edges := append([]affinity.Edge{
		{A: 0, B: 4, Weight: 50},
		{A: 1, B: 4, Weight: 48},
		{A: 2, B: 4, Weight: -10},
		{A: 3, B: 4, Weight: -5},
	}, workedEdges...)
	g, err := affinity.NewGraph(5, edges)
	require.NoError(t, err)

	return g
}

// noStableRatings: every rater puts participant 3 last, the classic
// instance without a stable matching.
var noStableRatings = affinity.Ratings{
	{0, 3, 2, 1},
	{2, 0, 3, 1},
	{3, 2, 0, 1},
	{3, 2, 1, 0},
}

func TestSolve_MaxWeight(t *testing.T) {
	res, err := pairing.Solve(worked(t))
	require.NoError(t, err)
	require.Equal(t, pairing.MaxWeight, res.Engine)
	require.Equal(t, []affinity.Group{{0, 1}, {2, 3}}, res.Matching.Groups)
	require.InDelta(t, 173.0, res.Total, 1e-9)
	require.True(t, res.Stable)
	require.Empty(t, res.FallbackReason)

	exact, err := pairing.Solve(worked(t), pairing.WithAlgorithm(mwmatch.ExactDP))
	require.NoError(t, err)
	require.True(t, res.Matching.Equal(exact.Matching))
}

func TestSolve_MaxWeightOdd(t *testing.T) {
	res, err := pairing.Solve(odd(t))
	require.NoError(t, err)
	require.Equal(t, []affinity.Group{{0, 1, 4}, {2, 3}}, res.Matching.Groups)
	require.InDelta(t, 271.0, res.Total, 1e-9)
	require.Positive(t, res.TrioEvaluations)
	require.NoError(t, res.Matching.Validate(5))

	greedy, err := pairing.Solve(odd(t), pairing.WithTrioStrategy(trio.Greedy))
	require.NoError(t, err)
	require.Equal(t, 1, greedy.TrioEvaluations)
}

func TestSolve_Stable(t *testing.T) {
	res, err := pairing.Solve(worked(t), pairing.WithEngine(pairing.StableRoommates))
	require.NoError(t, err)
	require.Equal(t, pairing.StableRoommates, res.Engine)
	require.Equal(t, []affinity.Group{{0, 1}, {2, 3}}, res.Matching.Groups)
	require.True(t, res.Stable)

	_, err = pairing.Solve(odd(t), pairing.WithEngine(pairing.StableRoommates))
	require.ErrorIs(t, err, affinity.ErrSolver)
}

func TestSolve_FallbackOnOddCount(t *testing.T) {
	res, err := pairing.Solve(odd(t), pairing.WithEngine(pairing.StableWithFallback))
	require.NoError(t, err)
	require.Equal(t, pairing.MaxWeight, res.Engine)
	require.Equal(t, "odd participant count", res.FallbackReason)
	require.Equal(t, []affinity.Group{{0, 1, 4}, {2, 3}}, res.Matching.Groups)
}

func TestSolve_FallbackOnStrictTies(t *testing.T) {
	flat, err := affinity.NewGraph(4, nil, affinity.WithMissingWeight(1))
	require.NoError(t, err)

	_, err = pairing.Solve(flat, pairing.WithEngine(pairing.StableRoommates))
	require.ErrorIs(t, err, roommates.ErrTiePolicy)

	res, err := pairing.Solve(flat, pairing.WithEngine(pairing.StableWithFallback))
	require.NoError(t, err)
	require.Equal(t, pairing.MaxWeight, res.Engine)
	require.Contains(t, res.FallbackReason, "equally")
	require.False(t, res.Stable)
	require.NoError(t, res.Matching.Validate(4))

	res, err = pairing.Solve(flat,
		pairing.WithEngine(pairing.StableWithFallback),
		pairing.WithTiePolicy(roommates.TieLowerIndex, 0))
	require.NoError(t, err)
	require.Equal(t, pairing.StableRoommates, res.Engine)
	require.Empty(t, res.FallbackReason)
}

func TestSolveRatings(t *testing.T) {
	_, err := pairing.SolveRatings(noStableRatings, nil, pairing.WithEngine(pairing.StableRoommates))
	require.ErrorIs(t, err, roommates.ErrNoStableMatching)

	res, err := pairing.SolveRatings(noStableRatings, nil, pairing.WithEngine(pairing.StableWithFallback))
	require.NoError(t, err)
	require.Equal(t, pairing.MaxWeight, res.Engine)
	require.Contains(t, res.FallbackReason, "no stable matching")
	require.Equal(t, []affinity.Group{{0, 3}, {1, 2}}, res.Matching.Groups)
	require.InDelta(t, 9.0, res.Total, 1e-9)
	require.False(t, res.Stable)

	mean, err := pairing.SolveRatings(noStableRatings, affinity.CombineMean)
	require.NoError(t, err)
	require.InDelta(t, 4.5, mean.Total, 1e-9)

	_, err = pairing.SolveRatings(affinity.Ratings{{0, 1}}, nil)
	require.ErrorIs(t, err, affinity.ErrMalformedGraph)
}

// twoClusterRatings: {0,1,2,3} rate each other cyclically with 3 last, so
// they have no stable matching; 4 and 5 rate each other first.
var twoClusterRatings = affinity.Ratings{
	{0, 5, 4, 3, 2, 1},
	{4, 0, 5, 3, 2, 1},
	{5, 4, 0, 3, 2, 1},
	{5, 4, 3, 0, 2, 1},
	{4, 3, 2, 1, 0, 5},
	{4, 3, 2, 1, 5, 0},
}

func TestSolve_StableMergeKeepsStablePairs(t *testing.T) {
	_, err := pairing.SolveRatings(twoClusterRatings, nil, pairing.WithEngine(pairing.StableRoommates))
	require.ErrorIs(t, err, roommates.ErrNoStableMatching)

	res, err := pairing.SolveRatings(twoClusterRatings, nil, pairing.WithEngine(pairing.StableMerge))
	require.NoError(t, err)
	require.Equal(t, pairing.StableMerge, res.Engine)
	require.Equal(t, []affinity.Group{{0, 3}, {1, 2}, {4, 5}}, res.Matching.Groups)
	require.Equal(t, []int{0, 3}, res.Leftover)
	require.Equal(t, "stable pass paired 4 of 6 participants", res.FallbackReason)
	require.InDelta(t, 27.0, res.Total, 1e-9)
	require.False(t, res.Stable)

	require.Equal(t, []affinity.Group{{0, 3}, {1, 2}, {4, 5}}, res.Baseline.Groups)
	require.InDelta(t, 27.0, res.BaselineTotal, 1e-9)
}

func TestSolve_StableMergeOddCount(t *testing.T) {
	// 0, 1 and 2 rate each other cyclically; 3 and 4 rate each other first.
	r := affinity.Ratings{
		{0, 4, 3, 2, 1},
		{3, 0, 4, 2, 1},
		{4, 3, 0, 2, 1},
		{3, 2, 1, 0, 4},
		{3, 2, 1, 4, 0},
	}
	res, err := pairing.SolveRatings(r, nil, pairing.WithEngine(pairing.StableMerge))
	require.NoError(t, err)
	require.Equal(t, []affinity.Group{{0, 1, 2}, {3, 4}}, res.Matching.Groups)
	require.Equal(t, []int{0}, res.Leftover)
	require.InDelta(t, 29.0, res.Total, 1e-9)
	require.True(t, res.Stable)
	require.NoError(t, res.Matching.Validate(5))
	require.InDelta(t, 29.0, res.BaselineTotal, 1e-9)
}

func TestSolve_StableMerge(t *testing.T) {
	res, err := pairing.Solve(worked(t), pairing.WithEngine(pairing.StableMerge))
	require.NoError(t, err)
	require.Equal(t, pairing.StableMerge, res.Engine)
	require.Equal(t, []affinity.Group{{0, 1}, {2, 3}}, res.Matching.Groups)
	require.Empty(t, res.Leftover)
	require.Empty(t, res.FallbackReason)
	require.True(t, res.Stable)
	require.InDelta(t, 173.0, res.BaselineTotal, 1e-9)

	// Odd participant counts go through the stable pass too.
	res, err = pairing.Solve(odd(t), pairing.WithEngine(pairing.StableMerge))
	require.NoError(t, err)
	require.Equal(t, pairing.StableMerge, res.Engine)
	require.NoError(t, res.Matching.Validate(5))
	require.Len(t, res.Leftover, 1)

	flat, err := affinity.NewGraph(4, nil, affinity.WithMissingWeight(1))
	require.NoError(t, err)
	res, err = pairing.Solve(flat, pairing.WithEngine(pairing.StableMerge))
	require.NoError(t, err)
	require.Equal(t, pairing.MaxWeight, res.Engine)
	require.Contains(t, res.FallbackReason, "equally")
}

func TestSolve_Errors(t *testing.T) {
	_, err := pairing.Solve(nil)
	require.ErrorIs(t, err, affinity.ErrSolver)

	_, err = pairing.Solve(worked(t), pairing.WithMaxParticipants(2))
	require.ErrorIs(t, err, affinity.ErrInputTooLarge)

	o := pairing.DefaultOptions()
	o.Engine = pairing.Engine(42)
	_, err = pairing.SolveWith(worked(t), o)
	require.ErrorIs(t, err, affinity.ErrSolver)
}

func TestOptions_PanicOnMeaninglessValues(t *testing.T) {
	require.Panics(t, func() { pairing.WithEngine(pairing.Engine(-1)) })
	require.Panics(t, func() { pairing.WithAlgorithm(mwmatch.Algorithm(5)) })
	require.Panics(t, func() { pairing.WithResolution(0) })
	require.Panics(t, func() { pairing.WithTiePolicy(roommates.TiePolicy(9), 0) })
	require.Panics(t, func() { pairing.WithTrioStrategy(trio.Strategy(3)) })
	require.Panics(t, func() { pairing.WithMaxParticipants(-1) })
	require.Panics(t, func() { pairing.WithMaxEvaluations(-2) })
	require.NotPanics(t, func() { pairing.WithResolution(0.5) })
}

func TestParseEngine(t *testing.T) {
	for _, e := range []pairing.Engine{pairing.MaxWeight, pairing.StableRoommates, pairing.StableWithFallback, pairing.StableMerge} {
		got, err := pairing.ParseEngine(e.String())
		require.NoError(t, err)
		require.Equal(t, e, got)
	}
	_, err := pairing.ParseEngine("random")
	require.Error(t, err)
}
