package roommates_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pairmatch/affinity"
	"github.com/katalvlaran/pairmatch/roommates"
)

// twoClusters: {0,1,2,3} is the cyclic instance without a stable matching,
// while 4 and 5 rank each other first.
var twoClusters = roommates.Preferences{
	{1, 2, 3, 4, 5},
	{2, 0, 3, 4, 5},
	{0, 1, 3, 4, 5},
	{0, 1, 2, 4, 5},
	{5, 0, 1, 2, 3},
	{4, 0, 1, 2, 3},
}

func TestSolvePartial(t *testing.T) {
	cases := []struct {
		name      string
		p         roommates.Preferences
		groups    []affinity.Group
		setAside  []int
		unmatched []int
	}{
		{"solvable", irving6, []affinity.Group{{0, 5}, {1, 2}, {3, 4}}, nil, nil},
		{"no stable matching", unsolvable4, []affinity.Group{{1, 2}}, []int{3, 0}, []int{0, 3}},
		{"two clusters", twoClusters, []affinity.Group{{1, 2}, {4, 5}}, []int{3, 0}, []int{0, 3}},
		{"odd with placeholder", oneBased([][]int{{3, 2}, {3, 1}, {1, 2}}), []affinity.Group{{0, 2}}, nil, []int{1}},
		{"odd cycle beside a pair", roommates.Preferences{
			{1, 2, 3, 4},
			{2, 0, 3, 4},
			{0, 1, 3, 4},
			{4, 0, 1, 2},
			{3, 0, 1, 2},
		}, []affinity.Group{{1, 2}, {3, 4}}, []int{0}, []int{0}},
		{"everyone ranks the last one last", oneBased([][]int{
			{3, 4, 2, 6, 5, 7},
			{6, 5, 4, 1, 3, 7},
			{2, 4, 5, 1, 6, 7},
			{5, 2, 3, 6, 1, 7},
			{3, 1, 2, 4, 6, 7},
			{5, 1, 3, 4, 2, 7},
			{1, 2, 3, 4, 5, 6},
		}), []affinity.Group{{0, 5}, {1, 3}, {2, 4}}, nil, []int{6}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			part, err := roommates.SolvePartial(tc.p)
			require.NoError(t, err)
			require.Equal(t, tc.groups, part.Matching.Groups)
			require.Equal(t, tc.setAside, part.SetAside)
			require.Equal(t, tc.unmatched, part.Unmatched)
		})
	}
}

func TestSolvePartial_AgreesWithFullSolve(t *testing.T) {
	r := rand.New(rand.NewSource(34))
	for _, n := range []int{2, 3, 4, 5, 6, 7, 8, 9} {
		for rep := 0; rep < 40; rep++ {
			p := make(roommates.Preferences, n)
			for i := range p {
				for _, j := range r.Perm(n) {
					if j != i {
						p[i] = append(p[i], j)
					}
				}
			}

			part, err := roommates.SolvePartial(p)
			require.NoError(t, err, "n=%d rep=%d", n, rep)
			require.Len(t, part.Unmatched, n-2*len(part.Matching.Groups))
			require.Subset(t, part.Unmatched, part.SetAside)
			for _, grp := range part.Matching.Groups {
				require.Len(t, grp, 2)
			}
			if n%2 != 0 {
				continue
			}

			full, err := roommates.SolvePreferences(p)
			if err != nil {
				require.ErrorIs(t, err, roommates.ErrNoStableMatching)
				require.NotEmpty(t, part.SetAside, "n=%d rep=%d", n, rep)
				continue
			}
			require.True(t, full.Equal(part.Matching), "n=%d rep=%d", n, rep)
			require.Empty(t, part.Unmatched)
		}
	}
}

func TestSolvePartial_Errors(t *testing.T) {
	_, err := roommates.SolvePartial(roommates.Preferences{{}})
	require.ErrorIs(t, err, affinity.ErrSolver)

	_, err = roommates.SolvePartial(roommates.Preferences{{1}, {1}})
	require.ErrorIs(t, err, affinity.ErrSolver)
}

func TestPreferences_Restrict(t *testing.T) {
	q := twoClusters.Restrict([]int{0, 2, 4, 5})
	require.Equal(t, roommates.Preferences{
		{1, 2, 3},
		{0, 2, 3},
		{3, 0, 1},
		{2, 0, 1},
	}, q)
	n, err := q.Validate()
	require.NoError(t, err)
	require.Equal(t, 4, n)
}
