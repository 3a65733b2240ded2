package mwmatch_test

import (
	"fmt"

	"github.com/katalvlaran/pairmatch/affinity"
	"github.com/katalvlaran/pairmatch/mwmatch"
)

// ExampleSolve compares both algorithms on the same graph.
func ExampleSolve() {
	g, _ := affinity.FromMatrix([][]float64{
		{0, 4, 1, 3},
		{4, 0, 3, 1},
		{1, 3, 0, 4},
		{3, 1, 4, 0},
	})

	for _, algo := range []mwmatch.Algorithm{mwmatch.Blossom, mwmatch.ExactDP} {
		opts := mwmatch.DefaultOptions()
		opts.Algo = algo
		m, err := mwmatch.Solve(g, opts)
		if err != nil {
			fmt.Println("error:", err)
			continue
		}
		fmt.Println(algo, m.Groups, m.Total(g))
	}
	// Output:
	// blossom [[0 1] [2 3]] 8
	// exact [[0 1] [2 3]] 8
}
