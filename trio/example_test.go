package trio_test

import (
	"fmt"

	"github.com/katalvlaran/pairmatch/affinity"
	"github.com/katalvlaran/pairmatch/trio"
)

// ExampleSearch finds the trio jointly with the remaining pairs.
func ExampleSearch() {
	g, _ := affinity.NewGraph(5, []affinity.Edge{
		{A: 0, B: 1, Weight: 93},
		{A: 0, B: 2, Weight: -20},
		{A: 0, B: 3, Weight: 2},
		{A: 1, B: 2, Weight: -13},
		{A: 1, B: 3, Weight: 10},
		{A: 2, B: 3, Weight: 80},
		{A: 0, B: 4, Weight: 50},
		{A: 1, B: 4, Weight: 48},
		{A: 2, B: 4, Weight: -10},
		{A: 3, B: 4, Weight: -5},
	})

	res, err := trio.Search(g, trio.DefaultOptions())
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(res.Trio, res.Matching.Groups, res.Total)
	// Output: [0 1 4] [[0 1 4] [2 3]] 271
}
