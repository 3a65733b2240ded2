// Package pairing_test: benchmarks for the three engines.
//
// Policy:
//   - Fixed seeds; inputs are built outside the timer.
//   - Integer weights in the 2..10 range of a typical rating sheet, so
//     ties are common and the blossom algorithm sees real blossoms.
package pairing_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/pairmatch/affinity"
	"github.com/katalvlaran/pairmatch/mwmatch"
	"github.com/katalvlaran/pairmatch/pairing"
	"github.com/katalvlaran/pairmatch/roommates"
)

const benchSeed = 20240915

func benchGraph(b *testing.B, n int) *affinity.Graph {
	b.Helper()
	r := rand.New(rand.NewSource(benchSeed))
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
	}
	var i, j int
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			w := float64(r.Intn(9)+2) + float64(r.Intn(9)+2)
			m[i][j], m[j][i] = w, w
		}
	}
	g, err := affinity.FromMatrix(m)
	if err != nil {
		b.Fatal(err)
	}

	return g
}

func benchSolve(b *testing.B, n int, opts ...pairing.Option) {
	g := benchGraph(b, n)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := pairing.Solve(g, opts...); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkMaxWeight_Blossom_n40 is the size of a large weekly session.
func BenchmarkMaxWeight_Blossom_n40(b *testing.B) { benchSolve(b, 40) }

func BenchmarkMaxWeight_Blossom_n200(b *testing.B) {
	benchSolve(b, 200, pairing.WithMaxParticipants(0))
}

func BenchmarkMaxWeight_Exact_n16(b *testing.B) {
	benchSolve(b, 16, pairing.WithAlgorithm(mwmatch.ExactDP))
}

// BenchmarkTrio_Joint_n41 runs the odd-count branch and bound.
func BenchmarkTrio_Joint_n41(b *testing.B) { benchSolve(b, 41) }

func BenchmarkStable_n40(b *testing.B) {
	benchSolve(b, 40,
		pairing.WithEngine(pairing.StableWithFallback),
		pairing.WithTiePolicy(roommates.TieLowerIndex, 0),
	)
}
