// SPDX-License-Identifier: MIT

package trio

import (
	"cmp"
	"errors"
	"math"

	"github.com/emirpasic/gods/trees/binaryheap"

	"github.com/katalvlaran/pairmatch/affinity"
	"github.com/katalvlaran/pairmatch/mwmatch"
)

// candidate is one trio {a < b < c} with its internal weight and upper bound.
type candidate struct {
	a, b, c int
	weight  float64
	bound   float64
}

func (c candidate) group() affinity.Group { return affinity.Group{c.a, c.b, c.c} }

// compareTrio orders trios lexicographically.
func compareTrio(p, q candidate) int {
	if r := cmp.Compare(p.a, q.a); r != 0 {
		return r
	}
	if r := cmp.Compare(p.b, q.b); r != 0 {
		return r
	}

	return cmp.Compare(p.c, q.c)
}

// byBound makes the heap pop the highest bound first, then the
// lexicographically smallest trio.
func byBound(x, y interface{}) int {
	p, q := x.(candidate), y.(candidate)
	switch {
	case p.bound > q.bound:
		return -1
	case p.bound < q.bound:
		return 1
	}

	return compareTrio(p, q)
}

// jointEngine holds the search state of one joint trio search.
type jointEngine struct {
	g    *affinity.Graph
	n    int
	opts Options
	eps  float64

	best []float64 // heaviest incident weight per participant
	sum  float64   // Σ best

	heap  *binaryheap.Heap
	evals int

	// Every evaluated trio, the best total seen, and the index of the
	// smallest trio within eps of it.
	done []evaluated
	max  float64
	pick int
}

type evaluated struct {
	c         candidate
	total     float64
	remainder affinity.Matching
}

func newJointEngine(g *affinity.Graph, opts Options) *jointEngine {
	return &jointEngine{
		g:    g,
		n:    g.N(),
		opts: opts,
		heap: binaryheap.NewWith(byBound),
		pick: -1,
	}
}

// run executes the search.
//
// Stage 1: per-participant best incident weight and the tie band eps.
// Stage 2: a greedy solution gives a lower bound on the optimum; only trios
// whose bound reaches it are queued.
// Stage 3: pop candidates best-first and solve the remainder matching while
// the bound can still reach the band, unless a smaller trio is already
// certain to stay in it. The answer is the smallest trio within eps of the
// best total.
func (e *jointEngine) run(op string) (Result, error) {
	e.prepare()

	floor, seeded, err := e.seed(op)
	if err != nil {
		return Result{}, err
	}
	e.enqueue(floor, seeded)

	var (
		v    interface{}
		ok   bool
		c    candidate
		rest []int
		res  mwmatch.Result
	)
	for {
		if v, ok = e.heap.Pop(); !ok {
			break
		}
		c = v.(candidate)
		if e.pick >= 0 {
			if c.bound < e.max-e.eps {
				break // every remaining bound is lower still
			}
			// Later bounds are no higher than c.bound, so the best total
			// can still rise to at most max(e.max, c.bound).
			p := e.done[e.pick]
			if p.total >= math.Max(e.max, c.bound)-e.eps && compareTrio(c, p.c) >= 0 {
				continue
			}
		}

		if e.opts.MaxEvaluations > 0 && e.evals >= e.opts.MaxEvaluations {
			return Result{}, &affinity.SizeError{Op: op, What: "remainder matchings", Got: e.evals + 1, Limit: e.opts.MaxEvaluations}
		}
		rest = e.without(c, rest)
		if res, err = mwmatch.SolveSubset(e.g, rest, e.opts.Matching); err != nil {
			return Result{}, err
		}
		e.evals++
		e.record(evaluated{c: c, total: c.weight + res.Total, remainder: res.Matching})
	}
	if e.pick < 0 {
		return Result{}, &affinity.SolverError{Op: op, N: e.n, Reason: "no trio candidate survived the bound"}
	}

	best := e.done[e.pick]
	groups := make([]affinity.Group, 0, len(best.remainder.Groups)+1)
	groups = append(groups, best.remainder.Groups...)
	groups = append(groups, best.c.group())
	m := affinity.NewMatching(groups...)

	return Result{Matching: m, Trio: best.c.group(), Total: m.Total(e.g), Evaluations: e.evals}, nil
}

// record adds an evaluated trio and moves the pick. A new best total can
// push the current pick out of the band, so the pick is then rescanned.
func (e *jointEngine) record(x evaluated) {
	e.done = append(e.done, x)
	if len(e.done) == 1 || x.total > e.max {
		e.max = x.total
		e.pick = -1
		for i, d := range e.done {
			if d.total >= e.max-e.eps && (e.pick < 0 || compareTrio(d.c, e.done[e.pick].c) < 0) {
				e.pick = i
			}
		}
		return
	}
	if x.total >= e.max-e.eps && compareTrio(x.c, e.done[e.pick].c) < 0 {
		e.pick = len(e.done) - 1
	}
}

func (e *jointEngine) prepare() {
	e.best = make([]float64, e.n)
	var (
		u, v   int
		w, abs float64
	)
	for v = 0; v < e.n; v++ {
		e.best[v] = math.Inf(-1)
		for u = 0; u < e.n; u++ {
			if u == v {
				continue
			}
			w = e.g.Weight(v, u)
			if w > e.best[v] {
				e.best[v] = w
			}
			abs += math.Abs(w)
		}
		e.sum += e.best[v]
	}
	e.eps = 1e-9 * math.Max(1, abs)

	// Blossom rounds each remainder weight to the resolution, so a
	// remainder total is only exact to (N/2)·Resolution.
	if e.opts.Matching.Algo == mwmatch.Blossom {
		e.eps = math.Max(e.eps, float64(e.n/2)*e.opts.Matching.Resolution)
	}
}

// seed returns the greedy total as a floor on the optimum. Seeding is
// skipped (seeded=false) when the augmented greedy graph exceeds a size
// limit of the matching options.
func (e *jointEngine) seed(op string) (floor float64, seeded bool, err error) {
	res, err := greedy(op, e.g, e.opts)
	switch {
	case err == nil:
		return res.Total, true, nil
	case errors.Is(err, affinity.ErrInputTooLarge):
		return 0, false, nil
	default:
		return 0, false, err
	}
}

// enqueue pushes every trio whose bound reaches floor.
// Complexity: O(N³ log N).
func (e *jointEngine) enqueue(floor float64, seeded bool) {
	var (
		a, b, c int
		wab, w  float64
		bound   float64
	)
	for a = 0; a < e.n; a++ {
		for b = a + 1; b < e.n; b++ {
			wab = e.g.Weight(a, b)
			for c = b + 1; c < e.n; c++ {
				w = wab + e.g.Weight(a, c) + e.g.Weight(b, c)
				bound = w + (e.sum-e.best[a]-e.best[b]-e.best[c])/2
				if seeded && bound < floor-e.eps {
					continue
				}
				e.heap.Push(candidate{a: a, b: b, c: c, weight: w, bound: bound})
			}
		}
	}
}

// without fills buf with every participant except the members of c.
func (e *jointEngine) without(c candidate, buf []int) []int {
	buf = buf[:0]
	for v := 0; v < e.n; v++ {
		if v != c.a && v != c.b && v != c.c {
			buf = append(buf, v)
		}
	}

	return buf
}
