// SPDX-License-Identifier: MIT

package roommates

import (
	"github.com/emirpasic/gods/queues/arrayqueue"

	"github.com/katalvlaran/pairmatch/affinity"
)

// table is the shrinking preference table of Irving's algorithm.
// A pair {i, j} is either present in both lists or in neither.
type table struct {
	n     int
	pref  Preferences
	rank  [][]int
	alive [][]bool // alive[i][pos] for pref[i][pos]
	head  []int    // position of first live entry
	tail  []int    // position of last live entry
	size  []int
}

func newTable(p Preferences) *table {
	n := len(p)
	t := &table{
		n:     n,
		pref:  p,
		rank:  p.ranks(),
		alive: make([][]bool, n),
		head:  make([]int, n),
		tail:  make([]int, n),
		size:  make([]int, n),
	}
	for i := range p {
		t.alive[i] = make([]bool, len(p[i]))
		for pos := range t.alive[i] {
			t.alive[i][pos] = true
		}
		t.tail[i] = len(p[i]) - 1
		t.size[i] = len(p[i])
	}

	return t
}

func (t *table) first(i int) int { return t.pref[i][t.head[i]] }

func (t *table) last(i int) int { return t.pref[i][t.tail[i]] }

// second returns the second live entry of i, or -1.
func (t *table) second(i int) int {
	for pos := t.head[i] + 1; pos <= t.tail[i]; pos++ {
		if t.alive[i][pos] {
			return t.pref[i][pos]
		}
	}

	return -1
}

// remove deletes the pair {i, j} from both lists.
func (t *table) remove(i, j int) {
	t.drop(i, j)
	t.drop(j, i)
}

func (t *table) drop(i, j int) {
	pos := t.rank[i][j]
	if !t.alive[i][pos] {
		return
	}
	t.alive[i][pos] = false
	t.size[i]--
	for t.head[i] < len(t.alive[i]) && !t.alive[i][t.head[i]] {
		t.head[i]++
	}
	for t.tail[i] >= 0 && !t.alive[i][t.tail[i]] {
		t.tail[i]--
	}
}

// truncateAfter removes every entry of i's list ranked below x.
func (t *table) truncateAfter(i, x int) {
	for pos := t.tail[i]; pos > t.rank[i][x]; pos-- {
		if t.alive[i][pos] {
			t.remove(i, t.pref[i][pos])
		}
	}
}

// SolvePreferences returns a stable matching for p, or ErrNoStableMatching.
//
// Contracts:
//   - p is a complete table (see Preferences.Validate) with N even, N ≥ 2.
//
// Errors: *NoStableError, *affinity.SolverError.
// Complexity: O(N²).
func SolvePreferences(p Preferences) (affinity.Matching, error) {
	const op = "roommates.SolvePreferences"
	n, err := p.Validate()
	if err != nil {
		return affinity.Matching{}, err
	}
	if n < 2 || n%2 != 0 {
		return affinity.Matching{}, &affinity.SolverError{Op: op, N: n, Reason: "stable roommates needs an even participant count of at least 2"}
	}

	return irving(op, p)
}

// irving runs both phases on a validated table of any size. An odd table
// always ends in *NoStableError.
func irving(op string, p Preferences) (affinity.Matching, error) {
	n := len(p)
	t := newTable(p)
	if err := t.propose(op); err != nil {
		return affinity.Matching{}, err
	}
	if err := t.eliminateRotations(op); err != nil {
		return affinity.Matching{}, err
	}

	mate := make([]int, n)
	for i := range mate {
		mate[i] = t.first(i)
	}
	for i, j := range mate {
		if mate[j] != i {
			return affinity.Matching{}, &affinity.SolverError{Op: op, N: n, Reason: "reduced table is not symmetric", Participants: []int{i, j}}
		}
	}

	return affinity.FromMates(mate), nil
}

// propose runs phase 1. The receiver of a proposal always accepts it, since
// its list already ends at its current holder, and cuts everyone after the
// proposer. A displaced holder re-enters the queue.
func (t *table) propose(op string) error {
	holder := make([]int, t.n)
	queue := arrayqueue.New()
	for i := 0; i < t.n; i++ {
		holder[i] = -1
		queue.Enqueue(i)
	}

	var (
		v       interface{}
		i, j    int
		prev    int
		pending bool
	)
	for !queue.Empty() {
		v, _ = queue.Dequeue()
		i = v.(int)
		if t.size[i] == 0 {
			return &NoStableError{Op: op, Phase: 1, Participant: i}
		}
		j = t.first(i)
		prev, pending = holder[j], holder[j] >= 0
		holder[j] = i
		t.truncateAfter(j, i)
		if pending {
			queue.Enqueue(prev)
		}
	}
	for i = 0; i < t.n; i++ {
		if t.size[i] == 0 {
			return &NoStableError{Op: op, Phase: 1, Participant: i}
		}
	}

	return nil
}

// eliminateRotations runs phase 2 until every list has one entry.
func (t *table) eliminateRotations(op string) error {
	pos := make([]int, t.n) // index of a participant in the current sequence
	for {
		start := -1
		for i := 0; i < t.n; i++ {
			if t.size[i] >= 2 {
				start = i
				break
			}
		}
		if start < 0 {
			return nil
		}

		// Walk p → last(second(p)) until a participant repeats.
		for i := range pos {
			pos[i] = -1
		}
		var seq []int
		p := start
		for pos[p] < 0 {
			pos[p] = len(seq)
			seq = append(seq, p)
			q := t.second(p)
			if q < 0 {
				return &NoStableError{Op: op, Phase: 2, Participant: p}
			}
			p = t.last(q)
		}
		rot := seq[pos[p]:]

		// Each y = second(x) drops everyone after x. Seconds are taken
		// before any removal.
		seconds := make([]int, len(rot))
		for k, x := range rot {
			seconds[k] = t.second(x)
		}
		for k, x := range rot {
			t.truncateAfter(seconds[k], x)
		}

		for i := 0; i < t.n; i++ {
			if t.size[i] == 0 {
				return &NoStableError{Op: op, Phase: 2, Participant: i}
			}
		}
	}
}

// Solve derives preferences from g and returns a verified stable matching.
//
// Errors: *TieError, *NoStableError, *affinity.SolverError,
// *affinity.SizeError.
// Complexity: O(N² log N).
func Solve(g *affinity.Graph, opts Options) (affinity.Matching, error) {
	p, err := DerivePreferences(g, opts)
	if err != nil {
		return affinity.Matching{}, err
	}
	m, err := SolvePreferences(p)
	if err != nil {
		return affinity.Matching{}, err
	}
	blocking, err := BlockingPairs(p, m)
	if err != nil {
		return affinity.Matching{}, err
	}
	if len(blocking) > 0 {
		return affinity.Matching{}, &affinity.SolverError{Op: "roommates.Solve", N: len(p), Reason: "result has a blocking pair", Participants: blocking[0]}
	}

	return m, nil
}
