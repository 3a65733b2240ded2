// SPDX-License-Identifier: MIT

// Package mwmatch - primal–dual blossom algorithm.
//
// Notation follows the classical presentation:
//   - edge k joins ei[k] and ej[k]; "endpoint" p = 2k or 2k+1 names one end,
//     endpoint[p] is the vertex, p^1 is the opposite end;
//   - ids 0..nv-1 are vertices, nv..2nv-1 are (possibly unused) blossoms;
//   - label 0 = free, 1 = S (outer), 2 = T (inner), 5 = temporary mark;
//   - dual[v] for vertices and dual[b] for blossoms are stored doubled, so
//     slack(k) = dual[i] + dual[j] - 2·w(k) stays integral.
package mwmatch

import "slices"

// blossomState is the full working state of one run. It is allocated per
// call and never shared.
type blossomState struct {
	nv int

	ei, ej []int   // edge endpoints
	ew     []int64 // edge weights

	endpoint  []int   // endpoint[p] = vertex at end p
	neighbend [][]int // neighbend[v] = remote ends p of edges incident to v

	mate     []int // mate[v] = remote end p of v's matched edge, or -1
	label    []int
	labelend []int // end p through which the label was obtained, or -1

	inblossom     []int // top-level blossom containing vertex v
	blossomparent []int
	blossomchilds [][]int // sub-blossoms in cyclic order, base child first
	blossombase   []int
	blossomendps  [][]int // ends connecting consecutive children

	bestedge         []int   // least-slack edge to a different S-blossom
	blossombestedges [][]int // nil means "not computed"
	unused           []int

	dual      []int64
	allowedge []bool
	queue     []int
}

// at indexes s with Python-style wrap for j in [-len(s), len(s)).
func at(s []int, j int) int {
	if j < 0 {
		j += len(s)
	}

	return s[j]
}

// rotate returns a new slice s[i:] + s[:i].
func rotate(s []int, i int) []int {
	out := make([]int, 0, len(s))
	out = append(out, s[i:]...)

	return append(out, s[:i]...)
}

// maxWeightMatching returns mate[v] (partner vertex or -1) of a maximum-weight
// matching of maximum cardinality over the complete graph on nv vertices
// with integer weights w(i,j), i<j.
//
// Complexity: O(nv³) time, O(nv²) memory.
func maxWeightMatching(nv int, w func(i, j int) int64) []int {
	if nv < 2 {
		mate := make([]int, nv)
		for i := range mate {
			mate[i] = -1
		}
		return mate
	}

	s := newBlossomState(nv, w)
	s.run()

	out := make([]int, nv)
	for v := 0; v < nv; v++ {
		if s.mate[v] >= 0 {
			out[v] = s.endpoint[s.mate[v]]
		} else {
			out[v] = -1
		}
	}

	return out
}

func newBlossomState(nv int, w func(i, j int) int64) *blossomState {
	ne := nv * (nv - 1) / 2
	s := &blossomState{
		nv:               nv,
		ei:               make([]int, 0, ne),
		ej:               make([]int, 0, ne),
		ew:               make([]int64, 0, ne),
		endpoint:         make([]int, 2*ne),
		neighbend:        make([][]int, nv),
		mate:             make([]int, nv),
		label:            make([]int, 2*nv),
		labelend:         make([]int, 2*nv),
		inblossom:        make([]int, nv),
		blossomparent:    make([]int, 2*nv),
		blossomchilds:    make([][]int, 2*nv),
		blossombase:      make([]int, 2*nv),
		blossomendps:     make([][]int, 2*nv),
		bestedge:         make([]int, 2*nv),
		blossombestedges: make([][]int, 2*nv),
		unused:           make([]int, 0, nv),
		dual:             make([]int64, 2*nv),
		allowedge:        make([]bool, ne),
	}

	var (
		i, j      int
		maxweight int64
	)
	for i = 0; i < nv; i++ {
		for j = i + 1; j < nv; j++ {
			wt := w(i, j)
			k := len(s.ei)
			s.ei = append(s.ei, i)
			s.ej = append(s.ej, j)
			s.ew = append(s.ew, wt)
			s.endpoint[2*k] = i
			s.endpoint[2*k+1] = j
			s.neighbend[i] = append(s.neighbend[i], 2*k+1)
			s.neighbend[j] = append(s.neighbend[j], 2*k)
			if wt > maxweight {
				maxweight = wt
			}
		}
	}

	for v := 0; v < nv; v++ {
		s.mate[v] = -1
		s.inblossom[v] = v
		s.blossombase[v] = v
		s.dual[v] = maxweight
	}
	for b := 0; b < 2*nv; b++ {
		s.labelend[b] = -1
		s.blossomparent[b] = -1
		s.bestedge[b] = -1
		if b >= nv {
			s.blossombase[b] = -1
		}
	}
	for b := nv; b < 2*nv; b++ {
		s.unused = append(s.unused, b)
	}

	return s
}

func (s *blossomState) slack(k int) int64 {
	return s.dual[s.ei[k]] + s.dual[s.ej[k]] - 2*s.ew[k]
}

// leaves returns all vertices contained (recursively) in blossom b.
func (s *blossomState) leaves(b int) []int {
	if b < s.nv {
		return []int{b}
	}
	var out []int
	for _, t := range s.blossomchilds[b] {
		if t < s.nv {
			out = append(out, t)
		} else {
			out = append(out, s.leaves(t)...)
		}
	}

	return out
}

// assignLabel labels the top-level blossom containing w with t, reached
// through end p. A T-label immediately propagates S to the mate of the base.
func (s *blossomState) assignLabel(w, t, p int) {
	b := s.inblossom[w]
	s.label[w], s.label[b] = t, t
	s.labelend[w], s.labelend[b] = p, p
	s.bestedge[w], s.bestedge[b] = -1, -1
	if t == 1 {
		s.queue = append(s.queue, s.leaves(b)...)
		return
	}
	base := s.blossombase[b]
	s.assignLabel(s.endpoint[s.mate[base]], 1, s.mate[base]^1)
}

// scanBlossom traces back from v and w towards their roots. It returns the
// base of a new blossom, or -1 when an augmenting path was found.
func (s *blossomState) scanBlossom(v, w int) int {
	var (
		path []int
		base = -1
		b    int
	)
	for v != -1 || w != -1 {
		b = s.inblossom[v]
		if s.label[b]&4 != 0 {
			base = s.blossombase[b]
			break
		}
		path = append(path, b)
		s.label[b] = 5
		if s.labelend[b] == -1 {
			v = -1
		} else {
			v = s.endpoint[s.labelend[b]]
			b = s.inblossom[v]
			v = s.endpoint[s.labelend[b]]
		}
		if w != -1 {
			v, w = w, v
		}
	}
	for _, b = range path {
		s.label[b] = 1
	}

	return base
}

// addBlossom contracts the odd cycle closed by edge k into a new S-blossom
// with the given base.
func (s *blossomState) addBlossom(base, k int) {
	v, w := s.ei[k], s.ej[k]
	bb := s.inblossom[base]
	bv := s.inblossom[v]
	bw := s.inblossom[w]

	b := s.unused[len(s.unused)-1]
	s.unused = s.unused[:len(s.unused)-1]
	s.blossombase[b] = base
	s.blossomparent[b] = -1
	s.blossomparent[bb] = b

	var path, endps []int
	for bv != bb {
		s.blossomparent[bv] = b
		path = append(path, bv)
		endps = append(endps, s.labelend[bv])
		v = s.endpoint[s.labelend[bv]]
		bv = s.inblossom[v]
	}
	path = append(path, bb)
	slices.Reverse(path)
	slices.Reverse(endps)
	endps = append(endps, 2*k)
	for bw != bb {
		s.blossomparent[bw] = b
		path = append(path, bw)
		endps = append(endps, s.labelend[bw]^1)
		w = s.endpoint[s.labelend[bw]]
		bw = s.inblossom[w]
	}
	s.blossomchilds[b] = path
	s.blossomendps[b] = endps

	s.label[b] = 1
	s.labelend[b] = s.labelend[bb]
	s.dual[b] = 0
	for _, v = range s.leaves(b) {
		if s.label[s.inblossom[v]] == 2 {
			// Former T-vertices become S and must be scanned.
			s.queue = append(s.queue, v)
		}
		s.inblossom[v] = b
	}

	// Least-slack edges from the new blossom to every neighbouring S-blossom.
	bestedgeto := make([]int, 2*s.nv)
	for i := range bestedgeto {
		bestedgeto[i] = -1
	}
	for _, bv = range path {
		var nblists [][]int
		if s.blossombestedges[bv] == nil {
			for _, leaf := range s.leaves(bv) {
				lst := make([]int, len(s.neighbend[leaf]))
				for i, p := range s.neighbend[leaf] {
					lst[i] = p / 2
				}
				nblists = append(nblists, lst)
			}
		} else {
			nblists = [][]int{s.blossombestedges[bv]}
		}
		for _, nblist := range nblists {
			for _, kk := range nblist {
				j := s.ej[kk]
				if s.inblossom[j] == b {
					j = s.ei[kk]
				}
				bj := s.inblossom[j]
				if bj != b && s.label[bj] == 1 &&
					(bestedgeto[bj] == -1 || s.slack(kk) < s.slack(bestedgeto[bj])) {
					bestedgeto[bj] = kk
				}
			}
		}
		s.blossombestedges[bv] = nil
		s.bestedge[bv] = -1
	}

	best := make([]int, 0, len(bestedgeto))
	for _, kk := range bestedgeto {
		if kk != -1 {
			best = append(best, kk)
		}
	}
	s.blossombestedges[b] = best
	s.bestedge[b] = -1
	for _, kk := range best {
		if s.bestedge[b] == -1 || s.slack(kk) < s.slack(s.bestedge[b]) {
			s.bestedge[b] = kk
		}
	}
}

// expandBlossom dissolves top-level blossom b. During a stage (endstage ==
// false) a T-blossom's children are relabelled so the alternating tree stays
// consistent; at end of stage zero-dual children are expanded recursively.
func (s *blossomState) expandBlossom(b int, endstage bool) {
	for _, sub := range s.blossomchilds[b] {
		s.blossomparent[sub] = -1
		switch {
		case sub < s.nv:
			s.inblossom[sub] = sub
		case endstage && s.dual[sub] == 0:
			s.expandBlossom(sub, endstage)
		default:
			for _, v := range s.leaves(sub) {
				s.inblossom[v] = sub
			}
		}
	}

	if !endstage && s.label[b] == 2 {
		childs := s.blossomchilds[b]
		endps := s.blossomendps[b]
		entrychild := s.inblossom[s.endpoint[s.labelend[b]^1]]
		j := slices.Index(childs, entrychild)

		var jstep, endptrick int
		if j&1 != 0 {
			// Odd position: walk forward around the cycle.
			j -= len(childs)
			jstep, endptrick = 1, 0
		} else {
			jstep, endptrick = -1, 1
		}

		p := s.labelend[b]
		for j != 0 {
			// Relabel the T-sub-blossom.
			s.label[s.endpoint[p^1]] = 0
			s.label[s.endpoint[at(endps, j-endptrick)^endptrick^1]] = 0
			s.assignLabel(s.endpoint[p^1], 2, p)
			// Step to the next S-sub-blossom and note its forward end.
			s.allowedge[at(endps, j-endptrick)/2] = true
			j += jstep
			p = at(endps, j-endptrick) ^ endptrick
			// Step to the next T-sub-blossom.
			s.allowedge[p/2] = true
			j += jstep
		}

		// The base child becomes T without stepping through to its mate.
		bv := at(childs, j)
		s.label[s.endpoint[p^1]], s.label[bv] = 2, 2
		s.labelend[s.endpoint[p^1]], s.labelend[bv] = p, p
		s.bestedge[bv] = -1

		j += jstep
		for at(childs, j) != entrychild {
			bv = at(childs, j)
			if s.label[bv] == 1 {
				// Got label S through a neighbour already; leave it.
				j += jstep
				continue
			}
			reached := -1
			for _, v := range s.leaves(bv) {
				if s.label[v] != 0 {
					reached = v
					break
				}
			}
			if reached >= 0 {
				s.label[reached] = 0
				s.label[s.endpoint[s.mate[s.blossombase[bv]]]] = 0
				s.assignLabel(reached, 2, s.labelend[reached])
			}
			j += jstep
		}
	}

	s.label[b], s.labelend[b] = -1, -1
	s.blossomchilds[b], s.blossomendps[b] = nil, nil
	s.blossombase[b] = -1
	s.blossombestedges[b] = nil
	s.bestedge[b] = -1
	s.unused = append(s.unused, b)
}

// augmentBlossom swaps matched and unmatched edges inside blossom b along
// the even path from vertex v to the base, then rotates b so v's child is
// the new base child.
func (s *blossomState) augmentBlossom(b, v int) {
	t := v
	for s.blossomparent[t] != b {
		t = s.blossomparent[t]
	}
	if t >= s.nv {
		s.augmentBlossom(t, v)
	}

	childs := s.blossomchilds[b]
	endps := s.blossomendps[b]
	i := slices.Index(childs, t)
	j := i

	var jstep, endptrick int
	if i&1 != 0 {
		j -= len(childs)
		jstep, endptrick = 1, 0
	} else {
		jstep, endptrick = -1, 1
	}

	var p int
	for j != 0 {
		j += jstep
		t = at(childs, j)
		p = at(endps, j-endptrick) ^ endptrick
		if t >= s.nv {
			s.augmentBlossom(t, s.endpoint[p])
		}
		j += jstep
		t = at(childs, j)
		if t >= s.nv {
			s.augmentBlossom(t, s.endpoint[p^1])
		}
		s.mate[s.endpoint[p]] = p ^ 1
		s.mate[s.endpoint[p^1]] = p
	}

	s.blossomchilds[b] = rotate(childs, i)
	s.blossomendps[b] = rotate(endps, i)
	s.blossombase[b] = s.blossombase[s.blossomchilds[b][0]]
}

// augmentMatching flips the augmenting path through edge k.
func (s *blossomState) augmentMatching(k int) {
	starts := [2][2]int{{s.ei[k], 2*k + 1}, {s.ej[k], 2 * k}}
	for _, sp := range starts {
		v, p := sp[0], sp[1]
		for {
			bs := s.inblossom[v]
			if bs >= s.nv {
				s.augmentBlossom(bs, v)
			}
			s.mate[v] = p
			if s.labelend[bs] == -1 {
				// Reached a single vertex root.
				break
			}
			t := s.endpoint[s.labelend[bs]]
			bt := s.inblossom[t]
			v = s.endpoint[s.labelend[bt]]
			j := s.endpoint[s.labelend[bt]^1]
			if bt >= s.nv {
				s.augmentBlossom(bt, j)
			}
			s.mate[j] = s.labelend[bt]
			p = s.labelend[bt] ^ 1
		}
	}
}

// run executes at most nv stages; each stage either augments the matching
// by one edge or proves no augmenting path of positive gain exists.
func (s *blossomState) run() {
	nv := s.nv
	for stage := 0; stage < nv; stage++ {
		for i := range s.label {
			s.label[i] = 0
			s.bestedge[i] = -1
		}
		for b := nv; b < 2*nv; b++ {
			s.blossombestedges[b] = nil
		}
		for k := range s.allowedge {
			s.allowedge[k] = false
		}
		s.queue = s.queue[:0]

		for v := 0; v < nv; v++ {
			if s.mate[v] == -1 && s.label[s.inblossom[v]] == 0 {
				s.assignLabel(v, 1, -1)
			}
		}

		augmented := false
		for {
			for len(s.queue) > 0 && !augmented {
				v := s.queue[len(s.queue)-1]
				s.queue = s.queue[:len(s.queue)-1]
				augmented = s.scanVertex(v)
			}
			if augmented {
				break
			}
			if s.dualStep() {
				break
			}
		}

		if !augmented {
			break
		}

		// End of stage: expand S-blossoms whose dual reached zero.
		for b := nv; b < 2*nv; b++ {
			if s.blossomparent[b] == -1 && s.blossombase[b] >= 0 &&
				s.label[b] == 1 && s.dual[b] == 0 {
				s.expandBlossom(b, true)
			}
		}
	}
}

// scanVertex explores all edges of S-vertex v. It reports whether an
// augmentation happened.
func (s *blossomState) scanVertex(v int) bool {
	var kslack int64
	for _, p := range s.neighbend[v] {
		k := p / 2
		w := s.endpoint[p]
		if s.inblossom[v] == s.inblossom[w] {
			continue
		}
		if !s.allowedge[k] {
			kslack = s.slack(k)
			if kslack <= 0 {
				s.allowedge[k] = true
			}
		}

		switch {
		case s.allowedge[k]:
			switch {
			case s.label[s.inblossom[w]] == 0:
				// w is free: label it T and its mate S.
				s.assignLabel(w, 2, p^1)
			case s.label[s.inblossom[w]] == 1:
				base := s.scanBlossom(v, w)
				if base >= 0 {
					s.addBlossom(base, k)
				} else {
					s.augmentMatching(k)
					return true
				}
			case s.label[w] == 0:
				// w is inside a T-blossom but not yet reached.
				s.label[w] = 2
				s.labelend[w] = p ^ 1
			}
		case s.label[s.inblossom[w]] == 1:
			b := s.inblossom[v]
			if s.bestedge[b] == -1 || kslack < s.slack(s.bestedge[b]) {
				s.bestedge[b] = k
			}
		case s.label[w] == 0:
			if s.bestedge[w] == -1 || kslack < s.slack(s.bestedge[w]) {
				s.bestedge[w] = k
			}
		}
	}

	return false
}

// dualStep computes the largest dual adjustment that keeps feasibility,
// applies it, and acts on the constraint that became tight. It reports true
// when the stage must end without augmentation (optimum reached).
func (s *blossomState) dualStep() bool {
	nv := s.nv
	var (
		deltatype    = -1
		delta        int64
		deltaedge    = -1
		deltablossom = -1
	)

	// Type 2: free vertex with an edge to an S-vertex.
	for v := 0; v < nv; v++ {
		if s.label[s.inblossom[v]] == 0 && s.bestedge[v] != -1 {
			d := s.slack(s.bestedge[v])
			if deltatype == -1 || d < delta {
				delta, deltatype, deltaedge = d, 2, s.bestedge[v]
			}
		}
	}
	// Type 3: edge between two S-blossoms.
	for b := 0; b < 2*nv; b++ {
		if s.blossomparent[b] == -1 && s.label[b] == 1 && s.bestedge[b] != -1 {
			d := s.slack(s.bestedge[b]) / 2
			if deltatype == -1 || d < delta {
				delta, deltatype, deltaedge = d, 3, s.bestedge[b]
			}
		}
	}
	// Type 4: T-blossom whose dual reaches zero.
	for b := nv; b < 2*nv; b++ {
		if s.blossombase[b] >= 0 && s.blossomparent[b] == -1 && s.label[b] == 2 &&
			(deltatype == -1 || s.dual[b] < delta) {
			delta, deltatype, deltablossom = s.dual[b], 4, b
		}
	}
	if deltatype == -1 {
		// No further improvement possible with maximum cardinality.
		deltatype = 1
		delta = s.dual[0]
		for v := 1; v < nv; v++ {
			if s.dual[v] < delta {
				delta = s.dual[v]
			}
		}
		if delta < 0 {
			delta = 0
		}
	}

	for v := 0; v < nv; v++ {
		switch s.label[s.inblossom[v]] {
		case 1:
			s.dual[v] -= delta
		case 2:
			s.dual[v] += delta
		}
	}
	for b := nv; b < 2*nv; b++ {
		if s.blossombase[b] >= 0 && s.blossomparent[b] == -1 {
			switch s.label[b] {
			case 1:
				s.dual[b] += delta
			case 2:
				s.dual[b] -= delta
			}
		}
	}

	switch deltatype {
	case 1:
		return true
	case 2:
		s.allowedge[deltaedge] = true
		i := s.ei[deltaedge]
		if s.label[s.inblossom[i]] == 0 {
			i = s.ej[deltaedge]
		}
		s.queue = append(s.queue, i)
	case 3:
		s.allowedge[deltaedge] = true
		s.queue = append(s.queue, s.ei[deltaedge])
	case 4:
		s.expandBlossom(deltablossom, false)
	}

	return false
}
