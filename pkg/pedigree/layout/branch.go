package layout

import (
	"cmp"
	"slices"

	"github.com/matzehuels/dropline/pkg/pedigree"
)

// scoreBranches computes the branch depth of every progenitor. For each
// person, the count starts at 1 for a male and 0 otherwise and grows by one
// per father climbed. The topmost ancestor keeps the largest count nominated
// for it. That ancestor's mother is simply assigned count+1, so the last
// person in input order to climb to her sets her score.
//
// A climb stops when it would revisit someone already on its own path.
func scoreBranches(g *graph, s *state) {
	clear(s.score)
	seen := make(map[int]bool)
	for i := range g.len() {
		c := 0
		if g.male(i) {
			c = 1
		}

		clear(seen)
		seen[i] = true
		top := i
		for f := g.father[top]; f != none && !seen[f]; f = g.father[top] {
			seen[f] = true
			c++
			top = f
		}

		s.score[top] = max(s.score[top], c)
		if m := g.mother[top]; m != none {
			s.score[m] = c + 1
		}
	}
}

func sexRank(sex pedigree.Sex) int {
	switch sex {
	case pedigree.SexMale:
		return 2
	case pedigree.SexFemale:
		return 1
	default:
		return 0
	}
}

// comparePriority orders people for house labeling and packing: higher branch
// score first, then higher level, then male before female before unknown, and
// finally input order. It is a total order, so sorting with it is
// deterministic.
func comparePriority(g *graph, s *state, a, b int) int {
	if c := cmp.Compare(s.score[b], s.score[a]); c != 0 {
		return c
	}
	if c := cmp.Compare(s.level[b], s.level[a]); c != 0 {
		return c
	}
	if c := cmp.Compare(sexRank(g.people[b].Sex), sexRank(g.people[a].Sex)); c != 0 {
		return c
	}
	return cmp.Compare(a, b)
}

// priorityQueue returns every person with a nonzero branch score in priority
// order.
func priorityQueue(g *graph, s *state) []int {
	var q []int
	for i := range g.len() {
		if s.score[i] != 0 {
			q = append(q, i)
		}
	}
	slices.SortFunc(q, func(a, b int) int { return comparePriority(g, s, a, b) })
	return q
}
