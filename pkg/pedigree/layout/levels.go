package layout

import "slices"

// assignLevels gives every person a raw generation level. Each connected
// component starts at the next multiple of step. Within a component the walk
// is a depth-first traversal in which the first level to reach a person wins;
// later constraints that disagree (pedigree loops, inconsistent data) are
// ignored.
//
// Neighbours are visited in this order: father (or mother when there is no
// father) one level up, siblings on the same level, children one level down,
// spouses on the same level.
func assignLevels(g *graph, s *state, step int) {
	s.clearMarks()

	type visit struct{ who, level int }
	var stack []visit
	var next []visit

	component := 0
	for root := range g.len() {
		if s.mark[root] {
			continue
		}
		stack = append(stack[:0], visit{root, component * step})
		component++

		for len(stack) > 0 {
			v := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if s.mark[v.who] {
				continue
			}
			s.mark[v.who] = true
			s.level[v.who] = v.level

			next = next[:0]
			if f := g.father[v.who]; f != none {
				next = append(next, visit{f, v.level + 1})
			} else if m := g.mother[v.who]; m != none {
				next = append(next, visit{m, v.level + 1})
			}
			if fi := g.childOf[v.who]; fi != none {
				for _, sib := range g.families[fi].children {
					next = append(next, visit{sib, v.level})
				}
			}
			for _, c := range g.children[v.who] {
				next = append(next, visit{c, v.level - 1})
			}
			for _, sp := range g.spouses[v.who] {
				next = append(next, visit{sp, v.level})
			}

			// Reversed so the first neighbour is popped first.
			for _, n := range slices.Backward(next) {
				if !s.mark[n.who] {
					stack = append(stack, n)
				}
			}
		}
	}
}

// normalizeLevels shifts all levels so the minimum is zero and returns the
// number of rows.
func normalizeLevels(s *state) int {
	if len(s.level) == 0 {
		return 0
	}
	lo, hi := slices.Min(s.level), slices.Max(s.level)
	for i := range s.level {
		s.level[i] -= lo
	}
	return hi - lo + 1
}
