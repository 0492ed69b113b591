package layout

import (
	"cmp"
	"slices"

	"github.com/matzehuels/dropline/pkg/pedigree"
)

const none = -1

type family struct {
	husband  int
	wife     int
	children []int
}

// graph is the index-addressed relationship graph. It is built once per pass
// and never mutated by the phases that read it.
type graph struct {
	people   []*pedigree.Individual
	families []family

	father   []int
	mother   []int
	spouses  [][]int
	children [][]int
	childOf  []int   // family index in which the person is a child
	spouseIn [][]int // family indices in which the person is a spouse
}

func (g *graph) len() int { return len(g.people) }

func (g *graph) male(i int) bool { return g.people[i].Sex == pedigree.SexMale }

// buildGraph resolves the population's ID references into indices. A child
// listed by more than one family keeps the first one. Self-references and
// repeated edges are dropped along with dangling IDs.
func buildGraph(pop *pedigree.Population) *graph {
	n := len(pop.Individuals)
	g := &graph{
		people:   pop.Individuals,
		father:   filled(n, none),
		mother:   filled(n, none),
		spouses:  make([][]int, n),
		children: make([][]int, n),
		childOf:  filled(n, none),
		spouseIn: make([][]int, n),
	}
	index := pop.Index()
	resolve := func(id string) int {
		if id == "" {
			return none
		}
		if i, ok := index[id]; ok {
			return i
		}
		return none
	}

	for _, f := range pop.Families {
		h, w := resolve(f.Husband), resolve(f.Wife)
		if h == w {
			w = none
		}
		fi := len(g.families)
		g.families = append(g.families, family{husband: h, wife: w})

		if h != none {
			g.spouseIn[h] = append(g.spouseIn[h], fi)
		}
		if w != none {
			g.spouseIn[w] = append(g.spouseIn[w], fi)
		}
		if h != none && w != none {
			g.spouses[h] = appendUnique(g.spouses[h], w)
			g.spouses[w] = appendUnique(g.spouses[w], h)
		}

		for _, id := range f.Children {
			c := resolve(id)
			if c == none || c == h || c == w || g.childOf[c] != none {
				continue
			}
			g.childOf[c] = fi
			g.families[fi].children = append(g.families[fi].children, c)
			if h != none {
				g.father[c] = h
				g.children[h] = append(g.children[h], c)
			}
			if w != none {
				g.mother[c] = w
				g.children[w] = append(g.children[w], c)
			}
		}
	}
	return g
}

// sortedChildren returns a family's children ordered by birth key. Equal keys
// keep their listed order.
func (g *graph) sortedChildren(fi int) []int {
	kids := slices.Clone(g.families[fi].children)
	slices.SortStableFunc(kids, func(a, b int) int {
		return cmp.Compare(g.people[a].Birth, g.people[b].Birth)
	})
	return kids
}

func filled(n, v int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = v
	}
	return s
}

func appendUnique(s []int, v int) []int {
	if slices.Contains(s, v) {
		return s
	}
	return append(s, v)
}
