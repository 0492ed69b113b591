package layout

import (
	"slices"

	"github.com/charmbracelet/log"
)

// packer assigns X coordinates. boundary[level] is the next free X on each
// row; it only ever grows, so two placements can never share a coordinate on
// the same row.
type packer struct {
	g        *graph
	s        *state
	opts     Options
	boundary []float64
	logger   *log.Logger
}

func newPacker(g *graph, s *state, rows int, opts Options, logger *log.Logger) *packer {
	s.clearMarks()
	return &packer{
		g:        g,
		s:        s,
		opts:     opts,
		boundary: make([]float64, rows),
		logger:   logger,
	}
}

// packHouses walks every house in order. When a walk touches a person whose
// parent belongs to a house still waiting in the queue, that house moves to
// the front. It returns the house roots in the order they were packed.
func (p *packer) packHouses(order []int) []int {
	packed := make([]int, 0, len(order))
	remaining := slices.Clone(order)
	for len(remaining) > 0 {
		root := remaining[0]
		remaining = remaining[1:]
		p.logger.Debug("packing house", "head", p.g.people[root].ID)
		packed = append(packed, root)
		pending := p.walk(root)
		remaining = promote(remaining, pending)
	}
	return packed
}

// packRest places everyone no house walk reached, in input order, each as the
// head of its own walk.
func (p *packer) packRest() int {
	n := 0
	for i := range p.g.len() {
		if p.s.mark[i] {
			continue
		}
		p.walk(i)
		n++
	}
	return n
}

// walk places a house breadth-first from its head: the head's spouse group,
// then for each family the head is a spouse in, the children and their spouse
// groups. Every child is placed, but only sons carry the walk on to the next
// generation; a daughter's children belong to her husband's line. It returns
// the houses reported by placeSpouseGroup, in discovery order.
func (p *packer) walk(head int) []int {
	g := p.g
	var pending []int
	walked := map[int]bool{head: true}
	todo := []int{head}
	for len(todo) > 0 {
		cur := todo[0]
		todo = todo[1:]
		pending = append(pending, p.placeSpouseGroup(cur, false)...)

		for _, fi := range g.spouseIn[cur] {
			kids := p.spousedOutside(g.sortedChildren(fi))
			leftBias := len(kids) > 1
			for _, c := range kids {
				pending = append(pending, p.placeSpouseGroup(c, leftBias)...)
				leftBias = false
				if !walked[c] && g.male(c) {
					walked[c] = true
					todo = append(todo, c)
				}
			}
		}
	}
	p.closeHouse()
	return pending
}

// spousedOutside moves the first two children who have spouses, searched from
// both ends inward, to the front and the back of the sibling order.
func (p *packer) spousedOutside(kids []int) []int {
	n := len(kids)
	first, second := none, none
	for k := range n {
		at := flop(k, n)
		if len(p.g.spouses[kids[at]]) == 0 {
			continue
		}
		if first == none {
			first = at
		} else if second == none {
			second = at
		}
	}
	if first == none {
		return kids
	}

	out := make([]int, 0, n)
	out = append(out, kids[first])
	for k, c := range kids {
		if k != first && k != second {
			out = append(out, c)
		}
	}
	if second != none {
		out = append(out, kids[second])
	}
	return out
}

// flop maps 0, 1, 2, 3, ... to 0, n-1, 1, n-2, ...
func flop(k, n int) int {
	h := k / 2
	if k%2 == 0 {
		return h
	}
	return n - (h + 1)
}

// closeHouse reserves the house gap. When the rows are not all level with one
// another, every row moves to the rightmost boundary plus the gap.
func (p *packer) closeHouse() {
	b := p.boundary
	if len(b) == 0 {
		return
	}
	hi := b[0]
	uneven := false
	for l := 1; l < len(b); l++ {
		hi = max(hi, b[l])
		if b[l] != b[l-1] {
			uneven = true
		}
	}
	if !uneven {
		return
	}
	for l := range b {
		b[l] = hi + p.opts.HouseGap
	}
}

// placeSpouseGroup places who and the unplaced fatherless members of its
// spouse cluster. Before placing, it reports the houses of the cluster's
// parents that differ from who's house; it does so even when who is already
// placed, in which case nothing else happens.
//
// The group is laid out as two lists around who. The left list is who
// followed by a chain of fatherless spouses; the right list is a second such
// chain, extended with any fatherless cluster members left over. Without
// leftBias the lists swap sides. Left is placed right to left, then right is
// placed left to right, each on its own row's boundary.
func (p *packer) placeSpouseGroup(who int, leftBias bool) []int {
	g, s := p.g, p.s
	cluster := spouseCluster(g, who, func(i int) bool { return s.mark[i] })

	var pending []int
	own := s.house[who]
	for _, m := range cluster {
		for _, parent := range [...]int{g.father[m], g.mother[m]} {
			if parent == none {
				continue
			}
			if h := s.house[parent]; h != none && h != own {
				pending = append(pending, h)
			}
		}
	}

	if s.mark[who] {
		return pending
	}

	marryingIn := func(i int) bool { return !s.mark[i] && g.father[i] == none && i != who }

	left := p.chain(who, []int{who}, marryingIn)
	right := p.chain(who, nil, func(i int) bool {
		return marryingIn(i) && !slices.Contains(left, i)
	})
	for _, m := range cluster {
		if marryingIn(m) && !slices.Contains(left, m) && !slices.Contains(right, m) {
			right = append(right, m)
		}
	}

	if !leftBias {
		left, right = right, left
	}
	for _, m := range slices.Backward(left) {
		p.place(m)
	}
	for _, m := range right {
		p.place(m)
	}
	return pending
}

// chain extends list by repeatedly stepping from the last person reached to
// its first spouse that ok accepts and list does not already hold.
func (p *packer) chain(from int, list []int, ok func(int) bool) []int {
	for cur := from; ; {
		next := none
		for _, sp := range p.g.spouses[cur] {
			if ok(sp) && !slices.Contains(list, sp) {
				next = sp
				break
			}
		}
		if next == none {
			return list
		}
		list = append(list, next)
		cur = next
	}
}

func (p *packer) place(i int) {
	l := p.s.level[i]
	p.s.x[i] = p.boundary[l]
	p.s.mark[i] = true
	p.boundary[l] += 2 * p.opts.PersonWidth
}

// promote moves the pending houses still waiting in remaining to its front,
// in discovery order.
func promote(remaining, pending []int) []int {
	var front []int
	for _, h := range pending {
		if slices.Contains(remaining, h) && !slices.Contains(front, h) {
			front = append(front, h)
		}
	}
	if len(front) == 0 {
		return remaining
	}
	rest := slices.DeleteFunc(remaining, func(h int) bool { return slices.Contains(front, h) })
	return append(front, rest...)
}
