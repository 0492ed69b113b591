package layout

// spouseCluster returns start and every spouse reachable from it through
// spouse edges, in breadth-first order. Members for which skip reports true
// are neither included nor expanded, except start itself.
func spouseCluster(g *graph, start int, skip func(int) bool) []int {
	cluster := []int{start}
	in := map[int]bool{start: true}
	for q := 0; q < len(cluster); q++ {
		for _, sp := range g.spouses[cluster[q]] {
			if in[sp] || skip(sp) {
				continue
			}
			in[sp] = true
			cluster = append(cluster, sp)
		}
	}
	return cluster
}

// labelHouses partitions people into houses. Each unassigned person in
// queue order founds a house: it and the fatherless members of its spouse
// cluster become members rooted at it. The house then grows breadth-first
// through the children of every family its members head, taking each
// unassigned child with the child's fatherless spouses. Only male children
// carry the walk on to the next generation.
func labelHouses(g *graph, s *state, queue []int) {
	s.clearMarks()
	for i := range s.house {
		s.house[i] = none
	}

	assign := func(who, root int) {
		cluster := spouseCluster(g, who, func(i int) bool { return s.mark[i] })
		for _, m := range cluster {
			if m == who || g.father[m] == none {
				s.house[m] = root
				s.mark[m] = true
			}
		}
	}

	for _, root := range queue {
		if s.mark[root] {
			continue
		}
		assign(root, root)

		todo := []int{root}
		for len(todo) > 0 {
			head := todo[0]
			todo = todo[1:]
			for _, fi := range g.spouseIn[head] {
				for _, c := range g.families[fi].children {
					if s.mark[c] {
						continue
					}
					assign(c, root)
					if g.male(c) {
						todo = append(todo, c)
					}
				}
			}
		}
	}
}

// houseOrder returns the distinct house roots in queue order.
func houseOrder(s *state, queue []int) []int {
	roots := make(map[int]bool)
	for _, h := range s.house {
		if h != none {
			roots[h] = true
		}
	}
	var order []int
	for _, i := range queue {
		if roots[i] {
			order = append(order, i)
		}
	}
	return order
}
