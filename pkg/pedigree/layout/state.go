package layout

// state holds the per-person annotations the phases produce, indexed like
// graph.people. Each phase writes its own slice; mark is the only field
// shared between phases and is reset at each phase entry.
type state struct {
	level []int     // normalized generation row
	score []int     // branch depth
	house []int     // house root index, or none
	x     []float64 // horizontal position
	mark  []bool
}

func newState(n int) *state {
	return &state{
		level: make([]int, n),
		score: make([]int, n),
		house: filled(n, none),
		x:     make([]float64, n),
		mark:  make([]bool, n),
	}
}

func (s *state) clearMarks() { clear(s.mark) }
