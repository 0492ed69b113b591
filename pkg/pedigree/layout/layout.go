package layout

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dropline/pkg/pedigree"
)

// Placement is the layout outcome for one person.
type Placement struct {
	ID       string
	Level    int    // generation row, 0 is the bottom row
	House    string // ID of the house root, empty when unhoused
	Position pedigree.Point
}

// Result summarizes a layout pass.
type Result struct {
	// Levels is the number of generation rows.
	Levels int

	// Houses lists house root IDs in the order they were packed.
	Houses []string

	// Placements has one entry per individual, in input order.
	Placements []Placement
}

// Run lays out pop and writes each individual's position through
// [pedigree.Individual.LayOut]. A population with fewer than two individuals
// is left untouched and yields an empty Result.
//
// Run never fails. A nil logger discards output.
func Run(pop *pedigree.Population, opts Options, logger *log.Logger) Result {
	if logger == nil {
		logger = discardLogger()
	}
	if pop == nil || pop.Len() <= 1 {
		return Result{}
	}
	opts = opts.WithDefaults()
	start := time.Now()

	g := buildGraph(pop)
	s := newState(g.len())

	assignLevels(g, s, opts.ComponentStep)
	rows := normalizeLevels(s)
	logger.Debug("levels assigned", "rows", rows)

	scoreBranches(g, s)
	queue := priorityQueue(g, s)
	logger.Debug("branches scored", "progenitors", len(queue))

	labelHouses(g, s, queue)
	order := houseOrder(s, queue)
	logger.Debug("houses labeled", "houses", len(order))

	pk := newPacker(g, s, rows, opts, logger)
	packed := pk.packHouses(order)
	if n := pk.packRest(); n > 0 {
		logger.Debug("placed unhoused groups", "groups", n)
	}

	res := emitPositions(g, s, rows, packed, opts)
	logger.Info("layout complete",
		"individuals", g.len(),
		"rows", rows,
		"houses", len(packed),
		"elapsed", time.Since(start))
	return res
}

// emitPositions writes every person's final point and collects the Result.
func emitPositions(g *graph, s *state, rows int, order []int, opts Options) Result {
	res := Result{
		Levels:     rows,
		Houses:     make([]string, len(order)),
		Placements: make([]Placement, g.len()),
	}
	for k, h := range order {
		res.Houses[k] = g.people[h].ID
	}
	for i, who := range g.people {
		at := pedigree.Point{
			X: s.x[i],
			Y: float64(opts.LevelCeiling-s.level[i]) * opts.GenerationHeight,
		}
		who.LayOut(at)

		pl := Placement{ID: who.ID, Level: s.level[i], Position: at}
		if h := s.house[i]; h != none {
			pl.House = g.people[h].ID
		}
		res.Placements[i] = pl
	}
	return res
}
