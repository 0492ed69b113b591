package pedigree

import (
	"errors"
	"math"
	"strings"
)

var (
	// ErrInvalidIndividualID is returned by [Population.Validate] when an
	// individual has an empty ID.
	ErrInvalidIndividualID = errors.New("individual ID must not be empty")

	// ErrDuplicateIndividualID is returned by [Population.Validate] when two
	// individuals share an ID.
	ErrDuplicateIndividualID = errors.New("duplicate individual ID")
)

// Sex is the recorded sex of an individual.
type Sex int

const (
	SexUnknown Sex = iota
	SexMale
	SexFemale
)

// String returns the GEDCOM letter for the sex ("M", "F" or "U").
func (s Sex) String() string {
	switch s {
	case SexMale:
		return "M"
	case SexFemale:
		return "F"
	default:
		return "U"
	}
}

// ParseSex converts a GEDCOM-style sex value. Anything other than M/F
// (case-insensitive, full words accepted) is [SexUnknown].
func ParseSex(s string) Sex {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "M", "MALE":
		return SexMale
	case "F", "FEMALE":
		return SexFemale
	default:
		return SexUnknown
	}
}

// Point is a position in chart space. Y grows downward.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns p translated by -q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Individual is one person in the chart.
//
// Birth is a sortable birth-order key used only to order siblings; zero means
// unknown and sorts first.
type Individual struct {
	ID     string
	Name   string
	Sex    Sex
	Birth  int64
	Stored *Point // coordinate carried by the source record, if any

	laidOut *Point
}

// LayOut writes the automatically computed position into the individual's
// position slot. The layout engine calls it once per pass.
func (i *Individual) LayOut(at Point) {
	p := at
	i.laidOut = &p
}

// LaidOut returns the position written by [Individual.LayOut], if any.
func (i *Individual) LaidOut() (Point, bool) {
	if i.laidOut == nil {
		return Point{}, false
	}
	return *i.laidOut, true
}

// Position returns the laid-out coordinate when present, otherwise the
// stored one.
func (i *Individual) Position() (Point, bool) {
	if i.laidOut != nil {
		return *i.laidOut, true
	}
	if i.Stored != nil {
		return *i.Stored, true
	}
	return Point{}, false
}

// ResetLayout clears the laid-out position.
func (i *Individual) ResetLayout() { i.laidOut = nil }

// Family is a parental union. Husband and Wife hold individual IDs and may be
// empty. Children are individual IDs in no meaningful order.
type Family struct {
	ID       string
	Husband  string
	Wife     string
	Children []string
}

// Inert reports whether the family has neither husband nor wife.
func (f *Family) Inert() bool { return f.Husband == "" && f.Wife == "" }

// Population is the set of records a chart is built from.
type Population struct {
	Individuals []*Individual
	Families    []*Family
}

// Len returns the number of individuals.
func (p *Population) Len() int { return len(p.Individuals) }

// Individual returns the first individual with the given ID.
func (p *Population) Individual(id string) (*Individual, bool) {
	for _, i := range p.Individuals {
		if i.ID == id {
			return i, true
		}
	}
	return nil, false
}

// Index returns a map from individual ID to its position in Individuals.
// When IDs repeat, the first occurrence wins.
func (p *Population) Index() map[string]int {
	idx := make(map[string]int, len(p.Individuals))
	for n, i := range p.Individuals {
		if _, dup := idx[i.ID]; !dup {
			idx[i.ID] = n
		}
	}
	return idx
}

// NeedsLayout reports whether automatic layout should run: true only when no
// individual carries a stored coordinate.
func (p *Population) NeedsLayout() bool {
	for _, i := range p.Individuals {
		if i.Stored != nil {
			return false
		}
	}
	return true
}

// TopLeft returns the minimum X and minimum Y over all positioned
// individuals. It returns false when nobody has a position.
func (p *Population) TopLeft() (Point, bool) {
	tl := Point{X: math.Inf(1), Y: math.Inf(1)}
	found := false
	for _, i := range p.Individuals {
		pos, ok := i.Position()
		if !ok {
			continue
		}
		found = true
		tl.X = math.Min(tl.X, pos.X)
		tl.Y = math.Min(tl.Y, pos.Y)
	}
	if !found {
		return Point{}, false
	}
	return tl, true
}

// Normalize translates every laid-out position so the chart's top-left
// corner sits at the origin. Stored coordinates are left alone.
func (p *Population) Normalize() {
	tl, ok := p.TopLeft()
	if !ok {
		return
	}
	for _, i := range p.Individuals {
		if pos, ok := i.LaidOut(); ok {
			i.LayOut(pos.Sub(tl))
		}
	}
}

// Validate checks that every individual has a unique, non-empty ID.
// Dangling family references are not an error.
func (p *Population) Validate() error {
	seen := make(map[string]bool, len(p.Individuals))
	for _, i := range p.Individuals {
		if i.ID == "" {
			return ErrInvalidIndividualID
		}
		if seen[i.ID] {
			return ErrDuplicateIndividualID
		}
		seen[i.ID] = true
	}
	return nil
}
