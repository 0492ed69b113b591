package chart

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/matzehuels/dropline/pkg/pedigree"
	"github.com/matzehuels/dropline/pkg/pedigree/layout"
)

// Layout sources.
const (
	SourceAuto   = "auto"   // computed by the layout engine
	SourceStored = "stored" // taken from stored coordinates
)

// =============================================================================
// Layout - Positioned Chart
// =============================================================================

// Layout is the serialization format for a positioned chart.
//
// For automatic layouts, Levels, Houses and each placement's Level and House
// come from the engine. For stored layouts only the coordinates are
// meaningful.
type Layout struct {
	Source     string      `json:"source" bson:"source"`
	Levels     int         `json:"levels" bson:"levels"`
	Houses     []string    `json:"houses,omitempty" bson:"houses,omitempty"`
	Width      float64     `json:"width" bson:"width"`
	Height     float64     `json:"height" bson:"height"`
	Placements []Placement `json:"placements" bson:"placements"`
}

// Placement is one positioned individual.
type Placement struct {
	ID    string  `json:"id" bson:"id"`
	Name  string  `json:"name,omitempty" bson:"name,omitempty"`
	Level int     `json:"level" bson:"level"`
	House string  `json:"house,omitempty" bson:"house,omitempty"`
	X     float64 `json:"x" bson:"x"`
	Y     float64 `json:"y" bson:"y"`
}

// IsAuto returns true if the engine computed this layout.
func (l *Layout) IsAuto() bool { return l.Source == SourceAuto }

// NewLayout builds a Layout from a population and the engine result that
// positioned it. Coordinates are read from the individuals, so any
// normalization applied after the engine ran is reflected. Pass a zero
// Result for populations that kept their stored coordinates. Individuals
// without any position are left out.
func NewLayout(pop *pedigree.Population, res layout.Result) Layout {
	out := Layout{Source: SourceStored, Levels: res.Levels, Houses: res.Houses}
	if len(res.Placements) > 0 {
		out.Source = SourceAuto
	}
	engine := make(map[string]layout.Placement, len(res.Placements))
	for _, p := range res.Placements {
		engine[p.ID] = p
	}

	var maxX, maxY float64
	for _, i := range pop.Individuals {
		at, ok := i.Position()
		if !ok {
			continue
		}
		pl := Placement{ID: i.ID, Name: i.Name, X: at.X, Y: at.Y}
		if ep, ok := engine[i.ID]; ok {
			pl.Level = ep.Level
			pl.House = ep.House
		}
		out.Placements = append(out.Placements, pl)
		maxX = max(maxX, at.X)
		maxY = max(maxY, at.Y)
	}
	out.Width, out.Height = maxX, maxY
	return out
}

// Apply writes the layout's coordinates into matching individuals of pop as
// laid-out positions. It returns the number of individuals updated.
func (l *Layout) Apply(pop *pedigree.Population) int {
	idx := pop.Index()
	n := 0
	for _, p := range l.Placements {
		k, ok := idx[p.ID]
		if !ok {
			continue
		}
		pop.Individuals[k].LayOut(pedigree.Point{X: p.X, Y: p.Y})
		n++
	}
	return n
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
// Every placement must carry an id.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	if l.Source == "" {
		l.Source = SourceAuto
	}
	for k, p := range l.Placements {
		if p.ID == "" {
			return Layout{}, fmt.Errorf("placement %d has no id", k)
		}
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
