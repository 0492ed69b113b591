package chart

import (
	"github.com/google/uuid"

	"github.com/matzehuels/dropline/pkg/errors"
	"github.com/matzehuels/dropline/pkg/pedigree"
)

// =============================================================================
// Chart - Population Serialization
// =============================================================================

// Chart is the canonical serialization format for a population.
type Chart struct {
	Individuals []Individual `json:"individuals" bson:"individuals"`
	Families    []Family     `json:"families" bson:"families"`
}

// Individual is one person record.
type Individual struct {
	ID    string `json:"id" bson:"id"`
	Name  string `json:"name,omitempty" bson:"name,omitempty"`
	Sex   string `json:"sex,omitempty" bson:"sex,omitempty"`     // "M", "F" or empty
	Birth int64  `json:"birth,omitempty" bson:"birth,omitempty"` // sortable birth key, 0 = unknown
	XY    string `json:"xy,omitempty" bson:"xy,omitempty"`       // stored coordinate "x y"
}

// DisplayName returns the name if set, otherwise the ID.
func (i *Individual) DisplayName() string {
	if i.Name != "" {
		return i.Name
	}
	return i.ID
}

// Family is one parental union. Member fields hold individual IDs.
type Family struct {
	ID       string   `json:"id,omitempty" bson:"id,omitempty"`
	Husband  string   `json:"husband,omitempty" bson:"husband,omitempty"`
	Wife     string   `json:"wife,omitempty" bson:"wife,omitempty"`
	Children []string `json:"children,omitempty" bson:"children,omitempty"`
}

// =============================================================================
// Chart ↔ Population Conversion
// =============================================================================

// ToPopulation converts the chart into the layout model. Individuals without
// an ID receive a random UUID. Invalid or duplicate IDs and malformed stored
// coordinates are INVALID_CHART errors. Family references are copied as-is;
// dangling ones are tolerated downstream.
func (c Chart) ToPopulation() (*pedigree.Population, error) {
	pop := &pedigree.Population{
		Individuals: make([]*pedigree.Individual, 0, len(c.Individuals)),
		Families:    make([]*pedigree.Family, 0, len(c.Families)),
	}
	seen := make(map[string]bool, len(c.Individuals))

	for _, ci := range c.Individuals {
		id := ci.ID
		if id == "" {
			id = uuid.NewString()
		}
		if err := errors.ValidateIndividualID(id); err != nil {
			return nil, err
		}
		if seen[id] {
			return nil, errors.New(errors.ErrCodeInvalidChart, "duplicate individual id %q", id)
		}
		seen[id] = true

		stored, err := pedigree.ParseXY(ci.XY)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidChart, err, "individual %s", id)
		}
		pop.Individuals = append(pop.Individuals, &pedigree.Individual{
			ID:     id,
			Name:   ci.Name,
			Sex:    pedigree.ParseSex(ci.Sex),
			Birth:  ci.Birth,
			Stored: stored,
		})
	}

	for _, cf := range c.Families {
		pop.Families = append(pop.Families, &pedigree.Family{
			ID:       cf.ID,
			Husband:  cf.Husband,
			Wife:     cf.Wife,
			Children: append([]string(nil), cf.Children...),
		})
	}
	return pop, nil
}

// FromPopulation converts a population back into a chart. Each individual's
// current position (laid out, else stored) becomes its xy field, so a laid-out
// population round-trips with its coordinates persisted.
func FromPopulation(pop *pedigree.Population) Chart {
	c := Chart{
		Individuals: make([]Individual, len(pop.Individuals)),
		Families:    make([]Family, len(pop.Families)),
	}
	for k, i := range pop.Individuals {
		ci := Individual{ID: i.ID, Name: i.Name, Birth: i.Birth}
		if i.Sex != pedigree.SexUnknown {
			ci.Sex = i.Sex.String()
		}
		if p, ok := i.Position(); ok {
			ci.XY = pedigree.FormatXY(p)
		}
		c.Individuals[k] = ci
	}
	for k, f := range pop.Families {
		c.Families[k] = Family{
			ID:       f.ID,
			Husband:  f.Husband,
			Wife:     f.Wife,
			Children: append([]string(nil), f.Children...),
		}
	}
	return c
}
