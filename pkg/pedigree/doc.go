// Package pedigree provides the population model for genealogical drop-line
// charts: individuals, the families that join them, and the mutable position
// slot that layout writes into.
//
// # Overview
//
// A drop-line chart places each person as a plaque in a 2D plane. Parents and
// children are joined by rectilinear descent lines and couples by marriage
// bars. This package holds only the records; the automatic layout engine lives
// in [github.com/matzehuels/dropline/pkg/pedigree/layout] and record readers
// (GEDCOM, JSON) live in their own packages.
//
// # References
//
// Families reference individuals by their external ID. References are resolved
// lazily by consumers, and a reference to an ID that no individual carries is
// simply dangling: readers keep it, layout drops it.
//
//	pop := &pedigree.Population{
//	    Individuals: []*pedigree.Individual{
//	        {ID: "I1", Name: "John /Doe/", Sex: pedigree.SexMale},
//	        {ID: "I2", Name: "Jane /Roe/", Sex: pedigree.SexFemale},
//	        {ID: "I3", Name: "Jim /Doe/", Sex: pedigree.SexMale, Birth: 18010101},
//	    },
//	    Families: []*pedigree.Family{
//	        {ID: "F1", Husband: "I1", Wife: "I2", Children: []string{"I3"}},
//	    },
//	}
//
// # Coordinates
//
// Every [Individual] has up to two coordinates: a stored one read from the
// source record ([Individual.Stored]) and a laid-out one written by the layout
// engine through [Individual.LayOut]. [Population.NeedsLayout] reports whether
// automatic layout should run at all: only when no individual has a stored
// coordinate.
//
// # Concurrency
//
// Population values are not safe for concurrent mutation. A layout pass owns
// the population exclusively until it returns.
package pedigree
