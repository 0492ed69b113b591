// Package chart provides the serialization types for pedigree charts and
// their layouts.
//
// This package defines the canonical wire format for dropline's chart data,
// used for JSON files, API requests and responses, caching and storage. The
// types carry both json and bson tags so the same values go to disk, over
// HTTP and into MongoDB unchanged.
//
// # Architecture
//
// The package sits at the serialization boundary:
//
//   - [Chart], [Layout]: serialization types (this package)
//   - pkg/pedigree.Population: the in-memory model the layout engine reads
//   - pkg/pedigree/layout.Result: the engine's output
//
// Use [Chart.ToPopulation], [FromPopulation] and [NewLayout] to convert.
//
// # Chart Serialization
//
//	{
//	  "individuals": [
//	    {"id": "I1", "name": "John /Doe/", "sex": "M", "birth": 17800101},
//	    {"id": "I2", "name": "Jane /Roe/", "sex": "F", "xy": "10.00 20.00"}
//	  ],
//	  "families": [{"id": "F1", "husband": "I1", "wife": "I2", "children": ["I3"]}]
//	}
//
// The xy field holds a stored coordinate in the "x y" form. When any
// individual carries one, the pipeline keeps stored coordinates and skips
// automatic layout.
//
// [ReadChartFile] also accepts GEDCOM (.ged, .gedcom) and converts it through
// pkg/pedigree/gedcom.
//
// # Layout Serialization
//
//	{
//	  "source": "auto",
//	  "levels": 2,
//	  "houses": ["I1"],
//	  "placements": [{"id": "I1", "name": "John /Doe/", "level": 1, "house": "I1", "x": 0, "y": 0}]
//	}
//
// # Concurrency
//
// All functions are safe for concurrent use on distinct values.
package chart
