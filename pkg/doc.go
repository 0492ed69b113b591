// Package pkg provides the core libraries for Dropline drop-line chart layout.
//
// # Overview
//
// Dropline positions the members of a family tree on a drop-line chart:
// every generation on its own row, spouses side by side and each male line
// of descent (a house) packed into its own band. The pkg directory is
// organized into these areas:
//
//  1. [pedigree] - The population model, the layout engine and GEDCOM input
//  2. [chart] - Serialization types for charts and layouts
//  3. [pipeline] - Orchestration (layout → render) with caching
//  4. [render/nodelink] - Graphviz output of the relationship graph
//  5. [cache], [storage] - Layout caches and stored charts
//  6. [api] - The HTTP API
//
// # Architecture
//
// The typical data flow through Dropline:
//
//	chart.json or GEDCOM file
//	         ↓
//	    [chart] package (read, convert to a population)
//	         ↓
//	    [pedigree/layout] package (levels, houses, packing)
//	         ↓
//	    [chart.Layout] (positions, houses, levels)
//	         ↓
//	    JSON/DOT/SVG/PNG output
//
// # Quick Start
//
// Lay out a chart file:
//
//	import (
//	    "github.com/matzehuels/dropline/pkg/chart"
//	    "github.com/matzehuels/dropline/pkg/pedigree/layout"
//	)
//
//	c, _ := chart.ReadChartFile("family.ged", nil)
//	pop, _ := c.ToPopulation()
//	res := layout.Run(pop, layout.DefaultOptions(), nil)
//	l := chart.NewLayout(pop, res)
//
// Or run the full pipeline with caching:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	result, _ := runner.Execute(ctx, c, pipeline.Options{Formats: []string{"svg"}})
package pkg
