// Package layout computes automatic drop-line chart positions for a
// [pedigree.Population] that carries no stored coordinates.
//
// # Overview
//
// [Run] executes a fixed sequence of phases over an index-addressed copy of
// the relationship graph:
//
//  1. Build: resolve family references into parent, child and spouse edges.
//     Dangling IDs are dropped.
//  2. Levels: assign each person a generation row by propagating constraints
//     (parent above child, siblings and spouses on the same row), then shift
//     rows so the lowest is zero.
//  3. Branches: score each patrilineal progenitor by the length of its longest
//     male descent chain. The score only orders the later phases.
//  4. Houses: partition people into houses rooted at the highest-priority
//     progenitors and following male descendants.
//  5. Packing: walk houses in order, placing each spouse group left to right
//     against a running per-row boundary, with a gap between houses.
//  6. Emit: write one point per person through [pedigree.Individual.LayOut].
//
// # Priority
//
// Houses and packing visit people in a total order: branch score descending,
// then level descending, then male before female before unknown, then input
// order. See [comparePriority].
//
// # Guarantees
//
// For consistent data, parents sit strictly above children, siblings and
// spouses share a row, and no two people on a row share an X coordinate. On
// inconsistent data (pedigree loops, self-ancestry) every phase still
// terminates and every person still receives a position.
//
// # Concurrency
//
// A pass is synchronous and owns the population until [Run] returns. There is
// nothing to cancel: callers that want cancellation should decide before
// calling [Run].
package layout
