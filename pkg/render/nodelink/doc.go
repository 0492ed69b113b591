// Package nodelink renders a laid-out chart as a Graphviz relationship graph.
//
// Individuals become nodes (boxes for men, ellipses for women), every family
// becomes a small point joining the couple to their children, and people on
// the same generation row are pinned to the same rank. With
// [Options.Houses] set, the members of each house are drawn inside a cluster
// labelled with the house head.
//
//	dot := nodelink.ToDOT(c, l, nodelink.Options{Houses: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [ToDOT] is pure. [RenderSVG] and [RenderPNG] run Graphviz in-process through
// [github.com/goccy/go-graphviz]; no system Graphviz install is needed.
package nodelink
