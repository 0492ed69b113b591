package nodelink

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/dropline/pkg/chart"
)

// Rank directions.
const (
	RankTB = "TB"
	RankLR = "LR"
)

// Options configures relationship graph rendering.
type Options struct {
	// Houses draws each house's members inside a labelled cluster.
	Houses bool

	// RankDir is the Graphviz rank direction, RankTB when empty.
	RankDir string
}

// ToDOT converts a chart and its layout to Graphviz DOT source.
// Individuals missing from the layout are still drawn, just without a rank.
func ToDOT(c chart.Chart, l chart.Layout, opts Options) string {
	rankdir := opts.RankDir
	if rankdir == "" {
		rankdir = RankTB
	}

	placed := make(map[string]chart.Placement, len(l.Placements))
	for _, p := range l.Placements {
		placed[p.ID] = p
	}
	names := make(map[string]string, len(c.Individuals))
	for _, ci := range c.Individuals {
		names[ci.ID] = ci.DisplayName()
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [style=filled, fillcolor=white, fontsize=14];\n")
	buf.WriteString("  edge [arrowhead=none];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	clustered := map[string][]string{}
	for _, ci := range c.Individuals {
		house := placed[ci.ID].House
		if opts.Houses && house != "" {
			clustered[house] = append(clustered[house], ci.ID)
			continue
		}
		writeNode(&buf, "  ", ci)
	}

	if opts.Houses {
		byID := make(map[string]chart.Individual, len(c.Individuals))
		for _, ci := range c.Individuals {
			byID[ci.ID] = ci
		}
		for k, h := range l.Houses {
			members := clustered[h]
			if len(members) == 0 {
				continue
			}
			fmt.Fprintf(&buf, "\n  subgraph cluster_%d {\n", k)
			fmt.Fprintf(&buf, "    label=%q;\n", "House of "+cmp.Or(names[h], h))
			buf.WriteString("    style=\"rounded,dashed\";\n")
			for _, id := range members {
				writeNode(&buf, "    ", byID[id])
			}
			buf.WriteString("  }\n")
		}
	}

	buf.WriteString("\n")
	for k, f := range c.Families {
		if f.Husband == "" && f.Wife == "" {
			continue
		}
		fid := familyNode(k, f)
		fmt.Fprintf(&buf, "  %q [shape=point, width=0.08, label=\"\"];\n", fid)
		for _, spouse := range []string{f.Husband, f.Wife} {
			if _, ok := names[spouse]; ok {
				fmt.Fprintf(&buf, "  %q -> %q;\n", spouse, fid)
			}
		}
		for _, child := range f.Children {
			if _, ok := names[child]; ok {
				fmt.Fprintf(&buf, "  %q -> %q;\n", fid, child)
			}
		}
	}

	rows := generationRows(c, placed)
	if len(rows) > 0 {
		buf.WriteString("\n")
	}
	for _, row := range rows {
		quoted := make([]string, len(row))
		for k, id := range row {
			quoted[k] = strconv.Quote(id)
		}
		fmt.Fprintf(&buf, "  { rank=same; %s; }\n", strings.Join(quoted, "; "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeNode(buf *bytes.Buffer, indent string, ci chart.Individual) {
	shape := "box"
	switch ci.Sex {
	case "F":
		shape = "ellipse"
	case "M":
	default:
		shape = "box, style=\"filled,dashed\""
	}
	fmt.Fprintf(buf, "%s%q [label=%q, shape=%s];\n", indent, ci.ID, ci.DisplayName(), shape)
}

func familyNode(k int, f chart.Family) string {
	if f.ID != "" {
		return "fam:" + f.ID
	}
	return "fam:#" + strconv.Itoa(k)
}

// generationRows groups placed individuals by their y coordinate, top row
// first. Rows with a single person are left out since they constrain nothing.
func generationRows(c chart.Chart, placed map[string]chart.Placement) [][]string {
	byY := map[float64][]string{}
	for _, ci := range c.Individuals {
		p, ok := placed[ci.ID]
		if !ok {
			continue
		}
		byY[p.Y] = append(byY[p.Y], ci.ID)
	}
	ys := make([]float64, 0, len(byY))
	for y := range byY {
		ys = append(ys, y)
	}
	slices.Sort(ys)

	var rows [][]string
	for _, y := range ys {
		if len(byY[y]) > 1 {
			rows = append(rows, byY[y])
		}
	}
	return rows
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	data, err := render(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(data), nil
}

// RenderPNG renders DOT source to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root svg tag so the drawing scales cleanly
// when embedded.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
