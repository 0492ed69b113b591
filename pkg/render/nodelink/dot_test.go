package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/dropline/pkg/chart"
)

func testChart() (chart.Chart, chart.Layout) {
	c := chart.Chart{
		Individuals: []chart.Individual{
			{ID: "H", Name: "John /Doe/", Sex: "M"},
			{ID: "W", Name: "Jane /Roe/", Sex: "F"},
			{ID: "C1", Sex: "M"},
			{ID: "C2", Name: "Ann /Doe/"},
		},
		Families: []chart.Family{
			{ID: "F1", Husband: "H", Wife: "W", Children: []string{"C1", "C2", "GHOST"}},
			{ID: "F2", Children: []string{"C1"}},
		},
	}
	l := chart.Layout{
		Source: chart.SourceAuto,
		Levels: 2,
		Houses: []string{"H"},
		Placements: []chart.Placement{
			{ID: "H", Level: 1, House: "H", X: 0, Y: 0},
			{ID: "W", Level: 1, House: "H", X: 108, Y: 0},
			{ID: "C1", Level: 0, House: "H", X: 0, Y: 108},
			{ID: "C2", Level: 0, X: 108, Y: 108},
		},
	}
	return c, l
}

func TestToDOT(t *testing.T) {
	c, l := testChart()
	dot := ToDOT(c, l, Options{})

	wants := []string{
		"rankdir=TB;",
		`"H" [label="John /Doe/", shape=box];`,
		`"W" [label="Jane /Roe/", shape=ellipse];`,
		`"C1" [label="C1", shape=box];`,
		`"C2" [label="Ann /Doe/", shape=box, style="filled,dashed"];`,
		`"fam:F1" [shape=point`,
		`"H" -> "fam:F1";`,
		`"W" -> "fam:F1";`,
		`"fam:F1" -> "C2";`,
		`{ rank=same; "H"; "W"; }`,
		`{ rank=same; "C1"; "C2"; }`,
	}
	for _, want := range wants {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q\n%s", want, dot)
		}
	}

	if strings.Contains(dot, "GHOST") {
		t.Error("ToDOT() should skip unknown children")
	}
	if strings.Contains(dot, "fam:F2") {
		t.Error("ToDOT() should skip families without spouses")
	}
	if strings.Contains(dot, "cluster") {
		t.Error("ToDOT() should not cluster without Houses")
	}
}

func TestToDOTHouses(t *testing.T) {
	c, l := testChart()
	dot := ToDOT(c, l, Options{Houses: true, RankDir: RankLR})

	if !strings.Contains(dot, "rankdir=LR;") {
		t.Error("ToDOT() should honour RankDir")
	}
	if !strings.Contains(dot, "subgraph cluster_0 {") {
		t.Fatalf("ToDOT() missing house cluster\n%s", dot)
	}
	if !strings.Contains(dot, `label="House of John /Doe/";`) {
		t.Error("ToDOT() cluster should be labelled with the house head")
	}

	cluster := dot[strings.Index(dot, "subgraph cluster_0"):]
	cluster = cluster[:strings.Index(cluster, "  }\n")]
	for _, id := range []string{`"H"`, `"W"`, `"C1"`} {
		if !strings.Contains(cluster, id+" [label") {
			t.Errorf("cluster missing member %s", id)
		}
	}
	if strings.Contains(cluster, `"C2" [label`) {
		t.Error("unhoused individual placed inside a cluster")
	}
}

func TestGenerationRows(t *testing.T) {
	c, l := testChart()
	placed := map[string]chart.Placement{}
	for _, p := range l.Placements[:3] {
		placed[p.ID] = p
	}

	rows := generationRows(c, placed)
	if len(rows) != 1 {
		t.Fatalf("generationRows() = %v, want one row", rows)
	}
	if strings.Join(rows[0], ",") != "H,W" {
		t.Errorf("generationRows()[0] = %v, want [H W]", rows[0])
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 100.50 200.00" xmlns="x"><g/></svg>`)
	out := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.50 200.00" width="100" height="200">`
	if !strings.HasPrefix(out, want) {
		t.Errorf("normalizeViewBox() = %s, want prefix %s", out, want)
	}

	plain := []byte("<svg><g/></svg>")
	if got := normalizeViewBox(plain); string(got) != string(plain) {
		t.Errorf("normalizeViewBox() changed svg without viewBox: %s", got)
	}
}

func TestRenderSVG(t *testing.T) {
	c, l := testChart()
	svg, err := RenderSVG(context.Background(), ToDOT(c, l, Options{}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderSVG() output is not SVG")
	}
}
