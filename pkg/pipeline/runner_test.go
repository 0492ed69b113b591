package pipeline

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/dropline/pkg/cache"
	"github.com/matzehuels/dropline/pkg/chart"
	"github.com/matzehuels/dropline/pkg/observability"
)

func coupleChart() chart.Chart {
	return chart.Chart{
		Individuals: []chart.Individual{
			{ID: "H", Name: "Husband", Sex: "M"},
			{ID: "W", Name: "Wife", Sex: "F"},
			{ID: "C1", Name: "First", Sex: "M", Birth: 19000101},
			{ID: "C2", Name: "Second", Sex: "F", Birth: 19020101},
		},
		Families: []chart.Family{
			{ID: "F1", Husband: "H", Wife: "W", Children: []string{"C1", "C2"}},
		},
	}
}

func placementsByID(l chart.Layout) map[string]chart.Placement {
	m := make(map[string]chart.Placement, len(l.Placements))
	for _, p := range l.Placements {
		m[p.ID] = p
	}
	return m
}

func TestExecute(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), coupleChart(), Options{
		Formats:   []string{FormatJSON, FormatDOT},
		Normalize: true,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if res.Layout.Source != chart.SourceAuto {
		t.Errorf("Source = %q, want auto", res.Layout.Source)
	}
	if res.Stats.Individuals != 4 || res.Stats.Families != 1 {
		t.Errorf("Stats = %+v, want 4 individuals, 1 family", res.Stats)
	}
	if len(res.ChartHash) != 64 {
		t.Errorf("ChartHash = %q, want sha256 hex", res.ChartHash)
	}

	want := map[string][2]float64{
		"H":  {0, 0},
		"W":  {108, 0},
		"C1": {0, 108},
		"C2": {108, 108},
	}
	got := placementsByID(res.Layout)
	for id, xy := range want {
		p, ok := got[id]
		if !ok {
			t.Errorf("no placement for %s", id)
			continue
		}
		if p.X != xy[0] || p.Y != xy[1] {
			t.Errorf("%s at (%v, %v), want (%v, %v)", id, p.X, p.Y, xy[0], xy[1])
		}
	}

	var decoded chart.Layout
	if err := json.Unmarshal(res.Artifacts[FormatJSON], &decoded); err != nil {
		t.Fatalf("json artifact: %v", err)
	}
	if len(decoded.Placements) != 4 {
		t.Errorf("json artifact has %d placements, want 4", len(decoded.Placements))
	}
	if !strings.HasPrefix(string(res.Artifacts[FormatDOT]), "digraph G {") {
		t.Errorf("dot artifact = %q", res.Artifacts[FormatDOT])
	}
}

func TestExecuteCache(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil)
	defer r.Close()
	ctx := context.Background()
	opts := Options{Formats: []string{FormatJSON}}

	first, err := r.Execute(ctx, coupleChart(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Errorf("first run CacheInfo = %+v, want misses", first.CacheInfo)
	}

	second, err := r.Execute(ctx, coupleChart(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run CacheInfo = %+v, want hits", second.CacheInfo)
	}
	if string(first.Artifacts[FormatJSON]) != string(second.Artifacts[FormatJSON]) {
		t.Error("cached artifact differs from the computed one")
	}

	third, err := r.Execute(ctx, coupleChart(), Options{Formats: []string{FormatJSON}, Refresh: true})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if third.CacheInfo.LayoutHit || third.CacheInfo.RenderHit {
		t.Errorf("refresh CacheInfo = %+v, want misses", third.CacheInfo)
	}

	other, err := r.Execute(ctx, coupleChart(), Options{Formats: []string{FormatJSON}, HouseGap: 500})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if other.CacheInfo.LayoutHit {
		t.Error("different layout options should not hit the cache")
	}
}

func TestGenerateLayoutStoredCoordinates(t *testing.T) {
	c := coupleChart()
	c.Individuals[0].XY = "500.00 40.00"
	c.Individuals[1].XY = "600.00 40.00"

	// The engine is skipped, so a cancelled context does not matter.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l, err := GenerateLayout(ctx, c, Options{Normalize: true})
	if err != nil {
		t.Fatalf("GenerateLayout: %v", err)
	}
	if l.Source != chart.SourceStored {
		t.Errorf("Source = %q, want stored", l.Source)
	}
	got := placementsByID(l)
	if len(got) != 2 {
		t.Fatalf("placements = %v, want only the two stored individuals", l.Placements)
	}
	if p := got["H"]; p.X != 500 || p.Y != 40 {
		t.Errorf("H at (%v, %v), want stored (500, 40)", p.X, p.Y)
	}
}

func TestGenerateLayoutCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := GenerateLayout(ctx, coupleChart(), Options{}); err != context.Canceled {
		t.Errorf("GenerateLayout() error = %v, want context.Canceled", err)
	}
}

func TestGenerateLayoutInvalidChart(t *testing.T) {
	c := coupleChart()
	c.Individuals = append(c.Individuals, chart.Individual{ID: "H"})

	if _, err := GenerateLayout(context.Background(), c, Options{}); err == nil {
		t.Error("GenerateLayout() = nil, want duplicate id error")
	}
}

func TestRenderUnsupportedFormat(t *testing.T) {
	_, err := Render(context.Background(), coupleChart(), chart.Layout{}, Options{Formats: []string{"pdf"}})
	if err == nil {
		t.Error("Render() = nil, want error for pdf")
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	mu     sync.Mutex
	events []string
}

func (h *recordingHooks) record(e string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
}

func (h *recordingHooks) OnLayoutStart(context.Context, int) { h.record("layout-start") }
func (h *recordingHooks) OnLayoutComplete(context.Context, int, time.Duration, error) {
	h.record("layout-complete")
}
func (h *recordingHooks) OnRenderStart(context.Context, []string) { h.record("render-start") }
func (h *recordingHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {
	h.record("render-complete")
}

func TestExecuteHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)
	defer observability.Reset()

	r := NewRunner(nil, nil, nil)
	if _, err := r.Execute(context.Background(), coupleChart(), Options{}); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	want := "layout-start,layout-complete,render-start,render-complete"
	if got := strings.Join(hooks.events, ","); got != want {
		t.Errorf("hook events = %s, want %s", got, want)
	}
}
