package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/dropline/pkg/chart"
)

const familyJSON = `{
  "individuals": [
    {"id": "H", "name": "John /Doe/", "sex": "M"},
    {"id": "W", "name": "Jane /Roe/", "sex": "F"},
    {"id": "S", "name": "Jim /Doe/", "sex": "M"}
  ],
  "families": [{"husband": "H", "wife": "W", "children": ["S"]}]
}`

// runCLI executes the root command with args in an isolated environment.
func runCLI(t *testing.T, args ...string) error {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("DROPLINE_CONFIG", "")

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.Execute()
}

func writeFamily(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "family.json")
	if err := os.WriteFile(path, []byte(familyJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLayoutCommand(t *testing.T) {
	input := writeFamily(t)
	dir := filepath.Dir(input)
	out := filepath.Join(dir, "out.layout.json")
	positioned := filepath.Join(dir, "positioned.json")

	err := runCLI(t, "layout", input, "--normalize", "-o", out, "--chart-out", positioned)
	if err != nil {
		t.Fatalf("layout error: %v", err)
	}

	l, err := chart.ReadLayoutFile(out)
	if err != nil {
		t.Fatalf("ReadLayoutFile() error: %v", err)
	}
	if l.Source != chart.SourceAuto {
		t.Errorf("Source = %q, want %q", l.Source, chart.SourceAuto)
	}
	if len(l.Placements) != 3 {
		t.Errorf("placements = %d, want 3", len(l.Placements))
	}

	ch, err := chart.ReadChartFile(positioned, nil)
	if err != nil {
		t.Fatalf("ReadChartFile() error: %v", err)
	}
	for _, ind := range ch.Individuals {
		if ind.XY == "" {
			t.Errorf("individual %s has no stored coordinates", ind.ID)
		}
	}
}

func TestLayoutCommandDefaultOutput(t *testing.T) {
	input := writeFamily(t)
	if err := runCLI(t, "layout", input, "--no-cache"); err != nil {
		t.Fatalf("layout error: %v", err)
	}
	want := strings.TrimSuffix(input, ".json") + ".layout.json"
	if _, err := os.Stat(want); err != nil {
		t.Errorf("expected %s to exist: %v", want, err)
	}
}

func TestLayoutCommandMissingFile(t *testing.T) {
	err := runCLI(t, "layout", filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Fatal("expected error for missing input")
	}
}

func TestRenderCommandDOT(t *testing.T) {
	input := writeFamily(t)
	out := filepath.Join(filepath.Dir(input), "family.dot")

	if err := runCLI(t, "render", input, "-f", "dot", "--houses", "-o", out, "--no-cache"); err != nil {
		t.Fatalf("render error: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "digraph") {
		t.Errorf("output does not start with digraph: %q", string(data))
	}
}

func TestRenderCommandInvalidFormat(t *testing.T) {
	input := writeFamily(t)
	if err := runCLI(t, "render", input, "-f", "pdf"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestRenderCommandPrecomputedLayout(t *testing.T) {
	input := writeFamily(t)
	dir := filepath.Dir(input)
	layoutPath := filepath.Join(dir, "family.layout.json")
	if err := runCLI(t, "layout", input, "--no-cache"); err != nil {
		t.Fatalf("layout error: %v", err)
	}

	out := filepath.Join(dir, "again.dot")
	if err := runCLI(t, "render", input, "--layout", layoutPath, "-f", "dot", "-o", out, "--no-cache"); err != nil {
		t.Fatalf("render error: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("expected %s to exist: %v", out, err)
	}
}

func TestConfigFlagMissingFile(t *testing.T) {
	err := runCLI(t, "--config", filepath.Join(t.TempDir(), "nope.toml"), "config")
	if err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestConfigFlagLoadsLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[layout]\nperson_width = 40\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs([]string{"--config", path, "config"})
	root.SetOut(io.Discard)
	if err := root.Execute(); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if c.Config.Layout.PersonWidth != 40 {
		t.Errorf("PersonWidth = %v, want 40", c.Config.Layout.PersonWidth)
	}
	if c.Config.Path != path {
		t.Errorf("Path = %q, want %q", c.Config.Path, path)
	}
}
