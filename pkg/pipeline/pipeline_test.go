package pipeline

import (
	"testing"

	"github.com/matzehuels/dropline/pkg/pedigree/layout"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"json", false},
		{"dot", false},
		{"svg", false},
		{"png", false},
		{"pdf", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "json"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateRankDir(t *testing.T) {
	tests := []struct {
		dir     string
		wantErr bool
	}{
		{"TB", false},
		{"LR", false},
		{"BT", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateRankDir(tt.dir)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateRankDir(%q) error = %v, wantErr %v", tt.dir, err, tt.wantErr)
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{HouseGap: 300}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}

	if opts.PersonWidth != layout.DefaultPersonWidth {
		t.Errorf("PersonWidth = %v, want %v", opts.PersonWidth, layout.DefaultPersonWidth)
	}
	if opts.HouseGap != 300 {
		t.Errorf("HouseGap = %v, want 300", opts.HouseGap)
	}
	if opts.ComponentStep != layout.DefaultComponentStep {
		t.Errorf("ComponentStep = %v, want %v", opts.ComponentStep, layout.DefaultComponentStep)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatJSON {
		t.Errorf("Formats = %v, want [json]", opts.Formats)
	}
	if opts.RankDir != "TB" {
		t.Errorf("RankDir = %q, want TB", opts.RankDir)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}

	// Idempotent
	opts.Formats = []string{"bogus"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("second ValidateAndSetDefaults() = %v, want nil", err)
	}
}

func TestOptionsInvalid(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"negative width", Options{PersonWidth: -1}},
		{"negative step", Options{ComponentStep: -5}},
		{"format", Options{Formats: []string{"pdf"}}},
		{"rank dir", Options{RankDir: "RL"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.opts.ValidateAndSetDefaults(); err == nil {
				t.Error("ValidateAndSetDefaults() = nil, want error")
			}
		})
	}
}

func TestLayoutKeyOpts(t *testing.T) {
	a := Options{}
	b := Options{PersonWidth: layout.DefaultPersonWidth}
	if a.LayoutKeyOpts() != b.LayoutKeyOpts() {
		t.Error("explicit defaults should key the same as zero values")
	}

	c := Options{Normalize: true}
	if a.LayoutKeyOpts() == c.LayoutKeyOpts() {
		t.Error("Normalize should change the layout key")
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Houses: true, RankDir: "LR"}
	got := opts.ArtifactKeyOpts(FormatSVG)
	if got.Format != FormatSVG || !got.Houses || got.RankDir != "LR" {
		t.Errorf("ArtifactKeyOpts() = %+v", got)
	}
}
