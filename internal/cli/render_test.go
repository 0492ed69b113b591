package cli

import (
	"testing"

	"github.com/matzehuels/dropline/pkg/pipeline"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "png", []string{"png"}},
		{"multiple formats", "svg,dot,png", []string{"svg", "dot", "png"}},
		{"spaces trimmed", " svg , json ", []string{"svg", "json"}},
		{"empty entries dropped", "svg,,dot,", []string{"svg", "dot"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i, v := range got {
				if v != tt.want[i] {
					t.Errorf("parseFormats(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
				}
			}
		})
	}
}

func TestValidateFormats(t *testing.T) {
	tests := []struct {
		name    string
		formats []string
		wantErr bool
	}{
		{"valid svg", []string{"svg"}, false},
		{"valid dot", []string{"dot"}, false},
		{"valid png", []string{"png"}, false},
		{"valid json", []string{"json"}, false},
		{"valid all", []string{"svg", "dot", "png", "json"}, false},
		{"pdf unsupported", []string{"pdf"}, true},
		{"mixed valid invalid", []string{"svg", "invalid"}, true},
		{"empty slice", []string{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := pipeline.ValidateFormats(tt.formats)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormats(%v) error = %v, wantErr %v", tt.formats, err, tt.wantErr)
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "tree.ged", "tree"},
		{"", "dir/family.json", "dir/family"},
		{"out.svg", "tree.ged", "out"},
		{"out.png", "tree.ged", "out"},
		{"out", "tree.ged", "out"},
		{"out.txt", "tree.ged", "out.txt"},
	}

	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		formats []string
		format  string
		want    string
	}{
		{"derived svg", "", []string{"svg"}, "svg", "tree.svg"},
		{"derived json", "", []string{"svg", "json"}, "json", "tree.layout.json"},
		{"single explicit", "chart.out", []string{"svg"}, "svg", "chart.out"},
		{"multiple explicit base", "out.svg", []string{"svg", "png"}, "png", "out.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ro := &renderOpts{output: tt.output, formats: tt.formats}
			if got := outputPath(ro, "tree.ged", tt.format); got != tt.want {
				t.Errorf("outputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}
