// Package pipeline runs the chart → layout → render pipeline shared by the
// CLI and the API server.
//
// # Architecture
//
// The pipeline has two stages:
//
//  1. Layout: build a population from the chart, run the drop-line engine
//     (unless the chart already carries stored coordinates), and optionally
//     normalize to the top-left corner
//  2. Render: produce artifacts in the requested formats (JSON, DOT, SVG, PNG)
//
// Both stages are cached by content hash through a [cache.Cache].
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, ch, pipeline.Options{
//	    Formats:   []string{"svg"},
//	    Normalize: true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// # Cancellation
//
// The context is checked before the layout engine starts. A started layout
// pass always runs to completion; it is fast and leaves positions
// half-written if interrupted.
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dropline/pkg/cache"
	"github.com/matzehuels/dropline/pkg/chart"
	"github.com/matzehuels/dropline/pkg/pedigree/layout"
	"github.com/matzehuels/dropline/pkg/render/nodelink"
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
}

// ValidRankDirs is the set of supported Graphviz rank directions.
var ValidRankDirs = map[string]bool{
	nodelink.RankTB: true,
	nodelink.RankLR: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options. Zero values fall back to the engine defaults.
	PersonWidth      float64 `json:"person_width,omitempty"`
	GenerationHeight float64 `json:"generation_height,omitempty"`
	HouseGap         float64 `json:"house_gap,omitempty"`
	ComponentStep    int     `json:"component_step,omitempty"`
	LevelCeiling     int     `json:"level_ceiling,omitempty"`
	Normalize        bool    `json:"normalize,omitempty"` // Translate positions so the top-left is (0, 0)
	Refresh          bool    `json:"refresh,omitempty"`   // Ignore cached layouts and artifacts

	// Render options
	Formats []string `json:"formats,omitempty"`
	Houses  bool     `json:"houses,omitempty"` // Cluster house members in graph output
	RankDir string   `json:"rank_dir,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// ChartHash is the content hash of the input chart.
	ChartHash string

	// Layout holds the computed or stored positions.
	Layout chart.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Individuals int
	Families    int
	Houses      int
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: json, dot, svg, png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateRankDir checks that a rank direction is valid.
func ValidateRankDir(dir string) error {
	if !ValidRankDirs[dir] {
		return fmt.Errorf("invalid rank_dir: %q (must be one of: TB, LR)", dir)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks option values and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.PersonWidth < 0 || o.GenerationHeight < 0 || o.HouseGap < 0 || o.ComponentStep < 0 || o.LevelCeiling < 0 {
		return fmt.Errorf("layout parameters must not be negative")
	}
	o.SetLayoutOptions(o.LayoutOptions())

	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.RankDir == "" {
		o.RankDir = nodelink.RankTB
	}
	if err := ValidateRankDir(o.RankDir); err != nil {
		return err
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// LayoutOptions returns the engine parameters with defaults filled in.
func (o *Options) LayoutOptions() layout.Options {
	return layout.Options{
		PersonWidth:      o.PersonWidth,
		GenerationHeight: o.GenerationHeight,
		HouseGap:         o.HouseGap,
		ComponentStep:    o.ComponentStep,
		LevelCeiling:     o.LevelCeiling,
	}.WithDefaults()
}

// SetLayoutOptions copies engine parameters into o.
func (o *Options) SetLayoutOptions(l layout.Options) {
	o.PersonWidth = l.PersonWidth
	o.GenerationHeight = l.GenerationHeight
	o.HouseGap = l.HouseGap
	o.ComponentStep = l.ComponentStep
	o.LevelCeiling = l.LevelCeiling
}

// NodelinkOptions returns the graph rendering options.
func (o *Options) NodelinkOptions() nodelink.Options {
	return nodelink.Options{Houses: o.Houses, RankDir: o.RankDir}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	l := o.LayoutOptions()
	return cache.LayoutKeyOpts{
		PersonWidth:      l.PersonWidth,
		GenerationHeight: l.GenerationHeight,
		HouseGap:         l.HouseGap,
		ComponentStep:    l.ComponentStep,
		LevelCeiling:     l.LevelCeiling,
		Normalize:        o.Normalize,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:  format,
		Houses:  o.Houses,
		RankDir: o.RankDir,
	}
}
