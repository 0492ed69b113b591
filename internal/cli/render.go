package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dropline/pkg/chart"
	"github.com/matzehuels/dropline/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string // output file (single format) or base path
	layoutFile string // precomputed layout.json; computed when empty
	formats    []string
	layout     layoutFlags
}

// renderCommand creates the render command for drawing a chart's
// relationship graph.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var ro renderOpts
	var houses bool
	var rankDir string

	cmd := &cobra.Command{
		Use:   "render [chart.json|tree.ged]",
		Short: "Render a family tree as a graph (DOT, SVG, PNG)",
		Long: `Render a family tree as a relationship graph.

Individuals become nodes (boxes for men, ellipses for women) and every family
becomes a junction point linking the parents to their children. With --houses
the members of each house computed by the layout are grouped in a cluster.

The layout is computed on the fly unless --layout names a layout.json written
by the layout command. Formats: json (the layout itself), dot, svg, png.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ro.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(ro.formats); err != nil {
				return err
			}
			opts := c.baseOptions()
			ro.layout.apply(&opts)
			opts.Formats = ro.formats
			opts.Houses = houses
			opts.RankDir = strings.ToUpper(rankDir)
			return c.runRender(cmd.Context(), args[0], &ro, opts)
		},
	}

	cmd.Flags().StringVarP(&ro.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, dot, json (comma-separated)")
	cmd.Flags().StringVar(&ro.layoutFile, "layout", "", "use a precomputed layout.json instead of computing one")
	cmd.Flags().BoolVar(&houses, "houses", false, "group house members into clusters")
	cmd.Flags().StringVar(&rankDir, "rankdir", "TB", "graph direction: TB or LR")
	addLayoutFlags(cmd, &ro.layout)

	return cmd
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .png, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return outputBase(input)
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPath returns the file a format is written to. A single format with
// an explicit output is written there verbatim.
func outputPath(ro *renderOpts, input, format string) string {
	if len(ro.formats) == 1 && ro.output != "" {
		return ro.output
	}
	base := basePath(ro.output, input)
	if format == pipeline.FormatJSON {
		return base + ".layout.json"
	}
	return base + "." + format
}

// runRender loads the chart, obtains a layout, and writes every requested
// format.
func (c *CLI) runRender(ctx context.Context, input string, ro *renderOpts, opts pipeline.Options) error {
	ch, err := c.readChart(ctx, input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, ro.layout.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()

	var (
		l         chart.Layout
		layoutHit bool
	)
	if ro.layoutFile != "" {
		l, err = chart.ReadLayoutFile(ro.layoutFile)
	} else {
		l, layoutHit, err = runner.LayoutWithCacheInfo(ctx, ch, opts)
	}
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("layout: %w", err)
	}

	artifacts, renderHit, err := runner.RenderWithCacheInfo(ctx, ch, l, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	printSuccess("Render complete")
	for _, format := range ro.formats {
		path := outputPath(ro, input, format)
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	printStats(len(l.Placements), len(l.Houses), layoutHit && renderHit)

	return nil
}
