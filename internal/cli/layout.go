package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dropline/pkg/chart"
	"github.com/matzehuels/dropline/pkg/pipeline"
)

// layoutCommand creates the layout command for computing drop-line layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output   string
		chartOut string
		flags    layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [chart.json|tree.ged]",
		Short: "Compute a drop-line layout for a family tree",
		Long: `Compute a drop-line layout for a family tree.

The input is a native chart file (.json, or .yaml in the same shape) or a
GEDCOM file (.ged, .gedcom). The output is a layout.json file listing every
individual's level, house and coordinates. With --chart-out the positions are
also written back into a copy of the chart as stored coordinates.

Charts whose individuals already carry stored coordinates keep them: the
layout engine only runs when no coordinates are present.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.baseOptions()
			flags.apply(&opts)
			return c.runLayout(cmd.Context(), args[0], opts, output, chartOut, flags.noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().StringVar(&chartOut, "chart-out", "", "also write the chart with stored coordinates to this file")
	addLayoutFlags(cmd, &flags)

	return cmd
}

// runLayout loads the chart, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output, chartOut string, noCache bool) error {
	ch, err := c.readChart(ctx, input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	l, cacheHit, err := runner.LayoutWithCacheInfo(ctx, ch, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = outputBase(input) + ".layout.json"
	}
	if err := chart.WriteLayoutFile(l, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)

	if chartOut != "" {
		if err := writePositionedChart(ch, l, chartOut); err != nil {
			return err
		}
		printFile(chartOut)
	}

	printStats(len(l.Placements), len(l.Houses), cacheHit)
	if !l.IsAuto() {
		printDetail("stored coordinates kept, layout engine skipped")
	}
	printNewline()
	printNextStep("Render", appName+" render "+input)

	return nil
}

// readChart reads a chart file and logs its size.
func (c *CLI) readChart(ctx context.Context, input string) (chart.Chart, error) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)
	ch, err := chart.ReadChartFile(input, logger)
	if err != nil {
		return chart.Chart{}, err
	}
	prog.done(fmt.Sprintf("Read %d individuals, %d families", len(ch.Individuals), len(ch.Families)))
	return ch, nil
}

// writePositionedChart copies the layout's coordinates into the chart as
// stored coordinates and writes it to path.
func writePositionedChart(ch chart.Chart, l chart.Layout, path string) error {
	pop, err := ch.ToPopulation()
	if err != nil {
		return err
	}
	l.Apply(pop)
	if err := chart.WriteChartFile(chart.FromPopulation(pop), path); err != nil {
		return fmt.Errorf("write chart %s: %w", path, err)
	}
	return nil
}
