package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/dropline/pkg/chart"
	"github.com/matzehuels/dropline/pkg/observability"
	"github.com/matzehuels/dropline/pkg/render/nodelink"
)

// Render generates output artifacts in the requested formats.
//
// "json" is the layout itself; "dot", "svg" and "png" are the relationship
// graph produced by [nodelink].
func Render(ctx context.Context, c chart.Chart, l chart.Layout, opts Options) (map[string][]byte, error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts, err := render(ctx, c, l, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, err
}

func render(ctx context.Context, c chart.Chart, l chart.Layout, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	var dot string
	graphDOT := func() string {
		if dot == "" {
			dot = nodelink.ToDOT(c, l, opts.NodelinkOptions())
		}
		return dot
	}

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatJSON:
			data, err = chart.MarshalLayout(l)
		case FormatDOT:
			data = []byte(graphDOT())
		case FormatSVG:
			data, err = nodelink.RenderSVG(ctx, graphDOT())
		case FormatPNG:
			data, err = nodelink.RenderPNG(ctx, graphDOT())
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
