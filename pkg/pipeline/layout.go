package pipeline

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dropline/pkg/chart"
	"github.com/matzehuels/dropline/pkg/observability"
	"github.com/matzehuels/dropline/pkg/pedigree/layout"
)

// GenerateLayout computes positions for every individual in c.
//
// A chart in which any individual carries a stored coordinate is not passed
// to the engine; its stored coordinates are used as they are and Normalize
// has no effect. ctx is checked once, before the engine starts.
func GenerateLayout(ctx context.Context, c chart.Chart, opts Options) (chart.Layout, error) {
	pop, err := c.ToPopulation()
	if err != nil {
		return chart.Layout{}, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, pop.Len())
	start := time.Now()

	auto := pop.NeedsLayout()
	var res layout.Result
	if auto {
		if err := ctx.Err(); err != nil {
			hooks.OnLayoutComplete(ctx, 0, time.Since(start), err)
			return chart.Layout{}, err
		}
		res = layout.Run(pop, opts.LayoutOptions(), logger)
		if opts.Normalize {
			if origin, ok := pop.TopLeft(); ok {
				logger.Debug("normalizing", "dx", -origin.X, "dy", -origin.Y)
			}
			pop.Normalize()
		}
	} else {
		logger.Info("using stored coordinates", "individuals", pop.Len())
	}

	out := chart.NewLayout(pop, res)
	if auto {
		out.Source = chart.SourceAuto
	}
	hooks.OnLayoutComplete(ctx, len(out.Houses), time.Since(start), nil)
	return out, nil
}
