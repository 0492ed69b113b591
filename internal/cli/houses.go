package cli

import (
	"context"
	"fmt"
	"os"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dropline/pkg/chart"
	"github.com/matzehuels/dropline/pkg/pipeline"
)

// houseSummary describes one house of a computed layout.
type houseSummary struct {
	Root     string // ID of the house root
	Name     string // display name of the root
	Members  []chart.Placement
	MinLevel int
	MaxLevel int
	MinX     float64
	MaxX     float64
}

// Generations returns the number of levels the house spans.
func (h houseSummary) Generations() int {
	return h.MaxLevel - h.MinLevel + 1
}

// summarizeHouses groups placements by house, in packing order. Members are
// sorted top row first, then left to right. Unhoused placements are left out.
func summarizeHouses(l chart.Layout) []houseSummary {
	byRoot := make(map[string]*houseSummary, len(l.Houses))
	out := make([]houseSummary, len(l.Houses))
	for k, root := range l.Houses {
		out[k] = houseSummary{Root: root, Name: root}
		byRoot[root] = &out[k]
	}

	for _, p := range l.Placements {
		h, ok := byRoot[p.House]
		if !ok {
			continue
		}
		if p.ID == h.Root && p.Name != "" {
			h.Name = p.Name
		}
		if len(h.Members) == 0 {
			h.MinLevel, h.MaxLevel = p.Level, p.Level
			h.MinX, h.MaxX = p.X, p.X
		}
		h.MinLevel = min(h.MinLevel, p.Level)
		h.MaxLevel = max(h.MaxLevel, p.Level)
		h.MinX = min(h.MinX, p.X)
		h.MaxX = max(h.MaxX, p.X)
		h.Members = append(h.Members, p)
	}

	for k := range out {
		m := out[k].Members
		sort.SliceStable(m, func(i, j int) bool {
			if m[i].Y != m[j].Y {
				return m[i].Y < m[j].Y
			}
			return m[i].X < m[j].X
		})
	}
	return out
}

// housesCommand creates the houses command for inspecting house partitions.
func (c *CLI) housesCommand() *cobra.Command {
	var (
		interactive bool
		flags       layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "houses [chart.json|tree.ged]",
		Short: "List the houses of a family tree",
		Long: `List the houses of a family tree.

A house is a line of descent through the male line: the founder, his sons,
their sons and so on, together with their wives and daughters. Each house is
packed into its own horizontal band of the chart.

With -i the houses can be browsed interactively.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.baseOptions()
			flags.apply(&opts)
			ctx := cmd.Context()

			ch, err := c.readChart(ctx, args[0])
			if err != nil {
				return err
			}
			houses, err := c.computeHouses(ctx, ch, flags.noCache, opts)
			if err != nil {
				return err
			}
			if len(houses) == 0 {
				printWarning("No houses: the chart keeps its stored coordinates or has at most one individual")
				return nil
			}

			if interactive {
				_, err := tea.NewProgram(NewHouseListModel(houses), tea.WithOutput(os.Stderr)).Run()
				return err
			}
			fmt.Println(renderHouseTable(houses))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse houses interactively")
	addLayoutFlags(cmd, &flags)

	return cmd
}

// computeHouses lays the chart out and groups the result by house.
func (c *CLI) computeHouses(ctx context.Context, ch chart.Chart, noCache bool, opts pipeline.Options) ([]houseSummary, error) {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return nil, fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	l, err := runner.Layout(ctx, ch, opts)
	if err != nil {
		return nil, fmt.Errorf("compute layout: %w", err)
	}
	return summarizeHouses(l), nil
}

// renderHouseTable formats houses as a bordered table.
func renderHouseTable(houses []houseSummary) string {
	rows := make([][]string, len(houses))
	for k, h := range houses {
		rows[k] = []string{
			fmt.Sprintf("%d", k+1),
			h.Name,
			fmt.Sprintf("%d", len(h.Members)),
			fmt.Sprintf("%d", h.Generations()),
			fmt.Sprintf("%.0f..%.0f", h.MinX, h.MaxX),
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "House", "Members", "Generations", "X range").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 1:
				return lipgloss.NewStyle().Foreground(colorCyan)
			case col == 0 || col == 4:
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})
	return t.Render()
}
