package layout

import (
	"io"

	"github.com/charmbracelet/log"
)

const (
	// DefaultPersonWidth is the nominal plaque width. Each placement advances
	// a row boundary by twice this value.
	DefaultPersonWidth = 54.0

	// DefaultGenerationHeight is the vertical distance between rows.
	DefaultGenerationHeight = 108.0

	// DefaultHouseGap is the horizontal gap reserved between houses.
	DefaultHouseGap = DefaultPersonWidth * 5

	// DefaultComponentStep separates the starting levels of disconnected
	// components before normalization.
	DefaultComponentStep = 20

	// DefaultLevelCeiling keeps vertical coordinates positive: a person on
	// level L sits at (ceiling - L) * generation height.
	DefaultLevelCeiling = 5000
)

// Options holds the numeric layout parameters. Zero fields take defaults.
type Options struct {
	PersonWidth      float64 `json:"person_width,omitempty" toml:"person_width"`
	GenerationHeight float64 `json:"generation_height,omitempty" toml:"generation_height"`
	HouseGap         float64 `json:"house_gap,omitempty" toml:"house_gap"`
	ComponentStep    int     `json:"component_step,omitempty" toml:"component_step"`
	LevelCeiling     int     `json:"level_ceiling,omitempty" toml:"level_ceiling"`
}

// DefaultOptions returns the stock layout parameters.
func DefaultOptions() Options {
	return Options{
		PersonWidth:      DefaultPersonWidth,
		GenerationHeight: DefaultGenerationHeight,
		HouseGap:         DefaultHouseGap,
		ComponentStep:    DefaultComponentStep,
		LevelCeiling:     DefaultLevelCeiling,
	}
}

// WithDefaults returns a copy of o with every non-positive field replaced by
// its default.
func (o Options) WithDefaults() Options {
	if o.PersonWidth <= 0 {
		o.PersonWidth = DefaultPersonWidth
	}
	if o.GenerationHeight <= 0 {
		o.GenerationHeight = DefaultGenerationHeight
	}
	if o.HouseGap <= 0 {
		o.HouseGap = DefaultHouseGap
	}
	if o.ComponentStep <= 0 {
		o.ComponentStep = DefaultComponentStep
	}
	if o.LevelCeiling <= 0 {
		o.LevelCeiling = DefaultLevelCeiling
	}
	return o
}

func discardLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}
