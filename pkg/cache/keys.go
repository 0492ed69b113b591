package cache

// Keyer generates cache keys. Implementations must be deterministic: equal
// inputs always give equal keys.
type Keyer interface {
	// LayoutKey identifies a computed layout of a chart.
	LayoutKey(chartHash string, opts LayoutKeyOpts) string

	// ArtifactKey identifies a rendered output of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string

	// ChartKey identifies a stored chart record.
	ChartKey(id string) string
}

// LayoutKeyOpts holds every setting that changes a layout's outcome.
type LayoutKeyOpts struct {
	PersonWidth      float64 `json:"person_width"`
	GenerationHeight float64 `json:"generation_height"`
	HouseGap         float64 `json:"house_gap"`
	ComponentStep    int     `json:"component_step"`
	LevelCeiling     int     `json:"level_ceiling"`
	Normalize        bool    `json:"normalize"`
}

// ArtifactKeyOpts holds every setting that changes a rendered artifact.
type ArtifactKeyOpts struct {
	Format  string `json:"format"`
	Houses  bool   `json:"houses"`
	RankDir string `json:"rank_dir,omitempty"`
}

// DefaultKeyer is the standard Keyer.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard Keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey hashes the chart hash together with the layout options.
func (DefaultKeyer) LayoutKey(chartHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", chartHash, opts)
}

// ArtifactKey hashes the layout hash together with the render options.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// ChartKey returns "chart:<id>".
func (DefaultKeyer) ChartKey(id string) string {
	return "chart:" + id
}

var _ Keyer = DefaultKeyer{}
