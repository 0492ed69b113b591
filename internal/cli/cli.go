package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dropline/pkg/buildinfo"
	"github.com/matzehuels/dropline/pkg/cache"
	"github.com/matzehuels/dropline/pkg/config"
	"github.com/matzehuels/dropline/pkg/pipeline"
	"github.com/matzehuels/dropline/pkg/storage"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "dropline"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Dropline lays out family trees as drop-line charts",
		Long: `Dropline computes drop-line chart layouts for genealogical data: every
generation on its own row, couples side by side, and each surname line packed
into its own house so branches never overlap.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			if cfg.Path != "" {
				c.Logger.Debug("loaded config", "path", cfg.Path)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $"+config.EnvConfig+" or ~/.config/dropline/config.toml)")

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.housesCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	runner := pipeline.NewRunner(cc, nil, c.Logger)
	runner.TTL = c.Config.Cache.TTL.Duration
	return runner, nil
}

// newCache opens the cache backend named in the config.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.Config.Cache.Backend {
	case config.CacheNone:
		return cache.NewNullCache(), nil
	case config.CacheRedis:
		return cache.NewRedisCache(ctx, cache.RedisOptions{Addr: c.Config.Cache.RedisAddr})
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// newStore opens the chart store named in the config.
func (c *CLI) newStore(ctx context.Context) (storage.Store, error) {
	if c.Config.Storage.Backend == config.StorageMongo {
		return storage.NewMongoStore(ctx, storage.MongoOptions{
			URI:      c.Config.Storage.MongoURI,
			Database: c.Config.Storage.MongoDatabase,
		})
	}
	return storage.NewFileStore(c.Config.Storage.Dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/dropline/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// outputBase strips the extension from a chart path, giving the base name
// for derived files.
func outputBase(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input))
}

// =============================================================================
// Options Helpers
// =============================================================================

// baseOptions returns pipeline options seeded from the config file.
func (c *CLI) baseOptions() pipeline.Options {
	var opts pipeline.Options
	opts.SetLayoutOptions(c.Config.Layout)
	opts.Logger = c.Logger
	return opts
}

// addLayoutFlags registers the engine parameter flags on cmd. Their zero
// defaults mean "use the config value".
func addLayoutFlags(cmd *cobra.Command, f *layoutFlags) {
	cmd.Flags().Float64Var(&f.personWidth, "person-width", 0, "horizontal space per person")
	cmd.Flags().Float64Var(&f.generationHeight, "generation-height", 0, "vertical distance between generations")
	cmd.Flags().Float64Var(&f.houseGap, "house-gap", 0, "horizontal gap between houses")
	cmd.Flags().BoolVar(&f.normalize, "normalize", false, "move the chart's top-left corner to (0, 0)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute even when a cached result exists")
}

// layoutFlags holds the flags shared by commands that run the engine.
type layoutFlags struct {
	personWidth      float64
	generationHeight float64
	houseGap         float64
	normalize        bool
	noCache          bool
	refresh          bool
}

// apply copies explicitly set flags into opts.
func (f *layoutFlags) apply(opts *pipeline.Options) {
	if f.personWidth > 0 {
		opts.PersonWidth = f.personWidth
	}
	if f.generationHeight > 0 {
		opts.GenerationHeight = f.generationHeight
	}
	if f.houseGap > 0 {
		opts.HouseGap = f.houseGap
	}
	opts.Normalize = f.normalize
	opts.Refresh = f.refresh
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
