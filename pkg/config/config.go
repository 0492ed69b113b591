// Package config loads dropline settings from a TOML file.
//
// The file is looked up in this order:
//
//  1. an explicit path (the --config flag)
//  2. $DROPLINE_CONFIG
//  3. $XDG_CONFIG_HOME/dropline/config.toml (or ~/.config/dropline/config.toml)
//
// A missing file in steps 2 and 3 is not an error: defaults apply. Every key
// left out of the file keeps its default value.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/dropline/pkg/errors"
	"github.com/matzehuels/dropline/pkg/pedigree/layout"
)

// EnvConfig names the environment variable holding a config file path.
const EnvConfig = "DROPLINE_CONFIG"

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Storage backends.
const (
	StorageFile  = "file"
	StorageMongo = "mongo"
)

// Config is the full settings tree.
type Config struct {
	Layout  layout.Options `toml:"layout"`
	Cache   Cache          `toml:"cache"`
	Storage Storage        `toml:"storage"`
	Server  Server         `toml:"server"`

	// Path is the file the settings were read from, empty for defaults.
	Path string `toml:"-"`
}

// Cache selects and configures the layout cache.
type Cache struct {
	Backend   string   `toml:"backend"`
	RedisAddr string   `toml:"redis_addr"`
	TTL       Duration `toml:"ttl"`
}

// Storage selects and configures chart storage.
type Storage struct {
	Backend       string `toml:"backend"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
	Dir           string `toml:"dir"`
}

// Server configures the HTTP API.
type Server struct {
	Addr string `toml:"addr"`
}

// Duration is a time.Duration written as a string ("24h") in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the settings used when no file is present.
func Default() Config {
	return Config{
		Layout: layout.DefaultOptions(),
		Cache: Cache{
			Backend:   CacheFile,
			RedisAddr: "localhost:6379",
			TTL:       Duration{24 * time.Hour},
		},
		Storage: Storage{
			Backend:       StorageFile,
			MongoURI:      "mongodb://localhost:27017",
			MongoDatabase: "dropline",
			Dir:           defaultStorageDir(),
		},
		Server: Server{Addr: ":8080"},
	}
}

// Load reads the config file at path, or the first one found by the lookup
// order when path is empty.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = discover()
	}
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		if os.IsNotExist(err) {
			return Config{}, errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, err
	}
	cfg.Path = path
	return cfg, nil
}

// Parse decodes TOML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	cfg.Layout = cfg.Layout.WithDefaults()
	return cfg, nil
}

// Validate checks backend names and numeric ranges.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case CacheFile, CacheRedis, CacheNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}
	switch c.Storage.Backend {
	case StorageFile, StorageMongo:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown storage backend %q", c.Storage.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache ttl must not be negative")
	}
	l := c.Layout
	if l.PersonWidth < 0 || l.GenerationHeight < 0 || l.HouseGap < 0 || l.ComponentStep < 0 || l.LevelCeiling < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "layout values must not be negative")
	}
	return nil
}

// discover returns the first candidate path from the environment.
func discover() string {
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "dropline", "config.toml")
}

func defaultStorageDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "dropline", "charts")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "dropline", "charts")
	}
	return filepath.Join(home, ".local", "share", "dropline", "charts")
}
