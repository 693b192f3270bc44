// Package config loads forcegraph settings from a TOML file and the
// environment.
//
// Precedence, lowest first: built-in defaults, the config file,
// FORCEGRAPH_* environment variables, command-line flags (applied by the
// caller). Nested keys map to env vars with underscores, so cache.redis_url
// is FORCEGRAPH_CACHE_REDIS_URL.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"

	"github.com/matzehuels/forcegraph/pkg/buildinfo"
	"github.com/matzehuels/forcegraph/pkg/cache"
	"github.com/matzehuels/forcegraph/pkg/figure"
	"github.com/matzehuels/forcegraph/pkg/pipeline"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "FORCEGRAPH"

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Config holds all application configuration.
type Config struct {
	Figure FigureConfig `mapstructure:"figure"`
	Layout LayoutConfig `mapstructure:"layout"`
	Render RenderConfig `mapstructure:"render"`
	Cache  CacheConfig  `mapstructure:"cache"`
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
}

type FigureConfig struct {
	Width       float64 `mapstructure:"width"`  // inches
	Height      float64 `mapstructure:"height"` // inches
	DPI         float64 `mapstructure:"dpi"`
	WeightScale float64 `mapstructure:"weight_scale"`
	EdgeLabels  float64 `mapstructure:"edge_labels"`
	Title       string  `mapstructure:"title"`
}

type LayoutConfig struct {
	Engine     string `mapstructure:"engine"`
	Seed       uint64 `mapstructure:"seed"`
	Iterations int    `mapstructure:"iterations"`
}

type RenderConfig struct {
	Backend string   `mapstructure:"backend"`
	Formats []string `mapstructure:"formats"`
}

type CacheConfig struct {
	Backend     string        `mapstructure:"backend"`
	Dir         string        `mapstructure:"dir"`
	RedisURL    string        `mapstructure:"redis_url"`
	Prefix      string        `mapstructure:"prefix"`
	LayoutTTL   time.Duration `mapstructure:"layout_ttl"`
	ArtifactTTL time.Duration `mapstructure:"artifact_ttl"`
}

type ServerConfig struct {
	Addr           string        `mapstructure:"addr"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MaxBodyBytes   int64         `mapstructure:"max_body_bytes"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// DefaultPath returns $XDG_CONFIG_HOME/forcegraph/config.toml (or the
// platform equivalent).
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "forcegraph", "config.toml")
}

// DefaultCacheDir returns the user cache directory for forcegraph.
func DefaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "forcegraph-cache")
	}
	return filepath.Join(dir, "forcegraph")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("figure.width", figure.DefaultWidth)
	v.SetDefault("figure.height", figure.DefaultHeight)
	v.SetDefault("figure.dpi", figure.DefaultDPI)
	v.SetDefault("figure.weight_scale", figure.DefaultWeightScale)
	v.SetDefault("figure.edge_labels", 0.0)
	v.SetDefault("figure.title", "")

	v.SetDefault("layout.engine", pipeline.DefaultEngine)
	v.SetDefault("layout.seed", pipeline.DefaultSeed)
	v.SetDefault("layout.iterations", pipeline.DefaultIterations)

	v.SetDefault("render.backend", pipeline.DefaultBackend)
	v.SetDefault("render.formats", []string{pipeline.FormatPNG})

	v.SetDefault("cache.backend", CacheFile)
	v.SetDefault("cache.dir", DefaultCacheDir())
	v.SetDefault("cache.redis_url", "redis://localhost:6379/0")
	v.SetDefault("cache.prefix", "forcegraph:")
	v.SetDefault("cache.layout_ttl", cache.TTLLayout)
	v.SetDefault("cache.artifact_ttl", cache.TTLArtifact)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.request_timeout", 60*time.Second)
	v.SetDefault("server.max_body_bytes", int64(10<<20))

	v.SetDefault("log.level", "info")
}

// Default returns the built-in configuration.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// Defaults always decode.
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// Load reads configuration from path and the environment.
//
// An empty path tries DefaultPath and silently skips it when missing; an
// explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if _, err := os.Stat(path); err == nil || explicit {
			v.SetConfigFile(path)
			v.SetConfigType("toml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that would fail much later at runtime.
func (c *Config) Validate() error {
	if !slices.Contains([]string{CacheFile, CacheRedis, CacheNone}, c.Cache.Backend) {
		return fmt.Errorf("cache.backend: unknown backend %q (must be one of: file, redis, none)", c.Cache.Backend)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	opts := c.PipelineOptions()
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("invalid defaults: %w", err)
	}
	return nil
}

// PipelineOptions returns pipeline options seeded from the configuration.
func (c *Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		Size:        [2]float64{c.Figure.Width, c.Figure.Height},
		DPI:         c.Figure.DPI,
		WeightScale: c.Figure.WeightScale,
		EdgeLabels:  c.Figure.EdgeLabels,
		Title:       c.Figure.Title,
		Engine:      c.Layout.Engine,
		Seed:        c.Layout.Seed,
		Iterations:  c.Layout.Iterations,
		Backend:     c.Render.Backend,
		Formats:     slices.Clone(c.Render.Formats),
	}
}

// OpenCache opens the configured cache backend.
func (c *CacheConfig) OpenCache(ctx context.Context) (cache.Cache, error) {
	switch c.Backend {
	case CacheNone:
		return cache.NewNullCache(), nil
	case CacheRedis:
		rc, err := cache.NewRedisCache(ctx, c.RedisURL, c.Prefix)
		if err != nil {
			return nil, err
		}
		return rc, nil
	default:
		fc, err := cache.NewFileCache(c.Dir)
		if err != nil {
			return nil, err
		}
		return fc, nil
	}
}

// Keyer returns a keyer scoped to the running build, so upgrading
// forcegraph never serves artifacts drawn by an older renderer.
func (c *CacheConfig) Keyer() cache.Keyer {
	return cache.NewScopedKeyer(nil, buildinfo.Version+":")
}
