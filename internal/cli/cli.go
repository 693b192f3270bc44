// Package cli implements the forcegraph command-line interface.
//
// The commands read a weighted graph record (JSON or TOML), lay it out with a
// force-directed engine and write or display the resulting figure:
//
//   - render: write PNG, SVG, PDF, HTML or layout JSON files
//   - layout: write only the computed layout JSON
//   - show: open the figure in the system viewer
//   - serve: run the HTTP rendering API
//   - cache: inspect or clear the layout and artifact cache
//
// Settings come from the config file and FORCEGRAPH_* environment variables
// (see package config); command-line flags override both.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// stored on the CLI and attached to each command's context.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/forcegraph/pkg/buildinfo"
	"github.com/matzehuels/forcegraph/pkg/cache"
	"github.com/matzehuels/forcegraph/pkg/config"
	"github.com/matzehuels/forcegraph/pkg/graph"
	"github.com/matzehuels/forcegraph/pkg/observability"
	"github.com/matzehuels/forcegraph/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used in help text and next-step hints.
const appName = "forcegraph"

// stdio is the path argument that selects stdin or stdout.
const stdio = "-"

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
	Config *config.Config

	configPath string
	noCache    bool
}

// New creates a CLI logging to w at the given level. Config starts as the
// built-in defaults and is replaced by the loaded file once a command runs.
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
		Short: "Forcegraph draws weighted graphs with force-directed layouts",
		Long: `Forcegraph turns a list of weighted links into a node-link figure.

Nodes are placed with a spring (Fruchterman-Reingold) simulation or one of the
Graphviz force engines, and edges are drawn with a width proportional to their
weight. Figures can be written as PNG, SVG, PDF, interactive HTML, or as a
layout JSON document that re-renders without recomputing positions.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.loadConfig,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: "+config.DefaultPath()+")")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable the layout and artifact cache")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file and environment before any command runs.
func (c *CLI) loadConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	c.SetLogLevel(level)

	hooks := observability.NewLogHooks(c.Logger)
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)
	observability.SetHTTPHooks(hooks)

	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx)
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(cc, c.Config.Cache.Keyer(), c.Logger)
	r.LayoutTTL = c.Config.Cache.LayoutTTL
	r.ArtifactTTL = c.Config.Cache.ArtifactTTL
	return r, nil
}

func (c *CLI) newCache(ctx context.Context) (cache.Cache, error) {
	if c.noCache {
		return cache.NewNullCache(), nil
	}
	cc, err := c.Config.Cache.OpenCache(ctx)
	if err != nil {
		// A missing cache only costs speed.
		c.Logger.Warn("cache unavailable, continuing without it", "backend", c.Config.Cache.Backend, "err", err)
		return cache.NewNullCache(), nil
	}
	return cc, nil
}

// =============================================================================
// Input
// =============================================================================

// readInput loads a graph record from path, or from stdin when path is "-".
// Stdin is decoded as format, which defaults to JSON.
func readInput(path, format string) (graph.Data, error) {
	if path == stdio {
		return graph.ReadData(os.Stdin, format)
	}
	if format != "" {
		f, err := os.Open(path)
		if err != nil {
			return graph.Data{}, fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		return graph.ReadData(f, format)
	}
	return graph.ReadDataFile(path)
}
