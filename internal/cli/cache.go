package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/matzehuels/forcegraph/pkg/cache"
	"github.com/matzehuels/forcegraph/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the layout and artifact cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached layouts and rendered files",
		Long: `Remove all cached layouts and rendered files.

For the file backend this empties the cache directory. For Redis it deletes
every key under the configured prefix.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.Config.Cache
			if cfg.Backend == config.CacheNone {
				printInfo("Caching is disabled")
				return nil
			}

			cc, err := cfg.OpenCache(cmd.Context())
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer cc.Close()

			clearer, ok := cc.(cache.Clearer)
			if !ok {
				printWarning("The %s cache cannot be cleared", cfg.Backend)
				return nil
			}
			if err := clearer.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			printSuccess("Cache cleared")
			printDetail("%s", cacheLocation(cfg))
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where the cache lives",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(cacheLocation(c.Config.Cache))
			return nil
		},
	}
}

// cacheLocation describes the cache for humans: a directory for the file
// backend, the URL and key prefix for Redis.
func cacheLocation(cfg config.CacheConfig) string {
	switch cfg.Backend {
	case config.CacheRedis:
		addr := cfg.RedisURL
		if u, err := url.Parse(addr); err == nil {
			addr = u.Redacted()
		}
		return addr + " (prefix " + cfg.Prefix + ")"
	case config.CacheNone:
		return "disabled"
	default:
		return cfg.Dir
	}
}
