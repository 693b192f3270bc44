package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/forcegraph/internal/server"
	"github.com/matzehuels/forcegraph/pkg/config"
)

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the rendering API over HTTP",
		Long: `Serve the rendering API over HTTP.

Routes:
  POST /v1/render   graph record in, rendered figure out
  POST /v1/layout   graph record in, layout JSON out
  GET  /healthz     liveness probe
  GET  /version     build information

Query parameters (format, backend, engine, weight_scale, width, height, dpi,
seed, iterations, k, edge_labels, title, physics, refresh) override the
configured defaults for a single request.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				c.Config.Server.Addr = addr
			}
			return c.runServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")

	return cmd
}

func (c *CLI) runServe(ctx context.Context) error {
	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	sc := c.Config.Server
	srv := server.New(runner, c.Config.PipelineOptions(), server.Config{
		Addr:           sc.Addr,
		RequestTimeout: sc.RequestTimeout,
		MaxBodyBytes:   sc.MaxBodyBytes,
	}, loggerFromContext(ctx))

	fmt.Println(StyleTitle.Render(appName) + " " + StyleDim.Render("API"))
	printKeyValue("address", StyleLink.Render("http://"+displayAddr(srv.Addr())))
	backend := c.Config.Cache.Backend
	if c.noCache {
		backend = config.CacheNone
	}
	printKeyValue("cache", backend)
	printNewline()

	return srv.ListenAndServe(ctx)
}

// displayAddr turns ":8080" into "localhost:8080".
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
