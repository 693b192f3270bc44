package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/forcegraph/pkg/graph"
	"github.com/matzehuels/forcegraph/pkg/pipeline"
)

// layoutCommand creates the layout command for computing node positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output      string
		inputFormat string
		flags       optionFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [file|-]",
		Short: "Compute node positions and write them as layout JSON",
		Long: `Compute node positions and write them as layout JSON.

The layout file holds positions, edge widths and figure settings. It can be
rendered later with 'render --from-layout' in any format or backend without
running the force simulation again.

Results are cached; use --refresh or --no-cache to bypass.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.pipelineOptions(cmd, &flags)
			if err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), args[0], inputFormat, opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>"+layoutSuffix+"), or - for stdout")
	cmd.Flags().StringVar(&inputFormat, "input-format", "", "input format: json, toml (default: from extension)")
	flags.registerLayout(cmd)

	return cmd
}

// runLayout loads the graph, computes the layout and writes it out.
func (c *CLI) runLayout(ctx context.Context, input, inputFormat string, opts pipeline.Options, output string) error {
	d, err := readInput(input, inputFormat)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinner(ctx, fmt.Sprintf("Computing %s layout...", opts.Engine))
	spinner.Start()

	fig, cacheHit, err := runner.LayoutWithCacheInfo(ctx, d, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	l := fig.Export()
	if output == stdio {
		data, err := graph.MarshalLayout(l)
		if err != nil {
			return err
		}
		return writeOutput(stdio, data)
	}

	outputPath := output
	if outputPath == "" {
		outputPath = formatPath(basePath("", input), pipeline.FormatJSON)
	}
	if err := graph.WriteLayoutFile(l, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(l.Nodes), len(l.Edges), cacheHit)
	printNewline()
	printNextStep("Render", appName+" render --from-layout "+outputPath)

	return nil
}
