package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/forcegraph/pkg/pipeline"
)

// showCommand creates the show command, which opens a figure in the
// system viewer instead of writing it next to the input.
func (c *CLI) showCommand() *cobra.Command {
	var (
		inputFormat string
		flags       optionFlags
	)

	cmd := &cobra.Command{
		Use:   "show [file|-]",
		Short: "Lay out a weighted graph and open it in the default viewer",
		Long: `Lay out a weighted graph and open it in the default viewer.

Only the first requested format is shown. The figure is written to a
temporary file and handed to xdg-open, open, or the Windows shell. Nothing is
cached.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.pipelineOptions(cmd, &flags)
			if err != nil {
				return err
			}
			return c.runShow(cmd.Context(), args[0], inputFormat, opts)
		},
	}

	cmd.Flags().StringVar(&inputFormat, "input-format", "", "input format: json, toml (default: from extension)")
	flags.registerLayout(cmd)
	flags.registerRender(cmd)

	return cmd
}

func (c *CLI) runShow(ctx context.Context, input, inputFormat string, opts pipeline.Options) error {
	d, err := readInput(input, inputFormat)
	if err != nil {
		return err
	}

	opts.Render = true
	opts.Logger = loggerFromContext(ctx)

	spinner := newSpinner(ctx, "Drawing figure...")
	spinner.Start()
	if _, err := pipeline.Visualize(ctx, d, opts); err != nil {
		spinner.StopWithError("Show failed")
		return err
	}
	spinner.StopWithSuccess("Opened " + opts.Formats[0] + " figure")
	return nil
}
