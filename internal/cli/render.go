package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/forcegraph/pkg/graph"
	"github.com/matzehuels/forcegraph/pkg/pipeline"
)

// layoutSuffix names layout JSON files so they never overwrite a JSON input.
const layoutSuffix = ".layout.json"

// renderOpts holds the render command's own flags.
type renderOpts struct {
	output      string // output file (single format) or base path
	inputFormat string // json or toml; inferred from the extension when empty
	fromLayout  bool   // input is a layout JSON produced by the layout command
	options     optionFlags
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var ro renderOpts

	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "Render a weighted graph to PNG, SVG, PDF, HTML or layout JSON",
		Long: `Render a weighted graph to one or more output files.

The input is a JSON or TOML record with "nodes" and "links". Nodes that no
link references are dropped. Each link's "value" (or "weight") sets the edge
width as value × weight-scale; links without either are drawn as isolated
light-blue squares.

With several formats, files are named <base>.<format>. JSON output is the
computed layout and is written to <base>.layout.json; render it again with
--from-layout to change the backend or format without recomputing positions.

Layouts and rendered files are cached; use --refresh or --no-cache to bypass.`,
		Example: `  forcegraph render links.json
  forcegraph render links.toml -f svg,pdf --weight-scale 5
  forcegraph render links.json -b echarts -o graph.html
  cat links.json | forcegraph render - -f svg -o - > graph.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.pipelineOptions(cmd, &ro.options)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, &ro)
		},
	}

	cmd.Flags().StringVarP(&ro.output, "output", "o", "", "output file (single format), base path (multiple), or - for stdout")
	cmd.Flags().StringVar(&ro.inputFormat, "input-format", "", "input format: json, toml (default: from extension)")
	cmd.Flags().BoolVar(&ro.fromLayout, "from-layout", false, "treat the input as a layout JSON file")
	ro.options.registerLayout(cmd)
	ro.options.registerRender(cmd)

	return cmd
}

// renderSummary is what runRender reports after writing files.
type renderSummary struct {
	nodes, edges, dropped int
	cached                bool
}

// runRender lays out and renders input, then writes every requested format.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, ro *renderOpts) error {
	toStdout := ro.output == stdio
	if toStdout && len(opts.Formats) != 1 {
		return fmt.Errorf("output to stdout needs exactly one format, got %d", len(opts.Formats))
	}

	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, fmt.Sprintf("Rendering %s...", strings.Join(opts.Formats, ", ")))
	spinner.Start()

	var (
		artifacts map[string][]byte
		summary   renderSummary
	)
	if ro.fromLayout {
		artifacts, summary, err = renderLayout(ctx, runner, input, opts)
	} else {
		artifacts, summary, err = renderData(ctx, runner, input, ro.inputFormat, opts)
	}
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if toStdout {
		return writeOutput(stdio, artifacts[opts.Formats[0]])
	}

	paths := outputPaths(ro.output, input, opts.Formats)
	for _, format := range opts.Formats {
		if err := writeOutput(paths[format], artifacts[format]); err != nil {
			return fmt.Errorf("write %s: %w", paths[format], err)
		}
	}
	prog.done(fmt.Sprintf("Wrote %d file(s)", len(paths)))

	printSuccess("Render complete")
	for _, format := range opts.Formats {
		printFile(paths[format])
	}
	printStats(summary.nodes, summary.edges, summary.cached)
	if summary.dropped > 0 {
		printWarning("%d node(s) without links were left out", summary.dropped)
	}
	if input != stdio && !ro.fromLayout {
		printNewline()
		printNextStep("Preview", appName+" show "+input)
	}
	return nil
}

// renderData runs the full pipeline on a graph record.
func renderData(ctx context.Context, runner *pipeline.Runner, input, format string, opts pipeline.Options) (map[string][]byte, renderSummary, error) {
	d, err := readInput(input, format)
	if err != nil {
		return nil, renderSummary{}, err
	}
	res, err := runner.Execute(ctx, d, opts)
	if err != nil {
		return nil, renderSummary{}, err
	}
	return res.Artifacts, renderSummary{
		nodes:   res.Stats.NodeCount,
		edges:   res.Stats.EdgeCount,
		dropped: res.Stats.Dropped,
		cached:  res.CacheInfo.LayoutHit && res.CacheInfo.RenderHit,
	}, nil
}

// renderLayout renders a previously exported layout without recomputing it.
func renderLayout(ctx context.Context, runner *pipeline.Runner, input string, opts pipeline.Options) (map[string][]byte, renderSummary, error) {
	l, err := readLayout(input)
	if err != nil {
		return nil, renderSummary{}, err
	}
	fig, err := pipeline.FigureFromLayout(l, opts)
	if err != nil {
		return nil, renderSummary{}, err
	}
	artifacts, hit, err := runner.RenderWithCacheInfo(ctx, fig, opts)
	if err != nil {
		return nil, renderSummary{}, err
	}
	return artifacts, renderSummary{
		nodes:  fig.Graph().NodeCount() + len(fig.Unweighted()),
		edges:  fig.Graph().EdgeCount(),
		cached: hit,
	}, nil
}

func readLayout(path string) (graph.Layout, error) {
	if path != stdio {
		return graph.ReadLayoutFile(path)
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return graph.Layout{}, fmt.Errorf("read stdin: %w", err)
	}
	return graph.UnmarshalLayout(data)
}

// basePath derives the output path without extension. An empty output uses
// the input name, minus its extension and any ".layout" marker. A known
// format extension on output is stripped.
func basePath(output, input string) string {
	if output == "" {
		if input == stdio {
			return appName
		}
		base := strings.TrimSuffix(input, filepath.Ext(input))
		return strings.TrimSuffix(base, ".layout")
	}
	if strings.HasSuffix(output, layoutSuffix) {
		return strings.TrimSuffix(output, layoutSuffix)
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPaths maps each format to its output file. A single format with an
// explicit output is written exactly there.
func outputPaths(output, input string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, format := range formats {
		paths[format] = formatPath(base, format)
	}
	return paths
}

func formatPath(base, format string) string {
	if format == pipeline.FormatJSON {
		return base + layoutSuffix
	}
	return base + "." + format
}

// nopCloser adds a no-op Close to os.Stdout.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput opens path for writing, truncating it. "-" is stdout.
func openOutput(path string) (io.WriteCloser, error) {
	if path == stdio {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

func writeOutput(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
