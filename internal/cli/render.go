package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/t0mdavid-m/seqviz/pkg/config"
	"github.com/t0mdavid-m/seqviz/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output            string   // output file path (or base path for multiple formats)
	vizType           string   // visualization type: "dendrogram" or "nodelink"
	formats           []string // output formats: "svg", "pdf", "png", "json"
	orientation       string   // dendrogram orientation
	transform         string   // distance axis transform
	bracket           string   // bracket style: "rectangular" or "slanted"
	width             float64  // viewport width in pixels
	height            float64  // viewport height in pixels
	labels            bool     // draw leaf labels
	highlight         bool     // mark non-monotonic merges
	detailed          bool     // show merge heights in nodelink diagrams
	allowNonMonotonic bool     // accept defective linkages
	leafBaseline      float64  // distance-axis position of the leaves
}

// newRenderCmd creates the render command for generating visualizations.
// Layout defaults come from the config file and can be overridden per run.
func newRenderCmd(cfg *config.Config) *cobra.Command {
	var formatsStr string
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a tree to SVG, PNG, PDF, or JSON",
		Long: `Render reads a Newick file or a JSON linkage document and produces
dendrogram or node-link visualizations in the requested formats.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			applyRenderDefaults(&opts, cfg)
			return runRender(cmd.Context(), args[0], cfg, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.vizType, "type", "t", "dendrogram", "visualization type: dendrogram (default), nodelink")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().StringVar(&opts.orientation, "orientation", "", "dendrogram orientation: left-right, right-left, top-bottom, bottom-top")
	cmd.Flags().StringVar(&opts.transform, "transform", "", "distance transform: identity, sqrt, log")
	cmd.Flags().StringVar(&opts.bracket, "bracket", "", "bracket style: rectangular, slanted")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "frame width")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "frame height")
	cmd.Flags().BoolVar(&opts.labels, "labels", true, "draw leaf labels")
	cmd.Flags().BoolVar(&opts.highlight, "highlight", false, "mark non-monotonic merges")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show merge heights (nodelink)")
	cmd.Flags().BoolVar(&opts.allowNonMonotonic, "allow-non-monotonic", false, "accept linkages with decreasing merge heights")
	cmd.Flags().Float64Var(&opts.leafBaseline, "leaf-baseline", 0, "distance-axis position of the leaves")

	return cmd
}

// applyRenderDefaults fills unset layout flags from the config file.
func applyRenderDefaults(opts *renderOpts, cfg *config.Config) {
	if opts.orientation == "" {
		opts.orientation = cfg.Render.Orientation
	}
	if opts.transform == "" {
		opts.transform = cfg.Render.Transform
	}
	if opts.bracket == "" {
		opts.bracket = cfg.Render.Bracket
	}
	if opts.width <= 0 {
		opts.width = cfg.Render.Width
	}
	if opts.height <= 0 {
		opts.height = cfg.Render.Height
	}
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// basePath derives the base output path from the output and input file
// paths. If output is empty, it strips the extension from input. If output
// has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// runRender reads the input file, executes the pipeline, and writes one
// file per requested format.
func runRender(ctx context.Context, input string, cfg *config.Config, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}

	popts := pipeline.Options{
		VizType:           opts.vizType,
		Orientation:       opts.orientation,
		Transform:         opts.transform,
		Bracket:           opts.bracket,
		AllowNonMonotonic: opts.allowNonMonotonic,
		LeafBaseline:      opts.leafBaseline,
		Width:             opts.width,
		Height:            opts.height,
		Formats:           opts.formats,
		ShowLabels:        opts.labels,
		Highlight:         opts.highlight,
		Detailed:          opts.detailed,
	}
	if err := pipeline.DetectInput(data, &popts); err != nil {
		return err
	}

	runner := newRunner(ctx, cfg)
	defer runner.Cache.Close()

	result, err := runner.Execute(ctx, popts)
	if err != nil {
		return err
	}

	if len(result.Layout.DuplicateLabels) > 0 {
		printWarning("duplicate leaf labels: %s", strings.Join(result.Layout.DuplicateLabels, ", "))
	}
	if len(result.Layout.NonMonotonic) > 0 {
		printWarning("%d non-monotonic merge(s) in input", len(result.Layout.NonMonotonic))
	}

	for _, format := range opts.formats {
		path := opts.output
		if path == "" || len(opts.formats) > 1 {
			path = basePath(opts.output, input) + "." + format
		}
		if err := os.WriteFile(path, result.Artifacts[format], 0644); err != nil {
			return err
		}
		printFile(path)
	}

	prog.done(english(len(opts.formats), "Rendered %d artifact"))
	printDetail("%d leaves, %d segments", result.Stats.LeafCount, result.Stats.SegmentCount)
	return nil
}

// english formats a count phrase, pluralizing the trailing noun.
func english(n int, format string) string {
	s := fmt.Sprintf(format, n)
	if n != 1 {
		s += "s"
	}
	return s
}
