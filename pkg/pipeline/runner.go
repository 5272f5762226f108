package pipeline

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/t0mdavid-m/seqviz/pkg/cache"
	"github.com/t0mdavid-m/seqviz/pkg/cluster"
	"github.com/t0mdavid-m/seqviz/pkg/dendro"
	"github.com/t0mdavid-m/seqviz/pkg/errors"
	"github.com/t0mdavid-m/seqviz/pkg/render"
	"github.com/t0mdavid-m/seqviz/pkg/render/dendrosvg"
	"github.com/t0mdavid-m/seqviz/pkg/render/nodelink"
	"github.com/t0mdavid-m/seqviz/pkg/viz"
)

// Runner executes the visualization pipeline with caching support.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a pipeline runner. A nil cache disables artifact
// caching; a nil logger discards all output.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{Cache: c, Logger: logger}
}

// Execute runs the complete pipeline: parse → layout → render.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{
		RunID:     uuid.NewString(),
		Artifacts: make(map[string][]byte),
		CacheInfo: CacheInfo{ArtifactHits: make(map[string]bool)},
	}
	logger := r.Logger.With("run_id", result.RunID)

	start := time.Now()
	tree, err := parseTree(opts)
	if err != nil {
		return nil, err
	}
	result.Tree = tree
	result.TreeHash = treeHash(tree)
	result.Stats.ParseTime = time.Since(start)
	result.Stats.LeafCount = tree.LeafCount()
	result.Stats.NodeCount = tree.Len()
	logger.Info("parsed tree", "leaves", result.Stats.LeafCount, "nodes", result.Stats.NodeCount)

	start = time.Now()
	layout, err := computeLayout(tree, opts)
	if err != nil {
		return nil, err
	}
	result.Layout = layout
	result.Stats.LayoutTime = time.Since(start)
	result.Stats.SegmentCount = len(layout.Segments)
	logger.Info("computed layout", "viz", opts.VizType, "segments", result.Stats.SegmentCount)

	start = time.Now()
	for _, format := range opts.Formats {
		data, hit, err := r.renderFormat(ctx, layout, result.TreeHash, format, opts)
		if err != nil {
			return nil, err
		}
		result.Artifacts[format] = data
		result.CacheInfo.ArtifactHits[format] = hit
		logger.Info("rendered artifact", "format", format, "bytes", len(data), "cached", hit)
	}
	result.Stats.RenderTime = time.Since(start)

	return result, nil
}

// parseTree builds a cluster tree from whichever input form is set.
func parseTree(opts Options) (*cluster.Tree, error) {
	if opts.Newick != "" {
		return cluster.ParseNewick(opts.Newick)
	}
	return cluster.FromLinkage(opts.Labels, opts.Merges)
}

// computeLayout runs the layout engine for the requested visualization
// type and wraps the result in the serialization format.
func computeLayout(tree *cluster.Tree, opts Options) (*viz.Layout, error) {
	if opts.VizType == viz.VizTypeNodelink {
		dot := nodelink.ToDOT(tree, nodelink.Options{Detailed: opts.Detailed})
		return &viz.Layout{
			VizType: viz.VizTypeNodelink,
			Width:   opts.Width,
			Height:  opts.Height,
			DOT:     dot,
			Engine:  "dot",
		}, nil
	}

	orientation, err := dendro.ParseOrientation(opts.Orientation)
	if err != nil {
		return nil, err
	}
	transform, err := dendro.ParseTransform(opts.Transform)
	if err != nil {
		return nil, err
	}
	bracket, err := dendro.ParseBracketStyle(opts.Bracket)
	if err != nil {
		return nil, err
	}

	layoutOpts := []dendro.Option{
		dendro.WithOrientation(orientation),
		dendro.WithTransform(transform),
		dendro.WithBracketStyle(bracket),
	}
	if opts.AllowNonMonotonic {
		layoutOpts = append(layoutOpts, dendro.WithAllowNonMonotonic())
	}
	if opts.LeafBaseline != 0 {
		layoutOpts = append(layoutOpts, dendro.WithLeafBaseline(opts.LeafBaseline))
	}

	res, err := dendro.Layout(tree, layoutOpts...)
	if err != nil {
		return nil, err
	}
	return viz.FromDendrogram(res, opts.Width, opts.Height, orientation, bracket, opts.Transform), nil
}

// renderFormat produces one artifact, consulting the cache first. JSON
// export is cheap and never cached.
func (r *Runner) renderFormat(ctx context.Context, layout *viz.Layout, hash, format string, opts Options) ([]byte, bool, error) {
	if format == FormatJSON {
		var buf bytes.Buffer
		if err := layout.WriteJSON(&buf); err != nil {
			return nil, false, err
		}
		return buf.Bytes(), false, nil
	}

	// Artifacts get their own key namespace so a shared backend (e.g. one
	// Redis serving several deployments) can hold other key families.
	artifacts := cache.NewScoped(r.Cache, "artifact:")
	key := cache.Key(format, hash, opts.VizType, opts.Orientation,
		opts.Transform, opts.Bracket, opts.Width, opts.Height,
		opts.ShowLabels, opts.Highlight, opts.Detailed, opts.PNGScale,
		opts.AllowNonMonotonic, opts.LeafBaseline)
	if data, ok, err := artifacts.Get(ctx, key); err == nil && ok {
		return data, true, nil
	}

	data, err := renderArtifact(layout, format, opts)
	if err != nil {
		return nil, false, err
	}
	if err := artifacts.Set(ctx, key, data, DefaultArtifactTTL); err != nil {
		r.Logger.Warn("artifact cache write failed", "format", format, "error", err)
	}
	return data, false, nil
}

func renderArtifact(layout *viz.Layout, format string, opts Options) ([]byte, error) {
	if layout.IsNodelink() {
		switch format {
		case FormatSVG:
			return nodelink.RenderSVG(layout.DOT)
		case FormatPNG:
			return nodelink.RenderPNG(layout.DOT, opts.PNGScale)
		case FormatPDF:
			return nodelink.RenderPDF(layout.DOT)
		}
		return nil, errors.New(errors.ErrCodeConfiguration, "unknown format %q", format)
	}

	svg, err := renderDendrogramSVG(layout, opts)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatSVG:
		return svg, nil
	case FormatPNG:
		return render.ToPNG(svg, opts.PNGScale)
	case FormatPDF:
		return render.ToPDF(svg)
	}
	return nil, errors.New(errors.ErrCodeConfiguration, "unknown format %q", format)
}

func renderDendrogramSVG(layout *viz.Layout, opts Options) ([]byte, error) {
	svgOpts := []dendrosvg.Option{}
	if opts.ShowLabels {
		svgOpts = append(svgOpts, dendrosvg.WithLabels())
	}
	if opts.Highlight {
		svgOpts = append(svgOpts, dendrosvg.WithHighlight())
	}
	return dendrosvg.Render(layout, svgOpts...)
}

// treeHash computes a content hash over the canonical arena encoding.
// Trees with identical structure, labels, and heights share a hash.
func treeHash(t *cluster.Tree) string {
	nodes := make([]cluster.Node, t.Len())
	for i := 0; i < t.Len(); i++ {
		nodes[i] = t.Node(i)
	}
	return cache.Key("tree", nodes, t.Root())
}
