// Package pipeline provides the core visualization pipeline for seqviz.
//
// This package implements the complete parse → layout → render pipeline
// shared by the CLI and the HTTP server. Centralizing it keeps behavior
// identical across entry points.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: build a cluster tree from Newick text or linkage records
//  2. Layout: compute dendrogram or node-link geometry
//  3. Render: generate output in various formats (SVG, PNG, PDF, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, logger)
//	opts := pipeline.Options{
//	    Newick:  "((A:1,B:1):1,C:2);",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/t0mdavid-m/seqviz/pkg/cluster"
	"github.com/t0mdavid-m/seqviz/pkg/errors"
	"github.com/t0mdavid-m/seqviz/pkg/viz"
)

// Default values shared by CLI and server.
const (
	// DefaultWidth is the default frame width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default frame height in pixels.
	DefaultHeight = 600.0

	// DefaultPNGScale is the raster scale factor (2x for high-DPI).
	DefaultPNGScale = 2.0

	// DefaultArtifactTTL bounds how long rendered artifacts stay cached.
	DefaultArtifactTTL = 24 * time.Hour
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// Options contains all configuration for the visualization pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Parse options: exactly one input form must be set.
	Newick string          `json:"newick,omitempty"`
	Labels []string        `json:"labels,omitempty"`
	Merges []cluster.Merge `json:"merges,omitempty"`

	// Layout options
	VizType           string  `json:"viz_type,omitempty"` // dendrogram (default) or nodelink
	Orientation       string  `json:"orientation,omitempty"`
	Transform         string  `json:"transform,omitempty"`
	Bracket           string  `json:"bracket,omitempty"`
	AllowNonMonotonic bool    `json:"allow_non_monotonic,omitempty"`
	LeafBaseline      float64 `json:"leaf_baseline,omitempty"`
	Width             float64 `json:"width,omitempty"`
	Height            float64 `json:"height,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	ShowLabels bool     `json:"show_labels,omitempty"`
	Highlight  bool     `json:"highlight,omitempty"` // mark non-monotonic nodes
	Detailed   bool     `json:"detailed,omitempty"`  // nodelink: label internal nodes
	PNGScale   float64  `json:"png_scale,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults checks option consistency and fills defaults.
// Unknown orientation, transform, bracket, viz type, or format names are
// CONFIGURATION errors; they are never silently defaulted.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	hasNewick := o.Newick != ""
	hasLinkage := len(o.Labels) > 0 || len(o.Merges) > 0
	if hasNewick == hasLinkage {
		return errors.New(errors.ErrCodeInvalidInput, "exactly one of newick or labels/merges must be set")
	}

	if o.VizType == "" {
		o.VizType = viz.VizTypeDendrogram
	}
	if o.VizType != viz.VizTypeDendrogram && o.VizType != viz.VizTypeNodelink {
		return errors.New(errors.ErrCodeConfiguration, "unknown viz type %q (valid: dendrogram, nodelink)", o.VizType)
	}

	if o.Orientation == "" {
		o.Orientation = "left-right"
	}
	if o.Transform == "" {
		o.Transform = "identity"
	}
	if o.Bracket == "" {
		o.Bracket = "rectangular"
	}
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.PNGScale <= 0 {
		o.PNGScale = DefaultPNGScale
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	for _, f := range o.Formats {
		if !ValidFormats[f] {
			return errors.New(errors.ErrCodeConfiguration, "unknown format %q (valid: svg, png, pdf, json)", f)
		}
	}

	o.validated = true
	return nil
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID is a fresh UUID identifying this execution in logs and API
	// responses.
	RunID string

	// Tree is the parsed cluster tree.
	Tree *cluster.Tree

	// TreeHash is the content hash of the canonical tree encoding, used
	// in cache keys.
	TreeHash string

	// Layout contains the computed geometry.
	Layout *viz.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which artifacts came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	LeafCount    int
	NodeCount    int
	SegmentCount int
	ParseTime    time.Duration
	LayoutTime   time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits per rendered format.
type CacheInfo struct {
	ArtifactHits map[string]bool
}
