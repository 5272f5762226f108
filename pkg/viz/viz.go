// Package viz defines the canonical serialization format for computed
// layouts. It is the exchange type between the layout engines, the
// rendering sinks, the HTTP API, and the archive store.
//
// The format is a discriminated union: check VizType to determine which
// fields are populated. It is designed for round-trip fidelity: compute →
// export → re-import → render produces identical output.
package viz

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/t0mdavid-m/seqviz/pkg/dendro"
)

// Visualization types.
const (
	VizTypeDendrogram = "dendrogram"
	VizTypeNodelink   = "nodelink"
)

// Point is a plot coordinate.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Segment is one drawn line.
type Segment struct {
	From Point `json:"from" bson:"from"`
	To   Point `json:"to" bson:"to"`
}

// Layout is the unified serialization format for all visualizations.
//
//	Dendrogram ("dendrogram"):
//	  - Segments, Coords, LeafOrder, NonMonotonic, DuplicateLabels
//	  - Orientation, Transform, Bracket: the options that produced it
//
//	Nodelink ("nodelink"):
//	  - DOT: Graphviz DOT string for rendering
//	  - Engine: Graphviz layout engine (e.g. "dot")
type Layout struct {
	// Discriminator
	VizType string `json:"viz_type" bson:"viz_type"`

	// Requested frame dimensions for sinks that rasterize.
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`

	// Dendrogram geometry
	Segments        []Segment `json:"segments,omitempty" bson:"segments,omitempty"`
	Coords          []Point   `json:"coords,omitempty" bson:"coords,omitempty"`
	LeafOrder       []string  `json:"leaf_order,omitempty" bson:"leaf_order,omitempty"`
	LeafIndices     []int     `json:"leaf_indices,omitempty" bson:"leaf_indices,omitempty"`
	NonMonotonic    []int     `json:"non_monotonic,omitempty" bson:"non_monotonic,omitempty"`
	DuplicateLabels []string  `json:"duplicate_labels,omitempty" bson:"duplicate_labels,omitempty"`

	// Options that produced the dendrogram geometry
	Orientation string `json:"orientation,omitempty" bson:"orientation,omitempty"`
	Transform   string `json:"transform,omitempty" bson:"transform,omitempty"`
	Bracket     string `json:"bracket,omitempty" bson:"bracket,omitempty"`

	// Nodelink-specific
	DOT    string `json:"dot,omitempty" bson:"dot,omitempty"`
	Engine string `json:"engine,omitempty" bson:"engine,omitempty"`
}

// IsDendrogram returns true if this is a dendrogram layout.
func (l *Layout) IsDendrogram() bool { return l.VizType == VizTypeDendrogram }

// IsNodelink returns true if this is a nodelink layout.
func (l *Layout) IsNodelink() bool { return l.VizType == VizTypeNodelink }

// FromDendrogram converts an engine result into the serialization format.
// The geometry is copied verbatim; sinks map it into frame coordinates.
func FromDendrogram(res *dendro.Result, width, height float64, orientation dendro.Orientation, bracket dendro.BracketStyle, transform string) *Layout {
	l := &Layout{
		VizType:         VizTypeDendrogram,
		Width:           width,
		Height:          height,
		Segments:        make([]Segment, len(res.Segments)),
		Coords:          make([]Point, len(res.Coords)),
		LeafOrder:       append([]string(nil), res.LeafOrder...),
		LeafIndices:     append([]int(nil), res.LeafIndices...),
		NonMonotonic:    append([]int(nil), res.NonMonotonic...),
		DuplicateLabels: append([]string(nil), res.DuplicateLabels...),
		Orientation:     orientation.String(),
		Transform:       transform,
		Bracket:         bracket.String(),
	}
	for i, s := range res.Segments {
		l.Segments[i] = Segment{
			From: Point{X: s.From.X, Y: s.From.Y},
			To:   Point{X: s.To.X, Y: s.To.Y},
		}
	}
	for i, c := range res.Coords {
		l.Coords[i] = Point{X: c.X, Y: c.Y}
	}
	return l
}

// WriteJSON encodes the layout as indented JSON.
func (l *Layout) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l); err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	return nil
}

// ReadJSON decodes a layout from JSON.
func ReadJSON(r io.Reader) (*Layout, error) {
	var l Layout
	if err := json.NewDecoder(r).Decode(&l); err != nil {
		return nil, fmt.Errorf("decode layout: %w", err)
	}
	return &l, nil
}

// ExportJSON writes the layout to a JSON file at path.
func (l *Layout) ExportJSON(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return l.WriteJSON(f)
}
