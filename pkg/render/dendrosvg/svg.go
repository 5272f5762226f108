// Package dendrosvg renders dendrogram layouts to SVG.
//
// The sink consumes plain geometry from [viz.Layout] and maps it into the
// requested frame with uniform scaling per axis. It knows nothing about
// trees or clustering; it draws segments, leaf labels, and optional
// highlight markers.
package dendrosvg

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/t0mdavid-m/seqviz/pkg/viz"
)

const (
	defaultMargin      = 40.0
	defaultStroke      = "#1f3044"
	defaultStrokeWidth = 1.5
	highlightColor     = "#c0392b"
	labelFontSize      = 12.0
	labelGap           = 6.0
	markerRadius       = 4.0
)

// Option configures SVG rendering.
type Option func(*renderer)

type renderer struct {
	margin      float64
	stroke      string
	strokeWidth float64
	labels      bool
	highlight   bool
	background  string
}

// WithMargin sets the frame margin in user units. Default 40.
func WithMargin(m float64) Option { return func(r *renderer) { r.margin = m } }

// WithStroke sets the branch color. Default a dark slate.
func WithStroke(color string) Option { return func(r *renderer) { r.stroke = color } }

// WithStrokeWidth sets the branch width. Default 1.5.
func WithStrokeWidth(w float64) Option { return func(r *renderer) { r.strokeWidth = w } }

// WithLabels draws leaf labels along the categorical axis.
func WithLabels() Option { return func(r *renderer) { r.labels = true } }

// WithHighlight marks non-monotonic nodes with filled circles so callers
// can spot inconsistent merges.
func WithHighlight() Option { return func(r *renderer) { r.highlight = true } }

// WithBackground sets a background fill. Default transparent.
func WithBackground(color string) Option { return func(r *renderer) { r.background = color } }

// Render produces an SVG document for a dendrogram layout.
// Non-dendrogram layouts yield an error.
func Render(l *viz.Layout, opts ...Option) ([]byte, error) {
	if !l.IsDendrogram() {
		return nil, fmt.Errorf("dendrosvg: cannot render %q layout", l.VizType)
	}

	r := renderer{
		margin:      defaultMargin,
		stroke:      defaultStroke,
		strokeWidth: defaultStrokeWidth,
	}
	for _, opt := range opts {
		opt(&r)
	}

	sc := newScaler(l, r.margin)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		l.Width, l.Height, l.Width, l.Height)

	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", r.background)
	}

	fmt.Fprintf(&buf, `  <g fill="none" stroke="%s" stroke-width="%.2f" stroke-linecap="square">`+"\n", r.stroke, r.strokeWidth)
	for _, s := range l.Segments {
		from, to := sc.point(s.From), sc.point(s.To)
		fmt.Fprintf(&buf, `    <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"/>`+"\n", from.X, from.Y, to.X, to.Y)
	}
	buf.WriteString("  </g>\n")

	if r.labels {
		renderLabels(&buf, l, sc)
	}
	if r.highlight {
		renderHighlights(&buf, l, sc)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

func renderLabels(buf *bytes.Buffer, l *viz.Layout, sc scaler) {
	horizontal := l.Orientation == "left-right" || l.Orientation == "right-left"

	fmt.Fprintf(buf, `  <g font-family="sans-serif" font-size="%.0f" fill="#222">`+"\n", labelFontSize)
	for i, label := range l.LeafOrder {
		if i >= len(l.LeafIndices) {
			break
		}
		p := sc.point(l.Coords[l.LeafIndices[i]])
		if horizontal {
			// Leaves sit on the baseline; labels go below it, rotated to
			// keep long sequence names from colliding.
			fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" text-anchor="end" transform="rotate(-60 %.2f %.2f)">%s</text>`+"\n",
				p.X, p.Y+labelGap+labelFontSize, p.X, p.Y+labelGap+labelFontSize, escapeXML(label))
		} else {
			fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" text-anchor="end" dominant-baseline="middle">%s</text>`+"\n",
				p.X-sc.labelInset(), p.Y, escapeXML(label))
		}
	}
	buf.WriteString("  </g>\n")
}

func renderHighlights(buf *bytes.Buffer, l *viz.Layout, sc scaler) {
	if len(l.NonMonotonic) == 0 {
		return
	}
	fmt.Fprintf(buf, `  <g fill="%s">`+"\n", highlightColor)
	for _, idx := range l.NonMonotonic {
		if idx < 0 || idx >= len(l.Coords) {
			continue
		}
		p := sc.point(l.Coords[idx])
		fmt.Fprintf(buf, `    <circle cx="%.2f" cy="%.2f" r="%.1f"/>`+"\n", p.X, p.Y, markerRadius)
	}
	buf.WriteString("  </g>\n")
}

// scaler maps raw layout coordinates into the margin-inset frame. The Y
// axis is flipped because SVG grows downward while layouts grow upward.
type scaler struct {
	minX, minY   float64
	spanX, spanY float64
	frameW       float64
	frameH       float64
	margin       float64
}

func newScaler(l *viz.Layout, margin float64) scaler {
	sc := scaler{frameW: l.Width, frameH: l.Height, margin: margin}
	if len(l.Coords) == 0 {
		sc.spanX, sc.spanY = 1, 1
		return sc
	}

	minX, minY := l.Coords[0].X, l.Coords[0].Y
	maxX, maxY := minX, minY
	for _, p := range l.Coords {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	sc.minX, sc.minY = minX, minY
	sc.spanX, sc.spanY = maxX-minX, maxY-minY
	if sc.spanX == 0 {
		sc.spanX = 1
	}
	if sc.spanY == 0 {
		sc.spanY = 1
	}
	return sc
}

func (s scaler) point(p viz.Point) viz.Point {
	innerW := s.frameW - 2*s.margin
	innerH := s.frameH - 2*s.margin
	return viz.Point{
		X: s.margin + (p.X-s.minX)/s.spanX*innerW,
		Y: s.frameH - s.margin - (p.Y-s.minY)/s.spanY*innerH,
	}
}

func (s scaler) labelInset() float64 { return labelGap }

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
