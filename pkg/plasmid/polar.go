// Package plasmid computes polar geometry for circular plasmid maps:
// feature arcs on radial tracks around a backbone ring. Angles are in
// radians, measured clockwise from 12 o'clock so position 0 sits at the
// top, matching the common plasmid map convention.
package plasmid

import (
	"math"

	"github.com/t0mdavid-m/seqviz/pkg/errors"
	"github.com/t0mdavid-m/seqviz/pkg/features"
)

// Feature is an annotated region of the plasmid. Positions are 0-based,
// half-open. A feature with End <= Start wraps through the origin.
type Feature struct {
	Label  string
	Start  int
	End    int
	Strand int // +1 forward, -1 reverse, 0 undirected
}

// Arc is the placed geometry for one feature.
type Arc struct {
	Label      string  `json:"label"`
	StartAngle float64 `json:"start_angle"` // radians clockwise from 12 o'clock
	EndAngle   float64 `json:"end_angle"`   // always > StartAngle; wraps exceed 2π
	Radius     float64 `json:"radius"`
	Track      int     `json:"track"` // 0 is closest to the backbone
	Strand     int     `json:"strand"`
}

// Map is a complete circular map layout.
type Map struct {
	Length     int     `json:"length"`      // plasmid length in bases
	RingRadius float64 `json:"ring_radius"` // backbone circle
	Arcs       []Arc   `json:"arcs"`
}

// Option configures map layout.
type Option func(*config)

type config struct {
	ringRadius float64
	trackGap   float64
}

// WithRingRadius sets the backbone radius. Default 100.
func WithRingRadius(r float64) Option { return func(c *config) { c.ringRadius = r } }

// WithTrackGap sets the radial distance between feature tracks. Default 14.
func WithTrackGap(g float64) Option { return func(c *config) { c.trackGap = g } }

// Layout places features on tracks around a plasmid of the given length.
// Overlapping features move outward to the next track; overlap is tested
// on the circle, so a feature wrapping the origin contends with features
// on both sides of it. Track assignment is deterministic (see
// [features.PackRowsCircular]). Fails with INVALID_INPUT on a non-positive
// length or out-of-range feature positions.
func Layout(length int, feats []Feature, opts ...Option) (*Map, error) {
	if length <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "plasmid length %d must be positive", length)
	}

	cfg := config{ringRadius: 100, trackGap: 14}
	for _, opt := range opts {
		opt(&cfg)
	}

	spans := make([]features.Span, len(feats))
	for i, f := range feats {
		if f.Start < 0 || f.Start >= length || f.End < 0 || f.End > length {
			return nil, errors.New(errors.ErrCodeInvalidInput, "feature %q outside [0,%d]: start %d end %d", f.Label, length, f.Start, f.End)
		}
		end := f.End
		if end <= f.Start {
			end += length // wraps through the origin
		}
		spans[i] = features.Span{Start: f.Start, End: end}
	}
	tracks := features.PackRowsCircular(spans, length)

	m := &Map{
		Length:     length,
		RingRadius: cfg.ringRadius,
		Arcs:       make([]Arc, len(feats)),
	}
	scale := 2 * math.Pi / float64(length)
	for i, f := range feats {
		m.Arcs[i] = Arc{
			Label:      f.Label,
			StartAngle: float64(spans[i].Start) * scale,
			EndAngle:   float64(spans[i].End) * scale,
			Radius:     cfg.ringRadius + float64(tracks[i]+1)*cfg.trackGap,
			Track:      tracks[i],
			Strand:     f.Strand,
		}
	}
	return m, nil
}

// Point is a Cartesian coordinate with the circle center at the origin.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PointAt maps a clockwise-from-top angle and radius to Cartesian
// coordinates (Y grows downward, matching screen space).
func PointAt(angle, radius float64) Point {
	return Point{
		X: radius * math.Sin(angle),
		Y: -radius * math.Cos(angle),
	}
}

// Polyline approximates the arc with n straight segments (n+1 points),
// for drawing backends without native arc support. n must be >= 1.
func (a Arc) Polyline(n int) []Point {
	if n < 1 {
		n = 1
	}
	pts := make([]Point, n+1)
	step := (a.EndAngle - a.StartAngle) / float64(n)
	for i := 0; i <= n; i++ {
		pts[i] = PointAt(a.StartAngle+float64(i)*step, a.Radius)
	}
	return pts
}

// Midpoint returns the angular midpoint of the arc, for label anchoring.
func (a Arc) Midpoint() Point {
	return PointAt((a.StartAngle+a.EndAngle)/2, a.Radius)
}
