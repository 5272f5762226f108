package dendro

import (
	"github.com/t0mdavid-m/seqviz/pkg/errors"
)

// BracketStyle selects the connector shape between a parent and its
// children.
type BracketStyle int

const (
	// BracketRectangular draws right-angle brackets: one drop per child
	// plus a bar spanning the children (3 segments per binary node).
	BracketRectangular BracketStyle = iota
	// BracketSlanted draws one straight segment from each child to the
	// parent position.
	BracketSlanted
)

// String returns the canonical name, e.g. "rectangular".
func (b BracketStyle) String() string {
	switch b {
	case BracketRectangular:
		return "rectangular"
	case BracketSlanted:
		return "slanted"
	}
	return "unknown"
}

func (b BracketStyle) valid() bool {
	return b == BracketRectangular || b == BracketSlanted
}

// ParseBracketStyle maps a name to a BracketStyle. Fails with a
// CONFIGURATION error for unknown names.
func ParseBracketStyle(name string) (BracketStyle, error) {
	switch name {
	case "rectangular":
		return BracketRectangular, nil
	case "slanted":
		return BracketSlanted, nil
	}
	return 0, errors.New(errors.ErrCodeConfiguration, "unknown bracket style %q (valid: rectangular, slanted)", name)
}

// Option configures a layout call.
type Option func(*config)

type config struct {
	orientation  Orientation
	transform    DistanceTransform
	bracket      BracketStyle
	allowNonMono bool
	leafBaseline float64
}

// WithOrientation sets the plot orientation. Default: OrientLeftRight.
func WithOrientation(o Orientation) Option {
	return func(c *config) { c.orientation = o }
}

// WithTransform sets the distance transform applied to every height.
// The transform must be monotonic; this is the caller's obligation and is
// not checked. Default: Identity.
func WithTransform(t DistanceTransform) Option {
	return func(c *config) { c.transform = t }
}

// WithBracketStyle sets the connector shape. Default: BracketRectangular.
func WithBracketStyle(b BracketStyle) Option {
	return func(c *config) { c.bracket = b }
}

// WithAllowNonMonotonic lets layout proceed on trees whose merge heights
// decrease toward the root. The offending node indices are reported in
// [Result.NonMonotonic] so callers can highlight them. Without this option
// such trees fail with a CONSISTENCY error.
func WithAllowNonMonotonic() Option {
	return func(c *config) { c.allowNonMono = true }
}

// WithLeafBaseline sets the height leaves sit on before the distance
// transform is applied. Default: 0.
func WithLeafBaseline(h float64) Option {
	return func(c *config) { c.leafBaseline = h }
}

func newConfig(opts []Option) (config, error) {
	c := config{
		orientation: OrientLeftRight,
		transform:   Identity,
		bracket:     BracketRectangular,
	}
	for _, opt := range opts {
		opt(&c)
	}

	if !c.orientation.valid() {
		return c, errors.New(errors.ErrCodeConfiguration, "unknown orientation %d", int(c.orientation))
	}
	if !c.bracket.valid() {
		return c, errors.New(errors.ErrCodeConfiguration, "unknown bracket style %d", int(c.bracket))
	}
	if c.transform == nil {
		return c, errors.New(errors.ErrCodeConfiguration, "nil distance transform")
	}
	return c, nil
}
