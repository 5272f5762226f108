package dendro

import (
	"github.com/t0mdavid-m/seqviz/pkg/errors"
)

// Orientation selects which plot axis carries leaf positions (the
// categorical axis) and in which direction leaves are laid out along it.
// The remaining axis carries merge distances.
//
// Layout is always computed once in the canonical LeftRight orientation;
// the other three are pure coordinate-space transforms applied afterwards,
// so all four are exact mirror/transpose images of each other.
type Orientation int

const (
	// OrientLeftRight places leaves left to right along X, distances on Y.
	// This is the canonical orientation.
	OrientLeftRight Orientation = iota
	// OrientRightLeft mirrors the categorical axis: leaves right to left.
	OrientRightLeft
	// OrientTopBottom places leaves top to bottom along Y, distances on X.
	OrientTopBottom
	// OrientBottomTop mirrors OrientTopBottom: leaves bottom to top.
	OrientBottomTop
)

var orientationNames = map[Orientation]string{
	OrientLeftRight: "left-right",
	OrientRightLeft: "right-left",
	OrientTopBottom: "top-bottom",
	OrientBottomTop: "bottom-top",
}

// String returns the canonical name, e.g. "left-right".
func (o Orientation) String() string {
	if s, ok := orientationNames[o]; ok {
		return s
	}
	return "unknown"
}

// valid reports whether o is one of the four defined orientations.
func (o Orientation) valid() bool {
	_, ok := orientationNames[o]
	return ok
}

// mirrored reports whether o reverses the leaf direction relative to its
// canonical counterpart.
func (o Orientation) mirrored() bool {
	return o == OrientRightLeft || o == OrientBottomTop
}

// ParseOrientation maps a name to an Orientation. It fails with a
// CONFIGURATION error for unknown names; orientations are never silently
// defaulted.
func ParseOrientation(name string) (Orientation, error) {
	for o, s := range orientationNames {
		if s == name {
			return o, nil
		}
	}
	return 0, errors.New(errors.ErrCodeConfiguration, "unknown orientation %q (valid: left-right, right-left, top-bottom, bottom-top)", name)
}

// place maps a canonical (position, distance) pair into final plot
// coordinates. leafSpan is the maximum canonical position, used to reindex
// mirrored orientations into the same positive coordinate range.
func (o Orientation) place(pos, dist, leafSpan float64) Point {
	switch o {
	case OrientRightLeft:
		pos = leafSpan - pos
	case OrientBottomTop:
		return Point{X: dist, Y: leafSpan - pos}
	case OrientTopBottom:
		return Point{X: dist, Y: pos}
	}
	return Point{X: pos, Y: dist}
}
