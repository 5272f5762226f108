package dendro

import (
	"math"

	"github.com/t0mdavid-m/seqviz/pkg/errors"
)

// DistanceTransform maps a merge height to a distance-axis coordinate. It
// must be monotonic: compressing or expanding visual separation is fine,
// reordering heights is not. The engine applies it to every height,
// including the leaf baseline, and never to categorical positions.
type DistanceTransform func(float64) float64

// Named distance transforms.
var (
	// Identity leaves heights unchanged.
	Identity DistanceTransform = func(h float64) float64 { return h }

	// Sqrt compresses large distances; negative heights pass through
	// sign-preserved so the transform stays monotonic on all inputs.
	Sqrt DistanceTransform = func(h float64) float64 {
		if h < 0 {
			return -math.Sqrt(-h)
		}
		return math.Sqrt(h)
	}

	// Log is log1p, which is defined at the zero height leaves sit on and
	// monotonic for every height a clustering can produce (> -1 after the
	// shift). Sign-preserved like Sqrt.
	Log DistanceTransform = func(h float64) float64 {
		if h < 0 {
			return -math.Log1p(-h)
		}
		return math.Log1p(h)
	}
)

// ParseTransform maps a name to a named transform. Fails with a
// CONFIGURATION error for unknown names.
func ParseTransform(name string) (DistanceTransform, error) {
	switch name {
	case "identity":
		return Identity, nil
	case "sqrt":
		return Sqrt, nil
	case "log":
		return Log, nil
	}
	return nil, errors.New(errors.ErrCodeConfiguration, "unknown distance transform %q (valid: identity, sqrt, log)", name)
}
