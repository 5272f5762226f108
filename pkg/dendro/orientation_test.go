package dendro

import (
	"testing"

	"github.com/t0mdavid-m/seqviz/pkg/errors"
)

func TestParseOrientation(t *testing.T) {
	tests := []struct {
		in   string
		want Orientation
	}{
		{"left-right", OrientLeftRight},
		{"right-left", OrientRightLeft},
		{"top-bottom", OrientTopBottom},
		{"bottom-top", OrientBottomTop},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOrientation(tt.in)
			if err != nil {
				t.Fatalf("ParseOrientation(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseOrientation(%q) = %v, want %v", tt.in, got, tt.want)
			}
			if got.String() != tt.in {
				t.Errorf("String() = %q, want %q", got.String(), tt.in)
			}
		})
	}
}

func TestParseOrientation_Unknown(t *testing.T) {
	_, err := ParseOrientation("diagonal")
	if err == nil {
		t.Fatal("ParseOrientation() succeeded for unknown name")
	}
	if !errors.Is(err, errors.ErrCodeConfiguration) {
		t.Errorf("code = %s, want %s", errors.GetCode(err), errors.ErrCodeConfiguration)
	}
}

func TestOrientation_Place(t *testing.T) {
	const span = 4.0
	tests := []struct {
		name   string
		orient Orientation
		want   Point
	}{
		{"left-right", OrientLeftRight, Point{X: 1, Y: 2}},
		{"right-left", OrientRightLeft, Point{X: 3, Y: 2}},
		{"top-bottom", OrientTopBottom, Point{X: 2, Y: 1}},
		{"bottom-top", OrientBottomTop, Point{X: 2, Y: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.orient.place(1, 2, span); got != tt.want {
				t.Errorf("place(1, 2, %v) = %+v, want %+v", span, got, tt.want)
			}
		})
	}
}

func TestParseBracketStyle(t *testing.T) {
	for _, name := range []string{"rectangular", "slanted"} {
		got, err := ParseBracketStyle(name)
		if err != nil {
			t.Fatalf("ParseBracketStyle(%q) error = %v", name, err)
		}
		if got.String() != name {
			t.Errorf("String() = %q, want %q", got.String(), name)
		}
	}

	if _, err := ParseBracketStyle("curvy"); err == nil {
		t.Error("ParseBracketStyle() succeeded for unknown name")
	}
}
