package nodelink

import (
	"strings"
	"testing"

	"github.com/t0mdavid-m/seqviz/pkg/cluster"
)

func fixture(t *testing.T) *cluster.Tree {
	t.Helper()
	tree, err := cluster.FromLinkage([]string{"A", "B", "C"}, []cluster.Merge{
		{Left: 0, Right: 1, Height: 1},
		{Left: 3, Right: 2, Height: 2},
	})
	if err != nil {
		t.Fatal(err)
	}
	return tree
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(fixture(t), Options{})

	if !strings.HasPrefix(dot, "digraph G {") {
		t.Error("missing digraph header")
	}
	for _, want := range []string{`n0 [label="A"]`, `n1 [label="B"]`, `n2 [label="C"]`} {
		if !strings.Contains(dot, want) {
			t.Errorf("missing %q", want)
		}
	}
	// Internal nodes collapse to points when not detailed.
	if !strings.Contains(dot, "n3 [shape=point") {
		t.Error("internal node not drawn as point")
	}
	// Parent-to-child edges: root 4 connects to 3 and 2.
	for _, want := range []string{"n4 -> n3;", "n4 -> n2;", "n3 -> n0;", "n3 -> n1;"} {
		if !strings.Contains(dot, want) {
			t.Errorf("missing edge %q", want)
		}
	}
}

func TestToDOT_Detailed(t *testing.T) {
	dot := ToDOT(fixture(t), Options{Detailed: true})

	if !strings.Contains(dot, `label="h=1"`) || !strings.Contains(dot, `label="h=2"`) {
		t.Error("detailed mode should label internal nodes with merge heights")
	}
}

func TestToDOT_Deterministic(t *testing.T) {
	tree := fixture(t)
	if ToDOT(tree, Options{}) != ToDOT(tree, Options{}) {
		t.Error("repeated DOT exports differ")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 100.50 200.25">rest</svg>`)
	out := string(normalizeViewBox(in))

	if !strings.Contains(out, `viewBox="0 0 100.50 200.25"`) {
		t.Errorf("viewBox not normalized: %s", out)
	}
	if !strings.Contains(out, `width="101"`) && !strings.Contains(out, `width="100"`) {
		t.Errorf("width not rewritten: %s", out)
	}
}

func TestNormalizeViewBox_NoMatch(t *testing.T) {
	in := []byte(`<svg>no viewbox</svg>`)
	if got := string(normalizeViewBox(in)); got != string(in) {
		t.Errorf("input without viewBox modified: %s", got)
	}
}
