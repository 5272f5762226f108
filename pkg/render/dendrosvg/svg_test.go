package dendrosvg

import (
	"strings"
	"testing"

	"github.com/t0mdavid-m/seqviz/pkg/cluster"
	"github.com/t0mdavid-m/seqviz/pkg/dendro"
	"github.com/t0mdavid-m/seqviz/pkg/viz"
)

func fixture(t *testing.T, opts ...dendro.Option) *viz.Layout {
	t.Helper()
	tree, err := cluster.FromLinkage([]string{"A", "B", "C"}, []cluster.Merge{
		{Left: 0, Right: 1, Height: 1},
		{Left: 3, Right: 2, Height: 2},
	})
	if err != nil {
		t.Fatal(err)
	}
	res, err := dendro.Layout(tree, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return viz.FromDendrogram(res, 800, 600, dendro.OrientLeftRight, dendro.BracketRectangular, "identity")
}

func TestRender_Basic(t *testing.T) {
	svg, err := Render(fixture(t))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	out := string(svg)

	if !strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg"`) {
		t.Error("missing SVG root element")
	}
	if got := strings.Count(out, "<line"); got != 6 {
		t.Errorf("line count = %d, want 6", got)
	}
	if !strings.Contains(out, `viewBox="0 0 800.0 600.0"`) {
		t.Error("missing viewBox with frame dimensions")
	}
	if !strings.HasSuffix(out, "</svg>\n") {
		t.Error("unterminated document")
	}
}

func TestRender_Labels(t *testing.T) {
	svg, err := Render(fixture(t), WithLabels())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	for _, label := range []string{">A<", ">B<", ">C<"} {
		if !strings.Contains(string(svg), label) {
			t.Errorf("missing leaf label %q", label)
		}
	}
}

func TestRender_LabelsEscaped(t *testing.T) {
	tree, err := cluster.FromLinkage([]string{"a<b", "c&d"}, []cluster.Merge{{Left: 0, Right: 1, Height: 1}})
	if err != nil {
		t.Fatal(err)
	}
	res, err := dendro.Layout(tree)
	if err != nil {
		t.Fatal(err)
	}
	l := viz.FromDendrogram(res, 400, 300, dendro.OrientLeftRight, dendro.BracketRectangular, "identity")

	svg, err := Render(l, WithLabels())
	if err != nil {
		t.Fatal(err)
	}
	out := string(svg)
	if !strings.Contains(out, "a&lt;b") || !strings.Contains(out, "c&amp;d") {
		t.Error("labels not XML-escaped")
	}
}

func TestRender_HighlightNonMonotonic(t *testing.T) {
	nodes := []cluster.Node{
		{Label: "A"},
		{Label: "B"},
		{Height: 2, Children: []int{0, 1}},
		{Label: "C"},
		{Height: 1, Children: []int{2, 3}},
	}
	tree, err := cluster.New(nodes, 4)
	if err != nil {
		t.Fatal(err)
	}
	res, err := dendro.Layout(tree, dendro.WithAllowNonMonotonic())
	if err != nil {
		t.Fatal(err)
	}
	l := viz.FromDendrogram(res, 400, 300, dendro.OrientLeftRight, dendro.BracketRectangular, "identity")

	svg, err := Render(l, WithHighlight())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(svg), "<circle") {
		t.Error("non-monotonic nodes not highlighted")
	}
}

func TestRender_Options(t *testing.T) {
	svg, err := Render(fixture(t), WithStroke("#ff0000"), WithStrokeWidth(3), WithBackground("white"))
	if err != nil {
		t.Fatal(err)
	}
	out := string(svg)
	if !strings.Contains(out, `stroke="#ff0000"`) {
		t.Error("stroke option ignored")
	}
	if !strings.Contains(out, `stroke-width="3.00"`) {
		t.Error("stroke-width option ignored")
	}
	if !strings.Contains(out, `fill="white"`) {
		t.Error("background option ignored")
	}
}

func TestRender_RejectsNodelink(t *testing.T) {
	l := &viz.Layout{VizType: viz.VizTypeNodelink, DOT: "digraph{}"}
	if _, err := Render(l); err == nil {
		t.Error("Render() accepted a nodelink layout")
	}
}

func TestRender_Deterministic(t *testing.T) {
	l := fixture(t)
	a, err := Render(l, WithLabels())
	if err != nil {
		t.Fatal(err)
	}
	b, err := Render(l, WithLabels())
	if err != nil {
		t.Fatal(err)
	}
	if string(a) != string(b) {
		t.Error("repeated renders differ")
	}
}
