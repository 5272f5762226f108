package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/t0mdavid-m/seqviz/pkg/cluster"
)

func previewTree(t *testing.T) *cluster.Tree {
	t.Helper()
	tree, err := cluster.New([]cluster.Node{
		{Label: "A"},
		{Label: "B"},
		{Label: "C"},
		{Height: 1.0, Children: []int{0, 1}},
		{Height: 2.0, Children: []int{3, 2}},
	}, 4)
	if err != nil {
		t.Fatal(err)
	}
	return tree
}

func TestAsciiDendrogram(t *testing.T) {
	art, err := asciiDendrogram(previewTree(t), "top-bottom", "identity", 60, 12)
	if err != nil {
		t.Fatalf("asciiDendrogram() error = %v", err)
	}

	// Leaf-per-row orientations carry inline labels.
	for _, label := range []string{"A", "B", "C"} {
		if !strings.Contains(art, label) {
			t.Errorf("output should contain leaf label %q:\n%s", label, art)
		}
	}
	if !strings.ContainsRune(art, '─') || !strings.ContainsRune(art, '│') {
		t.Errorf("output should contain tree runes:\n%s", art)
	}
}

func TestAsciiDendrogram_Horizontal(t *testing.T) {
	art, err := asciiDendrogram(previewTree(t), "left-right", "identity", 40, 10)
	if err != nil {
		t.Fatalf("asciiDendrogram() error = %v", err)
	}
	// Leaves spread across columns; the art draws without labels.
	if !strings.ContainsRune(art, '─') {
		t.Errorf("output should contain tree runes:\n%s", art)
	}
}

func TestAsciiDendrogram_RejectsUnknownOrientation(t *testing.T) {
	if _, err := asciiDendrogram(previewTree(t), "diagonal", "identity", 40, 10); err == nil {
		t.Error("unknown orientation should fail")
	}
}

func TestPreviewModelKeys(t *testing.T) {
	m := newPreviewModel(previewTree(t), "left-right", "identity")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'o'}})
	m = next.(previewModel)
	if orientationCycle[m.orientation] != "right-left" {
		t.Errorf("orientation after o = %q, want right-left", orientationCycle[m.orientation])
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})
	m = next.(previewModel)
	if transformCycle[m.transform] != "sqrt" {
		t.Errorf("transform after t = %q, want sqrt", transformCycle[m.transform])
	}

	if view := m.View(); !strings.Contains(view, "right-left") {
		t.Error("view should show the active orientation")
	}
}
