package cluster

import (
	"testing"

	"github.com/t0mdavid-m/seqviz/pkg/errors"
)

func TestFromLinkage(t *testing.T) {
	// (A,B) at 1.0, then (AB,C) at 2.0.
	tree, err := FromLinkage([]string{"A", "B", "C"}, []Merge{
		{Left: 0, Right: 1, Height: 1.0},
		{Left: 3, Right: 2, Height: 2.0},
	})
	if err != nil {
		t.Fatalf("FromLinkage() error = %v", err)
	}

	if tree.Len() != 5 {
		t.Errorf("Len() = %d, want 5", tree.Len())
	}
	if tree.Root() != 4 {
		t.Errorf("Root() = %d, want 4", tree.Root())
	}
	if h := tree.Node(tree.Root()).Height; h != 2.0 {
		t.Errorf("root height = %v, want 2.0", h)
	}

	root := tree.Children(tree.Root())
	if len(root) != 2 || root[0] != 3 || root[1] != 2 {
		t.Errorf("root children = %v, want [3 2]", root)
	}
}

func TestFromLinkage_Errors(t *testing.T) {
	tests := []struct {
		name   string
		labels []string
		merges []Merge
		code   errors.Code
	}{
		{
			name:   "no labels",
			labels: nil,
			merges: nil,
			code:   errors.ErrCodeInvalidLinkage,
		},
		{
			name:   "merge count mismatch",
			labels: []string{"A", "B", "C"},
			merges: []Merge{{Left: 0, Right: 1, Height: 1}},
			code:   errors.ErrCodeInvalidLinkage,
		},
		{
			name:   "forward reference",
			labels: []string{"A", "B", "C"},
			merges: []Merge{
				{Left: 0, Right: 4, Height: 1}, // id 4 created by merge 1
				{Left: 3, Right: 1, Height: 2},
			},
			code: errors.ErrCodeInvalidLinkage,
		},
		{
			name:   "cluster reused",
			labels: []string{"A", "B", "C"},
			merges: []Merge{
				{Left: 0, Right: 1, Height: 1},
				{Left: 0, Right: 2, Height: 2}, // leaf 0 already merged
			},
			code: errors.ErrCodeStructuralShared,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromLinkage(tt.labels, tt.merges)
			if err == nil {
				t.Fatal("FromLinkage() succeeded, want error")
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %s, want %s", got, tt.code)
			}
		})
	}
}

func TestFromLinkage_SingleLeaf(t *testing.T) {
	tree, err := FromLinkage([]string{"solo"}, nil)
	if err != nil {
		t.Fatalf("FromLinkage() error = %v", err)
	}
	if tree.Len() != 1 || tree.LeafCount() != 1 {
		t.Errorf("Len() = %d, LeafCount() = %d, want 1, 1", tree.Len(), tree.LeafCount())
	}
}

func TestFromLinkage_DuplicateLabels(t *testing.T) {
	// Labels are display strings, not keys; duplicates must not fail.
	_, err := FromLinkage([]string{"X", "X"}, []Merge{{Left: 0, Right: 1, Height: 1}})
	if err != nil {
		t.Fatalf("FromLinkage() with duplicate labels error = %v", err)
	}
}
