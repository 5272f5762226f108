// Package dendro converts hierarchical clustering trees into deterministic
// 2D dendrogram geometry: node coordinates, bracket line segments, and the
// final leaf order along the categorical axis.
//
// The engine is a pure function of its inputs. It never mutates the tree,
// allocates fresh output structures on every call, and is safe to invoke
// concurrently. Traversal is iterative with an explicit stack, so trees
// with tens of thousands of leaves do not grow the goroutine stack.
//
// The layout is computed once in canonical left-right orientation; the
// requested [Orientation] is applied as a final coordinate-space mapping,
// never as a separate code path. Painting the geometry is a consumer
// concern (see pkg/render/dendrosvg); this package emits plain data.
package dendro

import (
	"github.com/t0mdavid-m/seqviz/pkg/cluster"
	"github.com/t0mdavid-m/seqviz/pkg/errors"
)

// Point is a final plot coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Segment is one drawn bracket edge.
type Segment struct {
	From Point `json:"from"`
	To   Point `json:"to"`
}

// Result is a complete dendrogram layout.
type Result struct {
	// Segments are the bracket edges in deterministic order: nodes in
	// ascending arena order, per node one drop per child followed by the
	// spanning bar (rectangular style only).
	Segments []Segment

	// LeafOrder lists leaf labels as they appear along the categorical
	// axis, reading left to right or top to bottom.
	LeafOrder []string

	// LeafIndices lists the arena indices behind LeafOrder, for callers
	// that reorder alignment rows by node rather than by label.
	LeafIndices []int

	// Coords maps every arena index to its plot coordinate.
	Coords []Point

	// NonMonotonic lists internal nodes whose height is below a child's,
	// for highlighting. Only populated under WithAllowNonMonotonic.
	NonMonotonic []int

	// DuplicateLabels lists leaf labels that occur more than once. A
	// non-empty value warns the caller that LeafOrder is not invertible
	// to a unique leaf mapping.
	DuplicateLabels []string
}

// Layout computes the dendrogram geometry for a validated cluster tree.
//
// Leaf categorical positions are the ranks 0..n-1 of a depth-first in-order
// traversal that visits children in stored order, which makes the leaf
// order stable and deterministic: ties in merge height keep the order the
// merges were supplied in. An internal node sits at the midpoint of its
// outermost children; its distance coordinate is the transformed merge
// height.
//
// Non-monotonic heights fail with a CONSISTENCY error before any
// coordinate is computed, unless WithAllowNonMonotonic is set. Unknown
// orientations, bracket styles, or a nil transform fail with a
// CONFIGURATION error.
func Layout(t *cluster.Tree, opts ...Option) (*Result, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	bad := t.NonMonotonic()
	if len(bad) > 0 && !cfg.allowNonMono {
		return nil, errors.New(errors.ErrCodeConsistency, "non-monotonic merge heights at nodes %v", bad)
	}

	pos, dist, leaves := canonical(t, cfg)
	leafSpan := float64(len(leaves) - 1)

	res := &Result{
		Coords:       make([]Point, t.Len()),
		LeafOrder:    make([]string, len(leaves)),
		LeafIndices:  make([]int, len(leaves)),
		NonMonotonic: bad,
	}
	for i := range res.Coords {
		res.Coords[i] = cfg.orientation.place(pos[i], dist[i], leafSpan)
	}

	for rank, leaf := range leaves {
		out := rank
		if cfg.orientation.mirrored() {
			out = len(leaves) - 1 - rank
		}
		res.LeafOrder[out] = t.Node(leaf).Label
		res.LeafIndices[out] = leaf
	}
	res.DuplicateLabels = duplicates(res.LeafOrder)

	res.Segments = segments(t, cfg, pos, dist, leafSpan)
	return res, nil
}

// canonical assigns every node its categorical position and transformed
// distance coordinate in left-right orientation, and returns the leaves in
// rank order. Iterative post-order with an explicit stack: a node's
// position is resolved once all children are placed.
func canonical(t *cluster.Tree, cfg config) (pos, dist []float64, leaves []int) {
	pos = make([]float64, t.Len())
	dist = make([]float64, t.Len())
	leaves = make([]int, 0, t.LeafCount())

	type frame struct {
		node int
		next int
	}
	stack := make([]frame, 0, 64)
	stack = append(stack, frame{node: t.Root()})

	for len(stack) > 0 {
		f := &stack[len(stack)-1]
		n := t.Node(f.node)

		if n.IsLeaf() {
			pos[f.node] = float64(len(leaves))
			dist[f.node] = cfg.transform(cfg.leafBaseline)
			leaves = append(leaves, f.node)
			stack = stack[:len(stack)-1]
			continue
		}

		if f.next < len(n.Children) {
			child := n.Children[f.next]
			f.next++
			stack = append(stack, frame{node: child})
			continue
		}

		// All children placed. In-order ranks make the first child the
		// leftmost subtree and the last child the rightmost.
		first := n.Children[0]
		last := n.Children[len(n.Children)-1]
		pos[f.node] = (pos[first] + pos[last]) / 2
		dist[f.node] = cfg.transform(n.Height)
		stack = stack[:len(stack)-1]
	}

	return pos, dist, leaves
}

// segments emits bracket edges for every internal node in ascending arena
// order, already mapped into the requested orientation.
func segments(t *cluster.Tree, cfg config, pos, dist []float64, leafSpan float64) []Segment {
	var segs []Segment
	place := func(p, d float64) Point { return cfg.orientation.place(p, d, leafSpan) }

	for i := 0; i < t.Len(); i++ {
		n := t.Node(i)
		if n.IsLeaf() {
			continue
		}

		switch cfg.bracket {
		case BracketSlanted:
			for _, c := range n.Children {
				segs = append(segs, Segment{
					From: place(pos[c], dist[c]),
					To:   place(pos[i], dist[i]),
				})
			}
		default: // rectangular
			for _, c := range n.Children {
				segs = append(segs, Segment{
					From: place(pos[c], dist[c]),
					To:   place(pos[c], dist[i]),
				})
			}
			first := n.Children[0]
			last := n.Children[len(n.Children)-1]
			segs = append(segs, Segment{
				From: place(pos[first], dist[i]),
				To:   place(pos[last], dist[i]),
			})
		}
	}
	return segs
}

func duplicates(labels []string) []string {
	seen := make(map[string]int, len(labels))
	for _, l := range labels {
		seen[l]++
	}
	var dup []string
	reported := make(map[string]bool)
	for _, l := range labels {
		if seen[l] > 1 && !reported[l] {
			dup = append(dup, l)
			reported[l] = true
		}
	}
	return dup
}
