package cluster

import (
	"github.com/t0mdavid-m/seqviz/pkg/errors"
)

// Merge is a single linkage record: two sub-clusters combined at a given
// height. Identifiers follow the conventional encoding used by scipy-style
// agglomerative clustering output: with n original observations, ids below n
// name leaves and id n+i names the cluster created by merge record i.
type Merge struct {
	Left   int     `json:"left"`
	Right  int     `json:"right"`
	Height float64 `json:"height"`
}

// FromLinkage builds a tree from an ordered sequence of merge records.
//
// labels supplies the leaf labels for observations 0..len(labels)-1. A full
// clustering of n leaves has exactly n-1 merges; the final merge becomes the
// root. Ties in merge height keep their input order: the tree stores
// children as (Left, Right) in record order, which fixes the leaf order
// downstream layout produces. Duplicate labels are accepted.
//
// FromLinkage fails with INVALID_LINKAGE when a record references an id that
// does not exist yet, and with a STRUCTURAL_* error when a cluster id is
// consumed by more than one merge or the records do not reduce to a single
// root.
func FromLinkage(labels []string, merges []Merge) (*Tree, error) {
	n := len(labels)
	if n == 0 {
		return nil, errors.New(errors.ErrCodeInvalidLinkage, "no leaf labels")
	}
	if len(merges) != n-1 {
		return nil, errors.New(errors.ErrCodeInvalidLinkage, "%d leaves require %d merges, got %d", n, n-1, len(merges))
	}

	nodes := make([]Node, n, n+len(merges))
	for i, label := range labels {
		nodes[i] = Node{Label: label}
	}

	used := make([]bool, n+len(merges))
	for i, m := range merges {
		limit := n + i // ids created by later merges do not exist yet
		for _, id := range []int{m.Left, m.Right} {
			if id < 0 || id >= limit {
				return nil, errors.New(errors.ErrCodeInvalidLinkage, "merge %d references id %d, valid range [0,%d)", i, id, limit)
			}
			if used[id] {
				return nil, errors.New(errors.ErrCodeStructuralShared, "merge %d reuses cluster %d", i, id)
			}
			used[id] = true
		}
		nodes = append(nodes, Node{Height: m.Height, Children: []int{m.Left, m.Right}})
	}

	return New(nodes, len(nodes)-1)
}
