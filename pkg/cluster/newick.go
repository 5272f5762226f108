package cluster

import (
	"strconv"
	"strings"

	"github.com/t0mdavid-m/seqviz/pkg/errors"
)

// ParseNewick builds a tree from Newick text, e.g. "((A:1,B:1):1,C:2);".
//
// Newick encodes branch lengths (parent-to-child distances) rather than
// merge heights, so heights are derived: a leaf sits at height 0 and an
// internal node at the maximum of child height plus child branch length.
// For an ultrametric tree (all leaves equidistant from the root) this
// recovers the merge heights of the clustering that produced it.
//
// A missing branch length defaults to 1, which turns a plain cladogram like
// "((A,B),C);" into unit-depth levels. Quoted labels and comments are not
// supported. Fails with INVALID_NEWICK on malformed input.
func ParseNewick(text string) (*Tree, error) {
	p := &newickParser{in: strings.TrimSpace(text)}

	var nodes []Node
	root, _, err := p.subtree(&nodes)
	if err != nil {
		return nil, err
	}
	if !p.eat(';') {
		return nil, p.errorf("expected ';' at offset %d", p.pos)
	}
	if p.pos != len(p.in) {
		return nil, p.errorf("trailing input at offset %d", p.pos)
	}
	return New(nodes, root)
}

type newickParser struct {
	in  string
	pos int
}

// subtree parses one subtree, appends its nodes to the arena, and returns
// the subtree root index and the branch length connecting it to its parent.
func (p *newickParser) subtree(nodes *[]Node) (int, float64, error) {
	if p.peek() == '(' {
		return p.internal(nodes)
	}
	return p.leaf(nodes)
}

func (p *newickParser) internal(nodes *[]Node) (int, float64, error) {
	p.pos++ // consume '('

	var children []int
	var height float64
	for {
		c, blen, err := p.subtree(nodes)
		if err != nil {
			return 0, 0, err
		}
		children = append(children, c)
		if h := (*nodes)[c].Height + blen; h > height {
			height = h
		}
		if p.eat(',') {
			continue
		}
		break
	}
	if !p.eat(')') {
		return 0, 0, p.errorf("unbalanced '(' at offset %d", p.pos)
	}
	if len(children) < 2 {
		return 0, 0, p.errorf("internal node with a single child at offset %d", p.pos)
	}

	label := p.label()
	blen, err := p.branchLength()
	if err != nil {
		return 0, 0, err
	}

	*nodes = append(*nodes, Node{Label: label, Height: height, Children: children})
	return len(*nodes) - 1, blen, nil
}

func (p *newickParser) leaf(nodes *[]Node) (int, float64, error) {
	label := p.label()
	if label == "" {
		return 0, 0, p.errorf("expected leaf label at offset %d", p.pos)
	}
	blen, err := p.branchLength()
	if err != nil {
		return 0, 0, err
	}
	*nodes = append(*nodes, Node{Label: label})
	return len(*nodes) - 1, blen, nil
}

// label consumes a bare label; empty labels are allowed for internal nodes.
func (p *newickParser) label() string {
	start := p.pos
	for p.pos < len(p.in) && !strings.ContainsRune("(),:;", rune(p.in[p.pos])) {
		p.pos++
	}
	return strings.TrimSpace(p.in[start:p.pos])
}

// branchLength consumes ":<float>" if present, defaulting to 1.
func (p *newickParser) branchLength() (float64, error) {
	if !p.eat(':') {
		return 1, nil
	}
	start := p.pos
	for p.pos < len(p.in) && !strings.ContainsRune("(),:;", rune(p.in[p.pos])) {
		p.pos++
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(p.in[start:p.pos]), 64)
	if err != nil {
		return 0, p.errorf("bad branch length %q at offset %d", p.in[start:p.pos], start)
	}
	return v, nil
}

func (p *newickParser) peek() byte {
	if p.pos < len(p.in) {
		return p.in[p.pos]
	}
	return 0
}

func (p *newickParser) eat(c byte) bool {
	if p.peek() == c {
		p.pos++
		return true
	}
	return false
}

func (p *newickParser) errorf(format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidNewick, format, args...)
}
