// Package logo computes sequence logo geometry: per-position glyph boxes
// whose heights encode symbol frequency scaled by information content.
//
// Like the other layout packages, this one produces plain geometry; fonts
// and colors belong to the drawing collaborator.
package logo

import (
	"math"
	"sort"

	"github.com/t0mdavid-m/seqviz/pkg/errors"
)

// Glyph is one symbol box in a stack. Boxes sit in a unit-width column at
// X = position, with Y measured in bits from the baseline.
type Glyph struct {
	Symbol string  `json:"symbol"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Stack is the glyph column for one alignment position. Glyphs are ordered
// bottom to top by ascending frequency, so the dominant symbol caps the
// stack.
type Stack struct {
	Position    int     `json:"position"`
	Information float64 `json:"information"` // column height in bits
	Glyphs      []Glyph `json:"glyphs"`
}

// Option configures logo computation.
type Option func(*config)

type config struct {
	gap           byte
	smallSample   bool
	alphabetSize  int
	alphabetFixed bool
}

// WithGapSymbol sets the character treated as an alignment gap and
// excluded from counts. Default '-'.
func WithGapSymbol(c byte) Option { return func(cfg *config) { cfg.gap = c } }

// WithSmallSampleCorrection subtracts the small-sample error term
// (s-1)/(2·ln2·n) from each column's information content, clamped at zero.
func WithSmallSampleCorrection() Option { return func(cfg *config) { cfg.smallSample = true } }

// WithAlphabetSize fixes the alphabet size used for the maximum entropy
// (4 for nucleotides, 20 for amino acids). By default the number of
// distinct non-gap symbols observed across the alignment is used.
func WithAlphabetSize(n int) Option {
	return func(cfg *config) {
		cfg.alphabetSize = n
		cfg.alphabetFixed = true
	}
}

// Build computes logo stacks for an aligned set of sequences. All
// sequences must share the same length. Positions where every sequence
// has a gap yield an empty stack at zero information.
func Build(seqs []string, opts ...Option) ([]Stack, error) {
	cfg := config{gap: '-'}
	for _, opt := range opts {
		opt(&cfg)
	}

	if len(seqs) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no sequences")
	}
	width := len(seqs[0])
	for i, s := range seqs {
		if len(s) != width {
			return nil, errors.New(errors.ErrCodeInvalidInput, "sequence %d has length %d, want %d", i, len(s), width)
		}
	}

	if !cfg.alphabetFixed {
		cfg.alphabetSize = observedAlphabet(seqs, cfg.gap)
	}
	if cfg.alphabetSize < 2 {
		cfg.alphabetSize = 2
	}
	maxBits := math.Log2(float64(cfg.alphabetSize))

	stacks := make([]Stack, width)
	for pos := 0; pos < width; pos++ {
		counts := make(map[string]int)
		total := 0
		for _, s := range seqs {
			c := s[pos]
			if c == cfg.gap {
				continue
			}
			counts[string(c)]++
			total++
		}

		st := Stack{Position: pos}
		if total == 0 {
			stacks[pos] = st
			continue
		}

		entropy := 0.0
		for _, n := range counts {
			p := float64(n) / float64(total)
			entropy -= p * math.Log2(p)
		}

		info := maxBits - entropy
		if cfg.smallSample {
			info -= float64(len(counts)-1) / (2 * math.Ln2 * float64(total))
		}
		if info < 0 {
			info = 0
		}
		st.Information = info

		// Stack bottom-up by ascending frequency; ties by symbol for
		// determinism.
		symbols := make([]string, 0, len(counts))
		for sym := range counts {
			symbols = append(symbols, sym)
		}
		sort.Slice(symbols, func(a, b int) bool {
			if counts[symbols[a]] != counts[symbols[b]] {
				return counts[symbols[a]] < counts[symbols[b]]
			}
			return symbols[a] < symbols[b]
		})

		y := 0.0
		for _, sym := range symbols {
			h := float64(counts[sym]) / float64(total) * info
			st.Glyphs = append(st.Glyphs, Glyph{
				Symbol: sym,
				X:      float64(pos),
				Y:      y,
				Width:  1,
				Height: h,
			})
			y += h
		}
		stacks[pos] = st
	}
	return stacks, nil
}

func observedAlphabet(seqs []string, gap byte) int {
	seen := make(map[byte]bool)
	for _, s := range seqs {
		for i := 0; i < len(s); i++ {
			if s[i] != gap {
				seen[s[i]] = true
			}
		}
	}
	return len(seen)
}
