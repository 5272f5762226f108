// Package features arranges sequence feature annotations into
// non-overlapping display rows. Parsing annotation formats is a caller
// concern; this package only packs intervals.
package features

import (
	"slices"
)

// Span is a half-open interval [Start, End) in sequence coordinates.
type Span struct {
	Start int
	End   int
}

// Len returns the interval length; inverted spans have length 0.
func (s Span) Len() int {
	if s.End <= s.Start {
		return 0
	}
	return s.End - s.Start
}

// PackRows assigns each span the lowest display row where it overlaps
// nothing already placed (greedy first-fit). The result maps input index to
// row number, counting from 0.
//
// Placement order is by (Start, End, input index), which makes the packing
// deterministic: equal spans keep their input order. The input slice is not
// modified.
func PackRows(spans []Span) []int {
	order := packOrder(spans)

	rows := make([]int, len(spans))
	// rowEnds[r] is the End of the rightmost span placed on row r. Spans
	// arrive sorted by Start, so overlap on a row only happens against its
	// last occupant.
	var rowEnds []int

	for _, i := range order {
		s := spans[i]
		placed := false
		for r, end := range rowEnds {
			if s.Start >= end {
				rows[i] = r
				rowEnds[r] = s.End
				placed = true
				break
			}
		}
		if !placed {
			rows[i] = len(rowEnds)
			rowEnds = append(rowEnds, s.End)
		}
	}
	return rows
}

// PackRowsCircular packs spans that live on a circle of the given length,
// such as plasmid feature annotations. Spans arrive in unrolled form: a
// span wrapping the origin has End > length and occupies [Start, length)
// plus [0, End-length). Overlap is tested on the circle, so a wrapped span
// never shares a row with one it overlaps modulo length.
//
// Placement order matches [PackRows]: greedy first-fit by
// (Start, End, input index).
func PackRowsCircular(spans []Span, length int) []int {
	order := packOrder(spans)

	rows := make([]int, len(spans))
	// Wrapped spans can collide with any occupant of a row, not just the
	// rightmost one, so each row keeps its full occupant list.
	var occupants [][]Span

	for _, i := range order {
		s := spans[i]
		placed := false
		for r, occ := range occupants {
			free := true
			for _, o := range occ {
				if overlapsOnCircle(s, o, length) {
					free = false
					break
				}
			}
			if free {
				rows[i] = r
				occupants[r] = append(occupants[r], s)
				placed = true
				break
			}
		}
		if !placed {
			rows[i] = len(occupants)
			occupants = append(occupants, []Span{s})
		}
	}
	return rows
}

// packOrder returns span indices sorted by (Start, End, input index).
func packOrder(spans []Span) []int {
	order := make([]int, len(spans))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		sa, sb := spans[a], spans[b]
		if sa.Start != sb.Start {
			return sa.Start - sb.Start
		}
		if sa.End != sb.End {
			return sa.End - sb.End
		}
		return a - b
	})
	return order
}

// overlapsOnCircle reports whether two unrolled spans intersect modulo
// length.
func overlapsOnCircle(a, b Span, length int) bool {
	for _, pa := range modularPieces(a, length) {
		for _, pb := range modularPieces(b, length) {
			if pa.Start < pb.End && pb.Start < pa.End {
				return true
			}
		}
	}
	return false
}

// modularPieces splits an unrolled span into its linear pieces on the
// circle: one for a span inside [0, length), two for a wrapped span.
func modularPieces(s Span, length int) []Span {
	if s.End <= length {
		return []Span{s}
	}
	return []Span{{Start: s.Start, End: length}, {Start: 0, End: s.End - length}}
}

// RowCount returns the number of rows a packing uses.
func RowCount(rows []int) int {
	maxRow := -1
	for _, r := range rows {
		if r > maxRow {
			maxRow = r
		}
	}
	return maxRow + 1
}
