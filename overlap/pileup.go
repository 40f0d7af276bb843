// Package overlap implements the multi-overlap builder (C4), the
// conflict-aware consensus (C5) and the overlap corrector (C6).
package overlap

import (
	"seqcore/read"
)

// Row is one aligned sequence in a pile-up, together with its alignment
// offset against the root (element zero of a MultiOverlap). A row's
// sequence covers root columns [Offset, Offset+len(Sequence)).
type Row struct {
	Sequence string
	Offset   int
}

// MultiOverlap is a column-aligned pile-up of overlapping reads against
// a distinguished root read, always Rows[0] at Offset 0.
type MultiOverlap struct {
	Rows []Row
}

// Root returns the pile-up's root sequence.
func (mo MultiOverlap) Root() string {
	return mo.Rows[0].Sequence
}

// Build converts a block list into a pile-up against r. Strand is
// normalized here: blocks whose Strand is RevComp contribute the
// reverse complement of the stored (reference-orientation) sequence.
func Build(r read.Read, blocks read.BlockList) MultiOverlap {
	rows := make([]Row, 0, 1+countSequences(blocks))
	rows = append(rows, Row{Sequence: r.Sequence, Offset: 0})

	for _, b := range blocks {
		for _, raw := range b.Sequences {
			seq := raw
			if b.Strand == read.RevComp {
				seq = read.ReverseComplement(raw)
			}

			var offset int
			switch b.Side {
			case read.Suffix:
				// The root's suffix overlaps this row's prefix:
				// row position 0 aligns to root column
				// len(root)-OverlapLen.
				offset = len(r.Sequence) - b.OverlapLen
			case read.Prefix:
				// The root's prefix overlaps this row's suffix:
				// row position len(seq)-1 aligns to root column
				// OverlapLen-1.
				offset = b.OverlapLen - len(seq)
			}

			rows = append(rows, Row{Sequence: seq, Offset: offset})
		}
	}

	return MultiOverlap{Rows: rows}
}

func countSequences(blocks read.BlockList) int {
	n := 0
	for _, b := range blocks {
		n += len(b.Sequences)
	}
	return n
}

// CountBySide sums block counts separately for prefix-side and
// suffix-side overlaps, used by the overlap corrector's QC flag.
func CountBySide(blocks read.BlockList) (prefix, suffix int) {
	for _, b := range blocks {
		switch b.Side {
		case read.Prefix:
			prefix += b.Count
		case read.Suffix:
			suffix += b.Count
		}
	}
	return
}
