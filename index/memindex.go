package index

import (
	"strings"

	"seqcore/read"
)

// MemIndex is a naive in-memory stand-in for the FM-index/overlap
// service, built directly from a reference read set. It exists so the
// core can be exercised end-to-end without a real BWT; it is not meant to
// scale to production reference sizes (see DESIGN.md).
type MemIndex struct {
	refs []string
}

// NewMemIndex builds an index over the given reference sequences.
func NewMemIndex(refs []string) *MemIndex {
	cp := make([]string, len(refs))
	copy(cp, refs)
	return &MemIndex{refs: cp}
}

// Count implements Index by scanning every reference sequence for
// (possibly overlapping) occurrences of s and its reverse complement.
func (m *MemIndex) Count(s string) (uint64, error) {
	rc := read.ReverseComplement(s)

	var n uint64
	for _, ref := range m.refs {
		n += uint64(countOverlapping(ref, s))
		if rc != s {
			n += uint64(countOverlapping(ref, rc))
		}
	}
	return n, nil
}

func countOverlapping(haystack, needle string) int {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return 0
	}

	n := 0
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			n++
		}
	}
	return n
}

// OverlapBlocks implements Index by finding, for each reference sequence
// and each strand, the longest suffix/prefix match against r that is at
// least minOverlap bases, then grouping matches of equal length and side
// into blocks.
func (m *MemIndex) OverlapBlocks(r read.Read, minOverlap int) (read.BlockList, error) {
	type key struct {
		side   read.Side
		strand read.Strand
		length int
	}

	groups := make(map[key][]string)
	var order []key

	// testSeq is the orientation used to test for an overlap; store is
	// the sequence recorded in the block (always the reference's native
	// orientation -- the pile-up builder applies the reverse complement
	// when Strand says to, per spec.md §4.3).
	consider := func(strand read.Strand, testSeq, store string) {
		if _, length, _, ok := bestSuffixOverlap(r.Sequence, testSeq, minOverlap); ok {
			k := key{read.Suffix, strand, length}
			if _, seen := groups[k]; !seen {
				order = append(order, k)
			}
			groups[k] = append(groups[k], store)
		}
		if _, length, _, ok := bestPrefixOverlap(r.Sequence, testSeq, minOverlap); ok {
			k := key{read.Prefix, strand, length}
			if _, seen := groups[k]; !seen {
				order = append(order, k)
			}
			groups[k] = append(groups[k], store)
		}
	}

	for _, ref := range m.refs {
		if ref == r.Sequence {
			continue
		}
		consider(read.Forward, ref, ref)
		consider(read.RevComp, read.ReverseComplement(ref), ref)
	}

	bl := make(read.BlockList, 0, len(order))
	for _, k := range order {
		seqs := groups[k]
		bl = append(bl, read.OverlapBlock{
			Count:      len(seqs),
			OverlapLen: k.length,
			Side:       k.side,
			Strand:     k.strand,
			Sequences:  seqs,
		})
	}
	return bl, nil
}

// bestSuffixOverlap finds the longest suffix of root that is a prefix of
// cand, i.e. cand extends root to the right.
func bestSuffixOverlap(root, cand string, minOverlap int) (read.Side, int, string, bool) {
	max := len(root)
	if len(cand) < max {
		max = len(cand)
	}

	for l := max; l >= minOverlap; l-- {
		if strings.HasSuffix(root, cand[:l]) {
			return read.Suffix, l, cand, true
		}
	}
	return 0, 0, "", false
}

// bestPrefixOverlap finds the longest prefix of root that is a suffix of
// cand, i.e. cand extends root to the left.
func bestPrefixOverlap(root, cand string, minOverlap int) (read.Side, int, string, bool) {
	max := len(root)
	if len(cand) < max {
		max = len(cand)
	}

	for l := max; l >= minOverlap; l-- {
		if strings.HasPrefix(root, cand[len(cand)-l:]) {
			return read.Prefix, l, cand, true
		}
	}
	return 0, 0, "", false
}
