package overlap

import (
	"math"
	"sort"
)

// Consensus runs the conflict-aware consensus (C5) over a pile-up,
// producing a corrected sequence the same length as the root.
//
// For each root column, the most frequent non-gap base (primary) and the
// second most frequent (alt) are compared against the root's own base
// using a likelihood-ratio test: if the second allele's count meets
// conflictCutoff and a two-true-alleles hypothesis is more likely than a
// single-allele-plus-sequencing-errors (at rate pe) hypothesis, the
// column is conflicted and the root base is emitted unchanged. Columns
// with no coverage at all (never the case for the root's own row) also
// emit the root base.
func Consensus(mo MultiOverlap, pe float64, conflictCutoff int) string {
	root := mo.Root()
	out := make([]byte, len(root))

	for c := 0; c < len(root); c++ {
		counts := tally(mo, c)

		total := 0
		for _, n := range counts {
			total += n
		}

		primary, primaryN, altN := topTwo(counts)

		if total == 0 {
			out[c] = root[c]
			continue
		}

		if altN >= conflictCutoff && conflicted(total, primaryN, altN, pe) {
			out[c] = root[c]
		} else {
			out[c] = primary
		}
	}

	return string(out)
}

func tally(mo MultiOverlap, column int) map[byte]int {
	counts := make(map[byte]int, len(mo.Rows))
	for _, row := range mo.Rows {
		pos := column - row.Offset
		if pos < 0 || pos >= len(row.Sequence) {
			continue
		}
		counts[row.Sequence[pos]]++
	}
	return counts
}

// topTwo returns the most frequent base and its count, and the count of
// the second most frequent base (0 if there is none). Go's map iteration
// order is randomized, so the tally keys are sorted first and ties break
// toward the lexicographically smaller base -- deterministic regardless
// of iteration order, the same way histogram.Write sorts its keys before
// walking them.
func topTwo(counts map[byte]int) (primary byte, primaryN, altN int) {
	keys := make([]byte, 0, len(counts))
	for b := range counts {
		keys = append(keys, b)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	for _, b := range keys {
		n := counts[b]
		switch {
		case n > primaryN:
			altN = primaryN
			primary, primaryN = b, n
		case n > altN:
			altN = n
		}
	}
	return
}

// conflicted implements the binomial-tail likelihood ratio of "two real
// alleles, 50/50" against "primary allele plus sequencing errors at rate
// pe landing on this particular alt base". The binomial coefficient
// C(total, altN) is common to both hypotheses and cancels, so comparing
// log-likelihoods reduces to comparing these two terms directly.
func conflicted(total, primaryN, altN int, pe float64) bool {
	_ = primaryN

	mixtureLogL := float64(total) * math.Log(0.5)
	errorLogL := float64(altN)*math.Log(pe/3) + float64(total-altN)*math.Log(1-pe)

	return mixtureLogL > errorLogL
}
