// Package kmer implements the k-mer spectrum corrector (C3): an
// iterative fixed-point refinement that flips one base per round to
// drive a read toward a fully "solid" k-mer spectrum.
package kmer

import (
	"seqcore/index"
	"seqcore/quality"
	"seqcore/read"
)

// Cache memoizes index.Count lookups for one read's correction run, so
// re-querying the same k-mer across rounds costs nothing after the first
// time. It is built fresh per read and discarded on completion.
type Cache map[string]uint64

// Corrector runs the k-mer correction algorithm against a fixed index.
type Corrector struct {
	Index      index.Index
	KmerLength int
	Rounds     int
	Policy     quality.Policy
}

// Result is the outcome of one Correct call.
type Result struct {
	Sequence string
	Solid    bool
}

// Correct attempts to drive seq to a fully solid k-mer spectrum. The
// round counter is checked before each edit and the loop stops once it
// exceeds c.Rounds, so at most c.Rounds+1 edits are made. phred is the
// per-base phred quality, same length
// as seq (an empty slice, or all-zero, is treated as "unknown": every
// base compares as low quality against Policy.HighQualityCutoff unless
// the cutoff is <= 0).
//
// It never returns a partially corrected sequence: on failure the
// original seq is returned unchanged, even if interim rounds edited it.
func (c *Corrector) Correct(seq string, phred []int) (Result, error) {
	n := len(seq)
	k := c.KmerLength
	nk := n - k + 1

	if nk <= 0 {
		return Result{Sequence: seq, Solid: false}, nil
	}

	if len(phred) == 0 {
		phred = make([]int, n)
	}

	minPhred := make([]int, nk)
	for i := 0; i < nk; i++ {
		minPhred[i] = quality.MinSpan(phred, i, i+k-1)
	}

	working := []byte(seq)
	cache := make(Cache, n*c.Rounds+nk)

	count := make([]uint64, nk)

	for round := 0; ; {
		solid := make([]bool, n)

		for i := 0; i < nk; i++ {
			kmer := string(working[i : i+k])

			cnt, cached := cache[kmer]
			if !cached {
				var err error
				cnt, err = c.Index.Count(kmer)
				if err != nil {
					return Result{Sequence: seq, Solid: false}, err
				}
				cache[kmer] = cnt
			}
			count[i] = cnt

			if cnt >= uint64(c.Policy.Threshold(minPhred[i])) {
				for j := i; j < i+k; j++ {
					solid[j] = true
				}
			}
		}

		allSolid := true
		for _, s := range solid {
			if !s {
				allSolid = false
				break
			}
		}
		if allSolid {
			return Result{Sequence: string(working), Solid: true}, nil
		}

		if round > c.Rounds {
			return Result{Sequence: seq, Solid: false}, nil
		}
		round++

		// Scan left to right for the first non-solid position that can
		// actually be repaired; a single edit per round keeps the later
		// re-query in context of the edit. Positions this round can't fix
		// are skipped rather than aborting the round.
		corrected := false
		for p := 0; p < n; p++ {
			if solid[p] {
				continue
			}

			leftWindow := p + 1 - k
			if leftWindow < 0 {
				leftWindow = 0
			}
			rightWindow := p
			if rightWindow > n-k {
				rightWindow = n - k
			}

			threshold := uint64(c.Policy.Threshold(phred[p]))

			reqLeft := count[leftWindow]
			if threshold > reqLeft {
				reqLeft = threshold
			}
			ok, err := c.tryCorrect(working, p, leftWindow, reqLeft, cache)
			if err != nil {
				return Result{Sequence: seq, Solid: false}, err
			}
			if ok {
				corrected = true
				break
			}

			reqRight := count[rightWindow]
			if threshold > reqRight {
				reqRight = threshold
			}
			ok, err = c.tryCorrect(working, p, rightWindow, reqRight, cache)
			if err != nil {
				return Result{Sequence: seq, Solid: false}, err
			}
			if ok {
				corrected = true
				break
			}

			// Neither window fixed p; keep scanning rightward for a
			// non-solid position this round can still repair instead of
			// giving up on the whole round.
		}

		if !corrected {
			return Result{Sequence: seq, Solid: false}, nil
		}
	}
}

// tryCorrect attempts a one-base substitution at position p, using the
// k-mer window starting at w (w <= p < w+k). It writes the repair into
// working and returns true only when a single unambiguous candidate base
// meets minCount; ties or near-ties suppress the edit.
func (c *Corrector) tryCorrect(working []byte, p, w int, minCount uint64, cache Cache) (bool, error) {
	k := c.KmerLength
	offset := p - w
	orig := working[w : w+k]
	original := working[p]

	var bestBase byte
	passing := 0

	for _, b := range read.Bases {
		if b == original {
			continue
		}

		kmer := make([]byte, k)
		copy(kmer, orig)
		kmer[offset] = b

		cnt, cached := cache[string(kmer)]
		if !cached {
			var err error
			cnt, err = c.Index.Count(string(kmer))
			if err != nil {
				return false, err
			}
			cache[string(kmer)] = cnt
		}

		if cnt >= minCount {
			passing++
			bestBase = b
		}
	}

	if passing != 1 {
		return false, nil
	}

	working[p] = bestBase
	return true, nil
}
