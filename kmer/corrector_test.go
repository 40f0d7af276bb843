package kmer

import (
	"testing"

	"seqcore/quality"
	"seqcore/read"
)

// fakeIndex is a direct-control stand-in for index.Index: Count returns
// whatever counts is keyed with (zero for anything unlisted).
type fakeIndex struct {
	counts map[string]uint64
}

func (f *fakeIndex) Count(s string) (uint64, error) {
	return f.counts[s], nil
}

func (f *fakeIndex) OverlapBlocks(r read.Read, minOverlap int) (read.BlockList, error) {
	return nil, nil
}

func flatPhred(n, q int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = q
	}
	return p
}

func TestCorrectAlreadySolid(t *testing.T) {
	idx := &fakeIndex{counts: map[string]uint64{
		"ACG": 10, "CGT": 10, "GTA": 10,
	}}
	c := &Corrector{
		Index: idx, KmerLength: 3, Rounds: 2,
		Policy: quality.Policy{MinSupportHighQuality: 5, MinSupportLowQuality: 5, HighQualityCutoff: 0},
	}

	got, err := c.Correct("ACGTA", flatPhred(5, 30))
	if err != nil {
		t.Fatalf("Correct: %v", err)
	}
	if !got.Solid || got.Sequence != "ACGTA" {
		t.Fatalf("got %+v, want solid unchanged sequence", got)
	}
}

func TestCorrectFixesUnambiguousBase(t *testing.T) {
	idx := &fakeIndex{counts: map[string]uint64{
		"ACG": 10, "CGT": 10, "GTT": 0,
		"GTA": 10, // the one candidate replacement that is solid
	}}
	c := &Corrector{
		Index: idx, KmerLength: 3, Rounds: 2,
		Policy: quality.Policy{MinSupportHighQuality: 5, MinSupportLowQuality: 5, HighQualityCutoff: 0},
	}

	got, err := c.Correct("ACGTT", flatPhred(5, 30))
	if err != nil {
		t.Fatalf("Correct: %v", err)
	}
	if !got.Solid {
		t.Fatalf("got %+v, want solid", got)
	}
	if got.Sequence != "ACGTA" {
		t.Fatalf("Sequence = %q, want ACGTA", got.Sequence)
	}
}

func TestCorrectRefusesAmbiguousCandidate(t *testing.T) {
	idx := &fakeIndex{counts: map[string]uint64{
		"ACG": 10, "CGT": 10, "GTT": 0,
		"GTA": 10, "GTC": 10, // two candidates both solid: refuse
	}}
	c := &Corrector{
		Index: idx, KmerLength: 3, Rounds: 2,
		Policy: quality.Policy{MinSupportHighQuality: 5, MinSupportLowQuality: 5, HighQualityCutoff: 0},
	}

	got, err := c.Correct("ACGTT", flatPhred(5, 30))
	if err != nil {
		t.Fatalf("Correct: %v", err)
	}
	if got.Solid {
		t.Fatalf("got %+v, want not solid", got)
	}
	if got.Sequence != "ACGTT" {
		t.Fatalf("Sequence = %q, want the original ACGTT unchanged", got.Sequence)
	}
}

func TestCorrectContinuesPastAnUnfixableLeftmostPosition(t *testing.T) {
	// Position 0's own k-mer window ("AAC") never has a passing
	// substitution: every candidate at offset 0 is left at count 0. If the
	// round scan gave up there, it would never reach position 1, whose fix
	// ("AGC") is what raises window 0's count past threshold on the next
	// round and makes position 0 solid without ever touching it directly.
	idx := &fakeIndex{counts: map[string]uint64{
		"CCG": 10, "CGG": 10, "GGT": 10, "GTT": 10, "TTA": 10,
		"AGC": 10,
	}}
	c := &Corrector{
		Index: idx, KmerLength: 3, Rounds: 3,
		Policy: quality.Policy{MinSupportHighQuality: 5, MinSupportLowQuality: 5, HighQualityCutoff: 0},
	}

	got, err := c.Correct("AACCGGTTA", flatPhred(9, 30))
	if err != nil {
		t.Fatalf("Correct: %v", err)
	}
	if !got.Solid {
		t.Fatalf("got %+v, want solid", got)
	}
	if got.Sequence != "AGCCGGTTA" {
		t.Fatalf("Sequence = %q, want AGCCGGTTA", got.Sequence)
	}
}

func TestCorrectGivesUpWhenNoPositionCanBeRepaired(t *testing.T) {
	idx := &fakeIndex{counts: map[string]uint64{}}
	c := &Corrector{
		Index: idx, KmerLength: 3, Rounds: 1,
		Policy: quality.Policy{MinSupportHighQuality: 5, MinSupportLowQuality: 5, HighQualityCutoff: 0},
	}

	got, err := c.Correct("AAAA", flatPhred(4, 30))
	if err != nil {
		t.Fatalf("Correct: %v", err)
	}
	if got.Solid || got.Sequence != "AAAA" {
		t.Fatalf("got %+v, want original sequence returned unsolid", got)
	}
}

func TestCorrectPropagatesIndexError(t *testing.T) {
	wantErr := errIndexFailure{}
	idx := &erroringIndex{err: wantErr}
	c := &Corrector{
		Index: idx, KmerLength: 3, Rounds: 1,
		Policy: quality.Policy{MinSupportHighQuality: 1, MinSupportLowQuality: 1, HighQualityCutoff: 0},
	}

	_, err := c.Correct("ACGT", flatPhred(4, 30))
	if err != wantErr {
		t.Fatalf("Correct error = %v, want %v", err, wantErr)
	}
}

type errIndexFailure struct{}

func (errIndexFailure) Error() string { return "index failure" }

type erroringIndex struct{ err error }

func (e *erroringIndex) Count(s string) (uint64, error) { return 0, e.err }
func (e *erroringIndex) OverlapBlocks(r read.Read, minOverlap int) (read.BlockList, error) {
	return nil, nil
}
