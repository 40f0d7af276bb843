package overlap

import (
	"testing"

	"seqcore/read"
)

type fixedBlockIndex struct {
	blocks read.BlockList
}

func (f *fixedBlockIndex) Count(s string) (uint64, error) { return 0, nil }

func (f *fixedBlockIndex) OverlapBlocks(r read.Read, minOverlap int) (read.BlockList, error) {
	return f.blocks, nil
}

func TestOverlapCorrectorConvergesImmediately(t *testing.T) {
	idx := &fixedBlockIndex{blocks: read.BlockList{
		{Side: read.Suffix, Strand: read.Forward, OverlapLen: 4, Count: 2, Sequences: []string{"ACGTACGT", "ACGTACGT"}},
		{Side: read.Prefix, Strand: read.Forward, OverlapLen: 4, Count: 3, Sequences: []string{"ACGTACGT", "ACGTACGT", "ACGTACGT"}},
	}}

	c := &Corrector{Index: idx, MinOverlap: 4, Rounds: 5, ConflictCutoff: 3, PError: 0.01}
	result, err := c.Correct(read.Read{Id: "r1", Sequence: "ACGTACGT"})
	if err != nil {
		t.Fatalf("Correct: %v", err)
	}
	if result.Sequence != "ACGTACGT" {
		t.Errorf("Sequence = %q, want unchanged", result.Sequence)
	}
	if !result.OverlapQC {
		t.Errorf("OverlapQC = false, want true (both sides have overlaps)")
	}
	if result.NumPrefixOverlaps != 3 || result.NumSuffixOverlaps != 2 {
		t.Errorf("overlap counts = (%d, %d), want (3, 2)", result.NumPrefixOverlaps, result.NumSuffixOverlaps)
	}
}

func TestOverlapCorrectorDepthFilterForcesQCFailure(t *testing.T) {
	idx := &fixedBlockIndex{blocks: read.BlockList{
		{Side: read.Suffix, Strand: read.Forward, OverlapLen: 4, Count: 5000, Sequences: nil},
	}}

	c := &Corrector{Index: idx, MinOverlap: 4, Rounds: 5, ConflictCutoff: 3, PError: 0.01, DepthFilter: 1000}
	result, err := c.Correct(read.Read{Id: "r1", Sequence: "ACGTACGT"})
	if err != nil {
		t.Fatalf("Correct: %v", err)
	}
	if result.OverlapQC {
		t.Errorf("OverlapQC = true, want false (depth filter exceeded)")
	}
	if result.NumPrefixOverlaps != 5000 || result.NumSuffixOverlaps != 5000 {
		t.Errorf("overlap counts = (%d, %d), want (5000, 5000)", result.NumPrefixOverlaps, result.NumSuffixOverlaps)
	}
}

func TestOverlapCorrectorNoOverlapsFailsQC(t *testing.T) {
	idx := &fixedBlockIndex{blocks: nil}

	c := &Corrector{Index: idx, MinOverlap: 4, Rounds: 5, ConflictCutoff: 3, PError: 0.01}
	result, err := c.Correct(read.Read{Id: "r1", Sequence: "ACGTACGT"})
	if err != nil {
		t.Fatalf("Correct: %v", err)
	}
	if result.OverlapQC {
		t.Errorf("OverlapQC = true, want false with no overlapping reads")
	}
	if result.Sequence != "ACGTACGT" {
		t.Errorf("Sequence = %q, want unchanged", result.Sequence)
	}
}
