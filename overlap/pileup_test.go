package overlap

import (
	"testing"

	"seqcore/read"
)

func TestBuildSuffixSideForward(t *testing.T) {
	r := read.Read{Id: "root", Sequence: "ACGTACGT"}
	blocks := read.BlockList{
		{Side: read.Suffix, Strand: read.Forward, OverlapLen: 4, Count: 1, Sequences: []string{"ACGTTTTT"}},
	}

	mo := Build(r, blocks)
	if len(mo.Rows) != 2 {
		t.Fatalf("len(Rows) = %d, want 2", len(mo.Rows))
	}
	row := mo.Rows[1]
	if row.Sequence != "ACGTTTTT" {
		t.Errorf("Sequence = %q, want unmodified forward-strand row", row.Sequence)
	}
	wantOffset := len(r.Sequence) - 4
	if row.Offset != wantOffset {
		t.Errorf("Offset = %d, want %d", row.Offset, wantOffset)
	}
}

func TestBuildReverseComplementsStrand(t *testing.T) {
	r := read.Read{Id: "root", Sequence: "ACGTACGT"}
	stored := "AAAACGT" // as kept in reference orientation
	blocks := read.BlockList{
		{Side: read.Suffix, Strand: read.RevComp, OverlapLen: 3, Count: 1, Sequences: []string{stored}},
	}

	mo := Build(r, blocks)
	want := read.ReverseComplement(stored)
	if mo.Rows[1].Sequence != want {
		t.Errorf("Sequence = %q, want reverse complement %q", mo.Rows[1].Sequence, want)
	}
}

func TestCountBySide(t *testing.T) {
	blocks := read.BlockList{
		{Side: read.Prefix, Count: 2},
		{Side: read.Suffix, Count: 5},
		{Side: read.Suffix, Count: 1},
	}
	prefix, suffix := CountBySide(blocks)
	if prefix != 2 || suffix != 6 {
		t.Errorf("CountBySide = (%d, %d), want (2, 6)", prefix, suffix)
	}
}
