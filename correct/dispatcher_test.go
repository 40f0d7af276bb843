package correct

import (
	"testing"

	"seqcore/read"
)

type stubIndex struct {
	counts map[string]uint64
	blocks read.BlockList
}

func (s *stubIndex) Count(kmer string) (uint64, error) { return s.counts[kmer], nil }

func (s *stubIndex) OverlapBlocks(r read.Read, minOverlap int) (read.BlockList, error) {
	return s.blocks, nil
}

func flatPhred(n, q int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = q
	}
	return p
}

func baseConfig() Config {
	return Config{
		MinOverlap: 4, NumOverlapRounds: 3, NumKmerRounds: 3,
		ConflictCutoff: 3, KmerLength: 3, KmerThreshold: 5,
		MinSupportHighQuality: 5, HighQualityCutoff: 0,
		PError: 0.01,
	}
}

func TestDispatcherKmerOnly(t *testing.T) {
	idx := &stubIndex{counts: map[string]uint64{"ACG": 10, "CGT": 10, "GTA": 10}}
	cfg := baseConfig()
	cfg.Algorithm = KmerOnly
	d := &Dispatcher{Index: idx, Config: cfg}

	r := read.Read{Id: "r1", Sequence: "ACGTA"}
	result, err := d.Run(r, flatPhred(5, 30))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !result.KmerQC || result.OverlapQC {
		t.Fatalf("got %+v, want kmer-only QC pass", result)
	}
}

func TestDispatcherHybridFallsBackToOverlap(t *testing.T) {
	idx := &stubIndex{
		counts: map[string]uint64{}, // every k-mer query fails, kmer corrector can't solidify
		blocks: nil,                 // and there is no overlap evidence either
	}
	cfg := baseConfig()
	cfg.Algorithm = Hybrid
	d := &Dispatcher{Index: idx, Config: cfg}

	r := read.Read{Id: "r1", Sequence: "ACGTA"}
	result, err := d.Run(r, flatPhred(5, 30))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.KmerQC || result.OverlapQC {
		t.Fatalf("got %+v, want both QC flags false (neither corrector could validate)", result)
	}
	if result.Sequence != "ACGTA" {
		t.Fatalf("Sequence = %q, want original preserved", result.Sequence)
	}
}

func TestDispatcherOverlapOnly(t *testing.T) {
	idx := &stubIndex{blocks: read.BlockList{
		{Side: read.Suffix, Strand: read.Forward, OverlapLen: 4, Count: 1, Sequences: []string{"ACGTA"}},
		{Side: read.Prefix, Strand: read.Forward, OverlapLen: 4, Count: 1, Sequences: []string{"ACGTA"}},
	}}
	cfg := baseConfig()
	cfg.Algorithm = OverlapOnly
	d := &Dispatcher{Index: idx, Config: cfg}

	r := read.Read{Id: "r1", Sequence: "ACGTA"}
	result, err := d.Run(r, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.KmerQC {
		t.Fatalf("got %+v, want KmerQC false (overlap-only mode never runs the k-mer corrector)", result)
	}
	if !result.OverlapQC {
		t.Fatalf("got %+v, want OverlapQC true", result)
	}
}
