// Package correct implements the strategy dispatcher (C7): selecting the
// k-mer corrector, the overlap corrector, or a hybrid of the two, and
// producing a final result with QC flags.
package correct

import (
	"fmt"
	"os"

	"seqcore/index"
	"seqcore/kmer"
	"seqcore/overlap"
	"seqcore/quality"
	"seqcore/read"
)

// Algorithm selects which corrector(s) the dispatcher runs.
type Algorithm int

const (
	KmerOnly Algorithm = iota
	OverlapOnly
	Hybrid
)

// Config is the correction-process configuration table from spec.md §6.
type Config struct {
	MinOverlap       int
	NumOverlapRounds int
	NumKmerRounds    int
	ConflictCutoff   int
	KmerLength       int

	// KmerThreshold is the baseline min_support_low_quality.
	KmerThreshold         int
	MinSupportHighQuality int
	HighQualityCutoff     int

	// PError is the per-base sequencing error rate used by the
	// conflict-aware consensus (e.g. 0.01).
	PError float64

	Algorithm Algorithm

	// PrintOverlaps prints one line to stdout for each read that fails
	// both QC checks. The pile-up and the consensus diffs are not traced.
	PrintOverlaps bool

	// DepthFilter disables the overlap corrector's depth short-circuit
	// when 0.
	DepthFilter int
}

// Dispatcher ties a Config to an index.Index and runs the selected
// algorithm(s) against a read.
type Dispatcher struct {
	Index  index.Index
	Config Config
}

func (d *Dispatcher) policy() quality.Policy {
	return quality.Policy{
		MinSupportHighQuality: d.Config.MinSupportHighQuality,
		MinSupportLowQuality:  d.Config.KmerThreshold,
		HighQualityCutoff:     d.Config.HighQualityCutoff,
	}
}

func (d *Dispatcher) kmerCorrector() *kmer.Corrector {
	return &kmer.Corrector{
		Index:      d.Index,
		KmerLength: d.Config.KmerLength,
		Rounds:     d.Config.NumKmerRounds,
		Policy:     d.policy(),
	}
}

func (d *Dispatcher) overlapCorrector() *overlap.Corrector {
	return &overlap.Corrector{
		Index:          d.Index,
		MinOverlap:     d.Config.MinOverlap,
		Rounds:         d.Config.NumOverlapRounds,
		ConflictCutoff: d.Config.ConflictCutoff,
		PError:         d.Config.PError,
		DepthFilter:    d.Config.DepthFilter,
	}
}

// Run corrects r, whose per-base phred values are phred (may be nil when
// r.Quality is empty), using the configured algorithm.
func (d *Dispatcher) Run(r read.Read, phred []int) (read.Result, error) {
	var result read.Result

	switch d.Config.Algorithm {
	case KmerOnly:
		kr, err := d.kmerCorrector().Correct(r.Sequence, phred)
		if err != nil {
			return read.Result{}, err
		}
		result = read.Result{Sequence: kr.Sequence, KmerQC: kr.Solid}

	case OverlapOnly:
		or, err := d.overlapCorrector().Correct(r)
		if err != nil {
			return read.Result{}, err
		}
		result = or

	case Hybrid:
		kr, err := d.kmerCorrector().Correct(r.Sequence, phred)
		if err != nil {
			return read.Result{}, err
		}
		if kr.Solid {
			result = read.Result{Sequence: kr.Sequence, KmerQC: true}
			break
		}

		or, err := d.overlapCorrector().Correct(r)
		if err != nil {
			return read.Result{}, err
		}
		result = or

	default:
		panic(fmt.Sprintf("correct: unknown algorithm %d", d.Config.Algorithm))
	}

	if d.Config.PrintOverlaps && !result.KmerQC && !result.OverlapQC {
		fmt.Fprintf(os.Stdout, "%s failed error correction QC\n", r.Id)
	}

	return result, nil
}
