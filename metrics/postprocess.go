// Package metrics implements the post-processor (C8): pass/fail routing
// to kept/discard sinks, and four position/base/quality/di-mer
// sample-error histograms collected only for reads that passed QC.
package metrics

import (
	"fmt"
	"io"
	"strconv"

	"seqcore/read"
)

// Sink is the caller-owned output a corrected or discarded record is
// written to. The post-processor never closes it.
type Sink interface {
	Write(r read.Read) error
}

// Summary is the final tally emitted at teardown.
type Summary struct {
	TotalBases     int
	TotalErrors    int
	ReadsKept      int
	ReadsDiscarded int

	KmerQCPassed    int
	OverlapQCPassed int
	QCFail          int
}

// PostProcessor is the serial sink described in spec.md §5: it must see
// work items from a single caller and mutates shared histograms and
// output streams, so a multi-lane dispatcher must serialize calls into
// it or shard per-lane and merge at the end.
type PostProcessor struct {
	Kept    Sink
	Discard Sink // nil means "no discard sink configured"

	CollectMetrics bool

	position     *Histogram
	originalBase *Histogram
	qualityHist  *Histogram
	precedingSeq *Histogram

	summary Summary
}

// NewPostProcessor builds a post-processor writing to kept (required)
// and, optionally, discard.
func NewPostProcessor(kept, discard Sink, collectMetrics bool) *PostProcessor {
	return &PostProcessor{
		Kept:           kept,
		Discard:        discard,
		CollectMetrics: collectMetrics,
		position:       newHistogram(),
		originalBase:   newHistogram(),
		qualityHist:    newHistogram(),
		precedingSeq:   newHistogram(),
	}
}

// Process routes one corrected work item per spec.md §4.7 and, for
// passing reads with metrics enabled, folds its corrections into the
// histograms.
func (p *PostProcessor) Process(item read.WorkItem, result read.Result) error {
	pass := result.KmerQC || result.OverlapQC

	switch {
	case result.KmerQC:
		p.summary.KmerQCPassed++
	case result.OverlapQC:
		p.summary.OverlapQCPassed++
	default:
		p.summary.QCFail++
	}

	if p.CollectMetrics && pass {
		p.collectMetrics(item.Read.Sequence, result.Sequence, item.Read.Quality)
	}

	corrected := item.Read
	corrected.Sequence = result.Sequence

	if pass {
		if err := p.Kept.Write(corrected); err != nil {
			return err
		}
		p.summary.ReadsKept++
		return nil
	}

	if p.Discard != nil {
		if err := p.Discard.Write(item.Read); err != nil {
			return err
		}
		p.summary.ReadsDiscarded++
		return nil
	}

	// No discard sink configured: failed reads still go to kept.
	if err := p.Kept.Write(corrected); err != nil {
		return err
	}
	p.summary.ReadsKept++
	return nil
}

func (p *PostProcessor) collectMetrics(original, corrected, qualityStr string) {
	const precedingLen = 2

	for i := 0; i < len(original); i++ {
		var qc byte
		if qualityStr != "" {
			qc = qualityStr[i]
		}
		ob := original[i]

		p.summary.TotalBases++
		p.position.IncrementSample(strconv.Itoa(i))
		if qualityStr != "" {
			p.qualityHist.IncrementSample(string(qc))
		}
		p.originalBase.IncrementSample(string(ob))

		var precedingMer string
		if i > precedingLen {
			precedingMer = original[i-precedingLen : i]
			p.precedingSeq.IncrementSample(precedingMer)
		}

		if original[i] != corrected[i] {
			p.position.IncrementError(strconv.Itoa(i))
			if qualityStr != "" {
				p.qualityHist.IncrementError(string(qc))
			}
			p.originalBase.IncrementError(string(ob))
			if precedingMer != "" {
				p.precedingSeq.IncrementError(precedingMer)
			}
			p.summary.TotalErrors++
		}
	}
}

// WriteMetrics emits the four per-metric tables.
func (p *PostProcessor) WriteMetrics(w io.Writer) {
	p.position.Write(w, "Bases corrected by position\n", "pos")
	p.originalBase.Write(w, "\nOriginal base that was corrected\n", "base")
	p.precedingSeq.Write(w, "\n2-mer preceding the corrected base\n", "kmer")
	p.qualityHist.Write(w, "\nBases corrected by quality value\n", "quality")
}

// Close returns the final tally. It is safe to call WriteMetrics before
// or after Close.
func (p *PostProcessor) Close() Summary {
	return p.summary
}

// String renders the summary the way the teacher's CLI tools report
// counts to stderr (see utils/consensus/main.go's Fprintf summaries).
func (s Summary) String() string {
	return fmt.Sprintf(
		"kmer QC passed: %d, overlap QC passed: %d, QC failed: %d, kept: %d, discarded: %d, corrected %d/%d bases",
		s.KmerQCPassed, s.OverlapQCPassed, s.QCFail, s.ReadsKept, s.ReadsDiscarded, s.TotalErrors, s.TotalBases)
}
