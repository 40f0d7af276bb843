package overlap

import (
	"seqcore/index"
	"seqcore/read"
)

// Corrector drives the multi-overlap builder and conflict-aware
// consensus to a fixed point (C6), subject to a depth filter and a
// round cap.
type Corrector struct {
	Index          index.Index
	MinOverlap     int
	Rounds         int
	ConflictCutoff int
	PError         float64

	// DepthFilter is the maximum acceptable summed overlap count; 0
	// disables the filter. Exceeding it short-circuits correction,
	// since very high depth typically signals a repetitive region
	// where consensus would be unreliable and expensive.
	DepthFilter int
}

// Correct runs the overlap corrector against r.
func (c *Corrector) Correct(r read.Read) (read.Result, error) {
	working := r.Sequence
	var result read.Result
	result.Sequence = working

	for round := 0; round < c.Rounds; round++ {
		blocks, err := c.Index.OverlapBlocks(read.Read{Id: r.Id, Sequence: working}, c.MinOverlap)
		if err != nil {
			return read.Result{}, err
		}

		depth := blocks.Depth()
		if c.DepthFilter > 0 && depth > c.DepthFilter {
			result.Sequence = working
			result.NumPrefixOverlaps = depth
			result.NumSuffixOverlaps = depth
			result.OverlapQC = false
			return result, nil
		}

		mo := Build(read.Read{Id: r.Id, Sequence: working}, blocks)
		prefix, suffix := CountBySide(blocks)
		result.NumPrefixOverlaps = prefix
		result.NumSuffixOverlaps = suffix

		consensus := Consensus(mo, c.PError, c.ConflictCutoff)
		result.Sequence = consensus

		if consensus == working {
			break
		}
		working = consensus
	}

	result.OverlapQC = result.NumPrefixOverlaps > 0 && result.NumSuffixOverlaps > 0
	return result, nil
}
