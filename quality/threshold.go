// Package quality implements the threshold policy (C2): mapping a
// per-base phred quality value to a minimum k-mer support threshold, and
// decoding ASCII-encoded quality strings under either phred offset.
package quality

// Policy holds the two support thresholds and the cutoff between them.
// MinSupportHighQuality and MinSupportLowQuality need not be ordered; the
// common configuration has high <= low, but that is not required.
type Policy struct {
	MinSupportHighQuality int
	MinSupportLowQuality  int
	HighQualityCutoff     int
}

// Threshold returns the minimum k-mer support required for a base whose
// (most pessimistic) phred value is q.
func (p Policy) Threshold(q int) int {
	if q >= p.HighQualityCutoff {
		return p.MinSupportHighQuality
	}
	return p.MinSupportLowQuality
}

// Offset33 and Offset64 are the two ASCII phred encodings callers must
// normalize to before handing quality strings to the core (§6: "caller
// normalised").
const (
	Offset33 = 33
	Offset64 = 64
)

// Decode converts an ASCII quality string to phred values using the given
// offset. Both +33 and +64 encodings are supported; the caller picks.
func Decode(qual string, offset int) []int {
	out := make([]int, len(qual))
	for i := 0; i < len(qual); i++ {
		out[i] = int(qual[i]) - offset
	}
	return out
}

// MinSpan returns the minimum phred value across phred[start..end], end
// inclusive, i.e. the most pessimistic base in a k-mer window wins.
func MinSpan(phred []int, start, end int) int {
	m := phred[start]
	for i := start + 1; i <= end; i++ {
		if phred[i] < m {
			m = phred[i]
		}
	}
	return m
}
