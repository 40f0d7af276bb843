// Package read defines the data model shared by the error-correction core:
// a Read and its WorkItem wrapper going in, a Result coming out.
package read

import (
	"github.com/pkg/errors"
)

// ErrMalformed is wrapped with context and returned by Validate.
var ErrMalformed = errors.New("malformed read")

// Read is a single sequencing read: an identifier, a sequence over
// {A,C,G,T,N} and an optional per-base quality string of equal length.
// An empty Quality means "unknown quality".
type Read struct {
	Id       string
	Sequence string
	Quality  string
}

// Validate checks the alphabet and the sequence/quality length invariant.
// A non-nil error is kind-1 "malformed input" per the error handling design
// and should route the work item straight to the discard sink.
func (r Read) Validate() error {
	if len(r.Sequence) == 0 {
		return errors.Wrapf(ErrMalformed, "read %s: empty sequence", r.Id)
	}

	for i := 0; i < len(r.Sequence); i++ {
		switch r.Sequence[i] {
		case 'A', 'C', 'G', 'T', 'N':
		default:
			return errors.Wrapf(ErrMalformed, "read %s: invalid base %q at %d", r.Id, r.Sequence[i], i)
		}
	}

	if r.Quality != "" && len(r.Quality) != len(r.Sequence) {
		return errors.Wrapf(ErrMalformed, "read %s: quality length %d != sequence length %d", r.Id, len(r.Quality), len(r.Sequence))
	}

	return nil
}

// WorkItem pairs a Read with its ordinal position in the input stream.
type WorkItem struct {
	Read  Read
	Index int
}

// Result is the outcome of correcting a single read.
type Result struct {
	Sequence string

	KmerQC    bool
	OverlapQC bool

	NumPrefixOverlaps int
	NumSuffixOverlaps int
}

// Strand indicates whether an overlap refers to the forward read or its
// reverse complement.
type Strand int

const (
	Forward Strand = iota
	RevComp
)

// Side indicates whether an overlap block anchors on the read's prefix or
// its suffix.
type Side int

const (
	Prefix Side = iota
	Suffix
)

// OverlapBlock is an interval pair on the underlying index denoting a set
// of reads that share a minimum-length suffix/prefix overlap with the
// current read, along with how many reads are represented and the geometry
// of the match.
type OverlapBlock struct {
	// Count is the number of reads represented by this block (the size of
	// the underlying FM-index interval).
	Count int

	// OverlapLen is the length of the shared suffix/prefix.
	OverlapLen int

	Side   Side
	Strand Strand

	// Sequences are the overlapping reads' sequences, decoded from the
	// index. The core never needs more than this to build a pile-up; the
	// real FM-index service would decode these lazily from its backing
	// arena.
	Sequences []string
}

// BlockList is an ordered list of overlap blocks for one read.
type BlockList []OverlapBlock

// Depth is the sum of block counts across the list, used by the overlap
// corrector's depth filter.
func (bl BlockList) Depth() int {
	d := 0
	for _, b := range bl {
		d += b.Count
	}
	return d
}

// Bases are the four legal non-N nucleotides tried as substitutions
// during k-mer correction (N is never substituted in).
var Bases = [4]byte{'A', 'C', 'G', 'T'}

// ReverseComplement returns the reverse complement of a DNA sequence over
// {A,C,G,T,N}; N maps to itself.
func ReverseComplement(s string) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		out[len(s)-1-i] = complement(s[i])
	}
	return string(out)
}

func complement(b byte) byte {
	switch b {
	case 'A':
		return 'T'
	case 'T':
		return 'A'
	case 'C':
		return 'G'
	case 'G':
		return 'C'
	default:
		return 'N'
	}
}
