// Package index describes the external FM-index/BWT substring-count
// service and the overlap-enumeration service (C1). Both are explicitly
// out of scope per spec.md §1 -- this package only defines the interface
// the core consumes, plus a reference in-memory implementation
// (MemIndex) suitable for tests and the CLI harness, not for production
// scale.
package index

import (
	"seqcore/read"
)

// Index is the contract the corrector components consume. A production
// implementation would be backed by a memory-mapped BWT; see
// DESIGN.md for why this module does not attempt one.
type Index interface {
	// Count returns the number of occurrences of s and its reverse
	// complement, collectively, in the reference read set.
	Count(s string) (uint64, error)

	// OverlapBlocks returns all maximal blocks of reads overlapping r by
	// at least minOverlap bases, on both strands, for both the prefix
	// and the suffix of r.
	OverlapBlocks(r read.Read, minOverlap int) (read.BlockList, error)
}
