// Package graph provides the minimal vertex/adjacency contract used by
// downstream assembly: a vertex owns a set of outgoing edges keyed by
// (destination id, direction, strand).
// This package intentionally does not implement assembly itself -- that
// is out of scope per spec.md §1.
package graph

import (
	"fmt"
	"io"
	"sort"

	"seqcore/read"
)

// Direction is which end of the vertex's sequence an edge leaves from.
type Direction int

const (
	Sense Direction = iota
	Antisense
)

func (d Direction) String() string {
	if d == Sense {
		return "sense"
	}
	return "antisense"
}

// EdgeID is the identifying triple an edge set keys on. Equality between
// edges is defined on this triple only, per spec.md §4.8 -- an
// index-based adjacency with explicit identity semantics, rather than
// the source's ordered set over the full edge record.
type EdgeID struct {
	Dest      string
	Direction Direction
	Strand    read.Strand
}

// Edge is an outgoing edge from one vertex to another. Overlap carries
// the shared overlap length; it is not part of the edge's identity.
type Edge struct {
	EdgeID
	Overlap int
}

// Vertex owns a set of outgoing edges and a log of merges it has
// participated in during graph contraction.
type Vertex struct {
	id       string
	edges    map[EdgeID]Edge
	mergeLog []Edge
}

// NewVertex creates an empty vertex with no edges.
func NewVertex(id string) *Vertex {
	return &Vertex{id: id, edges: make(map[EdgeID]Edge)}
}

// ID returns the vertex's identifier.
func (v *Vertex) ID() string {
	return v.id
}

// AddEdge inserts e. A duplicate insert (same EdgeID already present) is
// a silent no-op.
func (v *Vertex) AddEdge(e Edge) {
	if _, exists := v.edges[e.EdgeID]; exists {
		return
	}
	v.edges[e.EdgeID] = e
}

// RemoveEdge deletes the edge identified by id. The edge must already
// exist; this is an internal precondition, so its absence is a logic
// error and panics rather than returning an error (see
// original_source/src/SeqGraph/Vertex.cpp's removeEdge, which asserts).
func (v *Vertex) RemoveEdge(id EdgeID) {
	if _, exists := v.edges[id]; !exists {
		panic(fmt.Sprintf("graph: RemoveEdge: edge %+v not found on vertex %s", id, v.id))
	}
	delete(v.edges, id)
}

// HasEdge reports whether an edge with the given identity exists.
func (v *Vertex) HasEdge(id EdgeID) bool {
	_, exists := v.edges[id]
	return exists
}

// Edges returns all outgoing edges, ordered by EdgeID so callers see a
// deterministic order across runs instead of Go's randomized map
// iteration (see original_source/src/SeqGraph/Vertex.cpp's writeEdges,
// which walks an ordered std::set<Edge>).
func (v *Vertex) Edges() []Edge {
	return sortedEdges(v.edges)
}

// EdgesByDirection returns the outgoing edges leaving in the given
// direction, in the same deterministic EdgeID order as Edges.
func (v *Vertex) EdgesByDirection(dir Direction) []Edge {
	var out []Edge
	for _, e := range sortedEdges(v.edges) {
		if e.Direction == dir {
			out = append(out, e)
		}
	}
	return out
}

// sortedEdges returns m's values ordered by (Dest, Direction, Strand),
// the same fixed key order used to break ties deterministically
// throughout this tree (see overlap.topTwo, metrics.Histogram.Write).
func sortedEdges(m map[EdgeID]Edge) []Edge {
	out := make([]Edge, 0, len(m))
	for _, e := range m {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].EdgeID, out[j].EdgeID
		if a.Dest != b.Dest {
			return a.Dest < b.Dest
		}
		if a.Direction != b.Direction {
			return a.Direction < b.Direction
		}
		return a.Strand < b.Strand
	})
	return out
}

// Merge appends e to the vertex's merge log, recording that it has
// participated in a contraction across e. It performs no graph mutation
// itself; the caller owns rewiring the surviving edges.
func (v *Vertex) Merge(e Edge) {
	v.mergeLog = append(v.mergeLog, e)
}

// MergeLog returns the edges this vertex has been merged across, in
// order.
func (v *Vertex) MergeLog() []Edge {
	out := make([]Edge, len(v.mergeLog))
	copy(out, v.mergeLog)
	return out
}

// WriteDOT writes the vertex's outgoing edges in graphviz dot format,
// color-coding by direction the way the original SGA vertex writer did,
// in the same deterministic EdgeID order as Edges.
func (v *Vertex) WriteDOT(w io.Writer) {
	for _, e := range sortedEdges(v.edges) {
		color := "black"
		if e.Direction == Antisense {
			color = "red"
		}
		strand := "S"
		if e.Strand == read.RevComp {
			strand = "F"
		}
		fmt.Fprintf(w, "\"%s\" -> \"%s\" [color=%q label=\"%s,%d\"];\n", v.id, e.Dest, color, strand, e.Overlap)
	}
}
