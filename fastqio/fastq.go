// Package fastqio is the ambient FASTQ I/O layer: it turns a filename
// into a stream of read.Read values and back. It is grounded in the
// teacher's io/fastq/read.go parser (id/sequence/+/quality line
// scanning, phred-33 aware), with the gzip sniff swapped for
// github.com/shenwei356/xopen's transparent-gzip open/write, the way
// jnhutchinson-stampipes/programs/demux_fastq uses xopen.Wopen and
// jnhutchinson-stampipes/programs/src/go/demux_fastq uses
// fastx.NewDefaultReader over the same kind of input files.
package fastqio

import (
	"bufio"
	"fmt"

	"github.com/pkg/errors"
	"github.com/shenwei356/xopen"

	"seqcore/read"
)

// Reader scans FASTQ records out of a (possibly gzipped) file.
type Reader struct {
	r    *xopen.Reader
	sc   *bufio.Scanner
	line int
}

// Open opens fname for reading, transparently decompressing gzip the
// way xopen.Ropen does for the teacher's I/O tools.
func Open(fname string) (*Reader, error) {
	r, err := xopen.Ropen(fname)
	if err != nil {
		return nil, errors.Wrapf(err, "fastqio: opening %s", fname)
	}
	return &Reader{r: r, sc: bufio.NewScanner(r)}, nil
}

// Close releases the underlying file.
func (rd *Reader) Close() error {
	return rd.r.Close()
}

// Next reads the next record. It returns io.EOF-equivalent (false, nil)
// once the file is exhausted.
func (rd *Reader) Next() (read.Read, bool, error) {
	if !rd.sc.Scan() {
		if err := rd.sc.Err(); err != nil {
			return read.Read{}, false, errors.Wrap(err, "fastqio: reading id line")
		}
		return read.Read{}, false, nil
	}
	rd.line++
	idLine := rd.sc.Text()
	if len(idLine) == 0 || idLine[0] != '@' {
		return read.Read{}, false, errors.Errorf("fastqio: line %d: expected '@' id line, got %q", rd.line, idLine)
	}
	id := idLine[1:]

	if !rd.sc.Scan() {
		return read.Read{}, false, errors.Errorf("fastqio: line %d: expected sequence line", rd.line+1)
	}
	rd.line++
	seq := rd.sc.Text()

	if !rd.sc.Scan() {
		return read.Read{}, false, errors.Errorf("fastqio: line %d: expected '+' line", rd.line+1)
	}
	rd.line++

	if !rd.sc.Scan() {
		return read.Read{}, false, errors.Errorf("fastqio: line %d: expected quality line", rd.line+1)
	}
	rd.line++
	qual := rd.sc.Text()

	if len(qual) != len(seq) {
		return read.Read{}, false, errors.Errorf("fastqio: line %d: sequence and quality lengths differ: %d != %d", rd.line, len(seq), len(qual))
	}

	return read.Read{Id: id, Sequence: seq, Quality: qual}, true, nil
}

// ReadAll drains the reader into a slice, closing it before returning.
func ReadAll(fname string) ([]read.Read, error) {
	rd, err := Open(fname)
	if err != nil {
		return nil, err
	}
	defer rd.Close()

	var out []read.Read
	for {
		r, ok, err := rd.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		out = append(out, r)
	}
	return out, nil
}

// Writer appends FASTQ records to a (possibly gzipped, by extension)
// file, mirroring the teacher's RecordWriter but synchronous: the
// post-processor's Sink is already called from a single goroutine per
// spec.md §5, so there is nothing to buffer concurrently here.
type Writer struct {
	w *xopen.Writer
}

// Create opens fname for writing, truncating any existing content.
func Create(fname string) (*Writer, error) {
	w, err := xopen.Wopen(fname)
	if err != nil {
		return nil, errors.Wrapf(err, "fastqio: creating %s", fname)
	}
	return &Writer{w: w}, nil
}

// Write implements metrics.Sink.
func (w *Writer) Write(r read.Read) error {
	qual := r.Quality
	if qual == "" {
		qual = blankQuality(len(r.Sequence))
	}
	_, err := fmt.Fprintf(w.w, "@%s\n%s\n+\n%s\n", r.Id, r.Sequence, qual)
	return err
}

// Close flushes and closes the underlying file.
func (w *Writer) Close() error {
	return w.w.Close()
}

func blankQuality(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = 'I' // phred 40 at the +33 offset, a neutral filler
	}
	return string(b)
}
