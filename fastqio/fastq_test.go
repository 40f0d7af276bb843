package fastqio

import (
	"fmt"
	"path/filepath"
	"testing"

	"seqcore/read"
)

func TestWriteThenReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reads.fastq")

	w, err := Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	want := []read.Read{
		{Id: "r1", Sequence: "ACGT", Quality: "IIII"},
		{Id: "r2", Sequence: "TTTT", Quality: "HHHH"},
	}
	for _, r := range want {
		if err := w.Write(r); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	got, err := ReadAll(path)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d records, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("record %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestWriteFillsMissingQuality(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reads.fastq")

	w, err := Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := w.Write(read.Read{Id: "r1", Sequence: "ACGT"}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	got, err := ReadAll(path)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(got) != 1 || len(got[0].Quality) != 4 {
		t.Fatalf("got %+v, want a filled 4-byte quality string", got)
	}
}

func TestNextRejectsMalformedIDLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.fastq")
	w, err := Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := fmt.Fprintf(w.w, "not-a-fastq-record\n"); err != nil {
		t.Fatalf("writing malformed line: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if _, err := ReadAll(path); err == nil {
		t.Fatal("expected an error for a file missing the '@' id line")
	}
}
