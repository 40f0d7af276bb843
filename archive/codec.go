// Package archive implements the archival/integrity layer (C9): a
// checksum over a batch of corrected records, and an optional
// Reed-Solomon erasure coding of the batch for durable storage or lossy
// transport. It is grounded in the teacher's L2 codec
// (l2/codec.go, l2/ecgrp.go, l2/file.go), which checksums and
// erasure-codes oligo pools the same way.
package archive

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/klauspost/reedsolomon"
	"github.com/pkg/errors"
	"github.com/snksoft/crc"

	"seqcore/read"
)

// Options configures the archival layer. ParityShards of 0 disables
// erasure coding and the batch is archived as a single checksummed blob.
type Options struct {
	DataShards   int
	ParityShards int
}

// Archive is the encoded form of a batch of records: one or more shards,
// the shard geometry, and the total size of the checksummed payload
// (needed to trim padding back out on decode).
type Archive struct {
	Shards       [][]byte
	DataShards   int
	ParityShards int
	TotalSize    int
}

var errChecksumMismatch = errors.New("archive: checksum mismatch")

// Encode serializes records, appends a CRC-32 trailer, and, if
// opts.ParityShards > 0, splits the result into data and parity shards
// the way l2/codec.go's Codec.Encode does for erasure blocks.
func Encode(records []read.Read, opts Options) (Archive, error) {
	var buf bytes.Buffer
	for _, r := range records {
		fmt.Fprintf(&buf, "%s\n%s\n%s\n", r.Id, r.Sequence, r.Quality)
	}
	data := buf.Bytes()

	sum := crc.CalculateCRC(crc.CRC32, data)
	full := make([]byte, len(data)+8)
	copy(full, data)
	binary.BigEndian.PutUint64(full[len(data):], sum)

	if opts.ParityShards <= 0 {
		return Archive{Shards: [][]byte{full}, TotalSize: len(full)}, nil
	}

	enc, err := reedsolomon.New(opts.DataShards, opts.ParityShards)
	if err != nil {
		return Archive{}, errors.Wrap(err, "archive: building reed-solomon encoder")
	}

	shards, err := enc.Split(full)
	if err != nil {
		return Archive{}, errors.Wrap(err, "archive: splitting into shards")
	}
	if err := enc.Encode(shards); err != nil {
		return Archive{}, errors.Wrap(err, "archive: encoding parity shards")
	}

	return Archive{
		Shards:       shards,
		DataShards:   opts.DataShards,
		ParityShards: opts.ParityShards,
		TotalSize:    len(full),
	}, nil
}

// Decode reverses Encode. When some shards are missing (nil) and parity
// was used, it reconstructs them before verifying the checksum, mirroring
// l2/file.go's recovery path.
func Decode(a Archive) ([]read.Read, error) {
	var full []byte

	if a.ParityShards <= 0 {
		full = a.Shards[0]
	} else {
		enc, err := reedsolomon.New(a.DataShards, a.ParityShards)
		if err != nil {
			return nil, errors.Wrap(err, "archive: building reed-solomon encoder")
		}

		ok, err := enc.Verify(a.Shards)
		if err != nil || !ok {
			if err := enc.Reconstruct(a.Shards); err != nil {
				return nil, errors.Wrap(err, "archive: reconstructing lost shards")
			}
		}

		var joined bytes.Buffer
		if err := enc.Join(&joined, a.Shards, a.TotalSize); err != nil {
			return nil, errors.Wrap(err, "archive: joining shards")
		}
		full = joined.Bytes()
	}

	if len(full) < 8 {
		return nil, errors.New("archive: payload too short for checksum trailer")
	}

	data, trailer := full[:len(full)-8], full[len(full)-8:]
	want := binary.BigEndian.Uint64(trailer)
	got := crc.CalculateCRC(crc.CRC32, data)
	if got != want {
		return nil, errChecksumMismatch
	}

	return parseRecords(data)
}

func parseRecords(data []byte) ([]read.Read, error) {
	var records []read.Read

	lines := bytes.Split(bytes.TrimRight(data, "\n"), []byte("\n"))
	for i := 0; i+2 < len(lines); i += 3 {
		records = append(records, read.Read{
			Id:       string(lines[i]),
			Sequence: string(lines[i+1]),
			Quality:  string(lines[i+2]),
		})
	}
	return records, nil
}
