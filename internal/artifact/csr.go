// Copyright (c) 2025 The wikigraph-go authors
// SPDX-License-Identifier: MIT

// Package artifact decodes the persisted forward-adjacency artifact: a
// sparse matrix in CSR form with indptr/indices arrays and a shape. The
// wire format is a small self-describing binary
// envelope (magic, node count, edge count, then the two int32 arrays), optionally
// zstd-compressed — large columnar/sparse dumps at this node/edge scale
// compress well and zstd decodes fast enough not to matter on the query
// path, since decoding only happens once at load.
package artifact

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// magic identifies an uncompressed CSR envelope; zstdMagic0/zstdMagic1 are
// the first two bytes of the standard zstd frame magic, used to detect
// whether the stream needs decompression before the envelope header.
var magic = [4]byte{'w', 'g', 'c', '1'}

const zstdMagic0 = 0x28
const zstdMagic1 = 0xb5

// CSR holds a decoded forward-adjacency artifact, ready to be handed to
// internal/adjacency.FromCSR.
type CSR struct {
	N      int
	IndPtr []int32
	Indices []int32
}

// Decode reads a CSR artifact from r, transparently decompressing it if it
// is zstd-framed. A plain (uncompressed) envelope is accepted unchanged, so
// small hand-built test fixtures need not be compressed at all.
func Decode(r io.Reader) (*CSR, error) {
	br := bufio.NewReader(r)

	peek, err := br.Peek(4)
	if err == nil && len(peek) == 4 && peek[0] == zstdMagic0 && peek[1] == zstdMagic1 {
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("artifact: zstd init: %w", err)
		}
		defer zr.Close()
		return decodeEnvelope(zr)
	}

	return decodeEnvelope(br)
}

func decodeEnvelope(r io.Reader) (*CSR, error) {
	var hdr [4]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, fmt.Errorf("artifact: reading magic: %w", err)
	}
	if hdr != magic {
		return nil, fmt.Errorf("artifact: bad magic %q", hdr)
	}

	var n, nnz uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, fmt.Errorf("artifact: reading shape: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &nnz); err != nil {
		return nil, fmt.Errorf("artifact: reading nnz: %w", err)
	}

	indptr := make([]int32, n+1)
	if err := binary.Read(r, binary.LittleEndian, &indptr); err != nil {
		return nil, fmt.Errorf("artifact: reading indptr: %w", err)
	}

	indices := make([]int32, nnz)
	if err := binary.Read(r, binary.LittleEndian, &indices); err != nil {
		return nil, fmt.Errorf("artifact: reading indices: %w", err)
	}

	return &CSR{N: int(n), IndPtr: indptr, Indices: indices}, nil
}

// Encode writes a CSR artifact in the uncompressed envelope format; used by
// tests to build fixtures and by any caller persisting a graph built via
// set_graph.
func Encode(w io.Writer, c *CSR) error {
	if _, err := w.Write(magic[:]); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(c.N)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(c.Indices))); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, c.IndPtr); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, c.Indices)
}
