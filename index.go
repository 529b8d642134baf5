// Copyright (c) 2025 The wikigraph-go authors
// SPDX-License-Identifier: MIT

package wikigraph

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// Index is the bijective mapping between canonicalized topic strings and
// dense ids [0, N). It is immutable once built; Engine.SetGraph /
// Engine.reload build a fresh Index rather than mutating an existing one,
// so a query in flight never observes a graph swap mid-traversal.
type Index struct {
	topicOf []string       // total, id -> topic
	idOf    map[string]int32 // partial, canonicalized topic -> id
}

// NewIndex builds an Index from topics already in id order (topicOf[i] is
// the topic for id i). Topics are assumed already canonicalized; callers
// building from raw, possibly-mixed-case input should canonicalize first.
func NewIndex(topicsInIDOrder []string) *Index {
	idOf := make(map[string]int32, len(topicsInIDOrder))
	for id, t := range topicsInIDOrder {
		idOf[t] = int32(id)
	}
	return &Index{topicOf: topicsInIDOrder, idOf: idOf}
}

// Lookup canonicalizes topic and returns its id, or ok=false if absent.
// Absence is a normal, expected outcome, never an error.
func (ix *Index) Lookup(topic string) (id int32, ok bool) {
	id, ok = ix.idOf[Canonicalize(topic)]
	return id, ok
}

// NameOf returns the canonical topic for id. Panics if id is out of range;
// an out-of-range id is a programmer error, not a runtime condition to
// recover from.
func (ix *Index) NameOf(id int32) string {
	return ix.topicOf[id]
}

// Size returns N, the number of distinct topics.
func (ix *Index) Size() int { return len(ix.topicOf) }

// indexMagic identifies the on-disk index artifact envelope.
var indexMagic = [4]byte{'w', 'g', 'i', '1'}

// LoadIndex reads a persisted topic index from path. Fails with a
// *LoadError wrapping ErrArtifactMissing or ErrArtifactCorrupt, or wrapping
// the underlying error when the file exists but cannot be opened.
func LoadIndex(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &LoadError{Path: path, Err: ErrArtifactMissing}
		}
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	ix, err := decodeIndex(bufio.NewReader(f))
	if err != nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("%w: %v", ErrArtifactCorrupt, err)}
	}
	return ix, nil
}

func decodeIndex(r io.Reader) (*Index, error) {
	var hdr [4]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, fmt.Errorf("reading magic: %w", err)
	}
	if hdr != indexMagic {
		return nil, fmt.Errorf("bad magic %q", hdr)
	}

	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, fmt.Errorf("reading count: %w", err)
	}

	topics := make([]string, n)
	for i := range topics {
		var l uint32
		if err := binary.Read(r, binary.LittleEndian, &l); err != nil {
			return nil, fmt.Errorf("reading topic %d length: %w", i, err)
		}
		buf := make([]byte, l)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, fmt.Errorf("reading topic %d: %w", i, err)
		}
		topics[i] = string(buf)
	}

	return NewIndex(topics), nil
}

// SaveIndex writes ix to path in the format LoadIndex understands. Not used
// by the query path; provided so tests and the set_graph workflow can
// round-trip a fixture to disk.
func SaveIndex(path string, ix *Index) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if _, err := w.Write(indexMagic[:]); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(ix.topicOf))); err != nil {
		return err
	}
	for _, t := range ix.topicOf {
		if err := binary.Write(w, binary.LittleEndian, uint32(len(t))); err != nil {
			return err
		}
		if _, err := w.WriteString(t); err != nil {
			return err
		}
	}
	return w.Flush()
}
