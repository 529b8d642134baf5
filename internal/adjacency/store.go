// Copyright (c) 2025 The wikigraph-go authors
// SPDX-License-Identifier: MIT

// Package adjacency implements the compact sparse adjacency representation
// backing the bidirectional search engine: a CSR (forward) view, a CSC
// (reverse) view materialized lazily from it, and an optional materialized
// undirected view trading memory for lookup speed.
//
// Both views share the same N and the same (deduplicated) edge set; a Store
// is built once and never mutated afterward, so concurrent readers need no
// locking — only the lazily-materialized derived views (reverse, undirected)
// need a one-time build guard.
package adjacency

import (
	"fmt"
	"sort"
	"sync"
)

// Store is an immutable sparse directed graph over node ids [0, N).
//
// The forward view is row-pointer/column-index (CSR): for node v, the slice
// colIdx[rowPtr[v]:rowPtr[v+1]] holds the successors of v. Each row is kept
// sorted and deduplicated at construction time, so a child never appears
// twice and no downstream consumer needs to special-case parallel edges.
type Store struct {
	n      int
	rowPtr []int32
	colIdx []int32

	reverseOnce sync.Once
	colPtr      []int32
	rowIdx      []int32

	undirectedOnce sync.Once
	undirRowPtr    []int32
	undirColIdx    []int32
}

// FromEdges builds a Store from a raw edge list over n nodes. Used by the
// set_graph testing hook; decoded artifacts go through FromCSR instead.
// FromEdges exists for callers that only have a pair list.
func FromEdges(n int, edges [][2]int32) *Store {
	rowPtr := make([]int32, n+1)
	for _, e := range edges {
		rowPtr[e[0]+1]++
	}
	for i := 0; i < n; i++ {
		rowPtr[i+1] += rowPtr[i]
	}

	cursor := append([]int32(nil), rowPtr[:n]...)
	colIdx := make([]int32, len(edges))
	for _, e := range edges {
		u, v := e[0], e[1]
		colIdx[cursor[u]] = v
		cursor[u]++
	}

	s := &Store{n: n, rowPtr: rowPtr, colIdx: colIdx}
	s.dedupRows()
	return s
}

// FromCSR builds a Store directly from a persisted forward-adjacency
// artifact's indptr/indices arrays (see internal/artifact). indptr must have
// length n+1 and be monotonically non-decreasing with indptr[n] ==
// len(indices); FromCSR trusts the artifact's integrity otherwise and does
// not re-validate beyond this cheap length check.
func FromCSR(n int, indptr, indices []int32) (*Store, error) {
	if len(indptr) != n+1 {
		return nil, fmt.Errorf("adjacency: indptr length %d, want %d", len(indptr), n+1)
	}
	if int(indptr[n]) != len(indices) {
		return nil, fmt.Errorf("adjacency: indptr[n]=%d does not match len(indices)=%d", indptr[n], len(indices))
	}

	s := &Store{
		n:      n,
		rowPtr: append([]int32(nil), indptr...),
		colIdx: append([]int32(nil), indices...),
	}
	s.dedupRows()
	return s, nil
}

// dedupRows sorts and deduplicates each row in place, rewriting rowPtr to
// reflect the (possibly shrunk) row lengths. Parallel edges in the source
// artifact would otherwise double-count shortest-path contributions in
// count-only mode and duplicate entries in the enumerate-mode predecessor
// sets; doing this once at load time keeps every other component simple.
func (s *Store) dedupRows() {
	write := 0
	newRowPtr := make([]int32, s.n+1)
	for v := 0; v < s.n; v++ {
		start, end := s.rowPtr[v], s.rowPtr[v+1]
		row := s.colIdx[start:end]
		sort.Slice(row, func(i, j int) bool { return row[i] < row[j] })

		rowStart := write
		for i, id := range row {
			if i == 0 || id != row[i-1] {
				s.colIdx[write] = id
				write++
			}
		}
		newRowPtr[v] = int32(rowStart)
	}
	newRowPtr[s.n] = int32(write)
	s.rowPtr = newRowPtr
	s.colIdx = s.colIdx[:write]
}

// N returns the number of nodes.
func (s *Store) N() int { return s.n }

// NumEdges returns the number of distinct directed edges.
func (s *Store) NumEdges() int { return len(s.colIdx) }

// Successors returns the sorted, deduplicated slice of ids u such that
// (v, u) is an edge. The returned slice aliases the Store's internal
// storage and must not be mutated by the caller.
func (s *Store) Successors(v int32) []int32 {
	return s.colIdx[s.rowPtr[v]:s.rowPtr[v+1]]
}

// Predecessors returns the sorted, deduplicated slice of ids u such that
// (u, v) is an edge. The reverse (CSC) view is built lazily on first call,
// guarded by a sync.Once so concurrent first-touches collapse into a single
// build instead of racing each other.
func (s *Store) Predecessors(v int32) []int32 {
	s.reverseOnce.Do(s.buildReverse)
	return s.rowIdx[s.colPtr[v]:s.colPtr[v+1]]
}

// buildReverse materializes the CSC view from the CSR view via a counting
// sort over columns. Rows are visited in increasing id order, so each
// reverse list comes out sorted by source id and, like the rows, free of
// duplicates.
func (s *Store) buildReverse() {
	colPtr := make([]int32, s.n+1)
	for _, v := range s.colIdx {
		colPtr[v+1]++
	}
	for i := 0; i < s.n; i++ {
		colPtr[i+1] += colPtr[i]
	}

	cursor := append([]int32(nil), colPtr[:s.n]...)
	rowIdx := make([]int32, len(s.colIdx))
	for u := 0; u < s.n; u++ {
		for _, v := range s.Successors(int32(u)) {
			rowIdx[cursor[v]] = int32(u)
			cursor[v]++
		}
	}

	s.colPtr = colPtr
	s.rowIdx = rowIdx
}

// MaterializeUndirected eagerly builds the symmetric view (CSR of A + Aᵀ),
// used when the Neighbor Oracle is configured with optimize_memory=false.
// Idempotent and safe to call from multiple goroutines; only the first call
// does work.
func (s *Store) MaterializeUndirected() {
	s.undirectedOnce.Do(func() {
		s.reverseOnce.Do(s.buildReverse)

		rowPtr := make([]int32, s.n+1)
		rows := make([][]int32, s.n)
		total := 0
		for v := 0; v < s.n; v++ {
			rows[v] = MergeUnique(s.Successors(int32(v)), s.Predecessors(int32(v)))
			total += len(rows[v])
		}

		colIdx := make([]int32, 0, total)
		for v := 0; v < s.n; v++ {
			rowPtr[v] = int32(len(colIdx))
			colIdx = append(colIdx, rows[v]...)
		}
		rowPtr[s.n] = int32(len(colIdx))

		s.undirRowPtr = rowPtr
		s.undirColIdx = colIdx
	})
}

// UndirectedNeighbors returns the materialized symmetric neighbor set of v.
// Panics if MaterializeUndirected has not been called; callers go through
// the Neighbor Oracle, which enforces that ordering.
func (s *Store) UndirectedNeighbors(v int32) []int32 {
	return s.undirColIdx[s.undirRowPtr[v]:s.undirRowPtr[v+1]]
}

// MergeUnique merges two already-sorted, deduplicated id slices into a
// single sorted, deduplicated slice. Exported for the Neighbor Oracle's
// optimize_memory=true path, which unions successors and predecessors on
// every call instead of materializing a symmetric view once.
func MergeUnique(a, b []int32) []int32 {
	out := make([]int32, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}
