// Copyright (c) 2025 The wikigraph-go authors
// SPDX-License-Identifier: MIT

// Package wikigraph computes shortest paths over a large directed graph of
// topics using bidirectional breadth-first search.
//
// The graph is loaded from two artifacts: a topic index mapping canonical
// topic names to dense integer ids, and a CSR adjacency matrix of directed
// edges between them. Both are immutable once loaded; an Engine publishes
// a new graph snapshot atomically rather than mutating one in place, so
// concurrent queries never observe a partially-built graph.
//
// ShortestPaths expands frontiers alternately from the source (via
// children) and the target (via ancestors) until the two frontiers
// intersect at a bridge node or a fixed depth cutoff is reached, then
// either counts or fully enumerates every shortest path through the
// bridge set. Counting and enumeration share one traversal; enumeration
// additionally records predecessor/successor sets used to reconstruct
// paths afterward.
//
// A Neighbor Oracle abstracts over directed and undirected queries, and
// over two strategies for undirected lookups: union successors and
// predecessors on the fly (default, less memory), or materialize a
// symmetric adjacency view once up front (more memory, faster repeated
// undirected queries).
package wikigraph
