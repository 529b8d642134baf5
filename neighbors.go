// Copyright (c) 2025 The wikigraph-go authors
// SPDX-License-Identifier: MIT

package wikigraph

import "github.com/udemy/wikigraph-go/internal/adjacency"

// neighborOracle is the thin façade over the Adjacency Store. It is the
// only component that knows about the optimize_memory trade-off; the search
// engine only ever calls children/ancestors.
//
// optimizeMemory=true computes the undirected union on the fly from the two
// sparse views on every call (cheaper memory, roughly 10% slower);
// optimizeMemory=false materializes a symmetric CSR once up front and
// slices it directly.
type neighborOracle struct {
	store          *adjacency.Store
	optimizeMemory bool
}

// newNeighborOracle wraps store. When optimizeMemory is false the symmetric
// view is built eagerly here so the memory cost is paid once at
// construction rather than on the first undirected query.
func newNeighborOracle(store *adjacency.Store, optimizeMemory bool) *neighborOracle {
	no := &neighborOracle{store: store, optimizeMemory: optimizeMemory}
	if !optimizeMemory {
		store.MaterializeUndirected()
	}
	return no
}

// children returns the successors of v (or its undirected neighbors, when
// directed is false).
func (no *neighborOracle) children(v int32, directed bool) []int32 {
	if directed {
		return no.store.Successors(v)
	}
	return no.undirectedNeighbors(v)
}

// ancestors returns the predecessors of v (or its undirected neighbors,
// when directed is false) — identical to children in the undirected case.
func (no *neighborOracle) ancestors(v int32, directed bool) []int32 {
	if directed {
		return no.store.Predecessors(v)
	}
	return no.undirectedNeighbors(v)
}

func (no *neighborOracle) undirectedNeighbors(v int32) []int32 {
	if no.optimizeMemory {
		return adjacency.MergeUnique(no.store.Successors(v), no.store.Predecessors(v))
	}
	return no.store.UndirectedNeighbors(v)
}
