// Copyright (c) 2025 The wikigraph-go authors
// SPDX-License-Identifier: MIT

package wikigraph

import (
	"sync"
	"sync/atomic"

	"github.com/bits-and-blooms/bitset"
)

// DefaultMaxDepth is the hard cutoff on degrees of separation.
const DefaultMaxDepth = 6

// queryState is the per-query transient bookkeeping: frontiers, visited
// sets, and the count/predecessor maps for whichever mode the query runs
// in. It never outlives one shortestPaths call and is never shared across
// goroutines.
//
// Instances are pooled rather than allocated fresh per query (a
// sync.Pool-backed allocator with atomic live/total counters for
// diagnostics), since a server answering many concurrent queries against a
// graph with millions of nodes would otherwise pay for a fresh visited
// bitset and fresh maps on every call.
type queryState struct {
	srcVisited *bitset.BitSet
	tgtVisited *bitset.BitSet

	srcFrontier []int32
	srcScratch  []int32
	tgtFrontier []int32
	tgtScratch  []int32

	// enumerate mode
	srcPredecessors map[int32][]int32
	tgtSuccessors   map[int32][]int32

	// count-only mode
	srcPathCount map[int32]uint64
	tgtPathCount map[int32]uint64

	// scratch, reused across the alternation steps of one query
	added map[int32]struct{}
}

func newQueryState() *queryState {
	return &queryState{
		srcVisited:      bitset.New(0),
		tgtVisited:      bitset.New(0),
		srcPredecessors: make(map[int32][]int32),
		tgtSuccessors:   make(map[int32][]int32),
		srcPathCount:    make(map[int32]uint64),
		tgtPathCount:    make(map[int32]uint64),
		added:           make(map[int32]struct{}),
	}
}

// reset clears all state but keeps the underlying storage, so the pool
// amortizes allocation across queries; queryStatePool.put calls it before
// returning an instance to the pool.
func (qs *queryState) reset() {
	qs.srcVisited.ClearAll()
	qs.tgtVisited.ClearAll()
	qs.srcFrontier = qs.srcFrontier[:0]
	qs.srcScratch = qs.srcScratch[:0]
	qs.tgtFrontier = qs.tgtFrontier[:0]
	qs.tgtScratch = qs.tgtScratch[:0]
	clear(qs.srcPredecessors)
	clear(qs.tgtSuccessors)
	clear(qs.srcPathCount)
	clear(qs.tgtPathCount)
	clear(qs.added)
}

func (qs *queryState) init(srcID, tgtID int32, noPaths bool) {
	qs.srcVisited.Set(uint(srcID))
	qs.tgtVisited.Set(uint(tgtID))
	qs.srcFrontier = append(qs.srcFrontier, srcID)
	qs.tgtFrontier = append(qs.tgtFrontier, tgtID)
	if noPaths {
		qs.srcPathCount[srcID] = 1
		qs.tgtPathCount[tgtID] = 1
	}
}

// queryStatePool tracks allocation statistics alongside the pool itself.
type queryStatePool struct {
	sync.Pool
	totalAllocated atomic.Int64 // TODO: drop once pooling behavior is proven out in production.
	currentLive    atomic.Int64
}

var globalQueryStatePool = newQueryStatePool()

func newQueryStatePool() *queryStatePool {
	p := &queryStatePool{}
	p.New = func() any {
		p.totalAllocated.Add(1)
		return newQueryState()
	}
	return p
}

func (p *queryStatePool) get() *queryState {
	p.currentLive.Add(1)
	return p.Pool.Get().(*queryState)
}

func (p *queryStatePool) put(qs *queryState) {
	qs.reset()
	p.currentLive.Add(-1)
	p.Pool.Put(qs)
}

// Stats reports the number of currently checked-out queryState instances and
// the total ever allocated; exposed for tests and operational dashboards.
func (p *queryStatePool) Stats() (live, total int64) {
	return p.currentLive.Load(), p.totalAllocated.Load()
}

// shortestPaths is the bidirectional search engine. Preconditions (unknown
// topic, source==target) are handled by the caller (Engine.ShortestPaths);
// by the time this runs, srcID and tgtID are known, distinct ids.
func shortestPaths(no *neighborOracle, ix *Index, srcID, tgtID int32, directed, noPaths bool, maxDepth int) (degrees int, count uint64, paths [][]string) {
	qs := globalQueryStatePool.get()
	defer globalQueryStatePool.put(qs)
	qs.init(srcID, tgtID, noPaths)

	degSep := 0
	var bridge []int32

	for degSep < maxDepth && len(bridge) == 0 {
		degSep++

		if degSep%2 == 1 {
			expandSource(no, qs, directed, noPaths)
		} else {
			expandTarget(no, qs, directed, noPaths)
		}

		if len(qs.srcFrontier) == 0 || len(qs.tgtFrontier) == 0 {
			break
		}

		bridge = intersectFrontiers(qs.srcFrontier, qs.tgtFrontier)
	}

	if len(bridge) == 0 {
		return -1, 0, emptyPaths(noPaths)
	}

	for _, b := range bridge {
		if b == tgtID {
			// Target reached directly during a source-side expansion: report
			// the single edge source->target rather than falling through to
			// general bridge processing, even if other equally-short paths
			// exist via a different bridge node.
			if noPaths {
				return degSep, 1, nil
			}
			return degSep, 1, [][]string{{ix.NameOf(srcID), ix.NameOf(tgtID)}}
		}
	}

	if noPaths {
		var total uint64
		for _, b := range bridge {
			total += qs.srcPathCount[b] * qs.tgtPathCount[b]
		}
		return degSep, total, nil
	}

	result := assemblePaths(qs, ix, srcID, tgtID, bridge)
	return degSep, uint64(len(result)), result
}

func emptyPaths(noPaths bool) [][]string {
	if noPaths {
		return nil
	}
	return [][]string{}
}

// expandSource advances the source-side BFS frontier by one layer, using
// children (successors, or undirected neighbors) of each currently-frontier
// node. Symmetric to expandTarget, which uses ancestors instead.
func expandSource(no *neighborOracle, qs *queryState, directed, noPaths bool) {
	clear(qs.added)
	newFrontier := qs.srcScratch[:0]

	for _, v := range qs.srcFrontier {
		for _, w := range no.children(v, directed) {
			if qs.srcVisited.Test(uint(w)) {
				continue
			}
			if noPaths {
				qs.srcPathCount[w] += qs.srcPathCount[v]
			} else {
				qs.srcPredecessors[w] = append(qs.srcPredecessors[w], v)
			}
			if _, ok := qs.added[w]; !ok {
				qs.added[w] = struct{}{}
				newFrontier = append(newFrontier, w)
			}
		}
	}

	// Ping-pong the two frontier buffers: the old frontier's backing array
	// becomes next step's scratch space, so repeated steps don't allocate.
	qs.srcScratch = qs.srcFrontier
	qs.srcFrontier = newFrontier
	for _, w := range qs.srcFrontier {
		qs.srcVisited.Set(uint(w))
	}
}

// expandTarget advances the target-side BFS frontier by one layer, using
// ancestors (predecessors, or undirected neighbors) of each currently-
// frontier node.
func expandTarget(no *neighborOracle, qs *queryState, directed, noPaths bool) {
	clear(qs.added)
	newFrontier := qs.tgtScratch[:0]

	for _, v := range qs.tgtFrontier {
		for _, w := range no.ancestors(v, directed) {
			if qs.tgtVisited.Test(uint(w)) {
				continue
			}
			if noPaths {
				qs.tgtPathCount[w] += qs.tgtPathCount[v]
			} else {
				qs.tgtSuccessors[w] = append(qs.tgtSuccessors[w], v)
			}
			if _, ok := qs.added[w]; !ok {
				qs.added[w] = struct{}{}
				newFrontier = append(newFrontier, w)
			}
		}
	}

	qs.tgtScratch = qs.tgtFrontier
	qs.tgtFrontier = newFrontier
	for _, w := range qs.tgtFrontier {
		qs.tgtVisited.Set(uint(w))
	}
}

// intersectFrontiers returns the bridge set: nodes present in both
// frontiers. Builds the probe set from the smaller side.
func intersectFrontiers(a, b []int32) []int32 {
	if len(a) > len(b) {
		a, b = b, a
	}
	set := make(map[int32]struct{}, len(a))
	for _, v := range a {
		set[v] = struct{}{}
	}

	var out []int32
	for _, v := range b {
		if _, ok := set[v]; ok {
			out = append(out, v)
		}
	}
	return out
}
