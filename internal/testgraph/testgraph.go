// Copyright (c) 2025 The wikigraph-go authors
// SPDX-License-Identifier: MIT

// Package testgraph generates small deterministic random directed graphs for
// use in tests and benchmarks (math/rand/v2 seeded with a fixed rand.NewPCG
// seed rather than the global, time-seeded source, so failures reproduce).
package testgraph

import (
	"fmt"
	"math/rand/v2"
)

// Graph is a plain edge-list representation convenient for feeding into
// internal/adjacency.FromEdges or for re-deriving expected BFS results with
// a naive algorithm in tests.
type Graph struct {
	Names []string   // Names[i] is the canonical topic name for node id i
	Edges [][2]int32 // directed edges (u, v)
}

// Random builds a graph of n nodes named "t0".."t{n-1}", where each node
// draws a random number of edge attempts (0..maxOutDegree), each to a
// uniformly random node. Self-loops and repeated edges are skipped, so the
// realized out-degree can be lower; the uniform targets produce cycles (so
// visited tracking is exercised).
func Random(seed1, seed2 uint64, n, maxOutDegree int) *Graph {
	prng := rand.New(rand.NewPCG(seed1, seed2))

	g := &Graph{Names: make([]string, n)}
	for i := range g.Names {
		g.Names[i] = fmt.Sprintf("t%d", i)
	}

	seen := make(map[[2]int32]struct{})
	for u := 0; u < n; u++ {
		deg := prng.IntN(maxOutDegree + 1)
		for k := 0; k < deg; k++ {
			v := int32(prng.IntN(n))
			if int32(u) == v {
				continue
			}
			e := [2]int32{int32(u), v}
			if _, dup := seen[e]; dup {
				continue
			}
			seen[e] = struct{}{}
			g.Edges = append(g.Edges, e)
		}
	}

	return g
}

// Chain returns the canonical twelve-node S/A/B/.../T worked-example graph
// used across the package's tests, with three routes from S merging at F
// and a one-way H->G edge, so directed and undirected queries differ and
// the direct-edge bridge case gets exercised.
func Chain() (names []string, childrenOf map[string][]string) {
	childrenOf = map[string][]string{
		"s": {"a", "b"},
		"a": {"c", "d"},
		"b": {"d", "e"},
		"c": {"f"},
		"d": {"f"},
		"e": {"g"},
		"f": {"h"},
		"g": {"i", "j"},
		"h": {"g", "t"},
		"i": {"t"},
		"j": {"t"},
	}
	names = []string{"s", "a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "t"}
	return names, childrenOf
}
