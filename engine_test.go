// Copyright (c) 2025 The wikigraph-go authors
// SPDX-License-Identifier: MIT

package wikigraph

import (
	"reflect"
	"sort"
	"testing"

	"github.com/udemy/wikigraph-go/internal/testgraph"
)

// chainEngine builds the twelve-node worked-example fixture via the
// SetGraph testing hook, using either the on-the-fly or the materialized
// undirected strategy. Tests wrapped in eachOracleMode run against both
// Neighbor Oracle modes; the others use the on-the-fly mode only.
func chainEngine(t *testing.T, optimizeMemory bool) *Engine {
	t.Helper()
	names, childrenOf := testgraph.Chain()
	pairs := make([]TopicChildren, 0, len(names))
	for _, name := range names {
		pairs = append(pairs, TopicChildren{Topic: name, Children: childrenOf[name]})
	}
	cfg := NewConfig("", WithOptimizeMemory(optimizeMemory))
	return NewFromPairs(cfg, pairs)
}

func eachOracleMode(t *testing.T, fn func(t *testing.T, eng *Engine)) {
	t.Helper()
	for _, optimizeMemory := range []bool{true, false} {
		optimizeMemory := optimizeMemory
		t.Run(modeName(optimizeMemory), func(t *testing.T) {
			fn(t, chainEngine(t, optimizeMemory))
		})
	}
}

func modeName(optimizeMemory bool) string {
	if optimizeMemory {
		return "optimize_memory"
	}
	return "materialized"
}

func TestShortestPathsDirectedNoPath(t *testing.T) {
	eachOracleMode(t, func(t *testing.T, eng *Engine) {
		degrees, count, paths := eng.ShortestPaths("G", "H", true, false, false)
		if degrees != -1 || count != 0 || len(paths) != 0 {
			t.Fatalf("got (%d, %d, %v), want (-1, 0, [])", degrees, count, paths)
		}
	})
}

func TestShortestPathsDirectedDirectEdge(t *testing.T) {
	eachOracleMode(t, func(t *testing.T, eng *Engine) {
		degrees, count, paths := eng.ShortestPaths("H", "G", true, false, false)
		want := [][]string{{"h", "g"}}
		if degrees != 1 || count != 1 || !reflect.DeepEqual(paths, want) {
			t.Fatalf("got (%d, %d, %v), want (1, 1, %v)", degrees, count, paths, want)
		}
	})
}

func TestShortestPathsDirectedMultiplePaths(t *testing.T) {
	eachOracleMode(t, func(t *testing.T, eng *Engine) {
		degrees, count, paths := eng.ShortestPaths("S", "T", true, false, false)
		want := [][]string{
			{"s", "a", "c", "f", "h", "t"},
			{"s", "a", "d", "f", "h", "t"},
			{"s", "b", "d", "f", "h", "t"},
			{"s", "b", "e", "g", "i", "t"},
			{"s", "b", "e", "g", "j", "t"},
		}
		if degrees != 5 || count != 5 || !reflect.DeepEqual(paths, want) {
			t.Fatalf("got (%d, %d, %v), want (5, 5, %v)", degrees, count, paths, want)
		}
	})
}

func TestShortestPathsUndirectedDirectEdge(t *testing.T) {
	eachOracleMode(t, func(t *testing.T, eng *Engine) {
		degrees, count, paths := eng.ShortestPaths("G", "H", false, false, false)
		want := [][]string{{"g", "h"}}
		if degrees != 1 || count != 1 || !reflect.DeepEqual(paths, want) {
			t.Fatalf("got (%d, %d, %v), want (1, 1, %v)", degrees, count, paths, want)
		}
	})
}

func TestShortestPathsUndirectedExtraPath(t *testing.T) {
	eachOracleMode(t, func(t *testing.T, eng *Engine) {
		degrees, count, paths := eng.ShortestPaths("S", "T", false, false, false)
		if degrees != 5 || count != 6 {
			t.Fatalf("got (%d, %d), want (5, 6)", degrees, count)
		}
		found := false
		for _, p := range paths {
			if reflect.DeepEqual(p, []string{"s", "b", "e", "g", "h", "t"}) {
				found = true
			}
		}
		if !found {
			t.Fatalf("expected [s b e g h t] among undirected paths, got %v", paths)
		}
	})
}

func TestChildrenAndAncestors(t *testing.T) {
	eachOracleMode(t, func(t *testing.T, eng *Engine) {
		children, err := eng.Children("S", true)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(children, set("a", "b")) {
			t.Fatalf("children(s) = %v, want {a, b}", children)
		}

		ancestors, err := eng.Ancestors("T", true)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(ancestors, set("h", "i", "j")) {
			t.Fatalf("ancestors(t) = %v, want {h, i, j}", ancestors)
		}

		ancestorsOfSource, err := eng.Ancestors("S", true)
		if err != nil {
			t.Fatal(err)
		}
		if len(ancestorsOfSource) != 0 {
			t.Fatalf("ancestors(s) = %v, want {}", ancestorsOfSource)
		}
	})
}

func TestChildrenUnknownTopicIsError(t *testing.T) {
	eng := chainEngine(t, true)
	if _, err := eng.Children("nonexistent", true); err == nil {
		t.Fatal("expected an error for an unknown topic")
	}
}

func TestShortestPathsUnknownTopicIsSentinel(t *testing.T) {
	eng := chainEngine(t, true)
	degrees, count, paths := eng.ShortestPaths("nonexistent", "t", true, false, false)
	if degrees != -1 || count != 0 || len(paths) != 0 {
		t.Fatalf("got (%d, %d, %v), want (-1, 0, [])", degrees, count, paths)
	}
}

func TestShortestPathsSameNode(t *testing.T) {
	eng := chainEngine(t, true)
	degrees, count, paths := eng.ShortestPaths("S", "s", true, false, false)
	want := [][]string{{"s"}}
	if degrees != 0 || count != 1 || !reflect.DeepEqual(paths, want) {
		t.Fatalf("got (%d, %d, %v), want (0, 1, %v)", degrees, count, paths, want)
	}
}

func TestShortestPathsSameNodeNoPaths(t *testing.T) {
	eng := chainEngine(t, true)
	degrees, count, paths := eng.ShortestPaths("S", "s", true, true, false)
	if degrees != 0 || count != 1 || paths != nil {
		t.Fatalf("got (%d, %d, %v), want (0, 1, nil)", degrees, count, paths)
	}
}

// TestCountParity checks that the count-only result always equals the
// number of paths returned in enumerate mode.
func TestCountParity(t *testing.T) {
	eng := chainEngine(t, true)
	for _, directed := range []bool{true, false} {
		_, countOnly, _ := eng.ShortestPaths("S", "T", directed, true, false)
		_, countEnum, paths := eng.ShortestPaths("S", "T", directed, false, false)
		if countOnly != countEnum || uint64(len(paths)) != countEnum {
			t.Fatalf("directed=%v: count mismatch, count-only=%d enumerate=%d len(paths)=%d", directed, countOnly, countEnum, len(paths))
		}
	}
}

// TestPathsAreSortedAndDistinct checks that the returned path list is
// lexicographically sorted and contains no duplicates.
func TestPathsAreSortedAndDistinct(t *testing.T) {
	eng := chainEngine(t, true)
	_, _, paths := eng.ShortestPaths("S", "T", true, false, false)

	sorted := append([][]string(nil), paths...)
	sort.Slice(sorted, func(i, j int) bool { return lexLess(sorted[i], sorted[j]) })
	if !reflect.DeepEqual(paths, sorted) {
		t.Fatalf("paths not sorted: %v", paths)
	}

	seen := make(map[string]struct{})
	for _, p := range paths {
		key := joinKey(p)
		if _, dup := seen[key]; dup {
			t.Fatalf("duplicate path %v", p)
		}
		seen[key] = struct{}{}
	}
}

// TestEnumeratedPathsAreWellFormed checks that every returned path has the
// right length, starts and ends at the right nodes, visits no node twice,
// and only steps along real edges of the graph.
func TestEnumeratedPathsAreWellFormed(t *testing.T) {
	eng := chainEngine(t, true)
	degrees, _, paths := eng.ShortestPaths("S", "T", true, false, false)

	for _, p := range paths {
		if len(p) != degrees+1 {
			t.Fatalf("path %v has length %d, want %d", p, len(p), degrees+1)
		}
		if p[0] != "s" || p[len(p)-1] != "t" {
			t.Fatalf("path %v does not start at s and end at t", p)
		}
		seen := make(map[string]struct{}, len(p))
		for _, node := range p {
			if _, dup := seen[node]; dup {
				t.Fatalf("path %v repeats node %q", p, node)
			}
			seen[node] = struct{}{}
		}
		for i := 0; i+1 < len(p); i++ {
			children, err := eng.Children(p[i], true)
			if err != nil {
				t.Fatal(err)
			}
			if _, ok := children[p[i+1]]; !ok {
				t.Fatalf("path %v: %q -> %q is not an edge", p, p[i], p[i+1])
			}
		}
	}
}

// TestUndirectedSymmetry checks that an undirected query and its reverse
// agree, up to each path's own reversal and the list's re-sorting.
func TestUndirectedSymmetry(t *testing.T) {
	eng := chainEngine(t, true)

	degForward, countForward, pathsForward := eng.ShortestPaths("S", "T", false, false, false)
	degBackward, countBackward, pathsBackward := eng.ShortestPaths("T", "S", false, false, false)

	if degForward != degBackward || countForward != countBackward {
		t.Fatalf("asymmetric result: forward=(%d,%d) backward=(%d,%d)", degForward, countForward, degBackward, countBackward)
	}

	reversed := make([][]string, len(pathsBackward))
	for i, p := range pathsBackward {
		reversed[i] = reverse(p)
	}
	sort.Slice(reversed, func(i, j int) bool { return lexLess(reversed[i], reversed[j]) })
	if !reflect.DeepEqual(pathsForward, reversed) {
		t.Fatalf("forward paths %v do not match reversed backward paths %v", pathsForward, reversed)
	}
}

// TestChildrenEqualsAncestorsUndirected checks that Children and Ancestors
// return the same set for every node once directed is false.
func TestChildrenEqualsAncestorsUndirected(t *testing.T) {
	eng := chainEngine(t, true)
	names, _ := testgraph.Chain()
	for _, name := range names {
		children, err := eng.Children(name, false)
		if err != nil {
			t.Fatal(err)
		}
		ancestors, err := eng.Ancestors(name, false)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(children, ancestors) {
			t.Fatalf("%s: undirected children %v != ancestors %v", name, children, ancestors)
		}
	}
}

func TestCanonicalizeIdempotent(t *testing.T) {
	for _, s := range []string{"Wikipedia", "ALREADY_LOWER", "MiXeD Case"} {
		once := Canonicalize(s)
		twice := Canonicalize(once)
		if once != twice {
			t.Fatalf("Canonicalize not idempotent: %q -> %q -> %q", s, once, twice)
		}
	}
}

func TestEngineString(t *testing.T) {
	eng := chainEngine(t, true)
	got := eng.String()
	want := "Engine(num_topics=12, optimize_memory=true)"
	if got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func set(items ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(items))
	for _, it := range items {
		out[it] = struct{}{}
	}
	return out
}

func joinKey(path []string) string {
	out := ""
	for _, p := range path {
		out += p + ">"
	}
	return out
}

func reverse(path []string) []string {
	out := make([]string, len(path))
	for i, p := range path {
		out[len(path)-1-i] = p
	}
	return out
}
