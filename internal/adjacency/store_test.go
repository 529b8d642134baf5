// Copyright (c) 2025 The wikigraph-go authors
// SPDX-License-Identifier: MIT

package adjacency

import (
	"reflect"
	"testing"
)

func chainStore() *Store {
	// s=0 a=1 b=2 c=3 d=4 e=5 f=6 g=7 h=8 i=9 j=10 t=11
	edges := [][2]int32{
		{0, 1}, {0, 2},
		{1, 3}, {1, 4},
		{2, 4}, {2, 5},
		{3, 6},
		{4, 6},
		{5, 7},
		{6, 8},
		{7, 9}, {7, 10},
		{8, 7}, {8, 11},
		{9, 11},
		{10, 11},
	}
	return FromEdges(12, edges)
}

func TestSuccessorsAndPredecessors(t *testing.T) {
	s := chainStore()

	if got := s.Successors(0); !reflect.DeepEqual(got, []int32{1, 2}) {
		t.Errorf("Successors(s) = %v, want [1 2]", got)
	}
	if got := s.Predecessors(11); !isPermutation(got, []int32{8, 9, 10}) {
		t.Errorf("Predecessors(t) = %v, want a permutation of [8 9 10]", got)
	}
	if got := s.Predecessors(0); len(got) != 0 {
		t.Errorf("Predecessors(s) = %v, want []", got)
	}
}

func isPermutation(got, want []int32) bool {
	if len(got) != len(want) {
		return false
	}
	seen := make(map[int32]bool, len(got))
	for _, v := range got {
		seen[v] = true
	}
	for _, v := range want {
		if !seen[v] {
			return false
		}
	}
	return true
}

func TestDedupRowsDropsParallelEdges(t *testing.T) {
	s := FromEdges(2, [][2]int32{{0, 1}, {0, 1}, {0, 1}})
	if got := s.Successors(0); !reflect.DeepEqual(got, []int32{1}) {
		t.Fatalf("Successors(0) = %v, want [1] (parallel edges must be deduplicated)", got)
	}
	if s.NumEdges() != 1 {
		t.Fatalf("NumEdges() = %d, want 1", s.NumEdges())
	}
}

func TestFromCSRValidatesShape(t *testing.T) {
	if _, err := FromCSR(2, []int32{0, 1}, []int32{0}); err == nil {
		t.Fatal("expected an error for a short indptr")
	}
	if _, err := FromCSR(2, []int32{0, 1, 1}, []int32{0, 0}); err == nil {
		t.Fatal("expected an error for indptr[n] not matching len(indices)")
	}
}

func TestMaterializeUndirectedIsSymmetric(t *testing.T) {
	s := chainStore()
	s.MaterializeUndirected()

	for v := int32(0); v < int32(s.N()); v++ {
		for _, w := range s.UndirectedNeighbors(v) {
			found := false
			for _, back := range s.UndirectedNeighbors(w) {
				if back == v {
					found = true
					break
				}
			}
			if !found {
				t.Fatalf("undirected view not symmetric: %d -> %d but not %d -> %d", v, w, w, v)
			}
		}
	}
}

func TestMergeUnique(t *testing.T) {
	got := MergeUnique([]int32{1, 3, 5}, []int32{2, 3, 4})
	want := []int32{1, 2, 3, 4, 5}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("MergeUnique = %v, want %v", got, want)
	}
}

func TestReverseBuildIsSerializedOnce(t *testing.T) {
	s := chainStore()
	done := make(chan []int32, 8)
	for i := 0; i < 8; i++ {
		go func() { done <- s.Predecessors(11) }()
	}
	first := <-done
	for i := 1; i < 8; i++ {
		if got := <-done; !isPermutation(got, first) {
			t.Fatalf("concurrent Predecessors calls disagree: %v vs %v", got, first)
		}
	}
}
