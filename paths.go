// Copyright (c) 2025 The wikigraph-go authors
// SPDX-License-Identifier: MIT

package wikigraph

import "sort"

// assemblePaths is the Path Assembler: given the bridge set and the
// predecessor/successor maps recorded during the BFS run, it reconstructs
// every shortest path and cross-joins the two halves at each bridge node.
func assemblePaths(qs *queryState, ix *Index, srcID, tgtID int32, bridge []int32) [][]string {
	srcHalves := assembleSourceHalf(qs, ix, srcID, bridge)
	tgtHalves := assembleTargetHalf(qs, ix, tgtID, bridge)

	var out [][]string
	for _, b := range bridge {
		for _, s := range srcHalves[b] {
			for _, t := range tgtHalves[b] {
				combined := make([]string, 0, len(s)+len(t)-1)
				combined = append(combined, s...)
				combined = append(combined, t[1:]...)
				out = append(out, combined)
			}
		}
	}

	sort.Slice(out, func(i, j int) bool { return lexLess(out[i], out[j]) })
	return out
}

// assembleSourceHalf enumerates every path from srcID to each bridge node by
// walking src_predecessors backward, seeding a work queue with the single-
// element path [b] and prepending ancestors until src_id is reached.
// Completed paths are keyed by the bridge node they end at, which is always
// the path's last element since every step here only prepends.
func assembleSourceHalf(qs *queryState, ix *Index, srcID int32, bridge []int32) map[int32][][]string {
	result := make(map[int32][][]string)

	queue := make([][]int32, 0, len(bridge))
	for _, b := range bridge {
		queue = append(queue, []int32{b})
	}

	for len(queue) > 0 {
		path := queue[0]
		queue = queue[1:]

		head := path[0]
		for _, a := range qs.srcPredecessors[head] {
			if a == srcID {
				full := make([]int32, 0, len(path)+1)
				full = append(full, a)
				full = append(full, path...)
				key := path[len(path)-1]
				result[key] = append(result[key], idsToNames(ix, full))
			} else {
				next := make([]int32, 0, len(path)+1)
				next = append(next, a)
				next = append(next, path...)
				queue = append(queue, next)
			}
		}
	}

	return result
}

// assembleTargetHalf enumerates every path from each bridge node to tgtID by
// walking tgt_successors forward, seeding a work queue with the single-
// element path [b] and appending successors until tgt_id is reached.
// Completed paths are keyed by the bridge node they start at, which is
// always the path's first element since every step here only appends.
func assembleTargetHalf(qs *queryState, ix *Index, tgtID int32, bridge []int32) map[int32][][]string {
	result := make(map[int32][][]string)

	queue := make([][]int32, 0, len(bridge))
	for _, b := range bridge {
		queue = append(queue, []int32{b})
	}

	for len(queue) > 0 {
		path := queue[0]
		queue = queue[1:]

		tail := path[len(path)-1]
		for _, c := range qs.tgtSuccessors[tail] {
			if c == tgtID {
				full := make([]int32, 0, len(path)+1)
				full = append(full, path...)
				full = append(full, c)
				key := path[0]
				result[key] = append(result[key], idsToNames(ix, full))
			} else {
				next := make([]int32, 0, len(path)+1)
				next = append(next, path...)
				next = append(next, c)
				queue = append(queue, next)
			}
		}
	}

	return result
}

func idsToNames(ix *Index, ids []int32) []string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = ix.NameOf(id)
	}
	return names
}

// lexLess compares two path name sequences element-wise, the tie-break rule
// used to sort the final path list.
func lexLess(a, b []string) bool {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
