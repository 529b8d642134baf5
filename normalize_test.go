// Copyright (c) 2025 The wikigraph-go authors
// SPDX-License-Identifier: MIT

package wikigraph

import "testing"

func TestCanonicalize(t *testing.T) {
	cases := map[string]string{
		"Wikipedia":     "wikipedia",
		"ALREADY_LOWER": "already_lower",
		"MiXeD Case":    "mixed case",
		"":              "",
	}
	for in, want := range cases {
		if got := Canonicalize(in); got != want {
			t.Errorf("Canonicalize(%q) = %q, want %q", in, got, want)
		}
	}
}
