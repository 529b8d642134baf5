// Copyright (c) 2025 The wikigraph-go authors
// SPDX-License-Identifier: MIT

package wikigraph

import "strings"

// Canonicalize folds a topic string to its canonical form: lowercase, using
// the platform's default case folding. Pure, total and idempotent —
// Canonicalize(Canonicalize(s)) == Canonicalize(s) for any s.
//
// No Unicode-aware case folding is attempted beyond strings.ToLower; callers
// supplying exotic scripts get whatever the Go runtime's default lowercasing
// produces. This is an accepted, documented lossy behavior rather than a
// bug — normalizing accents or performing full Unicode case folding would
// change which topics collide under canonicalization.
func Canonicalize(s string) string {
	return strings.ToLower(s)
}
