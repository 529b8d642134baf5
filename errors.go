// Copyright (c) 2025 The wikigraph-go authors
// SPDX-License-Identifier: MIT

package wikigraph

import (
	"errors"
	"fmt"
)

// Sentinel errors for the artifact-loading failure modes. Unknown topic and
// no-path-within-cutoff are deliberately not errors: they are the
// (-1, 0, no paths) sentinel return of ShortestPaths (paths is nil in
// count-only mode and an empty slice otherwise).
var (
	// ErrArtifactMissing means a required artifact was not found at the
	// expected local path and no remote source was configured (or the
	// remote fetch itself failed to produce the file).
	ErrArtifactMissing = errors.New("wikigraph: artifact missing")

	// ErrArtifactCorrupt means an artifact was found but failed to decode.
	ErrArtifactCorrupt = errors.New("wikigraph: artifact corrupt")
)

// LoadError wraps an artifact loading failure with the path that caused it.
// It unwraps to one of the sentinels above (or a lower-level I/O error),
// so callers can use errors.Is(err, ErrArtifactCorrupt) etc.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("wikigraph: loading %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
