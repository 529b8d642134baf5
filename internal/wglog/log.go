// Copyright (c) 2025 The wikigraph-go authors
// SPDX-License-Identifier: MIT

// Package wglog wires the engine's diagnostic output into a zerolog.Logger.
//
// The default logger is disabled: wikigraph is meant to be embedded inside a
// larger service, and a library that logs to stdout unasked is a bad
// neighbor. Callers that want verbose diagnostics call SetLogger once at
// startup.
package wglog

import (
	"sync/atomic"

	"github.com/rs/zerolog"
)

var current atomic.Pointer[zerolog.Logger]

func init() {
	disabled := zerolog.Nop()
	current.Store(&disabled)
}

// SetLogger replaces the package-wide logger used for diagnostics.
func SetLogger(l zerolog.Logger) {
	current.Store(&l)
}

// Logger returns the currently configured logger.
func Logger() *zerolog.Logger {
	return current.Load()
}
