// Copyright (c) 2025 The wikigraph-go authors
// SPDX-License-Identifier: MIT

package wikigraph

import "net/http"

// Config configures an Engine. The zero value is not ready to use —
// construct with NewConfig, which applies the documented defaults. In a
// plain struct literal, a zero MaxDepth and a nil HTTPClient are still
// replaced by their defaults when the Engine is built, but OptimizeMemory
// stays false unless set.
type Config struct {
	// DataDir is the local directory holding (or caching) the adjacency and
	// index artifacts.
	DataDir string

	// BaseURL, if set, is used to fetch missing artifacts into DataDir.
	// Left empty, a missing artifact is ErrArtifactMissing instead of being
	// fetched — remote fetch is an optional convenience, not something the
	// core engine requires.
	BaseURL string

	// OptimizeMemory selects the Neighbor Oracle's undirected-neighbor
	// strategy. NewConfig defaults it to true.
	OptimizeMemory bool

	// MaxDepth is the cutoff on degrees of separation. Defaults to 6;
	// left overridable here so tests can exercise the cutoff itself
	// against small fixtures without traversing six real layers.
	MaxDepth int

	// HTTPClient is used for artifact fetches. Defaults to
	// http.DefaultClient.
	HTTPClient *http.Client
}

// Option mutates a Config. Provided as a thin convenience on top of plain
// struct literals, not a requirement — Config's zero-ish defaults make
// direct struct literals just as readable for most callers.
type Option func(*Config)

// WithBaseURL sets the remote source used to fetch missing artifacts.
func WithBaseURL(url string) Option { return func(c *Config) { c.BaseURL = url } }

// WithOptimizeMemory overrides the default memory/speed trade-off.
func WithOptimizeMemory(v bool) Option { return func(c *Config) { c.OptimizeMemory = v } }

// WithMaxDepth overrides the default cutoff on degrees of separation.
func WithMaxDepth(n int) Option { return func(c *Config) { c.MaxDepth = n } }

// WithHTTPClient overrides the HTTP client used for artifact fetches.
func WithHTTPClient(client *http.Client) Option { return func(c *Config) { c.HTTPClient = client } }

// NewConfig returns a Config rooted at dataDir with the documented defaults
// applied, then overridden by opts in order.
func NewConfig(dataDir string, opts ...Option) Config {
	c := Config{
		DataDir:        dataDir,
		OptimizeMemory: true,
		MaxDepth:       DefaultMaxDepth,
		HTTPClient:     http.DefaultClient,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
