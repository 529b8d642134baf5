// Copyright (c) 2025 The wikigraph-go authors
// SPDX-License-Identifier: MIT

package wikigraph

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/udemy/wikigraph-go/internal/adjacency"
	"github.com/udemy/wikigraph-go/internal/artifact"
	"github.com/udemy/wikigraph-go/internal/loader"
	"github.com/udemy/wikigraph-go/internal/wglog"
)

// graphState bundles the Index, Adjacency Store and Neighbor Oracle that
// together answer one generation of queries. It is built once per load (or
// per SetGraph call) and never mutated; an Engine publishes a new graphState
// atomically rather than mutating fields in place.
type graphState struct {
	index  *Index
	store  *adjacency.Store
	oracle *neighborOracle
}

// Engine is the public entry point: the bidirectional search engine plus
// the lazily-loaded shared state it reads from concurrently.
//
// An embedded atomic.Pointer[T] publishes immutable graphState snapshots
// for lock-free readers, and an embedded sync.Mutex serializes the rare
// writers (initial load, reload, SetGraph) against each other without
// blocking readers: readers calling Load() never block, and never observe
// a partially-built graphState.
type Engine struct {
	atomic.Pointer[graphState]
	sync.Mutex

	cfg Config
	ld  *loader.Loader
}

// Open builds an Engine from cfg, loading (and if necessary fetching) the
// adjacency and index artifacts before returning. Fails with a *LoadError
// wrapping ErrArtifactMissing or ErrArtifactCorrupt on I/O or decode
// failure.
func Open(ctx context.Context, cfg Config) (*Engine, error) {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}

	e := &Engine{
		cfg: cfg,
		ld:  loader.New(cfg.DataDir, cfg.BaseURL, cfg.HTTPClient),
	}
	if err := e.reload(ctx); err != nil {
		return nil, err
	}
	return e, nil
}

// NewFromPairs builds an Engine directly from an in-memory edge list,
// bypassing artifact loading entirely. Used by tests and by callers that
// already have a small graph in hand.
func NewFromPairs(cfg Config, pairs []TopicChildren) *Engine {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	e := &Engine{cfg: cfg}
	e.SetGraph(pairs)
	return e
}

// reload fetches (if needed) and decodes both artifacts, then atomically
// publishes a fresh graphState.
func (e *Engine) reload(ctx context.Context) error {
	adjPath, idxPath, err := e.ld.FetchAll(ctx)
	if err != nil {
		return &LoadError{Path: e.cfg.DataDir, Err: fmt.Errorf("%w: %v", ErrArtifactMissing, err)}
	}

	f, err := os.Open(adjPath)
	if err != nil {
		return &LoadError{Path: adjPath, Err: ErrArtifactMissing}
	}
	defer f.Close()

	csr, err := artifact.Decode(f)
	if err != nil {
		return &LoadError{Path: adjPath, Err: fmt.Errorf("%w: %v", ErrArtifactCorrupt, err)}
	}

	store, err := adjacency.FromCSR(csr.N, csr.IndPtr, csr.Indices)
	if err != nil {
		return &LoadError{Path: adjPath, Err: fmt.Errorf("%w: %v", ErrArtifactCorrupt, err)}
	}

	ix, err := LoadIndex(idxPath)
	if err != nil {
		return err
	}

	wglog.Logger().Info().Int("topics", ix.Size()).Int("edges", store.NumEdges()).Msg("wikigraph loaded")
	e.publish(ix, store)
	return nil
}

// TopicChildren is one entry of the set_graph testing hook: a topic and the
// list of its direct children.
type TopicChildren struct {
	Topic    string
	Children []string
}

// SetGraph replaces the in-memory graph with the one described by pairs,
// building a fresh Index and CSR adjacency from the given edge multiset and
// resetting every dependent cache (CSC, materialized undirected view).
// Intended for tests.
func (e *Engine) SetGraph(pairs []TopicChildren) {
	ix, store := buildGraphFromPairs(pairs)
	e.publish(ix, store)
}

func (e *Engine) publish(ix *Index, store *adjacency.Store) {
	gs := &graphState{
		index:  ix,
		store:  store,
		oracle: newNeighborOracle(store, e.cfg.OptimizeMemory),
	}

	e.Lock()
	defer e.Unlock()
	e.Store(gs)
}

func buildGraphFromPairs(pairs []TopicChildren) (*Index, *adjacency.Store) {
	idOf := make(map[string]int32)
	var names []string

	getID := func(topic string) int32 {
		topic = Canonicalize(topic)
		if id, ok := idOf[topic]; ok {
			return id
		}
		id := int32(len(names))
		idOf[topic] = id
		names = append(names, topic)
		return id
	}

	var edges [][2]int32
	for _, p := range pairs {
		u := getID(p.Topic)
		for _, c := range p.Children {
			edges = append(edges, [2]int32{u, getID(c)})
		}
	}

	return NewIndex(names), adjacency.FromEdges(len(names), edges)
}

// ShortestPaths finds the (count of) shortest paths between source and
// target topics. directed selects directed vs. undirected adjacency;
// noPaths requests the count-only fast path (paths is then nil); verbose
// logs a diagnostic line through internal/wglog on expected-absence
// outcomes (unknown topic, cutoff exhausted) instead of returning an error
// — those outcomes are values, not errors.
func (e *Engine) ShortestPaths(source, target string, directed, noPaths, verbose bool) (degrees int, count uint64, paths [][]string) {
	gs := e.Load()

	srcID, ok := gs.index.Lookup(source)
	if !ok {
		if verbose {
			wglog.Logger().Debug().Str("topic", source).Msg("topic not found in graph")
		}
		return -1, 0, emptyPaths(noPaths)
	}

	tgtID, ok := gs.index.Lookup(target)
	if !ok {
		if verbose {
			wglog.Logger().Debug().Str("topic", target).Msg("topic not found in graph")
		}
		return -1, 0, emptyPaths(noPaths)
	}

	if srcID == tgtID {
		if noPaths {
			return 0, 1, nil
		}
		return 0, 1, [][]string{{gs.index.NameOf(srcID)}}
	}

	degrees, count, paths = shortestPaths(gs.oracle, gs.index, srcID, tgtID, directed, noPaths, e.cfg.MaxDepth)
	if verbose && degrees == -1 {
		wglog.Logger().Debug().Str("source", source).Str("target", target).Msg("no path found within cutoff")
	}
	return degrees, count, paths
}

// Children returns the successors of topic (or its undirected neighbors,
// when directed is false). Canonicalized; an unknown topic is an error —
// unlike ShortestPaths, this operation errors on unknown input rather than
// returning a sentinel.
func (e *Engine) Children(topic string, directed bool) (map[string]struct{}, error) {
	gs := e.Load()
	id, ok := gs.index.Lookup(topic)
	if !ok {
		return nil, fmt.Errorf("wikigraph: unknown topic %q", topic)
	}
	return idsToNameSet(gs.index, gs.oracle.children(id, directed)), nil
}

// Ancestors returns the predecessors of topic (or its undirected neighbors,
// when directed is false). See Children for the unknown-topic contract.
func (e *Engine) Ancestors(topic string, directed bool) (map[string]struct{}, error) {
	gs := e.Load()
	id, ok := gs.index.Lookup(topic)
	if !ok {
		return nil, fmt.Errorf("wikigraph: unknown topic %q", topic)
	}
	return idsToNameSet(gs.index, gs.oracle.ancestors(id, directed)), nil
}

func idsToNameSet(ix *Index, ids []int32) map[string]struct{} {
	out := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		out[ix.NameOf(id)] = struct{}{}
	}
	return out
}

// String reports the engine's current size and configuration.
func (e *Engine) String() string {
	gs := e.Load()
	if gs == nil {
		return "Engine(<uninitialized>)"
	}
	return fmt.Sprintf("Engine(num_topics=%d, optimize_memory=%v)", gs.index.Size(), e.cfg.OptimizeMemory)
}
