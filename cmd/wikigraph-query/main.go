// Copyright (c) 2025 The wikigraph-go authors
// SPDX-License-Identifier: MIT

// Command wikigraph-query is a thin smoke-test CLI around the wikigraph
// Engine: point it at a data directory (or run -demo against the small
// built-in fixture) and ask for the shortest paths between two topics.
//
// It is not a serving layer — there is no HTTP handler here — just enough
// wiring to exercise wikigraph.Open and Engine.ShortestPaths from the command
// line.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	wikigraph "github.com/udemy/wikigraph-go"
	"github.com/udemy/wikigraph-go/internal/testgraph"
	"github.com/udemy/wikigraph-go/internal/wglog"
)

func main() {
	var (
		dataDir  = flag.String("datadir", "", "local directory holding the adjacency/index artifacts")
		baseURL  = flag.String("baseurl", "", "remote source to fetch missing artifacts from")
		source   = flag.String("source", "s", "source topic")
		target   = flag.String("target", "t", "target topic")
		directed = flag.Bool("directed", true, "use directed adjacency")
		noPaths  = flag.Bool("no-paths", false, "only count shortest paths, don't enumerate them")
		verbose  = flag.Bool("verbose", false, "log diagnostics for expected-absence outcomes")
		demo     = flag.Bool("demo", false, "run against the small built-in fixture instead of -datadir")
	)
	flag.Parse()

	if *verbose {
		wglog.SetLogger(zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).With().Timestamp().Logger())
	}

	var eng *wikigraph.Engine
	if *demo {
		eng = demoEngine()
	} else {
		if *dataDir == "" {
			fmt.Fprintln(os.Stderr, "wikigraph-query: -datadir is required unless -demo is set")
			os.Exit(2)
		}
		cfg := wikigraph.NewConfig(*dataDir, wikigraph.WithBaseURL(*baseURL))
		var err error
		eng, err = wikigraph.Open(context.Background(), cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "wikigraph-query: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Println(eng)

	degrees, count, paths := eng.ShortestPaths(*source, *target, *directed, *noPaths, *verbose)
	if degrees < 0 {
		fmt.Printf("no path from %q to %q within the cutoff\n", *source, *target)
		return
	}

	fmt.Printf("%s -> %s: %d degree(s) of separation, %d shortest path(s)\n", *source, *target, degrees, count)
	for _, p := range paths {
		fmt.Println("  " + joinArrow(p))
	}
}

func demoEngine() *wikigraph.Engine {
	names, childrenOf := testgraph.Chain()
	pairs := make([]wikigraph.TopicChildren, 0, len(names))
	for _, name := range names {
		pairs = append(pairs, wikigraph.TopicChildren{Topic: name, Children: childrenOf[name]})
	}
	return wikigraph.NewFromPairs(wikigraph.NewConfig(""), pairs)
}

func joinArrow(path []string) string {
	out := path[0]
	for _, p := range path[1:] {
		out += " -> " + p
	}
	return out
}
