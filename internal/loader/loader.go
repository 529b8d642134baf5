// Copyright (c) 2025 The wikigraph-go authors
// SPDX-License-Identifier: MIT

// Package loader turns a data directory plus an optional base URL into two
// local files, fetching whichever is missing from the configured remote
// source and caching it locally. The core engine never sees a URL, only the
// resulting paths — this package is acquisition, not the graph engine
// itself.
package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/udemy/wikigraph-go/internal/wglog"
)

// Names of the two artifacts on disk, chosen so an existing data directory
// populated by an older acquisition tool can be reused as-is.
const (
	AdjacencyFileName = "wikigraph_directed_csr.bin"
	IndexFileName     = "index.bin"
)

// Loader resolves the local paths of the adjacency and index artifacts,
// downloading from BaseURL on cache miss.
type Loader struct {
	DataDir string
	BaseURL string
	Client  *http.Client

	group singleflight.Group
}

// New returns a Loader rooted at dataDir, fetching from baseURL on miss. A
// nil client defaults to http.DefaultClient.
func New(dataDir, baseURL string, client *http.Client) *Loader {
	if client == nil {
		client = http.DefaultClient
	}
	return &Loader{DataDir: dataDir, BaseURL: baseURL, Client: client}
}

// AdjacencyPath returns the local path to the adjacency artifact, fetching
// it first if absent. Concurrent callers collapse onto a single fetch via
// singleflight, so concurrent first-touches never race each other.
func (l *Loader) AdjacencyPath(ctx context.Context) (string, error) {
	return l.ensure(ctx, AdjacencyFileName)
}

// IndexPath returns the local path to the index artifact, fetching it first
// if absent.
func (l *Loader) IndexPath(ctx context.Context) (string, error) {
	return l.ensure(ctx, IndexFileName)
}

// FetchAll ensures both artifacts are present locally, fetching whichever is
// missing concurrently and cancelling the sibling fetch if either fails.
func (l *Loader) FetchAll(ctx context.Context) (adjacencyPath, indexPath string, err error) {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		adjacencyPath, err = l.AdjacencyPath(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		indexPath, err = l.IndexPath(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return "", "", err
	}
	return adjacencyPath, indexPath, nil
}

func (l *Loader) ensure(ctx context.Context, name string) (string, error) {
	path := filepath.Join(l.DataDir, name)

	if _, err := os.Stat(path); err == nil {
		return path, nil
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("loader: stat %s: %w", path, err)
	}

	_, err, _ := l.group.Do(name, func() (any, error) {
		// A caller that saw the file missing may get here after an earlier
		// fetch has already finished; re-check so it does not fetch again.
		if _, err := os.Stat(path); err == nil {
			return nil, nil
		}
		return nil, l.download(ctx, name, path)
	})
	if err != nil {
		return "", err
	}
	return path, nil
}

func (l *Loader) download(ctx context.Context, name, destPath string) error {
	if l.BaseURL == "" {
		return fmt.Errorf("loader: %s missing locally and no BaseURL configured", destPath)
	}

	url := l.BaseURL + "/" + name
	wglog.Logger().Info().Str("artifact", name).Str("url", url).Msg("downloading wikigraph artifact")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("loader: building request for %s: %w", url, err)
	}

	resp, err := l.Client.Do(req)
	if err != nil {
		return fmt.Errorf("loader: fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("loader: fetching %s: status %s", url, resp.Status)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return fmt.Errorf("loader: creating data dir: %w", err)
	}

	tmp := destPath + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("loader: creating %s: %w", tmp, err)
	}

	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("loader: writing %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("loader: closing %s: %w", tmp, err)
	}

	if err := os.Rename(tmp, destPath); err != nil {
		return fmt.Errorf("loader: renaming %s: %w", tmp, err)
	}

	wglog.Logger().Info().Str("artifact", name).Msg("cached wikigraph artifact locally")
	return nil
}
