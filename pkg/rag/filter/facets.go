package filter

import (
	"context"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"ai-library-be/pkg/store"
	"ai-library-be/pkg/vectorstore"
)

const maxAuthorFacets = 100

// FacetCache is a process-wide snapshot of the catalog's distinct
// metadata values. The snapshot is swapped atomically so concurrent
// readers see either the old or the new version, never a partial one.
// Invalidate after indexing new catalog items.
type FacetCache struct {
	vs vectorstore.Store

	mu       sync.Mutex // serializes rebuilds
	snapshot atomic.Pointer[store.Facets]
}

func NewFacetCache(vs vectorstore.Store) *FacetCache {
	return &FacetCache{vs: vs}
}

// Snapshot returns the current facet snapshot, building it on first use.
func (c *FacetCache) Snapshot(ctx context.Context) (*store.Facets, error) {
	if s := c.snapshot.Load(); s != nil {
		return s, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if s := c.snapshot.Load(); s != nil {
		return s, nil
	}

	s, err := c.build(ctx)
	if err != nil {
		return nil, err
	}
	c.snapshot.Store(s)
	return s, nil
}

// Invalidate drops the snapshot; the next Snapshot call rebuilds it.
func (c *FacetCache) Invalidate() {
	c.snapshot.Store(nil)
}

func (c *FacetCache) build(ctx context.Context) (*store.Facets, error) {
	metadatas, err := c.vs.ScanMetadata(ctx)
	if err != nil {
		return nil, err
	}

	categories := make(map[string]struct{})
	years := make(map[string]struct{})
	authors := make(map[string]struct{})

	for _, meta := range metadatas {
		if v := meta["category"]; v != "" {
			categories[v] = struct{}{}
		}
		if v := meta["publish_year"]; v != "" {
			years[v] = struct{}{}
		}
		if v := meta["authors"]; v != "" {
			for _, a := range strings.Split(v, ",") {
				if a = strings.TrimSpace(a); a != "" {
					authors[a] = struct{}{}
				}
			}
		}
	}

	facets := &store.Facets{
		Categories: sortedKeys(categories, false),
		Years:      sortedKeys(years, true), // newest first
		Authors:    sortedKeys(authors, false),
	}
	if len(facets.Authors) > maxAuthorFacets {
		facets.Authors = facets.Authors[:maxAuthorFacets]
	}
	return facets, nil
}

func sortedKeys(set map[string]struct{}, reverse bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	if reverse {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}
