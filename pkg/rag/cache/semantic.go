package cache

import (
	"context"
	"fmt"
	"hash/fnv"
	"strconv"
	"time"

	"ai-library-be/pkg/vectorstore"
)

const (
	DefaultThreshold = 0.95

	// Entries are never updated in place; stale ones age out by TTL at
	// lookup time instead of an eviction pass.
	DefaultTTL = 7 * 24 * time.Hour
)

// Answer kinds. Both carry a catalog listing, which matters for the
// non-catalog guard below.
const (
	KindList      = "catalog_list"
	KindSynthesis = "catalog_synthesis"
)

// SemanticCache remembers question embeddings with their final answers
// and replays an answer when a new question lands close enough. The
// caller must skip it entirely for filtered queries: the embedding does
// not capture filter state.
type SemanticCache struct {
	vs        vectorstore.Store
	threshold float32
	ttl       time.Duration
	now       func() time.Time

	// isCatalogQuestion guards against serving a stale book list to a
	// question that is not about books at all.
	isCatalogQuestion func(string) bool
}

type Config struct {
	Store             vectorstore.Store
	Threshold         float32       // zero means DefaultThreshold
	TTL               time.Duration // zero means DefaultTTL
	IsCatalogQuestion func(string) bool
}

func New(cfg Config) *SemanticCache {
	threshold := cfg.Threshold
	if threshold == 0 {
		threshold = DefaultThreshold
	}
	ttl := cfg.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}
	isCatalog := cfg.IsCatalogQuestion
	if isCatalog == nil {
		isCatalog = func(string) bool { return true }
	}
	return &SemanticCache{
		vs:                cfg.Store,
		threshold:         threshold,
		ttl:               ttl,
		now:               time.Now,
		isCatalogQuestion: isCatalog,
	}
}

// Lookup returns a cached answer for a sufficiently similar prior
// question. A hit whose answer is a catalog listing is discarded when the
// current question does not look catalog-related.
func (c *SemanticCache) Lookup(ctx context.Context, question string, vec []float32) (string, bool, error) {
	matches, err := c.vs.Query(ctx, vec, 1, nil)
	if err != nil {
		return "", false, fmt.Errorf("cache query: %w", err)
	}
	if len(matches) == 0 {
		return "", false, nil
	}

	m := matches[0]
	if 1-m.Distance < c.threshold {
		return "", false, nil
	}

	if created, err := strconv.ParseInt(m.Metadata["created_at"], 10, 64); err == nil {
		if c.now().Sub(time.Unix(created, 0)) > c.ttl {
			return "", false, nil
		}
	}

	kind := m.Metadata["kind"]
	if (kind == KindList || kind == KindSynthesis) && !c.isCatalogQuestion(question) {
		return "", false, nil
	}

	return m.Document, true, nil
}

// Store remembers an answer under the question's embedding. Entries with
// the same question overwrite each other; distinct questions in the same
// semantic neighborhood coexist.
func (c *SemanticCache) Store(ctx context.Context, question string, vec []float32, answer, kind string) error {
	h := fnv.New64a()
	h.Write([]byte(question))
	id := fmt.Sprintf("q_%x", h.Sum64())

	meta := map[string]string{
		"question":   question,
		"kind":       kind,
		"created_at": strconv.FormatInt(c.now().Unix(), 10),
	}
	if err := c.vs.Upsert(ctx, []string{id}, [][]float32{vec}, []map[string]string{meta}, []string{answer}); err != nil {
		return fmt.Errorf("cache upsert: %w", err)
	}
	return nil
}
