package cache

import (
	"context"
	"testing"
	"time"

	"ai-library-be/pkg/vectorstore/memory"
)

func isCatalog(q string) bool {
	return q != "xin chao"
}

func newTestCache(t *testing.T) *SemanticCache {
	t.Helper()
	return New(Config{
		Store:             memory.New(),
		IsCatalogQuestion: isCatalog,
	})
}

func TestLookupHit(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t)

	vec := []float32{1, 0}
	if err := c.Store(ctx, "sách python hay", vec, "Danh sách sách liên quan:\n1. ...", KindList); err != nil {
		t.Fatalf("Store: %v", err)
	}

	answer, hit, err := c.Lookup(ctx, "sách python tốt", []float32{0.999, 0.001})
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if !hit {
		t.Fatal("expected a hit for a near-identical embedding")
	}
	if answer == "" {
		t.Error("hit returned empty answer")
	}
}

func TestLookupMissBelowThreshold(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t)

	if err := c.Store(ctx, "sách python", []float32{1, 0}, "answer", KindList); err != nil {
		t.Fatalf("Store: %v", err)
	}

	// Similarity ~0.707, well under the 0.95 bar.
	_, hit, err := c.Lookup(ctx, "sách toán", []float32{0.7, 0.7})
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if hit {
		t.Error("expected miss below the similarity threshold")
	}
}

func TestLookupEmptyCache(t *testing.T) {
	c := newTestCache(t)
	_, hit, err := c.Lookup(context.Background(), "sách python", []float32{1, 0})
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if hit {
		t.Error("empty cache cannot hit")
	}
}

func TestCatalogListGuard(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t)

	vec := []float32{1, 0}
	if err := c.Store(ctx, "sách hay", vec, "Danh sách sách liên quan:\n1. ...", KindList); err != nil {
		t.Fatalf("Store: %v", err)
	}

	// Same neighborhood, but the question is smalltalk: the cached book
	// list must not be replayed.
	_, hit, err := c.Lookup(ctx, "xin chao", vec)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if hit {
		t.Error("catalog-list answer leaked to a non-catalog question")
	}

	// A catalog question in the same spot still hits.
	_, hit, err = c.Lookup(ctx, "sách python", vec)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if !hit {
		t.Error("catalog question should hit")
	}
}

func TestTTLExpiry(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return base }

	vec := []float32{1, 0}
	if err := c.Store(ctx, "sách python", vec, "answer", KindSynthesis); err != nil {
		t.Fatalf("Store: %v", err)
	}

	c.now = func() time.Time { return base.Add(time.Hour) }
	if _, hit, _ := c.Lookup(ctx, "sách python", vec); !hit {
		t.Error("fresh entry should hit")
	}

	c.now = func() time.Time { return base.Add(DefaultTTL + time.Hour) }
	if _, hit, _ := c.Lookup(ctx, "sách python", vec); hit {
		t.Error("entry older than the TTL must be ignored")
	}
}

func TestStoreOverwritesSameQuestion(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t)

	vec := []float32{1, 0}
	if err := c.Store(ctx, "sách python", vec, "old", KindList); err != nil {
		t.Fatalf("Store: %v", err)
	}
	if err := c.Store(ctx, "sách python", vec, "new", KindList); err != nil {
		t.Fatalf("Store again: %v", err)
	}

	answer, hit, err := c.Lookup(ctx, "sách python", vec)
	if err != nil || !hit {
		t.Fatalf("Lookup: hit=%v err=%v", hit, err)
	}
	if answer != "new" {
		t.Errorf("got %q, want the overwritten answer", answer)
	}
}
