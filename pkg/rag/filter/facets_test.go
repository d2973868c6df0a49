package filter

import (
	"context"
	"testing"

	"ai-library-be/pkg/vectorstore/memory"
)

func TestFacetCache(t *testing.T) {
	ctx := context.Background()
	vs := memory.New()

	err := vs.Upsert(ctx,
		[]string{"b1", "b2", "b3"},
		[][]float32{{1, 0}, {0, 1}, {1, 1}},
		[]map[string]string{
			{"category": "Máy tính", "publish_year": "2020", "authors": "Mark Lutz, David Ascher"},
			{"category": "Toán", "publish_year": "2023", "authors": "Nguyễn Nhật Ánh"},
			{"category": "Máy tính", "publish_year": "2020", "authors": "Mark Lutz"},
		},
		[]string{"doc1", "doc2", "doc3"},
	)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	cache := NewFacetCache(vs)
	facets, err := cache.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	if len(facets.Categories) != 2 {
		t.Errorf("got categories %v, want 2 distinct", facets.Categories)
	}
	if len(facets.Years) != 2 || facets.Years[0] != "2023" {
		t.Errorf("got years %v, want newest first with 2 distinct", facets.Years)
	}
	if len(facets.Authors) != 3 {
		t.Errorf("got authors %v, want 3 distinct after comma split", facets.Authors)
	}

	// The snapshot is cached until invalidated.
	again, err := cache.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot again: %v", err)
	}
	if again != facets {
		t.Error("expected the same snapshot pointer before invalidation")
	}

	if err := vs.Upsert(ctx, []string{"b4"}, [][]float32{{0.5, 0.5}},
		[]map[string]string{{"category": "Văn học", "publish_year": "2024", "authors": "Ai Đó"}},
		[]string{"doc4"}); err != nil {
		t.Fatalf("seed b4: %v", err)
	}

	cache.Invalidate()
	rebuilt, err := cache.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot after invalidate: %v", err)
	}
	if len(rebuilt.Categories) != 3 {
		t.Errorf("got categories %v after invalidation, want 3", rebuilt.Categories)
	}
}
