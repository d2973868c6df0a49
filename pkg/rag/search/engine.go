package search

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"ai-library-be/pkg/embedding"
	"ai-library-be/pkg/store"
	"ai-library-be/pkg/textnorm"
	"ai-library-be/pkg/vectorstore"
)

const (
	DefaultTopK           = 5
	DefaultScoreThreshold = 0.80
	DefaultExpandFactor   = 2

	// Hard cap on the candidate pool, including fallback widening.
	maxPoolSize = 50
)

var (
	// ErrEmbeddingUnavailable means the query could not be embedded this
	// turn. Distinct from an empty result set.
	ErrEmbeddingUnavailable = errors.New("search: embedding unavailable")

	// ErrBelowThreshold means matches exist but the best one is too weak
	// to present as relevant.
	ErrBelowThreshold = errors.New("search: best match below relevance threshold")

	// ErrNotFound is returned by Recommend for an unknown book id.
	ErrNotFound = errors.New("search: book not found")
)

type Config struct {
	Embedder       embedding.EmbeddingProvider
	Store          vectorstore.Store
	ScoreThreshold float32 // zero means DefaultScoreThreshold
	ExpandFactor   int     // zero means DefaultExpandFactor
}

// Engine performs hybrid retrieval: semantic nearest-neighbor search with
// equality filters pushed into the vector store predicate and substring
// filters applied in-process afterwards.
type Engine struct {
	embedder       embedding.EmbeddingProvider
	vs             vectorstore.Store
	scoreThreshold float32
	expandFactor   int
}

func NewEngine(cfg Config) *Engine {
	threshold := cfg.ScoreThreshold
	if threshold == 0 {
		threshold = DefaultScoreThreshold
	}
	expand := cfg.ExpandFactor
	if expand <= 0 {
		expand = DefaultExpandFactor
	}
	return &Engine{
		embedder:       cfg.Embedder,
		vs:             cfg.Store,
		scoreThreshold: threshold,
		expandFactor:   expand,
	}
}

// Search returns up to topK books, best first.
//
// The substring filters force a widened candidate pool: the vector store
// only ranks by similarity, so a substring-matching item may sit outside
// the immediate neighborhood. Two fallbacks keep the search from failing
// hard: a second, wider query when substring filtering empties the pool
// (Fallback A), and a predicate-free retry when the equality filter
// itself matches nothing (Fallback B).
func (e *Engine) Search(ctx context.Context, query string, filters store.FilterSet, topK int) ([]store.Book, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}

	resp, err := e.embedder.Generate(EnrichQuery(query), embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	vec := resp.Embedding.Values
	if len(vec) == 0 {
		return nil, ErrEmbeddingUnavailable
	}

	eq := filters.Equality()
	sub := filters.Substring()

	pool := topK
	if len(sub) > 0 {
		pool = capPool(topK * e.expandFactor)
	}

	matches, err := e.vs.Query(ctx, vec, pool, eq)
	if err != nil {
		return nil, fmt.Errorf("vector query: %w", err)
	}

	// Fallback B: an over-specific equality filter should not hide an
	// otherwise relevant item.
	predicate := eq
	if len(matches) == 0 && len(eq) > 0 {
		predicate = nil
		matches, err = e.vs.Query(ctx, vec, pool, nil)
		if err != nil {
			return nil, fmt.Errorf("relaxed vector query: %w", err)
		}
	}

	books := booksFromMatches(matches)

	if len(sub) > 0 {
		filtered := applySubstringFilters(books, sub)

		// Fallback A: widen once before giving up, a substring match may
		// exist slightly outside the initial neighborhood.
		if len(filtered) == 0 && len(books) > 0 && pool < maxPoolSize {
			matches, err = e.vs.Query(ctx, vec, capPool(pool*e.expandFactor), predicate)
			if err != nil {
				return nil, fmt.Errorf("widened vector query: %w", err)
			}
			filtered = applySubstringFilters(booksFromMatches(matches), sub)
		}
		books = filtered
	}

	if len(books) == 0 {
		return nil, nil
	}

	// Re-sort never changes membership, only order.
	if wantsRecency(query) {
		sort.SliceStable(books, func(i, j int) bool {
			return yearOf(books[i]) > yearOf(books[j])
		})
	}

	if best := bestScore(books); best < e.scoreThreshold {
		return nil, ErrBelowThreshold
	}

	if len(books) > topK {
		books = books[:topK]
	}
	return books, nil
}

// Recommend returns books similar to the given one, excluding itself.
func (e *Engine) Recommend(ctx context.Context, bookID string, topK int) ([]store.Book, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}

	rec, err := e.vs.GetByID(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("get book %s: %w", bookID, err)
	}
	if rec == nil {
		return nil, ErrNotFound
	}

	matches, err := e.vs.Query(ctx, rec.Embedding, topK+1, nil)
	if err != nil {
		return nil, fmt.Errorf("vector query: %w", err)
	}

	out := make([]store.Book, 0, topK)
	for _, m := range matches {
		if m.ID == bookID {
			continue
		}
		out = append(out, bookFromMatch(m))
		if len(out) == topK {
			break
		}
	}
	return out, nil
}

// enrichment hints, appended to the embedded text only; the filter set is
// untouched.
var enrichmentHints = []struct {
	markers []string
	hint    string
}{
	{markers: []string{"nguoi moi", "moi hoc", "moi bat dau", "co ban", "nhap mon", "beginner", "basic"}, hint: "cơ bản nhập môn cho người mới bắt đầu"},
	{markers: []string{"nang cao", "chuyen sau", "advanced", "expert"}, hint: "nâng cao chuyên sâu"},
	{markers: []string{"tieng anh", "english", "song ngu"}, hint: "tiếng Anh"},
}

// EnrichQuery appends audience and language hint tokens when the query
// implies them, steering the nearest-neighbor search.
func EnrichQuery(query string) string {
	folded := textnorm.Fold(query)
	out := query
	for _, h := range enrichmentHints {
		for _, m := range h.markers {
			if strings.Contains(folded, m) {
				out = out + " " + h.hint
				break
			}
		}
	}
	return out
}

var recencyMarkers = []string{"moi nhat", "gan day", "sach moi", "most recent", "newest", "latest"}

func wantsRecency(query string) bool {
	folded := textnorm.Fold(query)
	for _, m := range recencyMarkers {
		if strings.Contains(folded, m) {
			return true
		}
	}
	return false
}

func applySubstringFilters(books []store.Book, sub map[string]string) []store.Book {
	out := make([]store.Book, 0, len(books))
	for _, b := range books {
		if matchesSubstrings(b, sub) {
			out = append(out, b)
		}
	}
	return out
}

func matchesSubstrings(b store.Book, sub map[string]string) bool {
	for field, want := range sub {
		var have string
		switch field {
		case "title":
			have = b.Title
		case "authors":
			have = b.Authors
		default:
			continue
		}
		if !strings.Contains(textnorm.Fold(have), textnorm.Fold(want)) {
			return false
		}
	}
	return true
}

func booksFromMatches(matches []vectorstore.Match) []store.Book {
	books := make([]store.Book, 0, len(matches))
	for _, m := range matches {
		books = append(books, bookFromMatch(m))
	}
	return books
}

func bookFromMatch(m vectorstore.Match) store.Book {
	return store.Book{
		Identifier:  m.ID,
		Title:       m.Metadata["title"],
		Authors:     m.Metadata["authors"],
		Category:    m.Metadata["category"],
		PublishYear: m.Metadata["publish_year"],
		Score:       similarity(m.Distance),
		RichText:    m.Document,
	}
}

// similarity converts a cosine distance into a score clamped to [0,1].
func similarity(distance float32) float32 {
	s := 1 - float64(distance)
	if s < 0 {
		s = 0
	}
	if s > 1 {
		s = 1
	}
	return float32(math.Round(s*10000) / 10000)
}

func bestScore(books []store.Book) float32 {
	var best float32
	for _, b := range books {
		if b.Score > best {
			best = b.Score
		}
	}
	return best
}

func yearOf(b store.Book) int {
	y, err := strconv.Atoi(strings.TrimSpace(b.PublishYear))
	if err != nil {
		return 0
	}
	return y
}

func capPool(n int) int {
	if n > maxPoolSize {
		return maxPoolSize
	}
	return n
}
