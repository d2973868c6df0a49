package chroma

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"ai-library-be/pkg/vectorstore"
)

// Store is a minimal REST client to a ChromaDB server. It assumes cosine
// distance and resolves the collection id on first use.
type Store struct {
	baseURL    string
	collection string
	client     *retryablehttp.Client

	collectionID string
}

var _ vectorstore.Store = (*Store)(nil)

type Config struct {
	BaseURL    string
	Collection string
	Timeout    time.Duration
}

func New(cfg Config) *Store {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}

	client := retryablehttp.NewClient()
	client.HTTPClient.Timeout = timeout
	client.RetryMax = 2
	client.Logger = nil

	return &Store{
		baseURL:    cfg.BaseURL,
		collection: cfg.Collection,
		client:     client,
	}
}

// Init resolves (or creates) the collection and caches its id.
func (s *Store) Init(ctx context.Context) error {
	body := map[string]any{
		"name":          s.collection,
		"get_or_create": true,
		"metadata":      map[string]any{"hnsw:space": "cosine"},
	}
	var resp struct {
		ID string `json:"id"`
	}
	if err := s.postJSON(ctx, fmt.Sprintf("%s/api/v1/collections", s.baseURL), body, &resp); err != nil {
		return fmt.Errorf("chroma get_or_create collection %q: %w", s.collection, err)
	}
	s.collectionID = resp.ID
	return nil
}

func (s *Store) Upsert(ctx context.Context, ids []string, vectors [][]float32, metadatas []map[string]string, documents []string) error {
	if len(ids) == 0 {
		return nil
	}
	body := map[string]any{
		"ids":        ids,
		"embeddings": vectors,
		"metadatas":  metadatas,
	}
	if documents != nil {
		body["documents"] = documents
	}
	url := fmt.Sprintf("%s/api/v1/collections/%s/upsert", s.baseURL, s.collectionID)
	return s.postJSON(ctx, url, body, nil)
}

func (s *Store) Query(ctx context.Context, vector []float32, n int, where map[string]string) ([]vectorstore.Match, error) {
	body := map[string]any{
		"query_embeddings": [][]float32{vector},
		"n_results":        n,
		"include":          []string{"metadatas", "documents", "distances"},
	}
	if clause := buildWhereClause(where); clause != nil {
		body["where"] = clause
	}

	var resp struct {
		IDs       [][]string            `json:"ids"`
		Distances [][]float32           `json:"distances"`
		Metadatas [][]map[string]string `json:"metadatas"`
		Documents [][]string            `json:"documents"`
	}
	url := fmt.Sprintf("%s/api/v1/collections/%s/query", s.baseURL, s.collectionID)
	if err := s.postJSON(ctx, url, body, &resp); err != nil {
		return nil, err
	}

	if len(resp.IDs) == 0 {
		return nil, nil
	}
	matches := make([]vectorstore.Match, 0, len(resp.IDs[0]))
	for i, id := range resp.IDs[0] {
		m := vectorstore.Match{ID: id}
		if len(resp.Distances) > 0 && i < len(resp.Distances[0]) {
			m.Distance = resp.Distances[0][i]
		}
		if len(resp.Metadatas) > 0 && i < len(resp.Metadatas[0]) {
			m.Metadata = resp.Metadatas[0][i]
		}
		if len(resp.Documents) > 0 && i < len(resp.Documents[0]) {
			m.Document = resp.Documents[0][i]
		}
		matches = append(matches, m)
	}
	return matches, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (*vectorstore.Record, error) {
	body := map[string]any{
		"ids":     []string{id},
		"include": []string{"embeddings", "metadatas", "documents"},
	}
	var resp struct {
		IDs        []string            `json:"ids"`
		Embeddings [][]float32         `json:"embeddings"`
		Metadatas  []map[string]string `json:"metadatas"`
		Documents  []string            `json:"documents"`
	}
	url := fmt.Sprintf("%s/api/v1/collections/%s/get", s.baseURL, s.collectionID)
	if err := s.postJSON(ctx, url, body, &resp); err != nil {
		return nil, err
	}
	if len(resp.IDs) == 0 {
		return nil, nil
	}

	rec := &vectorstore.Record{ID: resp.IDs[0]}
	if len(resp.Embeddings) > 0 {
		rec.Embedding = resp.Embeddings[0]
	}
	if len(resp.Metadatas) > 0 {
		rec.Metadata = resp.Metadatas[0]
	}
	if len(resp.Documents) > 0 {
		rec.Document = resp.Documents[0]
	}
	return rec, nil
}

func (s *Store) ScanMetadata(ctx context.Context) ([]map[string]string, error) {
	body := map[string]any{
		"include": []string{"metadatas"},
	}
	var resp struct {
		Metadatas []map[string]string `json:"metadatas"`
	}
	url := fmt.Sprintf("%s/api/v1/collections/%s/get", s.baseURL, s.collectionID)
	if err := s.postJSON(ctx, url, body, &resp); err != nil {
		return nil, err
	}
	return resp.Metadatas, nil
}

func (s *Store) Count(ctx context.Context) (int, error) {
	url := fmt.Sprintf("%s/api/v1/collections/%s/count", s.baseURL, s.collectionID)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	res, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("chroma count: %w", err)
	}
	defer res.Body.Close()

	bodyBytes, err := io.ReadAll(res.Body)
	if err != nil {
		return 0, err
	}
	if res.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("chroma count: status %d, body %s", res.StatusCode, string(bodyBytes))
	}

	var count int
	if err := json.Unmarshal(bodyBytes, &count); err != nil {
		return 0, fmt.Errorf("chroma count: unmarshal: %w", err)
	}
	return count, nil
}

// buildWhereClause converts an equality map into Chroma's where syntax:
// one condition stands alone, several are joined under $and.
func buildWhereClause(where map[string]string) map[string]any {
	if len(where) == 0 {
		return nil
	}

	conditions := make([]map[string]any, 0, len(where))
	for field, value := range where {
		conditions = append(conditions, map[string]any{
			field: map[string]any{"$eq": value},
		})
	}
	if len(conditions) == 1 {
		return conditions[0]
	}
	return map[string]any{"$and": conditions}
}

func (s *Store) postJSON(ctx context.Context, url string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("chroma request failed: %w", err)
	}
	defer res.Body.Close()

	resBytes, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("chroma error: status %d, body %s", res.StatusCode, string(resBytes))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resBytes, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
