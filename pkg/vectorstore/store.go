package vectorstore

import "context"

// Match is one ranked hit from a nearest-neighbor query.
type Match struct {
	ID       string
	Distance float32 // cosine distance; similarity = 1 - Distance
	Metadata map[string]string
	Document string
}

// Record is a full stored item, as returned by GetByID.
type Record struct {
	ID        string
	Embedding []float32
	Metadata  map[string]string
	Document  string
}

// Store is the vector database port. Implementations support equality
// predicates only; substring matching is the caller's job.
type Store interface {
	Upsert(ctx context.Context, ids []string, vectors [][]float32, metadatas []map[string]string, documents []string) error

	// Query returns up to n nearest neighbors of vector, best first,
	// restricted to records whose metadata equals every entry of where.
	Query(ctx context.Context, vector []float32, n int, where map[string]string) ([]Match, error)

	// GetByID returns nil (no error) when the id is not present.
	GetByID(ctx context.Context, id string) (*Record, error)

	// ScanMetadata returns the metadata of every stored record.
	ScanMetadata(ctx context.Context) ([]map[string]string, error)

	Count(ctx context.Context) (int, error)
}
