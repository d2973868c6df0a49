package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"strings"

	"ai-library-be/internal/bootstrap"
	"ai-library-be/internal/config"
	"ai-library-be/pkg/embedding"

	"github.com/google/uuid"
)

// catalogRecord is one entry of the ingest file.
type catalogRecord struct {
	Identifier  string `json:"identifier"`
	Title       string `json:"title"`
	Authors     string `json:"authors"`
	Category    string `json:"category"`
	PublishYear string `json:"publish_year"`
	RichText    string `json:"richtext"`
}

const batchSize = 50

// Indexes a JSON catalog file into the book collection. Run after every
// catalog change; the server picks the new facets up on its next snapshot.
func main() {
	inputPath := flag.String("file", "data/books.json", "path to the catalog JSON file")
	flag.Parse()

	cfg := config.Load()
	container, err := bootstrap.NewContainer(cfg)
	if err != nil {
		log.Fatalf("Unable to bootstrap application: %v", err)
	}
	defer container.Logger.Sync()

	raw, err := os.ReadFile(*inputPath)
	if err != nil {
		log.Fatalf("Read catalog file: %v", err)
	}
	var records []catalogRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		log.Fatalf("Parse catalog file: %v", err)
	}
	log.Printf("Indexing %d records from %s", len(records), *inputPath)

	embedder, err := embedding.NewProvider(cfg.Ai.EmbeddingProvider, firstKey(cfg), cfg.Ai.OllamaBaseURL, cfg.Ai.EmbeddingModel)
	if err != nil {
		log.Fatalf("Embedding provider: %v", err)
	}

	ctx := context.Background()
	indexed := 0
	for start := 0; start < len(records); start += batchSize {
		end := start + batchSize
		if end > len(records) {
			end = len(records)
		}
		batch := records[start:end]

		ids := make([]string, 0, len(batch))
		vectors := make([][]float32, 0, len(batch))
		metadatas := make([]map[string]string, 0, len(batch))
		documents := make([]string, 0, len(batch))

		for _, rec := range batch {
			id := rec.Identifier
			if id == "" {
				id = uuid.NewString()
			}
			res, err := embedder.Generate(embedText(rec), embedding.TaskRetrievalDocument)
			if err != nil {
				log.Printf("Skip %s: embed failed: %v", id, err)
				continue
			}
			ids = append(ids, id)
			vectors = append(vectors, res.Embedding.Values)
			metadatas = append(metadatas, map[string]string{
				"title":        rec.Title,
				"authors":      rec.Authors,
				"category":     rec.Category,
				"publish_year": rec.PublishYear,
			})
			documents = append(documents, rec.RichText)
		}
		if len(ids) == 0 {
			continue
		}
		if err := container.Books.Upsert(ctx, ids, vectors, metadatas, documents); err != nil {
			log.Fatalf("Upsert batch at %d: %v", start, err)
		}
		indexed += len(ids)
		log.Printf("Indexed %d/%d", indexed, len(records))
	}

	container.Facets.Invalidate()

	total, err := container.Books.Count(ctx)
	if err != nil {
		log.Fatalf("Count: %v", err)
	}
	log.Printf("Done. Collection now holds %d records.", total)
}

func embedText(rec catalogRecord) string {
	parts := []string{rec.Title, rec.Authors, rec.Category, rec.RichText}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}

func firstKey(cfg *config.Config) string {
	if len(cfg.Ai.GeminiAPIKeys) > 0 {
		return cfg.Ai.GeminiAPIKeys[0]
	}
	return ""
}
