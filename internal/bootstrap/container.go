package bootstrap

import (
	"context"
	"fmt"
	"time"

	"ai-library-be/internal/config"
	"ai-library-be/internal/controller"
	"ai-library-be/internal/pkg/logger"
	"ai-library-be/internal/repository"
	"ai-library-be/internal/repository/file"
	"ai-library-be/internal/repository/memory"
	"ai-library-be/internal/service"
	"ai-library-be/pkg/embedding"
	"ai-library-be/pkg/llm"
	llmfactory "ai-library-be/pkg/llm/factory"
	"ai-library-be/pkg/llm/gemini"
	"ai-library-be/pkg/llm/rotation"
	"ai-library-be/pkg/rag/cache"
	"ai-library-be/pkg/rag/filter"
	"ai-library-be/pkg/rag/intent"
	ragsearch "ai-library-be/pkg/rag/search"
	"ai-library-be/pkg/vectorstore"
	"ai-library-be/pkg/vectorstore/chroma"
)

// Container wires every dependency once at startup.
type Container struct {
	Config *config.Config
	Logger logger.ILogger

	Books  vectorstore.Store
	Facets *filter.FacetCache

	ChatService    service.IChatService
	ChatController controller.IChatController
}

func NewContainer(cfg *config.Config) (*Container, error) {
	appLog := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	retrievalLog := logger.NewIsolatedLogger(cfg.App.TraceLogFilePath)

	books := chroma.New(chroma.Config{
		BaseURL:    cfg.Chroma.BaseURL,
		Collection: cfg.Chroma.Collection,
		Timeout:    time.Duration(cfg.Chroma.TimeoutSeconds) * time.Second,
	})
	cacheStore := chroma.New(chroma.Config{
		BaseURL:    cfg.Chroma.BaseURL,
		Collection: cfg.Chroma.CacheCollection,
		Timeout:    time.Duration(cfg.Chroma.TimeoutSeconds) * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := books.Init(ctx); err != nil {
		return nil, fmt.Errorf("init book collection: %w", err)
	}
	if err := cacheStore.Init(ctx); err != nil {
		return nil, fmt.Errorf("init query cache collection: %w", err)
	}

	apiKey := ""
	if len(cfg.Ai.GeminiAPIKeys) > 0 {
		apiKey = cfg.Ai.GeminiAPIKeys[0]
	}

	embedder, err := embedding.NewProvider(cfg.Ai.EmbeddingProvider, apiKey, cfg.Ai.OllamaBaseURL, cfg.Ai.EmbeddingModel)
	if err != nil {
		return nil, fmt.Errorf("embedding provider: %w", err)
	}

	llmProvider, err := buildLLMProvider(cfg, apiKey)
	if err != nil {
		return nil, fmt.Errorf("llm provider: %w", err)
	}

	persistence, err := file.NewSessionRepository(cfg.Sessions.Dir)
	if err != nil {
		return nil, fmt.Errorf("session dir: %w", err)
	}
	hot := memory.NewSessionRepository(time.Duration(cfg.Sessions.CacheTTLMinutes) * time.Minute)
	sessions := repository.NewSessionStore(hot, persistence, appLog)

	facets := filter.NewFacetCache(books)
	engine := ragsearch.NewEngine(ragsearch.Config{
		Embedder:       embedder,
		Store:          books,
		ScoreThreshold: float32(cfg.Search.ScoreThreshold),
		ExpandFactor:   cfg.Search.ExpandFactor,
	})
	queryCache := cache.New(cache.Config{
		Store:             cacheStore,
		Threshold:         float32(cfg.Search.CacheThreshold),
		TTL:               time.Duration(cfg.Search.CacheTTLDays) * 24 * time.Hour,
		IsCatalogQuestion: intent.ContainsBookVocabulary,
	})

	chatSvc := service.NewChatService(
		intent.NewClassifier(filter.IsCategoryTerm),
		sessions,
		engine,
		filter.NewExtractor(),
		facets,
		queryCache,
		llmProvider,
		embedder,
		books,
		retrievalLog,
		cfg.Search.TopK,
	)

	return &Container{
		Config:         cfg,
		Logger:         appLog,
		Books:          books,
		Facets:         facets,
		ChatService:    chatSvc,
		ChatController: controller.NewChatController(chatSvc),
	}, nil
}

// buildLLMProvider prefers the rotating multi-key Gemini manager; a single
// key still goes through it so model fallback keeps working.
func buildLLMProvider(cfg *config.Config, apiKey string) (llm.LLMProvider, error) {
	if cfg.Ai.LLMProvider == "gemini" && len(cfg.Ai.GeminiAPIKeys) > 0 {
		manager, err := rotation.NewManager(cfg.Ai.GeminiAPIKeys, cfg.Ai.GeminiModels, func(key string) llm.LLMProvider {
			return gemini.NewGeminiProvider(key, "")
		})
		if err != nil {
			return nil, err
		}
		return manager, nil
	}
	return llmfactory.NewLLMProvider(cfg.Ai.LLMProvider, apiKey, cfg.Ai.OllamaModel, cfg.Ai.OllamaBaseURL)
}
