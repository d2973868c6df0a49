package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Chroma   ChromaConfig
	Ai       AIConfig
	Sessions SessionConfig
	Search   SearchConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	TraceLogFilePath   string
	CorsAllowedOrigins string
	OtelEnabled        bool
	OtelEndpoint       string
	ServiceName        string
}

type ChromaConfig struct {
	BaseURL         string
	Collection      string
	CacheCollection string
	TimeoutSeconds  int
}

type AIConfig struct {
	LLMProvider       string // "gemini" or "ollama"
	GeminiAPIKeys     []string
	GeminiModels      []string
	EmbeddingProvider string // "gemini" or "ollama"
	EmbeddingModel    string
	OllamaBaseURL     string
	OllamaModel       string
	Temperature       float64
	MaxOutputTokens   int
}

type SessionConfig struct {
	Dir             string
	CacheTTLMinutes int
}

type SearchConfig struct {
	TopK           int
	ScoreThreshold float64
	ExpandFactor   int
	CacheThreshold float64
	CacheTTLDays   int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8088"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			TraceLogFilePath:   getEnv("TRACE_LOG_FILE_PATH", "logs/retrieval.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			OtelEnabled:        getEnvAsBool("OTEL_ENABLED", false),
			OtelEndpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName:        getEnv("OTEL_SERVICE_NAME", "ai-library-be"),
		},
		Chroma: ChromaConfig{
			BaseURL:         getEnv("CHROMA_BASE_URL", "http://localhost:8000"),
			Collection:      getEnv("CHROMA_COLLECTION", "books"),
			CacheCollection: getEnv("CHROMA_CACHE_COLLECTION", "query_memory"),
			TimeoutSeconds:  getEnvAsInt("CHROMA_TIMEOUT_SECONDS", 30),
		},
		Ai: AIConfig{
			LLMProvider:       getEnv("LLM_PROVIDER", "gemini"),
			GeminiAPIKeys:     getEnvAsList("GEMINI_API_KEYS", getEnv("GOOGLE_GEMINI_API_KEY", "")),
			GeminiModels:      getEnvAsList("GEMINI_MODELS", "gemini-2.5-flash"),
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "gemini"),
			EmbeddingModel:    getEnv("EMBEDDING_MODEL", ""),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_MODEL", "llama3"),
			Temperature:       getEnvAsFloat("LLM_TEMPERATURE", 0.2),
			MaxOutputTokens:   getEnvAsInt("LLM_MAX_OUTPUT_TOKENS", 512),
		},
		Sessions: SessionConfig{
			Dir:             getEnv("SESSION_DIR", "sessions"),
			CacheTTLMinutes: getEnvAsInt("SESSION_CACHE_TTL_MINUTES", 60),
		},
		Search: SearchConfig{
			TopK:           getEnvAsInt("SEARCH_TOP_K", 5),
			ScoreThreshold: getEnvAsFloat("SEARCH_SCORE_THRESHOLD", 0.80),
			ExpandFactor:   getEnvAsInt("SEARCH_EXPAND_FACTOR", 2),
			CacheThreshold: getEnvAsFloat("QUERY_CACHE_THRESHOLD", 0.95),
			CacheTTLDays:   getEnvAsInt("QUERY_CACHE_TTL_DAYS", 7),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

// getEnvAsList splits a comma separated value, trimming blanks.
func getEnvAsList(key, fallback string) []string {
	raw := getEnv(key, fallback)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
