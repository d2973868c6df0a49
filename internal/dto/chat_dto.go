package dto

import "ai-library-be/pkg/store"

type ChatRequest struct {
	Question  string         `json:"question" validate:"required"`
	SessionID string         `json:"session_id,omitempty"`
	Filters   *FilterRequest `json:"filters,omitempty"`
}

// FilterRequest lets a client pin facet values instead of relying on
// extraction from the question text.
type FilterRequest struct {
	Title       string `json:"title,omitempty"`
	Authors     string `json:"authors,omitempty"`
	Category    string `json:"category,omitempty"`
	PublishYear int    `json:"publish_year,omitempty"`
}

type ChatResponse struct {
	Answer  string       `json:"answer"`
	Intent  string       `json:"intent"`
	Sources []store.Book `json:"sources,omitempty"`
}

type SuggestResponse struct {
	Questions []string `json:"questions"`
}

type HistoryResponse struct {
	SessionID string          `json:"session_id"`
	History   []store.Message `json:"history"`
}

type SearchRequest struct {
	Query   string         `json:"query" validate:"required"`
	TopK    int            `json:"top_k,omitempty" validate:"omitempty,min=1,max=50"`
	Filters *FilterRequest `json:"filters,omitempty"`
}

type SearchResponse struct {
	Results []store.Book `json:"results"`
	Total   int          `json:"total"`
}

type RecommendResponse struct {
	Seed    string       `json:"seed"`
	Results []store.Book `json:"results"`
}

type FiltersResponse struct {
	Categories []string `json:"categories"`
	Authors    []string `json:"authors"`
	Years      []int    `json:"years"`
}

type StatsResponse struct {
	TotalBooks int `json:"total_books"`
}
