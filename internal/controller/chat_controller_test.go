package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ai-library-be/internal/dto"
	"ai-library-be/internal/pkg/serverutils"
	ragsearch "ai-library-be/pkg/rag/search"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChatService struct {
	lastRequest *dto.ChatRequest
	clearErr    error
}

func (s *stubChatService) GenerateAnswer(_ context.Context, req *dto.ChatRequest) *dto.ChatResponse {
	s.lastRequest = req
	return &dto.ChatResponse{Answer: "Tạm biệt! Hẹn gặp lại bạn!", Intent: "SMALLTALK"}
}

func (s *stubChatService) Suggest(ctx context.Context) *dto.SuggestResponse {
	return &dto.SuggestResponse{Questions: []string{"Thư viện mở cửa lúc mấy giờ?"}}
}

func (s *stubChatService) History(sessionID string) *dto.HistoryResponse {
	return &dto.HistoryResponse{SessionID: sessionID}
}

func (s *stubChatService) ClearHistory(string) error { return s.clearErr }

func (s *stubChatService) Stats(context.Context) (*dto.StatsResponse, error) {
	return &dto.StatsResponse{TotalBooks: 42}, nil
}

func (s *stubChatService) Filters(context.Context) (*dto.FiltersResponse, error) {
	return &dto.FiltersResponse{Categories: []string{"Văn học"}}, nil
}

func (s *stubChatService) Search(_ context.Context, req *dto.SearchRequest) (*dto.SearchResponse, error) {
	return &dto.SearchResponse{}, nil
}

func (s *stubChatService) Recommend(_ context.Context, bookID string, _ int) (*dto.RecommendResponse, error) {
	if bookID == "missing" {
		return nil, ragsearch.ErrNotFound
	}
	return &dto.RecommendResponse{Seed: bookID}, nil
}

func newTestApp(svc *stubChatService) *fiber.App {
	app := fiber.New()
	NewChatController(svc).RegisterRoutes(app.Group("/api"))
	return app
}

func TestChatEndpoint(t *testing.T) {
	svc := &stubChatService{}
	app := newTestApp(svc)

	body, _ := json.Marshal(dto.ChatRequest{Question: "tạm biệt", SessionID: "s1"})
	req := httptest.NewRequest(http.MethodPost, "/api/ai/chat", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var out serverutils.BaseResponse[dto.ChatResponse]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.True(t, out.Success)
	assert.Equal(t, "SMALLTALK", out.Data.Intent)
	require.NotNil(t, svc.lastRequest)
	assert.Equal(t, "s1", svc.lastRequest.SessionID)
}

func TestChatEndpointRejectsMissingQuestion(t *testing.T) {
	app := newTestApp(&stubChatService{})

	req := httptest.NewRequest(http.MethodPost, "/api/ai/chat", bytes.NewReader([]byte(`{"session_id":"s1"}`)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var out serverutils.BaseResponse[any]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.False(t, out.Success)
}

func TestRecommendEndpointNotFound(t *testing.T) {
	app := newTestApp(&stubChatService{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/ai/recommend/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStatsAndHealthEndpoints(t *testing.T) {
	app := newTestApp(&stubChatService{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/ai/stats", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var stats serverutils.BaseResponse[dto.StatsResponse]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	assert.Equal(t, 42, stats.Data.TotalBooks)

	health, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/ai/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, health.StatusCode)
}

func TestHistoryEndpoints(t *testing.T) {
	app := newTestApp(&stubChatService{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/ai/chat/history/s7", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var out serverutils.BaseResponse[dto.HistoryResponse]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "s7", out.Data.SessionID)

	del, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/ai/chat/history/s7", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, del.StatusCode)
}
