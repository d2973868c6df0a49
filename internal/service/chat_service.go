package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"ai-library-be/internal/constant"
	"ai-library-be/internal/dto"
	"ai-library-be/internal/pkg/logger"
	"ai-library-be/internal/repository"
	"ai-library-be/pkg/embedding"
	"ai-library-be/pkg/llm"
	"ai-library-be/pkg/rag/cache"
	"ai-library-be/pkg/rag/filter"
	"ai-library-be/pkg/rag/intent"
	ragsearch "ai-library-be/pkg/rag/search"
	"ai-library-be/pkg/store"
	"ai-library-be/pkg/textnorm"
	"ai-library-be/pkg/vectorstore"
)

// IChatService is the conversational boundary. GenerateAnswer never panics
// and never returns an error: every failure collapses into an answer with
// intent ERROR so the client always has something to render.
type IChatService interface {
	GenerateAnswer(ctx context.Context, request *dto.ChatRequest) *dto.ChatResponse
	Suggest(ctx context.Context) *dto.SuggestResponse
	History(sessionID string) *dto.HistoryResponse
	ClearHistory(sessionID string) error
	Stats(ctx context.Context) (*dto.StatsResponse, error)
	Filters(ctx context.Context) (*dto.FiltersResponse, error)
	Search(ctx context.Context, request *dto.SearchRequest) (*dto.SearchResponse, error)
	Recommend(ctx context.Context, bookID string, topK int) (*dto.RecommendResponse, error)
}

type chatService struct {
	classifier *intent.Classifier
	sessions   *repository.SessionStore
	engine     *ragsearch.Engine
	extractor  *filter.Extractor
	facets     *filter.FacetCache
	queryCache *cache.SemanticCache
	llm        llm.LLMProvider
	embedder   embedding.EmbeddingProvider
	books      vectorstore.Store
	log        logger.ILogger
	topK       int
}

func NewChatService(
	classifier *intent.Classifier,
	sessions *repository.SessionStore,
	engine *ragsearch.Engine,
	extractor *filter.Extractor,
	facets *filter.FacetCache,
	queryCache *cache.SemanticCache,
	llmProvider llm.LLMProvider,
	embedder embedding.EmbeddingProvider,
	books vectorstore.Store,
	log logger.ILogger,
	topK int,
) IChatService {
	if topK <= 0 {
		topK = constant.DefaultTopK
	}
	return &chatService{
		classifier: classifier,
		sessions:   sessions,
		engine:     engine,
		extractor:  extractor,
		facets:     facets,
		queryCache: queryCache,
		llm:        llmProvider,
		embedder:   embedder,
		books:      books,
		log:        log,
		topK:       topK,
	}
}

func (s *chatService) GenerateAnswer(ctx context.Context, request *dto.ChatRequest) (resp *dto.ChatResponse) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("CHAT_SERVICE", "recovered from panic in GenerateAnswer", map[string]interface{}{
				"panic": fmt.Sprintf("%v", r),
			})
			resp = &dto.ChatResponse{
				Answer: constant.AnswerCriticalFail,
				Intent: string(intent.Error),
			}
		}
	}()

	sessionID := request.SessionID
	if sessionID == "" {
		sessionID = "default"
	}
	session := s.sessions.GetOrCreate(sessionID)
	s.sessions.Append(session, store.RoleUser, request.Question)

	detected := s.classifier.Classify(request.Question, len(session.LastResults) > 0)
	s.log.Info("CHAT_SERVICE", "intent classified", map[string]interface{}{
		"session": sessionID,
		"intent":  string(detected),
		"query":   request.Question,
	})

	var answer string
	var sources []store.Book

	switch detected {
	case intent.Garbage:
		answer = constant.AnswerGarbage
	case intent.Smalltalk:
		answer = s.answerSmalltalk(ctx, request.Question, session)
	case intent.Followup:
		answer = s.answerFollowup(ctx, request.Question, session)
	case intent.Stats:
		total, err := s.books.Count(ctx)
		if err != nil {
			s.log.Error("CHAT_SERVICE", "catalog count failed", map[string]interface{}{"error": err.Error()})
			resp = &dto.ChatResponse{Answer: constant.AnswerCriticalFail, Intent: string(intent.Error)}
			s.sessions.Append(session, store.RoleModel, resp.Answer)
			return resp
		}
		answer = fmt.Sprintf("Hiện tại thư viện có **%d cuốn sách** trong hệ thống.", total)
	case intent.LibraryInfo:
		answer = s.answerLibraryInfo(ctx, request.Question)
	default: // SEARCH and TITLE_SEARCH share the retrieval path
		query := request.Question
		if detected == intent.Search {
			query = normalizeBookQuery(query)
		}
		answer, sources = s.answerSearch(ctx, query, session, request.Filters)
	}

	s.sessions.Append(session, store.RoleModel, answer)

	return &dto.ChatResponse{
		Answer:  answer,
		Intent:  string(detected),
		Sources: sources,
	}
}

// ==================================================
// SMALLTALK
// ==================================================

var (
	greetingKeys  = []string{"xin chao", "chao ban", "chao", "hello", "hi", "hey", "alo", "yo"}
	thanksKeys    = []string{"cam on", "cam on ban", "thanks", "thank you", "tks", "ty"}
	goodbyeKeys   = []string{"tam biet", "bye", "goodbye", "see you", "hen gap lai"}
	whoAreYouKeys = []string{"ban la ai", "ten gi", "who are you", "what is your name"}
	howAreYouKeys = []string{"khoe khong", "ban on khong", "how are you", "what's up"}
	helpKeys      = []string{"giup toi", "giup minh", "help", "ho tro"}
	okKeys        = []string{"ok", "okay", "duoc", "duoc roi", "dc", "dk"}
)

// answerSmalltalk prefers canned replies; the model is only consulted for
// smalltalk the keyword groups do not recognize.
func (s *chatService) answerSmalltalk(ctx context.Context, question string, session *store.Session) string {
	folded := textnorm.Fold(question)

	switch {
	case matchKeywords(folded, greetingKeys):
		return constant.AnswerGreeting
	case matchKeywords(folded, thanksKeys):
		return constant.AnswerThanks
	case matchKeywords(folded, goodbyeKeys):
		return constant.AnswerGoodbye
	case matchKeywords(folded, whoAreYouKeys):
		return constant.AnswerWhoAmI
	case matchKeywords(folded, howAreYouKeys):
		return constant.AnswerHowAreYou
	case matchKeywords(folded, helpKeys):
		return constant.AnswerHelp
	case matchKeywords(folded, okKeys):
		return constant.AnswerOk
	}

	prompt := fmt.Sprintf(constant.SmalltalkPromptTemplate, session.HistoryText(constant.HistoryMaxTurns), question)
	reply, err := s.llm.Generate(ctx, prompt,
		llm.WithTemperature(constant.SmalltalkTemperature),
		llm.WithMaxTokens(constant.SmalltalkMaxTokens),
	)
	if err != nil || strings.TrimSpace(reply) == "" {
		return constant.AnswerSmalltalkFallback
	}
	return reply
}

// matchKeywords treats single-word keys as whole tokens and multi-word keys
// as substrings, so "hi" does not fire inside "chi tiet".
func matchKeywords(folded string, keys []string) bool {
	words := make(map[string]struct{})
	for _, w := range strings.Fields(folded) {
		words[w] = struct{}{}
	}
	for _, k := range keys {
		if strings.Contains(k, " ") {
			if strings.Contains(folded, k) {
				return true
			}
		} else if _, ok := words[k]; ok {
			return true
		}
	}
	return false
}

// ==================================================
// FOLLOWUP
// ==================================================

var followupGroupMarkers = []string{"tat ca", "ca hai", "ca 2", "ca 3", "moi cuon", "nhung cuon nay", "cac cuon"}

func (s *chatService) answerFollowup(ctx context.Context, question string, session *store.Session) string {
	if len(session.LastResults) == 0 {
		return constant.AnswerFollowupWhichOne
	}
	folded := textnorm.Fold(question)

	for _, marker := range followupGroupMarkers {
		if strings.Contains(folded, marker) {
			return s.followupViaModel(ctx, question, session)
		}
	}

	if idx, ok := parseFollowupIndex(folded, len(session.LastResults)); ok {
		return formatBookDetail(session.LastResults[idx])
	}

	return s.followupViaModel(ctx, question, session)
}

func (s *chatService) followupViaModel(ctx context.Context, question string, session *store.Session) string {
	prompt := fmt.Sprintf(constant.FollowupPromptTemplate,
		session.HistoryText(constant.HistoryMaxTurns),
		numberedBookLines(session.LastResults),
		question,
	)
	return s.callModel(ctx, prompt)
}

func formatBookDetail(b store.Book) string {
	excerpt := b.RichText
	if runes := []rune(excerpt); len(runes) > 1000 {
		excerpt = string(runes[:1000])
	}
	return fmt.Sprintf(
		"**%s**\n- Tác giả: %s\n- Năm xuất bản: %s\n- Mã sách: %s\n\n**Nội dung:**\n%s...",
		b.Title, b.Authors, b.PublishYear, b.Identifier, excerpt,
	)
}

// ==================================================
// LIBRARY INFO
// ==================================================

var (
	hoursInfoKeys   = []string{"gio mo cua", "mo cua", "may gio"}
	borrowInfoKeys  = []string{"muon sach", "muon", "borrow", "gia han"}
	returnInfoKeys  = []string{"tra sach", "tra", "return"}
	penaltyInfoKeys = []string{"phi phat", "phat", "penalty"}
	rulesInfoKeys   = []string{"noi quy", "quy dinh", "luat"}
)

// answerLibraryInfo checks the specific policies before the general rules,
// otherwise "quy định mượn sách" would answer with the reading-room rules.
func (s *chatService) answerLibraryInfo(ctx context.Context, question string) string {
	folded := textnorm.Fold(question)

	if containsAny(folded, hoursInfoKeys) {
		return fmt.Sprintf("Thư viện mở cửa: %s. Ngoài giờ này thư viện đóng cửa.", constant.OpeningHours)
	}
	if containsAny(folded, borrowInfoKeys) {
		bp := constant.Borrow
		return fmt.Sprintf("Quy định mượn sách:\n- %s\n- %s\n- %s", bp.Fee, bp.Duration, bp.Renew)
	}
	if containsAny(folded, returnInfoKeys) {
		pp := constant.Penalty
		return fmt.Sprintf("Quy định trả sách:\n- %s\n- %s\n- %s", pp.LateReturn, pp.AccountLock, pp.LostBook)
	}
	if containsAny(folded, penaltyInfoKeys) {
		pp := constant.Penalty
		return fmt.Sprintf("Quy định phí phạt:\n- %s\n- %s\n- %s", pp.LateReturn, pp.AccountLock, pp.LostBook)
	}
	if containsAny(folded, rulesInfoKeys) {
		return "Nội quy thư viện:\n" + bulletLines(constant.LibraryRules)
	}

	prompt := constant.SystemPrompt + "\n" + buildUserPrompt(question, "(Khong ap dung)")
	reply, err := s.llm.Generate(ctx, prompt)
	if err != nil || strings.TrimSpace(reply) == "" {
		return fmt.Sprintf(constant.AnswerLibraryInfoFallback, constant.OpeningHours)
	}
	return reply
}

func containsAny(haystack string, keys []string) bool {
	for _, k := range keys {
		if strings.Contains(haystack, k) {
			return true
		}
	}
	return false
}

// ==================================================
// SEARCH
// ==================================================

// normalizeBookQuery canonicalizes a few common topic phrasings so
// near-duplicate questions land in the same embedding neighborhood
// ("Sách Machine Learning hay nhất" and "sách machine learning" should
// hit the same cache entry).
func normalizeBookQuery(question string) string {
	folded := textnorm.Fold(question)

	if strings.Contains(folded, "machine learning") && strings.Contains(folded, "sach") {
		return "sach machine learning"
	}
	if strings.Contains(folded, "python") && (strings.Contains(folded, "tim") || strings.Contains(folded, "sach")) {
		return "sach python"
	}
	return strings.TrimSpace(question)
}

func (s *chatService) answerSearch(ctx context.Context, question string, session *store.Session, override *dto.FilterRequest) (string, []store.Book) {
	hasClientFilters := override != nil &&
		(override.Title != "" || override.Authors != "" || override.Category != "" || override.PublishYear != 0)

	queryVec := s.embedQuery(question)
	if hasClientFilters {
		// The cache key is the bare question; pinned filters change what
		// the right answer is, so neither lookup nor store may run.
		queryVec = nil
	}

	if queryVec != nil {
		if cached, hit, err := s.queryCache.Lookup(ctx, question, queryVec); err == nil && hit {
			s.log.Info("CHAT_SERVICE", "query cache hit", map[string]interface{}{"query": question})
			return "(Cache) " + cached, nil
		}
	}

	filters := s.buildFilters(ctx, question, override)

	books, err := s.engine.Search(ctx, question, filters, s.topK)
	if err != nil {
		if !errors.Is(err, ragsearch.ErrBelowThreshold) {
			s.log.Warn("CHAT_SERVICE", "search failed, falling back to general answer", map[string]interface{}{
				"error": err.Error(),
			})
		}
		return s.generalFallback(ctx, question, session), nil
	}
	if len(books) == 0 {
		return s.generalFallback(ctx, question, session), nil
	}

	s.sessions.SetLastResults(session, books)
	booksText := numberedBookLines(books)

	if !needsSynthesis(question) {
		answer := "Danh sách sách liên quan:\n\n" + booksText
		s.rememberAnswer(ctx, question, queryVec, answer, cache.KindList)
		return answer, books
	}

	prompt := constant.SystemPrompt + "\n" + buildUserPrompt(question, booksText)
	synthesis := s.callModel(ctx, prompt)
	answer := "Danh sách sách liên quan:\n\n" + booksText + "\n\nTổng hợp:\n" + synthesis
	s.rememberAnswer(ctx, question, queryVec, answer, cache.KindSynthesis)
	return answer, books
}

func (s *chatService) buildFilters(ctx context.Context, question string, override *dto.FilterRequest) store.FilterSet {
	var facets *store.Facets
	if snapshot, err := s.facets.Snapshot(ctx); err == nil {
		facets = snapshot
	} else {
		s.log.Warn("CHAT_SERVICE", "facet snapshot unavailable", map[string]interface{}{"error": err.Error()})
	}

	filters := s.extractor.Extract(question, facets)
	if override == nil {
		return filters
	}
	if override.Title != "" {
		filters.Title = textnorm.Fold(override.Title)
	}
	if override.Authors != "" {
		filters.Authors = override.Authors
	}
	if override.Category != "" {
		filters.Category = override.Category
	}
	if override.PublishYear != 0 {
		filters.PublishYear = strconv.Itoa(override.PublishYear)
	}
	return filters
}

func (s *chatService) embedQuery(question string) []float32 {
	res, err := s.embedder.Generate(question, embedding.TaskRetrievalQuery)
	if err != nil || res == nil || len(res.Embedding.Values) == 0 {
		return nil
	}
	return res.Embedding.Values
}

func (s *chatService) rememberAnswer(ctx context.Context, question string, vec []float32, answer, kind string) {
	if vec == nil {
		return
	}
	if err := s.queryCache.Store(ctx, question, vec, answer, kind); err != nil {
		s.log.Warn("CHAT_SERVICE", "query cache store failed", map[string]interface{}{"error": err.Error()})
	}
}

func (s *chatService) generalFallback(ctx context.Context, question string, session *store.Session) string {
	prompt := fmt.Sprintf(constant.GeneralQAPromptTemplate, session.HistoryText(constant.HistoryMaxTurns), question)
	return s.callModel(ctx, prompt)
}

func (s *chatService) callModel(ctx context.Context, prompt string, options ...llm.Option) string {
	reply, err := s.llm.Generate(ctx, prompt, options...)
	if err != nil {
		s.log.Error("CHAT_SERVICE", "model call failed", map[string]interface{}{"error": err.Error()})
		return constant.AnswerServiceBusy
	}
	if strings.TrimSpace(reply) == "" {
		return constant.AnswerNoReply
	}
	return reply
}

// needsSynthesis matches the advisory phrasings that warrant a model
// summary on top of the plain result list.
var synthesisKeywords = []string{
	"nên", "phù hợp", "gợi ý", "so sánh", "đánh giá",
	"phân tích", "tổng hợp", "giải thích", "vì sao", "như thế nào",
}

func needsSynthesis(question string) bool {
	q := strings.ToLower(question)
	for _, k := range synthesisKeywords {
		if strings.Contains(q, k) {
			return true
		}
	}
	return false
}

// ==================================================
// SECONDARY OPERATIONS
// ==================================================

// Suggest mixes live catalog categories into the starter prompts, keeping
// the static set when the catalog is empty or unreachable.
func (s *chatService) Suggest(ctx context.Context) *dto.SuggestResponse {
	questions := make([]string, 0, len(constant.SuggestedQuestions)+2)
	questions = append(questions, constant.SuggestedQuestions...)

	facets, err := s.facets.Snapshot(ctx)
	if err != nil || len(facets.Categories) == 0 {
		return &dto.SuggestResponse{Questions: questions}
	}
	for i, category := range facets.Categories {
		if i == 2 {
			break
		}
		questions = append(questions, fmt.Sprintf("Có sách nào về %s không?", strings.ToLower(category)))
	}
	return &dto.SuggestResponse{Questions: questions}
}

func (s *chatService) History(sessionID string) *dto.HistoryResponse {
	session := s.sessions.GetOrCreate(sessionID)
	return &dto.HistoryResponse{
		SessionID: session.ID,
		History:   session.History,
	}
}

func (s *chatService) ClearHistory(sessionID string) error {
	return s.sessions.Clear(sessionID)
}

func (s *chatService) Stats(ctx context.Context) (*dto.StatsResponse, error) {
	total, err := s.books.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count catalog: %w", err)
	}
	return &dto.StatsResponse{TotalBooks: total}, nil
}

func (s *chatService) Filters(ctx context.Context) (*dto.FiltersResponse, error) {
	facets, err := s.facets.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("facet snapshot: %w", err)
	}
	years := make([]int, 0, len(facets.Years))
	for _, y := range facets.Years {
		if n, err := strconv.Atoi(y); err == nil {
			years = append(years, n)
		}
	}
	return &dto.FiltersResponse{
		Categories: facets.Categories,
		Authors:    facets.Authors,
		Years:      years,
	}, nil
}

func (s *chatService) Search(ctx context.Context, request *dto.SearchRequest) (*dto.SearchResponse, error) {
	topK := request.TopK
	if topK <= 0 {
		topK = s.topK
	}
	filters := s.buildFilters(ctx, request.Query, request.Filters)
	books, err := s.engine.Search(ctx, request.Query, filters, topK)
	if err != nil {
		if errors.Is(err, ragsearch.ErrBelowThreshold) {
			return &dto.SearchResponse{Results: []store.Book{}}, nil
		}
		return nil, err
	}
	if books == nil {
		books = []store.Book{}
	}
	return &dto.SearchResponse{Results: books, Total: len(books)}, nil
}

func (s *chatService) Recommend(ctx context.Context, bookID string, topK int) (*dto.RecommendResponse, error) {
	if topK <= 0 {
		topK = s.topK
	}
	books, err := s.engine.Recommend(ctx, bookID, topK)
	if err != nil {
		return nil, err
	}
	return &dto.RecommendResponse{Seed: bookID, Results: books}, nil
}

// ==================================================
// PROMPT HELPERS
// ==================================================

func buildUserPrompt(question, booksText string) string {
	return fmt.Sprintf(constant.UserPromptTemplate,
		question,
		booksText,
		constant.OpeningHours,
		bulletLines(constant.LibraryRules),
		bulletLines([]string{constant.Borrow.Fee, constant.Borrow.Duration, constant.Borrow.Renew}),
		bulletLines([]string{constant.Penalty.LateReturn, constant.Penalty.AccountLock, constant.Penalty.LostBook}),
	)
}

func bulletLines(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "- " + item
	}
	return strings.Join(lines, "\n")
}

func numberedBookLines(books []store.Book) string {
	lines := make([]string, len(books))
	for i, b := range books {
		lines[i] = fmt.Sprintf("%d. %s – %s (%s)", i+1, b.Title, b.Authors, b.PublishYear)
	}
	return strings.Join(lines, "\n")
}
