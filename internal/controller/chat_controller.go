package controller

import (
	"errors"
	"strconv"

	"ai-library-be/internal/dto"
	"ai-library-be/internal/pkg/serverutils"
	"ai-library-be/internal/service"
	ragsearch "ai-library-be/pkg/rag/search"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Health(ctx *fiber.Ctx) error
	Chat(ctx *fiber.Ctx) error
	Suggest(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
	ClearHistory(ctx *fiber.Ctx) error
	Search(ctx *fiber.Ctx) error
	Recommend(ctx *fiber.Ctx) error
	Filters(ctx *fiber.Ctx) error
	Stats(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
}

func NewChatController(service service.IChatService) IChatController {
	return &chatController{service: service}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/ai")
	h.Get("/health", c.Health)
	h.Post("/chat", c.Chat)
	h.Get("/chat/suggest", c.Suggest)
	h.Get("/chat/history/:sessionId", c.History)
	h.Delete("/chat/history/:sessionId", c.ClearHistory)
	h.Post("/search", c.Search)
	h.Get("/recommend/:id", c.Recommend)
	h.Get("/filters", c.Filters)
	h.Get("/stats", c.Stats)
}

func (c *chatController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("OK", map[string]string{"status": "healthy"}))
}

// Chat is the conversational boundary: it always answers with 200, the
// service folds its own failures into an ERROR-intent response.
func (c *chatController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res := c.service.GenerateAnswer(ctx.Context(), &req)
	return ctx.JSON(serverutils.SuccessResponse("Chat answer", res))
}

func (c *chatController) Suggest(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Suggested questions", c.service.Suggest(ctx.Context())))
}

func (c *chatController) History(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("sessionId")
	return ctx.JSON(serverutils.SuccessResponse("Chat history", c.service.History(sessionID)))
}

func (c *chatController) ClearHistory(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("sessionId")
	if err := c.service.ClearHistory(sessionID); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("History cleared", nil))
}

func (c *chatController) Search(ctx *fiber.Ctx) error {
	var req dto.SearchRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.service.Search(ctx.Context(), &req)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Search results", res))
}

func (c *chatController) Recommend(ctx *fiber.Ctx) error {
	bookID := ctx.Params("id")
	topK, _ := strconv.Atoi(ctx.Query("top_k", "0"))

	res, err := c.service.Recommend(ctx.Context(), bookID, topK)
	if err != nil {
		if errors.Is(err, ragsearch.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Book not found"))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Recommendations", res))
}

func (c *chatController) Filters(ctx *fiber.Ctx) error {
	res, err := c.service.Filters(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Available filters", res))
}

func (c *chatController) Stats(ctx *fiber.Ctx) error {
	res, err := c.service.Stats(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Catalog stats", res))
}
