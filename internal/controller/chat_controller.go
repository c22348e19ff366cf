package controller

import (
	"cim-memo-be/internal/constant"
	"cim-memo-be/internal/dto"
	"cim-memo-be/internal/pkg/serverutils"
	"cim-memo-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	CreateSession(ctx *fiber.Ctx) error
	Submit(ctx *fiber.Ctx) error
	Clear(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{
		chatService: chatService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Use(serverutils.SessionMiddleware)
	h.Post("session", c.CreateSession)
	h.Post("submit", c.Submit)
	h.Post("clear", c.Clear)
	h.Get("history", c.History)
}

func (c *chatController) CreateSession(ctx *fiber.Ctx) error {
	workspaceID := ctx.Locals("workspace_id").(string)

	var req dto.CreateConversationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.CreateConversation(ctx.Context(), workspaceID, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create conversation", res))
}

func (c *chatController) Submit(ctx *fiber.Ctx) error {
	workspaceID := ctx.Locals("workspace_id").(string)

	var req dto.SubmitChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.Submit(ctx.Context(), workspaceID, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success submit chat", res))
}

func (c *chatController) Clear(ctx *fiber.Ctx) error {
	workspaceID := ctx.Locals("workspace_id").(string)

	var req dto.ClearConversationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.chatService.Clear(ctx.Context(), workspaceID, &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success clear conversation", nil))
}

func (c *chatController) History(ctx *fiber.Ctx) error {
	workspaceID := ctx.Locals("workspace_id").(string)

	function := ctx.Query("function", constant.ChatbotFunctionEditor)
	if function != constant.ChatbotFunctionEditor && function != constant.ChatbotFunctionQA {
		return fiber.NewError(fiber.StatusBadRequest, "function must be editor or qa")
	}

	res, err := c.chatService.GetHistory(ctx.Context(), workspaceID, function)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get chat history", res))
}
