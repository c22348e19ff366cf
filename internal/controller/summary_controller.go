package controller

import (
	"cim-memo-be/internal/dto"
	"cim-memo-be/internal/pkg/serverutils"
	"cim-memo-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISummaryController interface {
	RegisterRoutes(r fiber.Router)
	Generate(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
}

type summaryController struct {
	summaryService service.ISummaryService
}

func NewSummaryController(summaryService service.ISummaryService) ISummaryController {
	return &summaryController{
		summaryService: summaryService,
	}
}

func (c *summaryController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/summary/v1")
	h.Use(serverutils.SessionMiddleware)
	h.Post("generate", c.Generate)
	h.Get("", c.Show)
}

func (c *summaryController) Generate(ctx *fiber.Ctx) error {
	workspaceID := ctx.Locals("workspace_id").(string)

	var req dto.GenerateSummaryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.summaryService.GenerateSummary(ctx.Context(), workspaceID, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success generate summary", res))
}

func (c *summaryController) Show(ctx *fiber.Ctx) error {
	workspaceID := ctx.Locals("workspace_id").(string)

	res, err := c.summaryService.GetSummary(ctx.Context(), workspaceID)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get summary", res))
}
