package controller

import (
	"cim-memo-be/internal/dto"
	"cim-memo-be/internal/pkg/serverutils"
	"cim-memo-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IMemoController interface {
	RegisterRoutes(r fiber.Router)
	Draft(ctx *fiber.Ctx) error
	Export(ctx *fiber.Ctx) error
}

type memoController struct {
	memoService service.IMemoService
}

func NewMemoController(memoService service.IMemoService) IMemoController {
	return &memoController{
		memoService: memoService,
	}
}

func (c *memoController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/memo/v1")
	h.Use(serverutils.SessionMiddleware)
	h.Post("draft", c.Draft)
	h.Post("export", c.Export)
}

func (c *memoController) Draft(ctx *fiber.Ctx) error {
	workspaceID := ctx.Locals("workspace_id").(string)

	var req dto.DraftMemoRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.memoService.Draft(ctx.Context(), workspaceID, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success draft memo", res))
}

// Export responds with the docx bytes directly; the formatting outcome rides
// in a response header so the download body stays a plain file.
func (c *memoController) Export(ctx *fiber.Ctx) error {
	workspaceID := ctx.Locals("workspace_id").(string)

	var req dto.ExportMemoRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, path, err := c.memoService.Export(ctx.Context(), workspaceID, &req)
	if err != nil {
		return err
	}

	if res.Formatted {
		ctx.Set("X-Memo-Formatted", "true")
	} else {
		ctx.Set("X-Memo-Formatted", "false")
	}
	return ctx.Download(path, res.FileName)
}
