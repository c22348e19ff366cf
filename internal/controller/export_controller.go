package controller

import (
	"path/filepath"

	"cim-memo-be/internal/dto"
	"cim-memo-be/internal/pkg/serverutils"
	"cim-memo-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IExportController interface {
	RegisterRoutes(r fiber.Router)
	Export(ctx *fiber.Ctx) error
	Email(ctx *fiber.Ctx) error
	Download(ctx *fiber.Ctx) error
}

type exportController struct {
	exportService service.IExportService
}

func NewExportController(exportService service.IExportService) IExportController {
	return &exportController{
		exportService: exportService,
	}
}

func (c *exportController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/export/v1")
	h.Use(serverutils.SessionMiddleware)
	h.Post("", c.Export)
	h.Post("email", c.Email)
	h.Get("download/:file", c.Download)
}

func (c *exportController) Export(ctx *fiber.Ctx) error {
	workspaceID := ctx.Locals("workspace_id").(string)

	var req dto.ExportRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.exportService.Export(ctx.Context(), workspaceID, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success export artifact", res))
}

func (c *exportController) Email(ctx *fiber.Ctx) error {
	workspaceID := ctx.Locals("workspace_id").(string)

	var req dto.EmailExportRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.exportService.EmailExport(ctx.Context(), workspaceID, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success email export", res))
}

func (c *exportController) Download(ctx *fiber.Ctx) error {
	workspaceID := ctx.Locals("workspace_id").(string)
	fileName := ctx.Params("file")

	path, err := c.exportService.ResolveArtifact(ctx.Context(), workspaceID, fileName)
	if err != nil {
		return err
	}

	return ctx.Download(path, filepath.Base(path))
}
