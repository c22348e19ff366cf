package controller

import (
	"io"
	"strconv"

	"cim-memo-be/internal/pkg/serverutils"
	"cim-memo-be/internal/service"
	"cim-memo-be/pkg/store"

	"github.com/gofiber/fiber/v2"
)

type IWorkspaceController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Upload(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	PageCount(ctx *fiber.Ctx) error
	Page(ctx *fiber.Ctx) error
}

type workspaceController struct {
	workspaceService service.IWorkspaceService
}

func NewWorkspaceController(workspaceService service.IWorkspaceService) IWorkspaceController {
	return &workspaceController{
		workspaceService: workspaceService,
	}
}

func (c *workspaceController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/workspace/v1")
	h.Post("", c.Create) // unauthenticated: this call mints the session
	h.Use(serverutils.SessionMiddleware)
	h.Post("files", c.Upload)
	h.Get("files", c.List)
	h.Get("files/:name/pages", c.PageCount)
	h.Get("files/:name/pages/:page", c.Page)
}

func (c *workspaceController) Create(ctx *fiber.Ctx) error {
	res, err := c.workspaceService.CreateWorkspace(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create workspace", res))
}

// Upload accepts multipart form files. The field name selects the role:
// "document", "template", or "memo"; anything else counts as a document.
func (c *workspaceController) Upload(ctx *fiber.Ctx) error {
	workspaceID := ctx.Locals("workspace_id").(string)

	form, err := ctx.MultipartForm()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "expected multipart form upload")
	}

	var files []service.UploadedFile
	for field, headers := range form.File {
		role := fileRoleFor(field)
		for _, header := range headers {
			f, err := header.Open()
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "failed to read uploaded file "+header.Filename)
			}
			content, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "failed to read uploaded file "+header.Filename)
			}

			files = append(files, service.UploadedFile{
				Name:     header.Filename,
				Role:     role,
				MimeType: header.Header.Get("Content-Type"),
				Content:  content,
			})
		}
	}
	if len(files) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no files in upload")
	}

	res, err := c.workspaceService.UploadFiles(ctx.Context(), workspaceID, files)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success upload files", res))
}

func fileRoleFor(field string) store.FileRole {
	switch field {
	case "template":
		return store.FileRoleTemplate
	case "memo":
		return store.FileRoleMemo
	default:
		return store.FileRoleDocument
	}
}

func (c *workspaceController) List(ctx *fiber.Ctx) error {
	workspaceID := ctx.Locals("workspace_id").(string)

	res, err := c.workspaceService.ListFiles(ctx.Context(), workspaceID)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list files", res))
}

func (c *workspaceController) PageCount(ctx *fiber.Ctx) error {
	workspaceID := ctx.Locals("workspace_id").(string)
	name := ctx.Params("name")

	res, err := c.workspaceService.PageCount(ctx.Context(), workspaceID, name)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get page count", res))
}

func (c *workspaceController) Page(ctx *fiber.Ctx) error {
	workspaceID := ctx.Locals("workspace_id").(string)
	name := ctx.Params("name")

	page, err := strconv.Atoi(ctx.Params("page"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "page must be a number")
	}

	pageBytes, err := c.workspaceService.ExtractPage(ctx.Context(), workspaceID, name, page)
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentType, "application/pdf")
	return ctx.Send(pageBytes)
}
