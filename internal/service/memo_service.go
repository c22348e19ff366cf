package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cim-memo-be/internal/config"
	"cim-memo-be/internal/constant"
	"cim-memo-be/internal/dto"
	"cim-memo-be/internal/pkg/apperror"
	"cim-memo-be/internal/pkg/logger"
	"cim-memo-be/internal/repository/memory"
	"cim-memo-be/pkg/converter"
	"cim-memo-be/pkg/events"
	"cim-memo-be/pkg/gdocs"
	"cim-memo-be/pkg/llm"
	"cim-memo-be/pkg/memo"
	"cim-memo-be/pkg/store"
)

type IMemoService interface {
	Draft(ctx context.Context, workspaceID string, request *dto.DraftMemoRequest) (*dto.DraftMemoResponse, error)
	Export(ctx context.Context, workspaceID string, request *dto.ExportMemoRequest) (*dto.ExportMemoResponse, string, error)
}

type memoService struct {
	workspaceRepo    *memory.WorkspaceRepository
	gatewayFactory   GatewayFactory
	publisherService IPublisherService
	docsExporter     *gdocs.Exporter
	converter        *converter.PandocConverter
	cfg              *config.Config
	headings         []string
	subheadings      []string
	logger           logger.ILogger
}

func NewMemoService(
	workspaceRepo *memory.WorkspaceRepository,
	gatewayFactory GatewayFactory,
	publisherService IPublisherService,
	docsExporter *gdocs.Exporter,
	pandoc *converter.PandocConverter,
	cfg *config.Config,
	log logger.ILogger,
) IMemoService {
	return &memoService{
		workspaceRepo:    workspaceRepo,
		gatewayFactory:   gatewayFactory,
		publisherService: publisherService,
		docsExporter:     docsExporter,
		converter:        pandoc,
		cfg:              cfg,
		headings:         loadHeaders(cfg.Google.HeadingsPath, memo.DefaultHeadings, log),
		subheadings:      loadHeaders(cfg.Google.SubheadingsPath, nil, log),
		logger:           log,
	}
}

func loadHeaders(path string, fallback []string, log logger.ILogger) []string {
	if path == "" {
		return fallback
	}
	headers, err := memo.LoadHeaders(path)
	if err != nil {
		log.Warn("MemoService", "Failed to load headers file, using defaults", map[string]interface{}{"path": path, "error": err.Error()})
		return fallback
	}
	return headers
}

// Draft fills the memo outline from the source documents. Only document-role
// files reach the model; the outline rides along as one extra file reference.
func (ms *memoService) Draft(ctx context.Context, workspaceID string, request *dto.DraftMemoRequest) (*dto.DraftMemoResponse, error) {
	workspace, ok := ms.workspaceRepo.Get(workspaceID)
	if !ok {
		return nil, apperror.NotFound("workspace not found or expired")
	}

	documents := workspace.AllFiles(store.FileRoleDocument)
	if len(documents) == 0 {
		return nil, apperror.Configuration("memo drafting requires at least one uploaded document")
	}

	if request.ModelOption == "" {
		request.ModelOption = ms.cfg.Models.MemoModel
	}

	refs := fileRefsFor(documents)
	outline, err := ms.outlineRef(workspace)
	if err != nil {
		return nil, err
	}
	refs = append(refs, outline)

	gateway, err := ms.gatewayFactory(ctx, request.ModelOption, constant.ChatbotFunctionNone)
	if err != nil {
		return nil, err
	}

	draft, err := generate(ctx, ms.publisherService, gateway,
		workspaceID, "memo", constant.ChatbotFunctionNone, request.ModelOption,
		constant.MemoTemperature, refs, []string{constant.MemoPrompt})
	if err != nil {
		return nil, err
	}

	workspace.MemoText = draft
	ms.workspaceRepo.Save(workspace)

	if err := ms.publisherService.Publish(ctx, events.New(events.TypeMemoDrafted, map[string]interface{}{
		"workspace_id": workspaceID,
		"model_option": request.ModelOption,
	})); err != nil {
		ms.logger.Warn("MemoService", "Failed to publish memo event", map[string]interface{}{"error": err.Error()})
	}

	return &dto.DraftMemoResponse{MemoText: draft}, nil
}

// outlineRef prefers an uploaded template file; the configured outline object
// is the fallback for deployments that ship a fixed template.
func (ms *memoService) outlineRef(workspace *store.Workspace) (llm.FileRef, error) {
	if templates := workspace.AllFiles(store.FileRoleTemplate); len(templates) > 0 {
		t := templates[0]
		return llm.FileRef{URI: t.StorageURI, MimeType: t.MimeType}, nil
	}
	if ms.cfg.Google.MemoOutlineURI != "" {
		return llm.FileRef{URI: ms.cfg.Google.MemoOutlineURI, MimeType: ms.cfg.Google.MemoOutlineMime}, nil
	}
	return llm.FileRef{}, apperror.Configuration("no memo outline available: upload a template file or configure MEMO_OUTLINE_URI")
}

// Export produces the styled docx for the drafted memo. The Google Docs
// formatter is best effort: when it fails, or is not configured, the local
// converter produces an unstyled docx instead.
func (ms *memoService) Export(ctx context.Context, workspaceID string, request *dto.ExportMemoRequest) (*dto.ExportMemoResponse, string, error) {
	workspace, ok := ms.workspaceRepo.Get(workspaceID)
	if !ok {
		return nil, "", apperror.NotFound("workspace not found or expired")
	}
	if workspace.MemoText == "" {
		return nil, "", apperror.Configuration("no memo drafted yet")
	}

	doc := memo.ParseDraft(workspace.MemoText, ms.headings, ms.subheadings)

	baseName := strings.TrimSuffix(request.FileName, filepath.Ext(request.FileName))
	if baseName == "" {
		baseName = "memo"
	}

	path, formatted, err := ms.exportDocx(ctx, workspace, doc, baseName)

	payload := map[string]interface{}{
		"workspace_id": workspaceID,
		"artifact":     "memo",
		"format":       string(converter.FormatDocx),
		"success":      err == nil,
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	if pubErr := ms.publisherService.Publish(ctx, events.New(events.TypeExportProduced, payload)); pubErr != nil {
		ms.logger.Warn("MemoService", "Failed to publish export event", map[string]interface{}{"error": pubErr.Error()})
	}

	if err != nil {
		return nil, "", err
	}
	return &dto.ExportMemoResponse{FileName: filepath.Base(path), Formatted: formatted}, path, nil
}

func (ms *memoService) exportDocx(ctx context.Context, workspace *store.Workspace, doc memo.Document, baseName string) (string, bool, error) {
	if ms.docsExporter != nil {
		docxBytes, err := ms.docsExporter.ExportDocx(ctx, baseName, doc)
		if err == nil {
			path := filepath.Join(workspace.TempDir, baseName+".docx")
			if writeErr := os.WriteFile(path, docxBytes, 0644); writeErr != nil {
				return "", false, fmt.Errorf("failed to write exported memo: %w", writeErr)
			}
			return path, true, nil
		}
		ms.logger.Warn("MemoService", "Google Docs export failed, falling back to local conversion", map[string]interface{}{"error": err.Error()})
	}

	path, err := ms.converter.Export(doc.PlainText(), converter.FormatDocx, workspace.TempDir, baseName)
	if err != nil {
		return "", false, apperror.Conversion("failed to convert memo to docx", err)
	}
	return path, false, nil
}
