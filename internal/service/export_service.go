package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cim-memo-be/internal/constant"
	"cim-memo-be/internal/dto"
	"cim-memo-be/internal/pkg/apperror"
	"cim-memo-be/internal/pkg/logger"
	"cim-memo-be/internal/pkg/mailer"
	"cim-memo-be/internal/repository/memory"
	"cim-memo-be/pkg/converter"
	"cim-memo-be/pkg/events"
	"cim-memo-be/pkg/store"
)

type IExportService interface {
	Export(ctx context.Context, workspaceID string, request *dto.ExportRequest) (*dto.ExportResponse, error)
	EmailExport(ctx context.Context, workspaceID string, request *dto.EmailExportRequest) (*dto.EmailExportResponse, error)
	ResolveArtifact(ctx context.Context, workspaceID, fileName string) (string, error)
}

type exportService struct {
	workspaceRepo    *memory.WorkspaceRepository
	converter        *converter.PandocConverter
	emailService     mailer.IEmailService
	publisherService IPublisherService
	logger           logger.ILogger
}

func NewExportService(
	workspaceRepo *memory.WorkspaceRepository,
	pandoc *converter.PandocConverter,
	emailService mailer.IEmailService,
	publisherService IPublisherService,
	log logger.ILogger,
) IExportService {
	return &exportService{
		workspaceRepo:    workspaceRepo,
		converter:        pandoc,
		emailService:     emailService,
		publisherService: publisherService,
		logger:           log,
	}
}

// Export converts one artifact to each requested format. Formats fail
// independently: a broken pdf engine must not block the docx or plaintext
// downloads.
func (es *exportService) Export(ctx context.Context, workspaceID string, request *dto.ExportRequest) (*dto.ExportResponse, error) {
	workspace, ok := es.workspaceRepo.Get(workspaceID)
	if !ok {
		return nil, apperror.NotFound("workspace not found or expired")
	}

	text, err := artifactText(workspace, request.Artifact)
	if err != nil {
		return nil, err
	}

	baseName := exportBaseName(request.FileName, request.Artifact)

	response := &dto.ExportResponse{Artifact: request.Artifact}
	for _, format := range request.Formats {
		result := dto.ExportResultDTO{Format: format}

		path, exportErr := es.converter.Export(text, converter.Format(format), workspace.TempDir, baseName)
		if exportErr != nil {
			result.Error = exportErr.Error()
			es.logger.Warn("ExportService", fmt.Sprintf("Export to %s failed", format), map[string]interface{}{"artifact": request.Artifact, "error": exportErr.Error()})
		} else {
			result.Success = true
			result.FileName = filepath.Base(path)
		}

		es.publishResult(ctx, workspaceID, request.Artifact, format, exportErr)
		response.Results = append(response.Results, result)
	}

	return response, nil
}

// EmailExport converts one artifact to one format and mails it.
func (es *exportService) EmailExport(ctx context.Context, workspaceID string, request *dto.EmailExportRequest) (*dto.EmailExportResponse, error) {
	workspace, ok := es.workspaceRepo.Get(workspaceID)
	if !ok {
		return nil, apperror.NotFound("workspace not found or expired")
	}

	text, err := artifactText(workspace, request.Artifact)
	if err != nil {
		return nil, err
	}

	baseName := exportBaseName(request.FileName, request.Artifact)

	path, exportErr := es.converter.Export(text, converter.Format(request.Format), workspace.TempDir, baseName)
	es.publishResult(ctx, workspaceID, request.Artifact, request.Format, exportErr)
	if exportErr != nil {
		return nil, apperror.Conversion(fmt.Sprintf("failed to export %s to %s", request.Artifact, request.Format), exportErr)
	}

	if err := es.emailService.SendArtifact(request.Recipient, request.Artifact, path); err != nil {
		return nil, fmt.Errorf("failed to email export: %w", err)
	}

	return &dto.EmailExportResponse{Recipient: request.Recipient, FileName: filepath.Base(path)}, nil
}

// ResolveArtifact maps a produced file name back to its staging path for
// download. Only base names are accepted; the staging dir is the boundary.
func (es *exportService) ResolveArtifact(ctx context.Context, workspaceID, fileName string) (string, error) {
	workspace, ok := es.workspaceRepo.Get(workspaceID)
	if !ok {
		return "", apperror.NotFound("workspace not found or expired")
	}

	path := filepath.Join(workspace.TempDir, filepath.Base(fileName))
	if _, err := os.Stat(path); err != nil {
		return "", apperror.NotFound(fmt.Sprintf("no exported file %q", fileName))
	}
	return path, nil
}

func (es *exportService) publishResult(ctx context.Context, workspaceID, artifact, format string, exportErr error) {
	payload := map[string]interface{}{
		"workspace_id": workspaceID,
		"artifact":     artifact,
		"format":       format,
		"success":      exportErr == nil,
	}
	if exportErr != nil {
		payload["error"] = exportErr.Error()
	}
	if err := es.publisherService.Publish(ctx, events.New(events.TypeExportProduced, payload)); err != nil {
		es.logger.Warn("ExportService", "Failed to publish export event", map[string]interface{}{"error": err.Error()})
	}
}

// artifactText picks the exportable text for an artifact. Chat exports the
// latest editor response, the running result of the edit dialogue.
func artifactText(workspace *store.Workspace, artifact string) (string, error) {
	switch artifact {
	case "summary":
		if workspace.Summary == "" {
			return "", apperror.Configuration("no summary generated yet")
		}
		return workspace.Summary, nil
	case "chat":
		conversation := workspace.Conversation(constant.ChatbotFunctionEditor)
		if conversation.LatestRawResponse == nil {
			return "", apperror.Configuration("no editor response to export yet")
		}
		return *conversation.LatestRawResponse, nil
	case "memo":
		if workspace.MemoText == "" {
			return "", apperror.Configuration("no memo drafted yet")
		}
		return workspace.MemoText, nil
	default:
		return "", apperror.Configuration(fmt.Sprintf("unknown artifact %q", artifact))
	}
}

func exportBaseName(fileName, artifact string) string {
	base := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	if base == "" {
		base = artifact
	}
	return base
}
