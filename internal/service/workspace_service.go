package service

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cim-memo-be/internal/config"
	"cim-memo-be/internal/dto"
	"cim-memo-be/internal/pkg/apperror"
	"cim-memo-be/internal/pkg/logger"
	"cim-memo-be/internal/pkg/serverutils"
	"cim-memo-be/internal/repository/memory"
	"cim-memo-be/pkg/events"
	"cim-memo-be/pkg/pdfview"
	"cim-memo-be/pkg/store"
	"cim-memo-be/pkg/storage/gcs"

	"github.com/google/uuid"
)

// UploadedFile is one part of a multipart upload, already read into memory by
// the controller.
type UploadedFile struct {
	Name     string
	Role     store.FileRole
	MimeType string
	Content  []byte
}

type IWorkspaceService interface {
	CreateWorkspace(ctx context.Context) (*dto.CreateWorkspaceResponse, error)
	UploadFiles(ctx context.Context, workspaceID string, files []UploadedFile) (*dto.UploadFilesResponse, error)
	ListFiles(ctx context.Context, workspaceID string) (*dto.ListFilesResponse, error)
	PageCount(ctx context.Context, workspaceID, fileName string) (*dto.PageCountResponse, error)
	ExtractPage(ctx context.Context, workspaceID, fileName string, page int) ([]byte, error)
}

type workspaceService struct {
	workspaceRepo    *memory.WorkspaceRepository
	uploader         *gcs.Uploader
	publisherService IPublisherService
	sessionTTL       time.Duration
	logger           logger.ILogger
}

func NewWorkspaceService(
	workspaceRepo *memory.WorkspaceRepository,
	uploader *gcs.Uploader,
	publisherService IPublisherService,
	cfg *config.Config,
	log logger.ILogger,
) IWorkspaceService {
	return &workspaceService{
		workspaceRepo:    workspaceRepo,
		uploader:         uploader,
		publisherService: publisherService,
		sessionTTL:       cfg.App.SessionTTL,
		logger:           log,
	}
}

func (ws *workspaceService) CreateWorkspace(ctx context.Context) (*dto.CreateWorkspaceResponse, error) {
	id := uuid.New()

	tempDir, err := os.MkdirTemp("", "workspace-"+id.String())
	if err != nil {
		return nil, fmt.Errorf("failed to create workspace temp dir: %w", err)
	}

	workspace := store.NewWorkspace(id.String(), tempDir, "")
	ws.workspaceRepo.Save(workspace)

	token, err := serverutils.IssueSessionToken(id, ws.sessionTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	ws.logger.Info("WorkspaceService", "Workspace created", map[string]interface{}{"workspace_id": id.String()})

	return &dto.CreateWorkspaceResponse{
		Id:           id,
		SessionToken: token,
		ExpiresAt:    time.Now().Add(ws.sessionTTL),
	}, nil
}

func (ws *workspaceService) UploadFiles(ctx context.Context, workspaceID string, files []UploadedFile) (*dto.UploadFilesResponse, error) {
	workspace, err := ws.getWorkspace(workspaceID)
	if err != nil {
		return nil, err
	}

	// One timestamp per batch, the way the object keys group a single upload.
	batch := time.Now().Format("20060102T150405")

	response := &dto.UploadFilesResponse{}
	for _, file := range files {
		record, err := ws.storeFile(ctx, workspace, batch, file)
		if err != nil {
			return nil, err
		}
		response.Files = append(response.Files, fileRecordToDTO(record))
	}

	ws.workspaceRepo.Save(workspace)

	if err := ws.publisherService.Publish(ctx, events.New(events.TypeFileUploaded, map[string]interface{}{
		"workspace_id": workspaceID,
		"count":        len(files),
	})); err != nil {
		ws.logger.Warn("WorkspaceService", "Failed to publish upload event", map[string]interface{}{"error": err.Error()})
	}

	return response, nil
}

func (ws *workspaceService) storeFile(ctx context.Context, workspace *store.Workspace, batch string, file UploadedFile) (*store.FileRecord, error) {
	key := fmt.Sprintf("files/%s/%s", batch, file.Name)
	uri, err := ws.uploader.Upload(ctx, key, bytes.NewReader(file.Content))
	if err != nil {
		return nil, fmt.Errorf("failed to upload %s: %w", file.Name, err)
	}

	localPath := filepath.Join(workspace.TempDir, file.Name)
	if err := os.WriteFile(localPath, file.Content, 0644); err != nil {
		return nil, fmt.Errorf("failed to stage %s locally: %w", file.Name, err)
	}

	record := &store.FileRecord{
		Name:       file.Name,
		Role:       file.Role,
		StorageURI: uri,
		MimeType:   file.MimeType,
		LocalPath:  localPath,
		UploadedAt: time.Now(),
	}

	if strings.EqualFold(filepath.Ext(file.Name), ".pdf") {
		count, err := pdfview.PageCount(localPath)
		if err != nil {
			ws.logger.Warn("WorkspaceService", "Failed to count pages", map[string]interface{}{"file": file.Name, "error": err.Error()})
		} else {
			record.PageCount = count
		}
	}

	workspace.PutFile(record)
	return record, nil
}

func (ws *workspaceService) ListFiles(ctx context.Context, workspaceID string) (*dto.ListFilesResponse, error) {
	workspace, err := ws.getWorkspace(workspaceID)
	if err != nil {
		return nil, err
	}

	response := &dto.ListFilesResponse{Files: []dto.FileRecordDTO{}}
	for _, record := range workspace.AllFiles("") {
		response.Files = append(response.Files, fileRecordToDTO(record))
	}
	return response, nil
}

func (ws *workspaceService) PageCount(ctx context.Context, workspaceID, fileName string) (*dto.PageCountResponse, error) {
	workspace, err := ws.getWorkspace(workspaceID)
	if err != nil {
		return nil, err
	}

	record, ok := workspace.GetFile(fileName)
	if !ok {
		return nil, apperror.NotFound(fmt.Sprintf("file %q not found", fileName))
	}

	return &dto.PageCountResponse{Name: record.Name, PageCount: record.PageCount}, nil
}

func (ws *workspaceService) ExtractPage(ctx context.Context, workspaceID, fileName string, page int) ([]byte, error) {
	workspace, err := ws.getWorkspace(workspaceID)
	if err != nil {
		return nil, err
	}

	record, ok := workspace.GetFile(fileName)
	if !ok {
		return nil, apperror.NotFound(fmt.Sprintf("file %q not found", fileName))
	}

	pageBytes, err := pdfview.ExtractPage(record.LocalPath, page)
	if err != nil {
		return nil, apperror.Conversion(fmt.Sprintf("failed to extract page %d of %q", page, fileName), err)
	}
	return pageBytes, nil
}

func (ws *workspaceService) getWorkspace(workspaceID string) (*store.Workspace, error) {
	workspace, ok := ws.workspaceRepo.Get(workspaceID)
	if !ok {
		return nil, apperror.NotFound("workspace not found or expired")
	}
	return workspace, nil
}

func fileRecordToDTO(record *store.FileRecord) dto.FileRecordDTO {
	return dto.FileRecordDTO{
		Name:       record.Name,
		Role:       string(record.Role),
		StorageURI: record.StorageURI,
		MimeType:   record.MimeType,
		PageCount:  record.PageCount,
		UploadedAt: record.UploadedAt,
	}
}
