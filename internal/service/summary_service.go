package service

import (
	"context"

	"cim-memo-be/internal/constant"
	"cim-memo-be/internal/dto"
	"cim-memo-be/internal/pkg/apperror"
	"cim-memo-be/internal/pkg/logger"
	"cim-memo-be/internal/repository/memory"
	"cim-memo-be/pkg/events"
)

type ISummaryService interface {
	GenerateSummary(ctx context.Context, workspaceID string, request *dto.GenerateSummaryRequest) (*dto.SummaryResponse, error)
	GetSummary(ctx context.Context, workspaceID string) (*dto.SummaryResponse, error)
}

type summaryService struct {
	workspaceRepo    *memory.WorkspaceRepository
	gatewayFactory   GatewayFactory
	publisherService IPublisherService
	defaultModel     string
	logger           logger.ILogger
}

func NewSummaryService(
	workspaceRepo *memory.WorkspaceRepository,
	gatewayFactory GatewayFactory,
	publisherService IPublisherService,
	defaultModel string,
	log logger.ILogger,
) ISummaryService {
	return &summaryService{
		workspaceRepo:    workspaceRepo,
		gatewayFactory:   gatewayFactory,
		publisherService: publisherService,
		defaultModel:     defaultModel,
		logger:           log,
	}
}

// GenerateSummary runs the two-call summary pipeline: content generation over
// all uploaded files, then a markdown re-rendering of the result. It needs the
// CIM document and the summary template present, hence the two-file floor.
func (ss *summaryService) GenerateSummary(ctx context.Context, workspaceID string, request *dto.GenerateSummaryRequest) (*dto.SummaryResponse, error) {
	workspace, ok := ss.workspaceRepo.Get(workspaceID)
	if !ok {
		return nil, apperror.NotFound("workspace not found or expired")
	}

	files := workspace.AllFiles("")
	if len(files) < 2 {
		return nil, apperror.Configuration("summary requires the CIM document and the summary template to be uploaded")
	}

	if request.ModelOption == "" {
		request.ModelOption = ss.defaultModel
	}

	gateway, err := ss.gatewayFactory(ctx, request.ModelOption, constant.ChatbotFunctionNone)
	if err != nil {
		return nil, err
	}

	raw, err := generate(ctx, ss.publisherService, gateway,
		workspaceID, "summary", constant.ChatbotFunctionNone, request.ModelOption,
		constant.SummaryTemperature, fileRefsFor(files), []string{constant.SummaryPrompt})
	if err != nil {
		return nil, err
	}

	display, err := formatMarkdown(ctx, ss.publisherService, ss.gatewayFactory, workspaceID, request.ModelOption, raw)
	if err != nil {
		return nil, err
	}

	workspace.Summary = raw
	workspace.DisplaySummary = display
	workspace.ModelOption = request.ModelOption
	ss.workspaceRepo.Save(workspace)

	if err := ss.publisherService.Publish(ctx, events.New(events.TypeSummaryGenerated, map[string]interface{}{
		"workspace_id": workspaceID,
		"model_option": request.ModelOption,
	})); err != nil {
		ss.logger.Warn("SummaryService", "Failed to publish summary event", map[string]interface{}{"error": err.Error()})
	}

	return &dto.SummaryResponse{Summary: raw, DisplaySummary: display}, nil
}

func (ss *summaryService) GetSummary(ctx context.Context, workspaceID string) (*dto.SummaryResponse, error) {
	workspace, ok := ss.workspaceRepo.Get(workspaceID)
	if !ok {
		return nil, apperror.NotFound("workspace not found or expired")
	}
	if workspace.Summary == "" {
		return nil, apperror.NotFound("no summary generated yet")
	}
	return &dto.SummaryResponse{Summary: workspace.Summary, DisplaySummary: workspace.DisplaySummary}, nil
}
