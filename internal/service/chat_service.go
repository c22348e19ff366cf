package service

import (
	"context"

	"cim-memo-be/internal/constant"
	"cim-memo-be/internal/dto"
	"cim-memo-be/internal/pkg/apperror"
	"cim-memo-be/internal/pkg/logger"
	"cim-memo-be/internal/repository/memory"
	"cim-memo-be/pkg/chat"
	"cim-memo-be/pkg/events"
	"cim-memo-be/pkg/store"
)

type IChatService interface {
	CreateConversation(ctx context.Context, workspaceID string, request *dto.CreateConversationRequest) (*dto.CreateConversationResponse, error)
	Submit(ctx context.Context, workspaceID string, request *dto.SubmitChatRequest) (*dto.SubmitChatResponse, error)
	Clear(ctx context.Context, workspaceID string, request *dto.ClearConversationRequest) error
	GetHistory(ctx context.Context, workspaceID, function string) (*dto.ChatHistoryResponse, error)
}

type chatService struct {
	workspaceRepo    *memory.WorkspaceRepository
	gatewayFactory   GatewayFactory
	publisherService IPublisherService
	defaultModel     string
	logger           logger.ILogger
}

func NewChatService(
	workspaceRepo *memory.WorkspaceRepository,
	gatewayFactory GatewayFactory,
	publisherService IPublisherService,
	defaultModel string,
	log logger.ILogger,
) IChatService {
	return &chatService{
		workspaceRepo:    workspaceRepo,
		gatewayFactory:   gatewayFactory,
		publisherService: publisherService,
		defaultModel:     defaultModel,
		logger:           log,
	}
}

// CreateConversation returns the conversation for the requested variant,
// seeding it with the introductory turn on first use. The editor variant
// captures the workspace summary as read-only context at creation time.
func (cs *chatService) CreateConversation(ctx context.Context, workspaceID string, request *dto.CreateConversationRequest) (*dto.CreateConversationResponse, error) {
	workspace, err := cs.getWorkspace(workspaceID)
	if err != nil {
		return nil, err
	}

	if err := requireEditorContext(workspace, request.Function); err != nil {
		return nil, err
	}

	conversation := workspace.Conversation(request.Function)
	cs.workspaceRepo.Save(workspace)

	return &dto.CreateConversationResponse{
		Function: request.Function,
		Intro:    turnToDTO(conversation.Turns[0]),
	}, nil
}

// Submit runs one user turn through the two-call pipeline. The user turn is
// appended before the model call so the input stays in the log even when
// generation fails; the assistant turn is appended only after both calls
// succeed. Whitespace-only input is a no-op.
func (cs *chatService) Submit(ctx context.Context, workspaceID string, request *dto.SubmitChatRequest) (*dto.SubmitChatResponse, error) {
	workspace, err := cs.getWorkspace(workspaceID)
	if err != nil {
		return nil, err
	}

	if err := requireEditorContext(workspace, request.Function); err != nil {
		return nil, err
	}

	if chat.IsBlank(request.Prompt) {
		return &dto.SubmitChatResponse{Function: request.Function}, nil
	}

	if request.ModelOption == "" {
		request.ModelOption = cs.defaultModel
	}

	conversation := workspace.Conversation(request.Function)

	// The QA variant answers from the source documents only; the editor sees
	// every uploaded file.
	roleFilter := store.FileRole("")
	if request.Function == constant.ChatbotFunctionQA {
		roleFilter = store.FileRoleDocument
	}
	files := workspace.AllFiles(roleFilter)

	// Inputs are assembled before the user turn is appended: the prior log
	// flattened in order, then the new input last.
	texts := make([]string, 0, len(conversation.Turns)+2)
	if request.Function == constant.ChatbotFunctionEditor && conversation.BaseSummary != "" {
		texts = append(texts, conversation.BaseSummary)
	}
	texts = append(texts, conversation.FormatHistory()...)
	texts = append(texts, request.Prompt)

	sent := conversation.AppendUserTurn(request.Prompt)
	cs.workspaceRepo.Save(workspace)

	gateway, err := cs.gatewayFactory(ctx, request.ModelOption, request.Function)
	if err != nil {
		return nil, err
	}

	raw, err := generate(ctx, cs.publisherService, gateway,
		workspaceID, "chat", request.Function, request.ModelOption,
		constant.ChatTemperature, fileRefsFor(files), texts)
	if err != nil {
		return nil, err
	}

	display, err := formatMarkdown(ctx, cs.publisherService, cs.gatewayFactory, workspaceID, request.ModelOption, raw)
	if err != nil {
		return nil, err
	}

	reply := conversation.AppendAssistantTurn(raw, display)
	cs.workspaceRepo.Save(workspace)

	if err := cs.publisherService.Publish(ctx, events.New(events.TypeChatTurn, map[string]interface{}{
		"workspace_id": workspaceID,
		"function":     request.Function,
		"model_option": request.ModelOption,
	})); err != nil {
		cs.logger.Warn("ChatService", "Failed to publish chat event", map[string]interface{}{"error": err.Error()})
	}

	return &dto.SubmitChatResponse{
		Function: request.Function,
		Sent:     turnToDTO(sent),
		Reply:    turnToDTO(reply),
	}, nil
}

// Clear truncates the conversation back to its introductory turn.
func (cs *chatService) Clear(ctx context.Context, workspaceID string, request *dto.ClearConversationRequest) error {
	workspace, err := cs.getWorkspace(workspaceID)
	if err != nil {
		return err
	}

	workspace.Conversation(request.Function).Clear()
	cs.workspaceRepo.Save(workspace)
	return nil
}

func (cs *chatService) GetHistory(ctx context.Context, workspaceID, function string) (*dto.ChatHistoryResponse, error) {
	workspace, err := cs.getWorkspace(workspaceID)
	if err != nil {
		return nil, err
	}

	conversation := workspace.Conversation(function)
	response := &dto.ChatHistoryResponse{Function: function, Turns: make([]*dto.TurnDTO, 0, len(conversation.Turns))}
	for _, turn := range conversation.Turns {
		response.Turns = append(response.Turns, turnToDTO(turn))
	}
	return response, nil
}

// requireEditorContext withholds the editor variant until a summary exists:
// there is nothing to edit before one has been generated. The qa variant works
// from the documents alone.
func requireEditorContext(workspace *store.Workspace, function string) error {
	if function == constant.ChatbotFunctionEditor && workspace.Summary == "" {
		return apperror.Configuration("editor chat requires a generated summary")
	}
	return nil
}

func (cs *chatService) getWorkspace(workspaceID string) (*store.Workspace, error) {
	workspace, ok := cs.workspaceRepo.Get(workspaceID)
	if !ok {
		return nil, apperror.NotFound("workspace not found or expired")
	}
	return workspace, nil
}

func turnToDTO(turn *chat.Turn) *dto.TurnDTO {
	return &dto.TurnDTO{
		Role:           turn.Role,
		RawContent:     turn.RawContent,
		DisplayContent: turn.DisplayContent,
		CreatedAt:      turn.CreatedAt,
	}
}
