package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"cim-memo-be/internal/constant"
	"cim-memo-be/internal/dto"
	"cim-memo-be/internal/pkg/apperror"
	"cim-memo-be/internal/repository/memory"
	"cim-memo-be/pkg/llm"
	"cim-memo-be/pkg/store"

	"github.com/stretchr/testify/assert"
)

type summaryFixture struct {
	service   ISummaryService
	repo      *memory.WorkspaceRepository
	workspace *store.Workspace
	gateway   *fakeGateway
	publisher *fakePublisher
}

func newSummaryFixture(t *testing.T) *summaryFixture {
	t.Helper()

	repo := memory.NewWorkspaceRepository(time.Minute)
	workspace := store.NewWorkspace("22222222-2222-2222-2222-222222222222", t.TempDir(), "")
	repo.Save(workspace)

	gateway := &fakeGateway{response: "generated text"}
	publisher := &fakePublisher{}

	factory := GatewayFactory(func(ctx context.Context, modelOption, chatbotFunction string) (llm.Gateway, error) {
		return gateway, nil
	})

	return &summaryFixture{
		service:   NewSummaryService(repo, factory, publisher, "gemini-2.5-flash", nopLogger{}),
		repo:      repo,
		workspace: workspace,
		gateway:   gateway,
		publisher: publisher,
	}
}

func TestGenerateSummaryRequiresTwoFiles(t *testing.T) {
	f := newSummaryFixture(t)
	f.workspace.PutFile(&store.FileRecord{Name: "cim.pdf", Role: store.FileRoleDocument, StorageURI: "gs://b/cim.pdf"})
	f.repo.Save(f.workspace)

	_, err := f.service.GenerateSummary(context.Background(), f.workspace.ID, &dto.GenerateSummaryRequest{ModelOption: "gemini-2.5-flash"})

	assert.Equal(t, apperror.KindConfiguration, apperror.KindOf(err))
	assert.Zero(t, f.gateway.calls, "no model call should run when the precondition fails")
}

func TestGenerateSummaryStoresBothRenderings(t *testing.T) {
	f := newSummaryFixture(t)
	f.workspace.PutFile(&store.FileRecord{Name: "cim.pdf", Role: store.FileRoleDocument, StorageURI: "gs://b/cim.pdf", MimeType: "application/pdf"})
	f.workspace.PutFile(&store.FileRecord{Name: "template.pdf", Role: store.FileRoleTemplate, StorageURI: "gs://b/template.pdf", MimeType: "application/pdf"})
	f.repo.Save(f.workspace)

	res, err := f.service.GenerateSummary(context.Background(), f.workspace.ID, &dto.GenerateSummaryRequest{ModelOption: "gemini-2.5-flash"})
	assert.NoError(t, err)

	// Both the content and formatting calls ran against the same fake.
	assert.Equal(t, 2, f.gateway.calls)
	assert.Equal(t, "generated text", res.Summary)
	assert.Equal(t, "generated text", res.DisplaySummary)
	assert.Equal(t, "generated text", f.workspace.Summary)
	assert.Equal(t, "gemini-2.5-flash", f.workspace.ModelOption)
}

func TestGenerateSummaryPromptAndFiles(t *testing.T) {
	f := newSummaryFixture(t)
	f.workspace.PutFile(&store.FileRecord{Name: "cim.pdf", Role: store.FileRoleDocument, StorageURI: "gs://b/cim.pdf", MimeType: "application/pdf"})
	f.workspace.PutFile(&store.FileRecord{Name: "template.pdf", Role: store.FileRoleTemplate, StorageURI: "gs://b/template.pdf", MimeType: "application/pdf"})
	f.repo.Save(f.workspace)

	var calls []struct {
		files []llm.FileRef
		texts []string
	}
	gateway := &fakeGateway{response: "generated"}
	factory := GatewayFactory(func(ctx context.Context, modelOption, chatbotFunction string) (llm.Gateway, error) {
		assert.Equal(t, constant.ChatbotFunctionNone, chatbotFunction)
		return recordingGateway(func(files []llm.FileRef, texts []string) {
			calls = append(calls, struct {
				files []llm.FileRef
				texts []string
			}{files, texts})
		}, gateway), nil
	})
	service := NewSummaryService(f.repo, factory, f.publisher, "gemini-2.5-flash", nopLogger{})

	_, err := service.GenerateSummary(context.Background(), f.workspace.ID, &dto.GenerateSummaryRequest{ModelOption: "gemini-2.5-flash"})
	assert.NoError(t, err)

	if assert.Len(t, calls, 2) {
		// Content pass: every file with the summary prompt.
		assert.Len(t, calls[0].files, 2)
		assert.Equal(t, []string{constant.SummaryPrompt}, calls[0].texts)

		// Formatting pass: no files, prompt plus raw text.
		assert.Nil(t, calls[1].files)
		assert.Equal(t, []string{constant.MarkdownFormatPrompt, "generated"}, calls[1].texts)
	}
}

// recordingGateway forwards to the wrapped fake while capturing each call.
func recordingGateway(record func(files []llm.FileRef, texts []string), wrapped llm.Gateway) llm.Gateway {
	return gatewayFunc(func(ctx context.Context, files []llm.FileRef, texts []string, options ...llm.Option) (string, error) {
		record(files, texts)
		return wrapped.Generate(ctx, files, texts, options...)
	})
}

type gatewayFunc func(ctx context.Context, files []llm.FileRef, texts []string, options ...llm.Option) (string, error)

func (f gatewayFunc) Generate(ctx context.Context, files []llm.FileRef, texts []string, options ...llm.Option) (string, error) {
	return f(ctx, files, texts, options...)
}

func TestGenerateSummaryFailureLeavesWorkspaceUntouched(t *testing.T) {
	f := newSummaryFixture(t)
	f.workspace.PutFile(&store.FileRecord{Name: "cim.pdf", Role: store.FileRoleDocument, StorageURI: "gs://b/cim.pdf"})
	f.workspace.PutFile(&store.FileRecord{Name: "template.pdf", Role: store.FileRoleTemplate, StorageURI: "gs://b/template.pdf"})
	f.repo.Save(f.workspace)
	f.gateway.err = errors.New("backend unavailable")

	_, err := f.service.GenerateSummary(context.Background(), f.workspace.ID, &dto.GenerateSummaryRequest{ModelOption: "gemini-2.5-flash"})

	assert.Equal(t, apperror.KindGeneration, apperror.KindOf(err))
	assert.Empty(t, f.workspace.Summary)
	assert.Empty(t, f.workspace.DisplaySummary)
}

func TestGetSummary(t *testing.T) {
	f := newSummaryFixture(t)

	_, err := f.service.GetSummary(context.Background(), f.workspace.ID)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	f.workspace.Summary = "raw"
	f.workspace.DisplaySummary = "display"
	f.repo.Save(f.workspace)

	res, err := f.service.GetSummary(context.Background(), f.workspace.ID)
	assert.NoError(t, err)
	assert.Equal(t, "raw", res.Summary)
	assert.Equal(t, "display", res.DisplaySummary)
}
