package service

import (
	"context"
	"testing"
	"time"

	"cim-memo-be/internal/config"
	"cim-memo-be/internal/constant"
	"cim-memo-be/internal/dto"
	"cim-memo-be/internal/pkg/apperror"
	"cim-memo-be/internal/repository/memory"
	"cim-memo-be/pkg/converter"
	"cim-memo-be/pkg/events"
	"cim-memo-be/pkg/llm"
	"cim-memo-be/pkg/store"

	"github.com/stretchr/testify/assert"
)

type memoFixture struct {
	service   IMemoService
	workspace *store.Workspace
	gateway   *fakeGateway
	publisher *fakePublisher
	cfg       *config.Config
}

func newMemoFixture(t *testing.T) *memoFixture {
	t.Helper()

	repo := memory.NewWorkspaceRepository(time.Minute)
	workspace := store.NewWorkspace("44444444-4444-4444-4444-444444444444", t.TempDir(), "")
	repo.Save(workspace)

	gateway := &fakeGateway{response: "## Executive Summary\ndrafted memo body"}
	publisher := &fakePublisher{}
	factory := GatewayFactory(func(ctx context.Context, modelOption, chatbotFunction string) (llm.Gateway, error) {
		return gateway, nil
	})

	cfg := &config.Config{}
	cfg.Google.MemoOutlineURI = "gs://bucket/outline.docx"
	cfg.Google.MemoOutlineMime = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

	pandoc := converter.NewPandocConverter("pandoc-binary-that-does-not-exist", "", "")

	return &memoFixture{
		service:   NewMemoService(repo, factory, publisher, nil, pandoc, cfg, nopLogger{}),
		workspace: workspace,
		gateway:   gateway,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (f *memoFixture) addFile(name string, role store.FileRole) {
	f.workspace.PutFile(&store.FileRecord{
		Name:       name,
		Role:       role,
		StorageURI: "gs://bucket/files/" + name,
		MimeType:   "application/pdf",
	})
}

func TestDraftRequiresDocuments(t *testing.T) {
	f := newMemoFixture(t)

	_, err := f.service.Draft(context.Background(), f.workspace.ID, &dto.DraftMemoRequest{ModelOption: "gemini-2.5-pro"})
	assert.Equal(t, apperror.KindConfiguration, apperror.KindOf(err))
	assert.Zero(t, f.gateway.calls)
}

func TestDraftUsesDocumentsAndConfiguredOutline(t *testing.T) {
	f := newMemoFixture(t)
	f.addFile("cim.pdf", store.FileRoleDocument)
	f.addFile("summary-template.pdf", store.FileRoleTemplate)

	res, err := f.service.Draft(context.Background(), f.workspace.ID, &dto.DraftMemoRequest{ModelOption: "gemini-2.5-pro"})
	assert.NoError(t, err)
	assert.Equal(t, f.gateway.response, res.MemoText)
	assert.Equal(t, f.gateway.response, f.workspace.MemoText)

	// One source document plus the outline; the uploaded template wins over
	// the configured object.
	assert.Len(t, f.gateway.gotFiles, 2)
	assert.Equal(t, "gs://bucket/files/cim.pdf", f.gateway.gotFiles[0].URI)
	assert.Equal(t, "gs://bucket/files/summary-template.pdf", f.gateway.gotFiles[1].URI)
	assert.Equal(t, []string{constant.MemoPrompt}, f.gateway.gotTexts)
}

func TestDraftFallsBackToConfiguredOutline(t *testing.T) {
	f := newMemoFixture(t)
	f.addFile("cim.pdf", store.FileRoleDocument)

	_, err := f.service.Draft(context.Background(), f.workspace.ID, &dto.DraftMemoRequest{ModelOption: "gemini-2.5-pro"})
	assert.NoError(t, err)
	assert.Equal(t, f.cfg.Google.MemoOutlineURI, f.gateway.gotFiles[1].URI)
}

func TestDraftWithoutAnyOutline(t *testing.T) {
	f := newMemoFixture(t)
	f.addFile("cim.pdf", store.FileRoleDocument)
	f.cfg.Google.MemoOutlineURI = ""

	_, err := f.service.Draft(context.Background(), f.workspace.ID, &dto.DraftMemoRequest{ModelOption: "gemini-2.5-pro"})
	assert.Equal(t, apperror.KindConfiguration, apperror.KindOf(err))
	assert.Zero(t, f.gateway.calls)
}

func TestDraftPublishesAuditAndProgress(t *testing.T) {
	f := newMemoFixture(t)
	f.addFile("cim.pdf", store.FileRoleDocument)

	_, err := f.service.Draft(context.Background(), f.workspace.ID, &dto.DraftMemoRequest{ModelOption: "gemini-2.5-pro"})
	assert.NoError(t, err)

	var audits, drafted int
	for _, event := range f.publisher.published {
		switch event.EventType() {
		case events.TypeModelCall:
			audits++
		case events.TypeMemoDrafted:
			drafted++
		}
	}
	assert.Equal(t, 1, audits)
	assert.Equal(t, 1, drafted)
}

func TestExportRequiresDraft(t *testing.T) {
	f := newMemoFixture(t)

	_, _, err := f.service.Export(context.Background(), f.workspace.ID, &dto.ExportMemoRequest{})
	assert.Equal(t, apperror.KindConfiguration, apperror.KindOf(err))
}

func TestExportWithBrokenConverter(t *testing.T) {
	f := newMemoFixture(t)
	f.workspace.MemoText = "## Executive Summary\nbody"

	// No Docs exporter configured and the local converter binary is missing,
	// so the export fails but still reports an event.
	_, _, err := f.service.Export(context.Background(), f.workspace.ID, &dto.ExportMemoRequest{FileName: "deal-memo.docx"})
	assert.Equal(t, apperror.KindConversion, apperror.KindOf(err))

	var produced int
	for _, event := range f.publisher.published {
		if event.EventType() == events.TypeExportProduced {
			produced++
			assert.Equal(t, false, event.Payload()["success"])
		}
	}
	assert.Equal(t, 1, produced)
}
