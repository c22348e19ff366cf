package service

import (
	"context"
	"testing"
	"time"

	"cim-memo-be/internal/constant"
	"cim-memo-be/internal/dto"
	"cim-memo-be/internal/pkg/apperror"
	"cim-memo-be/internal/repository/memory"
	"cim-memo-be/pkg/converter"
	"cim-memo-be/pkg/events"
	"cim-memo-be/pkg/store"

	"github.com/stretchr/testify/assert"
)

type fakeEmailService struct {
	sentTo   string
	artifact string
	path     string
	err      error
}

func (f *fakeEmailService) SendArtifact(toEmail, artifact, attachmentPath string) error {
	if f.err != nil {
		return f.err
	}
	f.sentTo = toEmail
	f.artifact = artifact
	f.path = attachmentPath
	return nil
}

type exportFixture struct {
	service   IExportService
	workspace *store.Workspace
	email     *fakeEmailService
	publisher *fakePublisher
}

func newExportFixture(t *testing.T) *exportFixture {
	t.Helper()

	repo := memory.NewWorkspaceRepository(time.Minute)
	workspace := store.NewWorkspace("33333333-3333-3333-3333-333333333333", t.TempDir(), "")
	workspace.Summary = "the raw summary"
	workspace.MemoText = "the memo draft"
	repo.Save(workspace)

	email := &fakeEmailService{}
	publisher := &fakePublisher{}

	// A nonexistent binary makes docx/pdf fail while plaintext still works,
	// which is exactly the per-format isolation under test.
	pandoc := converter.NewPandocConverter("pandoc-binary-that-does-not-exist", "", "")

	return &exportFixture{
		service:   NewExportService(repo, pandoc, email, publisher, nopLogger{}),
		workspace: workspace,
		email:     email,
		publisher: publisher,
	}
}

func TestExportPerFormatIsolation(t *testing.T) {
	f := newExportFixture(t)

	res, err := f.service.Export(context.Background(), f.workspace.ID, &dto.ExportRequest{
		Artifact: "summary",
		Formats:  []string{"docx", "plaintext"},
	})
	assert.NoError(t, err, "a failing format must not fail the whole export")

	assert.Len(t, res.Results, 2)
	byFormat := map[string]dto.ExportResultDTO{}
	for _, r := range res.Results {
		byFormat[r.Format] = r
	}

	assert.False(t, byFormat["docx"].Success)
	assert.NotEmpty(t, byFormat["docx"].Error)
	assert.True(t, byFormat["plaintext"].Success)
	assert.Equal(t, "summary.txt", byFormat["plaintext"].FileName)
}

func TestExportEmitsOneEventPerFormat(t *testing.T) {
	f := newExportFixture(t)

	_, err := f.service.Export(context.Background(), f.workspace.ID, &dto.ExportRequest{
		Artifact: "memo",
		Formats:  []string{"plaintext", "docx"},
	})
	assert.NoError(t, err)

	var produced int
	for _, event := range f.publisher.published {
		if event.EventType() == events.TypeExportProduced {
			produced++
		}
	}
	assert.Equal(t, 2, produced)
}

func TestExportMissingArtifact(t *testing.T) {
	f := newExportFixture(t)
	f.workspace.Summary = ""

	_, err := f.service.Export(context.Background(), f.workspace.ID, &dto.ExportRequest{
		Artifact: "summary",
		Formats:  []string{"plaintext"},
	})
	assert.Equal(t, apperror.KindConfiguration, apperror.KindOf(err))
}

func TestExportChatUsesLatestEditorResponse(t *testing.T) {
	f := newExportFixture(t)

	// No editor response yet.
	_, err := f.service.Export(context.Background(), f.workspace.ID, &dto.ExportRequest{
		Artifact: "chat",
		Formats:  []string{"plaintext"},
	})
	assert.Equal(t, apperror.KindConfiguration, apperror.KindOf(err))

	conversation := f.workspace.Conversation(constant.ChatbotFunctionEditor)
	conversation.AppendUserTurn("edit")
	conversation.AppendAssistantTurn("latest edited text", "display")

	res, err := f.service.Export(context.Background(), f.workspace.ID, &dto.ExportRequest{
		Artifact: "chat",
		Formats:  []string{"plaintext"},
	})
	assert.NoError(t, err)
	assert.True(t, res.Results[0].Success)

	path, err := f.service.ResolveArtifact(context.Background(), f.workspace.ID, res.Results[0].FileName)
	assert.NoError(t, err)
	assert.NotEmpty(t, path)
}

func TestEmailExport(t *testing.T) {
	f := newExportFixture(t)

	res, err := f.service.EmailExport(context.Background(), f.workspace.ID, &dto.EmailExportRequest{
		Artifact:  "summary",
		Format:    "plaintext",
		Recipient: "analyst@example.com",
	})
	assert.NoError(t, err)
	assert.Equal(t, "analyst@example.com", res.Recipient)
	assert.Equal(t, "analyst@example.com", f.email.sentTo)
	assert.Equal(t, "summary", f.email.artifact)
}

func TestEmailExportConversionFailure(t *testing.T) {
	f := newExportFixture(t)

	_, err := f.service.EmailExport(context.Background(), f.workspace.ID, &dto.EmailExportRequest{
		Artifact:  "summary",
		Format:    "pdf",
		Recipient: "analyst@example.com",
	})
	assert.Equal(t, apperror.KindConversion, apperror.KindOf(err))
	assert.Empty(t, f.email.sentTo, "nothing should be mailed when conversion fails")
}

func TestResolveArtifactRejectsUnknownFiles(t *testing.T) {
	f := newExportFixture(t)

	_, err := f.service.ResolveArtifact(context.Background(), f.workspace.ID, "nope.txt")
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}
